package ledger

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

// Erc20 is the fungible asset ledger the exchange pulls payments from
type Erc20 interface {
	BalanceOf(ctx ctx.Ctx, token, owner domain.Address) (*big.Int, error)
	Allowance(ctx ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error)
	// TransferFrom moves amount using spender's allowance from `from`
	TransferFrom(ctx ctx.Ctx, token, spender, from, to domain.Address, amount *big.Int) error
}

// Erc721 is the collectible ledger
type Erc721 interface {
	OwnerOf(ctx ctx.Ctx, collection domain.Address, tokenId *big.Int) (domain.Address, error)
	// SafeTransferFrom fails if operator may not move the token or the recipient rejects it
	SafeTransferFrom(ctx ctx.Ctx, collection, operator, from, to domain.Address, tokenId *big.Int) error
}

// Native moves the chain's own currency
type Native interface {
	BalanceOf(ctx ctx.Ctx, owner domain.Address) (*big.Int, error)
	Transfer(ctx ctx.Ctx, from, to domain.Address, amount *big.Int) error
}

// Erc721Receiver is called once a token has been credited to its address.
// Returning an error rejects the token and the transfer fails.
type Erc721Receiver interface {
	OnErc721Received(ctx ctx.Ctx, collection, operator, from domain.Address, tokenId *big.Int) error
}

// Erc20Hook is called by a token after a transfer is booked, the way ERC-777 style tokens
// call into senders and recipients
type Erc20Hook interface {
	OnErc20Transfer(ctx ctx.Ctx, token, from, to domain.Address, amount *big.Int) error
}

// NativeReceiver is called when native currency is paid to its address
type NativeReceiver interface {
	OnNativeReceived(ctx ctx.Ctx, from domain.Address, amount *big.Int) error
}
