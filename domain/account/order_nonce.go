package account

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

// OrderNonce is the cancellation state of one signer. A nonce is spendable only while it is
// above MinNonce and not in UsedNonces.
type OrderNonce struct {
	Address    domain.Address `json:"address" bson:"address"`
	MinNonce   *big.Int       `json:"-" bson:"-"`
	UsedNonces []*big.Int     `json:"-" bson:"-"`
}

type OrderNonceView struct {
	Address    domain.Address `json:"address"`
	MinNonce   string         `json:"minNonce"`
	UsedNonces []string       `json:"usedNonces"`
}

func (on *OrderNonce) ToView() *OrderNonceView {
	used := make([]string, 0, len(on.UsedNonces))
	for _, n := range on.UsedNonces {
		used = append(used, n.String())
	}
	return &OrderNonceView{
		Address:    on.Address,
		MinNonce:   domain.BigString(on.MinNonce),
		UsedNonces: used,
	}
}

type OrderNonceRepo interface {
	// FindOne returns domain.ErrNotFound for a signer never referenced before
	FindOne(ctx ctx.Ctx, address domain.Address) (*OrderNonce, error)
	Create(ctx ctx.Ctx, address domain.Address) error
	SetMinNonce(ctx ctx.Ctx, address domain.Address, nonce *big.Int) error
	IsUsed(ctx ctx.Ctx, address domain.Address, nonce *big.Int) (bool, error)
	MarkUsed(ctx ctx.Ctx, address domain.Address, nonce *big.Int) error
}

type OrderNonceUseCase interface {
	FindOne(ctx ctx.Ctx, address domain.Address) (*OrderNonce, error)
	// CancelAllBelow raises the watermark, minNonce must be above the current one
	CancelAllBelow(ctx ctx.Ctx, address domain.Address, minNonce *big.Int) error
	// CancelSpecific marks every nonce used, or none of them
	CancelSpecific(ctx ctx.Ctx, address domain.Address, nonces []*big.Int) error
	IsValid(ctx ctx.Ctx, address domain.Address, nonce *big.Int) (bool, error)
	MarkUsed(ctx ctx.Ctx, address domain.Address, nonce *big.Int) error
}
