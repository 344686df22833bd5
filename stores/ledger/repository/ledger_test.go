package repository

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/domain"
)

var (
	mockCtx    = ctx.Background()
	token      = domain.Address("0x07fe9ffd85b54a3a18467d3b5e91a55ecc52a268")
	collection = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	alice      = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	bob        = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
	operator   = domain.Address("0x322813fd9a801c5507c9de605d63cea4f2ce6c44")
)

type rejectAll struct{ calls int }

func (r *rejectAll) OnErc721Received(ctx.Ctx, domain.Address, domain.Address, domain.Address, *big.Int) error {
	r.calls++
	return errors.New("no thanks")
}

func (r *rejectAll) OnErc20Transfer(ctx.Ctx, domain.Address, domain.Address, domain.Address, *big.Int) error {
	r.calls++
	return errors.New("no thanks")
}

func (r *rejectAll) OnNativeReceived(ctx.Ctx, domain.Address, *big.Int) error {
	r.calls++
	return errors.New("no thanks")
}

type ledgerSuite struct {
	suite.Suite
	j      *journal.Journal
	erc20  *Erc20Ledger
	erc721 *Erc721Ledger
	native *NativeLedger
}

func TestLedger(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

func (s *ledgerSuite) SetupTest() {
	s.j = journal.New()
	s.erc20 = NewErc20Ledger(s.j)
	s.erc721 = NewErc721Ledger(s.j)
	s.native = NewNativeLedger(s.j)
}

func (s *ledgerSuite) balance(owner domain.Address) string {
	b, err := s.erc20.BalanceOf(mockCtx, token, owner)
	s.Require().NoError(err)
	return b.String()
}

func (s *ledgerSuite) TestErc20TransferFrom() {
	s.erc20.Mint(mockCtx, token, alice, big.NewInt(100))
	s.ErrorIs(s.erc20.TransferFrom(mockCtx, token, operator, alice, bob, big.NewInt(10)), domain.ErrInsufficientAllowance)

	s.erc20.Approve(mockCtx, token, alice, operator, big.NewInt(50))
	s.Require().NoError(s.erc20.TransferFrom(mockCtx, token, operator, alice, bob, big.NewInt(30)))
	s.Equal("70", s.balance(alice))
	s.Equal("30", s.balance(bob))
	allowance, err := s.erc20.Allowance(mockCtx, token, alice, operator)
	s.Require().NoError(err)
	s.Equal("20", allowance.String())

	s.erc20.Approve(mockCtx, token, alice, operator, big.NewInt(1000))
	s.ErrorIs(s.erc20.TransferFrom(mockCtx, token, operator, alice, bob, big.NewInt(71)), domain.ErrInsufficientBalance)
	s.Equal("70", s.balance(alice))
	allowance, err = s.erc20.Allowance(mockCtx, token, alice, operator)
	s.Require().NoError(err)
	s.Equal("1000", allowance.String(), "failed transfer keeps the allowance")
}

func (s *ledgerSuite) TestErc20HookRejects() {
	s.erc20.Mint(mockCtx, token, alice, big.NewInt(100))
	hook := &rejectAll{}
	s.erc20.SetHook(token, hook)
	s.ErrorIs(s.erc20.TransferFrom(mockCtx, token, alice, alice, bob, big.NewInt(10)), domain.ErrTransferRejected)
	s.Equal(1, hook.calls)
	s.Equal("100", s.balance(alice))
	s.Equal("0", s.balance(bob))
}

func (s *ledgerSuite) TestErc721SafeTransfer() {
	id := big.NewInt(7)
	_, err := s.erc721.OwnerOf(mockCtx, collection, id)
	s.ErrorIs(err, domain.ErrNotFound)

	s.erc721.Mint(mockCtx, collection, alice, id)
	s.ErrorIs(s.erc721.SafeTransferFrom(mockCtx, collection, operator, alice, bob, id), domain.ErrNotTokenOwner)
	s.ErrorIs(s.erc721.SafeTransferFrom(mockCtx, collection, bob, bob, alice, id), domain.ErrNotTokenOwner)

	s.erc721.SetApprovalForAll(mockCtx, collection, alice, operator, true)
	s.Require().NoError(s.erc721.SafeTransferFrom(mockCtx, collection, operator, alice, bob, id))
	owner, err := s.erc721.OwnerOf(mockCtx, collection, id)
	s.Require().NoError(err)
	s.Equal(bob, owner)

	s.erc721.Approve(mockCtx, collection, operator, id)
	s.Require().NoError(s.erc721.SafeTransferFrom(mockCtx, collection, operator, bob, alice, id))
	// single token approval is consumed by the transfer
	s.erc721.SetApprovalForAll(mockCtx, collection, alice, operator, false)
	s.ErrorIs(s.erc721.SafeTransferFrom(mockCtx, collection, operator, alice, bob, id), domain.ErrNotTokenOwner)
}

func (s *ledgerSuite) TestErc721ReceiverRejects() {
	id := big.NewInt(1)
	s.erc721.Mint(mockCtx, collection, alice, id)
	r := &rejectAll{}
	s.erc721.SetReceiver(bob, r)
	s.ErrorIs(s.erc721.SafeTransferFrom(mockCtx, collection, alice, alice, bob, id), domain.ErrTransferRejected)
	owner, err := s.erc721.OwnerOf(mockCtx, collection, id)
	s.Require().NoError(err)
	s.Equal(alice, owner)
}

func (s *ledgerSuite) TestNative() {
	s.native.Mint(mockCtx, alice, big.NewInt(5))
	s.ErrorIs(s.native.Transfer(mockCtx, alice, bob, big.NewInt(6)), domain.ErrInsufficientBalance)
	s.Require().NoError(s.native.Transfer(mockCtx, alice, bob, big.NewInt(5)))
	b, err := s.native.BalanceOf(mockCtx, bob)
	s.Require().NoError(err)
	s.Equal("5", b.String())

	s.native.SetReceiver(alice, &rejectAll{})
	s.ErrorIs(s.native.Transfer(mockCtx, bob, alice, big.NewInt(1)), domain.ErrTransferRejected)
	b, err = s.native.BalanceOf(mockCtx, bob)
	s.Require().NoError(err)
	s.Equal("5", b.String())
}

func (s *ledgerSuite) TestOuterRevert() {
	s.erc20.Mint(mockCtx, token, alice, big.NewInt(100))
	s.erc721.Mint(mockCtx, collection, alice, big.NewInt(1))
	err := s.j.Atomic(func() error {
		s.Require().NoError(s.erc20.TransferFrom(mockCtx, token, alice, alice, bob, big.NewInt(40)))
		s.Require().NoError(s.erc721.SafeTransferFrom(mockCtx, collection, alice, alice, bob, big.NewInt(1)))
		return domain.ErrInvalidOrder
	})
	s.Error(err)
	s.Equal("100", s.balance(alice))
	owner, err := s.erc721.OwnerOf(mockCtx, collection, big.NewInt(1))
	s.Require().NoError(err)
	s.Equal(alice, owner)
}
