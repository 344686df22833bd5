package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/fee"
)

var (
	mockCtx   = ctx.Background()
	recipient = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
)

type feeSuite struct {
	suite.Suite
	j  *journal.Journal
	uc fee.UseCase
}

func TestFee(t *testing.T) {
	suite.Run(t, new(feeSuite))
}

func (s *feeSuite) SetupTest() {
	s.j = journal.New()
	uc, err := New(&FeeUseCaseCfg{Journal: s.j, Rate: 250, Recipient: recipient})
	s.Require().NoError(err)
	s.uc = uc
}

func (s *feeSuite) TestNew() {
	_, err := New(&FeeUseCaseCfg{Journal: s.j, Rate: 1001, Recipient: recipient})
	s.ErrorIs(err, domain.ErrInvalidFee)
	_, err = New(&FeeUseCaseCfg{Journal: s.j, Rate: -1, Recipient: recipient})
	s.ErrorIs(err, domain.ErrInvalidFee)
	_, err = New(&FeeUseCaseCfg{Journal: s.j, Rate: 100})
	s.ErrorIs(err, domain.ErrInvalidAddress)
}

func (s *feeSuite) TestComputeFee() {
	cases := []struct {
		Amount int64
		Fee    int64
	}{
		{100, 2},
		{0, 0},
		{39, 0},
		{40, 1},
		{10000, 250},
	}
	for _, c := range cases {
		s.Equal(big.NewInt(c.Fee).String(), s.uc.ComputeFee(mockCtx, big.NewInt(c.Amount)).String(), c.Amount)
	}
}

func (s *feeSuite) TestSetRate() {
	s.ErrorIs(s.uc.SetRate(mockCtx, 250), domain.ErrInvalidFee)
	s.ErrorIs(s.uc.SetRate(mockCtx, 1001), domain.ErrInvalidFee)
	s.Require().NoError(s.uc.SetRate(mockCtx, 1000))
	s.Equal(int64(1000), s.uc.Get(mockCtx).Rate)
	s.Equal("10", s.uc.ComputeFee(mockCtx, big.NewInt(100)).String())
	s.Require().NoError(s.uc.SetRate(mockCtx, 0))
	s.Equal("0", s.uc.ComputeFee(mockCtx, big.NewInt(100)).String())
}

func (s *feeSuite) TestSetRecipient() {
	s.ErrorIs(s.uc.SetRecipient(mockCtx, recipient), domain.ErrInvalidAddress)
	s.ErrorIs(s.uc.SetRecipient(mockCtx, "0xDF8650B0CA1260F7A2F4FDFF9082AEDE554F65AD"), domain.ErrInvalidAddress)
	s.ErrorIs(s.uc.SetRecipient(mockCtx, domain.EmptyAddress), domain.ErrInvalidAddress)
	s.ErrorIs(s.uc.SetRecipient(mockCtx, ""), domain.ErrInvalidAddress)

	other := domain.Address("0xCE4468E7CE84ACEB74363F4EA64E5A038176F369")
	s.Require().NoError(s.uc.SetRecipient(mockCtx, other))
	s.Equal(other.ToLower(), s.uc.Get(mockCtx).Recipient)
}

func (s *feeSuite) TestRevert() {
	err := s.j.Atomic(func() error {
		s.Require().NoError(s.uc.SetRate(mockCtx, 500))
		s.Require().NoError(s.uc.SetRecipient(mockCtx, "0xce4468e7ce84aceb74363f4ea64e5a038176f369"))
		return domain.ErrInvalidOrder
	})
	s.Error(err)
	s.Equal(fee.Config{Rate: 250, Precision: fee.Precision, Recipient: recipient}, s.uc.Get(mockCtx))
}

func TestFeeBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.Int64Range(0, fee.MaxRate).Draw(t, "rate").(int64)
		amount := new(big.Int).SetUint64(rapid.Uint64().Draw(t, "amount").(uint64))
		amount.Mul(amount, big.NewInt(rapid.Int64Range(1, 1<<40).Draw(t, "scale").(int64)))

		uc, err := New(&FeeUseCaseCfg{Journal: journal.New(), Rate: rate, Recipient: recipient})
		require.NoError(t, err)

		f := uc.ComputeFee(mockCtx, amount)
		require.True(t, f.Sign() >= 0)
		require.True(t, f.Cmp(amount) <= 0)

		remainder := new(big.Int).Sub(amount, f)
		require.True(t, remainder.Sign() >= 0)
		require.Equal(t, 0, new(big.Int).Add(remainder, f).Cmp(amount))

		// floor(amount * rate / precision)
		lower := new(big.Int).Mul(f, big.NewInt(fee.Precision))
		scaled := new(big.Int).Mul(amount, big.NewInt(rate))
		require.True(t, lower.Cmp(scaled) <= 0)
		require.True(t, new(big.Int).Add(lower, big.NewInt(fee.Precision)).Cmp(scaled) > 0)
	})
}
