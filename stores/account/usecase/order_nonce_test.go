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
	"github.com/x-xyz/goexchange/domain/account"
	"github.com/x-xyz/goexchange/stores/account/repository"
)

var (
	mockCtx = ctx.Background()
	user    = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
)

func bigs(ns ...int64) []*big.Int {
	res := make([]*big.Int, 0, len(ns))
	for _, n := range ns {
		res = append(res, big.NewInt(n))
	}
	return res
}

type orderNonceSuite struct {
	suite.Suite
	j  *journal.Journal
	uc account.OrderNonceUseCase
}

func TestOrderNonce(t *testing.T) {
	suite.Run(t, new(orderNonceSuite))
}

func (s *orderNonceSuite) SetupTest() {
	s.j = journal.New()
	s.uc = NewOrderNonceUseCase(repository.NewOrderNonceRepo(s.j))
}

func (s *orderNonceSuite) isValid(n int64) bool {
	valid, err := s.uc.IsValid(mockCtx, user, big.NewInt(n))
	s.Require().NoError(err)
	return valid
}

func (s *orderNonceSuite) TestFreshSigner() {
	s.False(s.isValid(0))
	s.True(s.isValid(1))

	on, err := s.uc.FindOne(mockCtx, user)
	s.Require().NoError(err)
	s.Equal("0", on.MinNonce.String())
	s.Empty(on.UsedNonces)
}

func (s *orderNonceSuite) TestCancelAllBelow() {
	s.Require().NoError(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(5)))
	s.False(s.isValid(5))
	s.True(s.isValid(6))

	s.ErrorIs(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(5)), domain.ErrNonceLowerThanCurrent)
	s.ErrorIs(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(3)), domain.ErrNonceLowerThanCurrent)
	s.ErrorIs(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(0)), domain.ErrNonceLowerThanCurrent)
	s.NoError(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(6)))
	s.False(s.isValid(6))
}

func (s *orderNonceSuite) TestCancelSpecific() {
	s.ErrorIs(s.uc.CancelSpecific(mockCtx, user, nil), domain.ErrArrayEmpty)

	s.Require().NoError(s.uc.CancelSpecific(mockCtx, user, bigs(3, 7)))
	s.False(s.isValid(3))
	s.False(s.isValid(7))
	s.True(s.isValid(4))

	s.ErrorIs(s.uc.CancelSpecific(mockCtx, user, bigs(4, 7)), domain.ErrOrderAlreadyCancelled)
	s.True(s.isValid(4), "batch is all or nothing")

	s.ErrorIs(s.uc.CancelSpecific(mockCtx, user, bigs(8, 8)), domain.ErrOrderAlreadyCancelled)
	s.True(s.isValid(8))

	s.Require().NoError(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(10)))
	s.ErrorIs(s.uc.CancelSpecific(mockCtx, user, bigs(11, 10)), domain.ErrNonceLowerThanCurrent)
	s.True(s.isValid(11))

	on, err := s.uc.FindOne(mockCtx, user)
	s.Require().NoError(err)
	s.Equal(bigs(3, 7), on.UsedNonces)
	s.Equal([]string{"3", "7"}, on.ToView().UsedNonces)
}

func (s *orderNonceSuite) TestMarkUsedIdempotent() {
	s.Require().NoError(s.uc.MarkUsed(mockCtx, user, big.NewInt(1)))
	s.Require().NoError(s.uc.MarkUsed(mockCtx, user, big.NewInt(1)))
	s.False(s.isValid(1))
	on, err := s.uc.FindOne(mockCtx, user)
	s.Require().NoError(err)
	s.Len(on.UsedNonces, 1)
}

func (s *orderNonceSuite) TestRevertedWithJournal() {
	err := s.j.Atomic(func() error {
		s.Require().NoError(s.uc.CancelAllBelow(mockCtx, user, big.NewInt(4)))
		s.Require().NoError(s.uc.MarkUsed(mockCtx, user, big.NewInt(9)))
		return domain.ErrInvalidOrder
	})
	s.ErrorIs(err, domain.ErrInvalidOrder)
	s.True(s.isValid(1))
	s.True(s.isValid(9))
}

func (s *orderNonceSuite) TestAddressCase() {
	s.Require().NoError(s.uc.MarkUsed(mockCtx, domain.Address("0xCE4468E7CE84ACEB74363F4EA64E5A038176F369"), big.NewInt(2)))
	s.False(s.isValid(2))
}

// nonceModel checks the ledger against a plain watermark + set
type nonceModel struct {
	uc       account.OrderNonceUseCase
	minNonce int64
	used     map[int64]bool
}

func (m *nonceModel) Init(t *rapid.T) {
	m.uc = NewOrderNonceUseCase(repository.NewOrderNonceRepo(journal.New()))
	m.used = map[int64]bool{}
}

func (m *nonceModel) CancelAllBelow(t *rapid.T) {
	n := rapid.Int64Range(0, 60).Draw(t, "minNonce").(int64)
	err := m.uc.CancelAllBelow(mockCtx, user, big.NewInt(n))
	if n <= m.minNonce {
		require.ErrorIs(t, err, domain.ErrNonceLowerThanCurrent)
		return
	}
	require.NoError(t, err)
	m.minNonce = n
}

func (m *nonceModel) CancelSpecific(t *rapid.T) {
	raw := rapid.SliceOfN(rapid.Int64Range(0, 60), 1, 4).Draw(t, "nonces").([]int64)
	err := m.uc.CancelSpecific(mockCtx, user, bigs(raw...))
	seen := map[int64]bool{}
	for _, n := range raw {
		if n <= m.minNonce {
			require.ErrorIs(t, err, domain.ErrNonceLowerThanCurrent)
			return
		}
		if m.used[n] || seen[n] {
			require.ErrorIs(t, err, domain.ErrOrderAlreadyCancelled)
			return
		}
		seen[n] = true
	}
	require.NoError(t, err)
	for n := range seen {
		m.used[n] = true
	}
}

func (m *nonceModel) MarkUsed(t *rapid.T) {
	n := rapid.Int64Range(0, 60).Draw(t, "nonce").(int64)
	require.NoError(t, m.uc.MarkUsed(mockCtx, user, big.NewInt(n)))
	m.used[n] = true
}

func (m *nonceModel) Check(t *rapid.T) {
	for n := int64(0); n <= 61; n++ {
		valid, err := m.uc.IsValid(mockCtx, user, big.NewInt(n))
		require.NoError(t, err)
		require.Equal(t, n > m.minNonce && !m.used[n], valid, "nonce %d", n)
	}
}

func TestOrderNonceProperties(t *testing.T) {
	rapid.Check(t, rapid.Run(&nonceModel{}))
}
