package repository

import (
	"math/big"
	"sort"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/account"
)

type nonceState struct {
	minNonce *big.Int
	used     map[string]*big.Int
}

type orderNonceRepoImpl struct {
	j      *journal.Journal
	states map[domain.Address]*nonceState
}

// NewOrderNonceRepo keeps nonce state in memory, every write is recorded in j
func NewOrderNonceRepo(j *journal.Journal) account.OrderNonceRepo {
	return &orderNonceRepoImpl{
		j:      j,
		states: map[domain.Address]*nonceState{},
	}
}

func (im *orderNonceRepoImpl) FindOne(ctx ctx.Ctx, address domain.Address) (*account.OrderNonce, error) {
	st, ok := im.states[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	used := make([]*big.Int, 0, len(st.used))
	for _, n := range st.used {
		used = append(used, new(big.Int).Set(n))
	}
	sort.Slice(used, func(i, j int) bool { return used[i].Cmp(used[j]) < 0 })
	return &account.OrderNonce{
		Address:    address.ToLower(),
		MinNonce:   new(big.Int).Set(st.minNonce),
		UsedNonces: used,
	}, nil
}

func (im *orderNonceRepoImpl) Create(ctx ctx.Ctx, address domain.Address) error {
	key := address.ToLower()
	if _, ok := im.states[key]; ok {
		return nil
	}
	im.states[key] = &nonceState{
		minNonce: new(big.Int),
		used:     map[string]*big.Int{},
	}
	im.j.Append(func() { delete(im.states, key) })
	return nil
}

func (im *orderNonceRepoImpl) SetMinNonce(ctx ctx.Ctx, address domain.Address, nonce *big.Int) error {
	st, ok := im.states[address.ToLower()]
	if !ok {
		return domain.ErrNotFound
	}
	prev := st.minNonce
	st.minNonce = new(big.Int).Set(nonce)
	im.j.Append(func() { st.minNonce = prev })
	return nil
}

func (im *orderNonceRepoImpl) IsUsed(ctx ctx.Ctx, address domain.Address, nonce *big.Int) (bool, error) {
	st, ok := im.states[address.ToLower()]
	if !ok {
		return false, nil
	}
	_, used := st.used[nonce.String()]
	return used, nil
}

func (im *orderNonceRepoImpl) MarkUsed(ctx ctx.Ctx, address domain.Address, nonce *big.Int) error {
	st, ok := im.states[address.ToLower()]
	if !ok {
		return domain.ErrNotFound
	}
	key := nonce.String()
	if _, used := st.used[key]; used {
		return nil
	}
	st.used[key] = new(big.Int).Set(nonce)
	im.j.Append(func() { delete(st.used, key) })
	return nil
}
