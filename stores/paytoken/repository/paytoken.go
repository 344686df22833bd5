package repository

import (
	"sync"

	bCtx "github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

type payTokenMemoryRepo struct {
	mu     sync.RWMutex
	tokens map[domain.Address]domain.PayToken
}

func NewPayTokenRepo(tokens []domain.PayToken) domain.PayTokenRepo {
	r := &payTokenMemoryRepo{
		tokens: map[domain.Address]domain.PayToken{},
	}
	for i := range tokens {
		_ = r.Upsert(bCtx.Background(), &tokens[i])
	}
	return r
}

func (r *payTokenMemoryRepo) FindOne(ctx bCtx.Ctx, tokenAddress domain.Address) (*domain.PayToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[tokenAddress.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *payTokenMemoryRepo) Upsert(ctx bCtx.Ctx, payToken *domain.PayToken) error {
	if payToken.Address.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	t := *payToken
	t.Address = t.Address.ToLower()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.Address] = t
	return nil
}
