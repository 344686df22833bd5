package allowlist

import (
	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

type Kind string

const (
	KindCurrency   Kind = "currency"
	KindCollection Kind = "collection"
)

// UseCase holds the currencies and collections the exchange settles in.
// Enumeration order is unspecified and may change after a removal.
type UseCase interface {
	Add(ctx ctx.Ctx, kind Kind, address domain.Address) error
	Remove(ctx ctx.Ctx, kind Kind, address domain.Address) error
	IsAccepted(ctx ctx.Ctx, kind Kind, address domain.Address) bool
	// List returns a copy
	List(ctx ctx.Ctx, kind Kind) []domain.Address
}
