package fee

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

const (
	// Precision is the denominator of Rate, 10000 = 100%
	Precision int64 = 10000
	// MaxRate caps the protocol fee at 10%
	MaxRate int64 = 1000
)

type Config struct {
	Rate      int64          `json:"rate"`
	Precision int64          `json:"precision"`
	Recipient domain.Address `json:"recipient"`
}

type UseCase interface {
	Get(ctx ctx.Ctx) Config
	SetRate(ctx ctx.Ctx, rate int64) error
	SetRecipient(ctx ctx.Ctx, recipient domain.Address) error
	// ComputeFee is floor(amount * rate / precision), never above amount
	ComputeFee(ctx ctx.Ctx, amount *big.Int) *big.Int
}
