package pricefomatter

import (
	"math/big"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
)

type PriceFormatter interface {
	// FormatToken scales a raw amount by the token's decimals
	FormatToken(ctx bCtx.Ctx, token domain.Address, value *big.Int) (decimal.Decimal, error)
	// ParseDisplayPrice is the inverse of FormatToken, truncating extra precision
	ParseDisplayPrice(ctx bCtx.Ctx, token domain.Address, displayPrice string) (*big.Int, error)
}

type PriceFormatterCfg struct {
	Paytoken domain.PayTokenRepo
}

type impl struct {
	paytoken domain.PayTokenRepo
}

func NewPriceFormatter(cfg *PriceFormatterCfg) PriceFormatter {
	return &impl{
		paytoken: cfg.Paytoken,
	}
}

func (f *impl) FormatToken(ctx bCtx.Ctx, token domain.Address, value *big.Int) (decimal.Decimal, error) {
	p, err := f.paytoken.FindOne(ctx, token)
	if err != nil {
		if err != domain.ErrNotFound {
			ctx.WithFields(log.Fields{
				"token": token,
				"err":   err,
			}).Error("paytoken.FindOne failed")
		}
		return decimal.Zero, err
	}
	if value == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(value, -p.TokenDecimals), nil
}

func (f *impl) ParseDisplayPrice(ctx bCtx.Ctx, token domain.Address, displayPrice string) (*big.Int, error) {
	p, err := f.paytoken.FindOne(ctx, token)
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(displayPrice)
	if err != nil {
		ctx.WithFields(log.Fields{
			"displayPrice": displayPrice,
			"err":          err,
		}).Error("decimal.NewFromString failed")
		return nil, domain.ErrInvalidNumberFormat
	}
	return d.Shift(p.TokenDecimals).BigInt(), nil
}
