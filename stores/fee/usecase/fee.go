package usecase

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/fee"
)

type FeeUseCaseCfg struct {
	Journal   *journal.Journal
	Rate      int64
	Recipient domain.Address
}

type impl struct {
	j         *journal.Journal
	rate      int64
	recipient domain.Address
}

func New(cfg *FeeUseCaseCfg) (fee.UseCase, error) {
	if !validRate(cfg.Rate) {
		return nil, domain.ErrInvalidFee
	}
	if cfg.Recipient.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}
	return &impl{
		j:         cfg.Journal,
		rate:      cfg.Rate,
		recipient: cfg.Recipient.ToLower(),
	}, nil
}

func validRate(rate int64) bool {
	return rate >= 0 && rate <= fee.MaxRate
}

func (im *impl) Get(ctx ctx.Ctx) fee.Config {
	return fee.Config{
		Rate:      im.rate,
		Precision: fee.Precision,
		Recipient: im.recipient,
	}
}

func (im *impl) SetRate(ctx ctx.Ctx, rate int64) error {
	if !validRate(rate) || rate == im.rate {
		return domain.ErrInvalidFee
	}
	prev := im.rate
	im.rate = rate
	im.j.Append(func() { im.rate = prev })
	ctx.WithFields(log.Fields{
		"prev": prev,
		"rate": rate,
	}).Info("fee rate updated")
	return nil
}

func (im *impl) SetRecipient(ctx ctx.Ctx, recipient domain.Address) error {
	if recipient.IsEmpty() || recipient.Equals(im.recipient) {
		return domain.ErrInvalidAddress
	}
	prev := im.recipient
	im.recipient = recipient.ToLower()
	im.j.Append(func() { im.recipient = prev })
	ctx.WithFields(log.Fields{
		"prev":      prev,
		"recipient": recipient,
	}).Info("fee recipient updated")
	return nil
}

func (im *impl) ComputeFee(ctx ctx.Ctx, amount *big.Int) *big.Int {
	if amount == nil || amount.Sign() <= 0 {
		return new(big.Int)
	}
	f := new(big.Int).Mul(amount, big.NewInt(im.rate))
	return f.Quo(f, big.NewInt(fee.Precision))
}
