package usecase

import (
	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/allowlist"
)

type AllowlistUseCaseCfg struct {
	Journal     *journal.Journal
	Currencies  []domain.Address
	Collections []domain.Address
}

type impl struct {
	sets map[allowlist.Kind]*Set
}

func New(cfg *AllowlistUseCaseCfg) (allowlist.UseCase, error) {
	im := &impl{
		sets: map[allowlist.Kind]*Set{
			allowlist.KindCurrency:   NewSet(cfg.Journal),
			allowlist.KindCollection: NewSet(cfg.Journal),
		},
	}
	c := ctx.Background()
	for _, a := range cfg.Currencies {
		if err := im.Add(c, allowlist.KindCurrency, a); err != nil {
			return nil, err
		}
	}
	for _, a := range cfg.Collections {
		if err := im.Add(c, allowlist.KindCollection, a); err != nil {
			return nil, err
		}
	}
	return im, nil
}

func (im *impl) Add(ctx ctx.Ctx, kind allowlist.Kind, address domain.Address) error {
	set, ok := im.sets[kind]
	if !ok {
		return domain.ErrBadParamInput
	}
	if address.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if !set.Add(address) {
		return domain.ErrAlreadyAccepted
	}
	ctx.WithFields(log.Fields{
		"kind":    kind,
		"address": address,
	}).Info("allowlist added")
	return nil
}

func (im *impl) Remove(ctx ctx.Ctx, kind allowlist.Kind, address domain.Address) error {
	set, ok := im.sets[kind]
	if !ok {
		return domain.ErrBadParamInput
	}
	if !set.Remove(address) {
		return domain.ErrNotAccepted
	}
	ctx.WithFields(log.Fields{
		"kind":    kind,
		"address": address,
	}).Info("allowlist removed")
	return nil
}

func (im *impl) IsAccepted(ctx ctx.Ctx, kind allowlist.Kind, address domain.Address) bool {
	set, ok := im.sets[kind]
	return ok && set.Contains(address)
}

func (im *impl) List(ctx ctx.Ctx, kind allowlist.Kind) []domain.Address {
	set, ok := im.sets[kind]
	if !ok {
		return []domain.Address{}
	}
	return set.List()
}
