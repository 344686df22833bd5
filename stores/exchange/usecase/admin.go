package usecase

import (
	"math/big"

	bCtx "github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/allowlist"
	"github.com/x-xyz/goexchange/domain/exchange"
)

func (im *impl) CancelAllOrdersBelow(ctx bCtx.Ctx, meta domain.CallMeta, minNonce *big.Int) error {
	meta, err := normalizeMeta(meta)
	if err != nil {
		return err
	}
	if minNonce == nil || minNonce.Sign() < 0 {
		return domain.ErrBadParamInput
	}
	return im.run(ctx, func(c bCtx.Ctx) error {
		if err := im.nonce.CancelAllBelow(c, meta.Caller, minNonce); err != nil {
			c.WithFields(log.Fields{
				"err":      err,
				"user":     meta.Caller,
				"minNonce": minNonce,
			}).Warn("nonce.CancelAllBelow failed")
			return err
		}
		im.emit(c, meta, &exchange.Event{
			Type:     exchange.EventCancelAllOrders,
			User:     meta.Caller,
			MinNonce: minNonce.String(),
		})
		return nil
	})
}

func (im *impl) CancelOrders(ctx bCtx.Ctx, meta domain.CallMeta, nonces []*big.Int) error {
	meta, err := normalizeMeta(meta)
	if err != nil {
		return err
	}
	strs := make([]string, 0, len(nonces))
	for _, n := range nonces {
		if n == nil || n.Sign() < 0 {
			return domain.ErrBadParamInput
		}
		strs = append(strs, n.String())
	}
	return im.run(ctx, func(c bCtx.Ctx) error {
		if err := im.nonce.CancelSpecific(c, meta.Caller, nonces); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"user":   meta.Caller,
				"nonces": strs,
			}).Warn("nonce.CancelSpecific failed")
			return err
		}
		im.emit(c, meta, &exchange.Event{
			Type:   exchange.EventCancelMultipleOrders,
			User:   meta.Caller,
			Nonces: strs,
		})
		return nil
	})
}

// runAsOwner is run for calls gated on the owner
func (im *impl) runAsOwner(ctx bCtx.Ctx, meta domain.CallMeta, fn func(bCtx.Ctx, domain.CallMeta) error) error {
	meta, err := normalizeMeta(meta)
	if err != nil {
		return err
	}
	if !meta.Caller.Equals(im.owner) {
		return domain.ErrNotOwner
	}
	return im.run(ctx, func(c bCtx.Ctx) error {
		return fn(c, meta)
	})
}

func (im *impl) SetFeeRate(ctx bCtx.Ctx, meta domain.CallMeta, rate int64) error {
	return im.runAsOwner(ctx, meta, func(c bCtx.Ctx, meta domain.CallMeta) error {
		if err := im.fee.SetRate(c, rate); err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"rate": rate,
			}).Warn("fee.SetRate failed")
			return err
		}
		im.emit(c, meta, &exchange.Event{
			Type:    exchange.EventNewFeeRate,
			FeeRate: &rate,
		})
		return nil
	})
}

func (im *impl) SetFeeRecipient(ctx bCtx.Ctx, meta domain.CallMeta, recipient domain.Address) error {
	return im.runAsOwner(ctx, meta, func(c bCtx.Ctx, meta domain.CallMeta) error {
		if err := im.fee.SetRecipient(c, recipient); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"recipient": recipient,
			}).Warn("fee.SetRecipient failed")
			return err
		}
		im.emit(c, meta, &exchange.Event{
			Type:    exchange.EventNewFeeRecipient,
			Address: recipient.ToLower(),
		})
		return nil
	})
}

func (im *impl) AddToAllowlist(ctx bCtx.Ctx, meta domain.CallMeta, kind allowlist.Kind, address domain.Address) error {
	typ, err := allowlistEventType(kind, true)
	if err != nil {
		return err
	}
	return im.runAsOwner(ctx, meta, func(c bCtx.Ctx, meta domain.CallMeta) error {
		if err := im.allowlist.Add(c, kind, address); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"kind":    kind,
				"address": address,
			}).Warn("allowlist.Add failed")
			return err
		}
		im.emit(c, meta, &exchange.Event{Type: typ, Address: address.ToLower()})
		return nil
	})
}

func (im *impl) RemoveFromAllowlist(ctx bCtx.Ctx, meta domain.CallMeta, kind allowlist.Kind, address domain.Address) error {
	typ, err := allowlistEventType(kind, false)
	if err != nil {
		return err
	}
	return im.runAsOwner(ctx, meta, func(c bCtx.Ctx, meta domain.CallMeta) error {
		if err := im.allowlist.Remove(c, kind, address); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"kind":    kind,
				"address": address,
			}).Warn("allowlist.Remove failed")
			return err
		}
		im.emit(c, meta, &exchange.Event{Type: typ, Address: address.ToLower()})
		return nil
	})
}

func allowlistEventType(kind allowlist.Kind, added bool) (exchange.EventType, error) {
	switch {
	case kind == allowlist.KindCurrency && added:
		return exchange.EventCurrencyAdded, nil
	case kind == allowlist.KindCurrency:
		return exchange.EventCurrencyRemoved, nil
	case kind == allowlist.KindCollection && added:
		return exchange.EventCollectionAdded, nil
	case kind == allowlist.KindCollection:
		return exchange.EventCollectionRemoved, nil
	}
	return "", domain.ErrBadParamInput
}
