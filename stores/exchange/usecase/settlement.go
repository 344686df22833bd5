package usecase

import (
	"errors"
	"math/big"

	bCtx "github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/allowlist"
	"github.com/x-xyz/goexchange/domain/exchange"
	"github.com/x-xyz/goexchange/domain/order"
)

func (im *impl) ExecuteListing(ctx bCtx.Ctx, meta domain.CallMeta, listing *order.Listing, payment order.PaymentMethod) (*exchange.Event, error) {
	defer im.metrics.BumpTime("settlement.time", "type", "listing").End()

	meta, err := normalizeMeta(meta)
	if err != nil {
		return nil, err
	}
	var event *exchange.Event
	err = im.run(ctx, func(c bCtx.Ctx) error {
		if err := im.validateListing(c, meta, listing, payment); err != nil {
			return err
		}
		event, err = im.settleListing(c, meta, listing, payment)
		return err
	})
	im.bumpResult("listing", err)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (im *impl) ExecuteListingWithNativeCurrency(ctx bCtx.Ctx, meta domain.CallMeta, listing *order.Listing) (*exchange.Event, error) {
	return im.ExecuteListing(ctx, meta, listing, order.NativePayment())
}

func (im *impl) AcceptOffer(ctx bCtx.Ctx, meta domain.CallMeta, offer *order.Offer) (*exchange.Event, error) {
	defer im.metrics.BumpTime("settlement.time", "type", "offer").End()

	meta, err := normalizeMeta(meta)
	if err != nil {
		return nil, err
	}
	var event *exchange.Event
	err = im.run(ctx, func(c bCtx.Ctx) error {
		if err := im.validateOffer(c, meta, offer); err != nil {
			return err
		}
		event, err = im.settleOffer(c, meta, offer)
		return err
	})
	im.bumpResult("offer", err)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (im *impl) ValidateListing(ctx bCtx.Ctx, meta domain.CallMeta, listing *order.Listing, payment order.PaymentMethod) error {
	meta, err := normalizeMeta(meta)
	if err != nil {
		return err
	}
	return im.dryRun(ctx, func(c bCtx.Ctx) error {
		return im.validateListing(c, meta, listing, payment)
	})
}

func (im *impl) ValidateOffer(ctx bCtx.Ctx, meta domain.CallMeta, offer *order.Offer) error {
	meta, err := normalizeMeta(meta)
	if err != nil {
		return err
	}
	return im.dryRun(ctx, func(c bCtx.Ctx) error {
		return im.validateOffer(c, meta, offer)
	})
}

func (im *impl) bumpResult(typ string, err error) {
	if err != nil {
		im.metrics.BumpSum("settlement.err", 1, "type", typ, "class", string(domain.ClassOf(err)))
		return
	}
	im.metrics.BumpSum("settlement.count", 1, "type", typ)
}

// checkAccepted is the first gate of every settlement, it reads no balances or ownership
func (im *impl) checkAccepted(ctx bCtx.Ctx, meta domain.CallMeta, o *order.Order, creator domain.Address) error {
	if !im.allowlist.IsAccepted(ctx, allowlist.KindCurrency, o.Currency) {
		return domain.ErrCurrencyNotAccepted
	}
	if !im.allowlist.IsAccepted(ctx, allowlist.KindCollection, o.Collection) {
		return domain.ErrCollectionNotAccepted
	}
	if meta.Caller.Equals(creator) {
		return domain.ErrOrderCreatorCannotExecute
	}
	return nil
}

func (im *impl) checkAmount(o *order.Order) error {
	if o.Amount.Sign() == 0 && !im.allowZeroAmountOrders {
		return domain.ErrZeroAmount
	}
	return nil
}

// checkOrderState covers ownership, nonce and expiry, in that order
func (im *impl) checkOrderState(ctx bCtx.Ctx, meta domain.CallMeta, o *order.Order, seller, signer domain.Address) error {
	owner, err := im.erc721.OwnerOf(ctx, o.Collection, o.TokenId)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !owner.Equals(seller)) {
		return domain.ErrSellerNotOwner
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"collection": o.Collection,
			"tokenId":    o.TokenId,
		}).Error("erc721.OwnerOf failed")
		return err
	}

	valid, err := im.nonce.IsValid(ctx, signer, o.Nonce)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"signer": signer,
			"nonce":  o.Nonce,
		}).Error("nonce.IsValid failed")
		return err
	}
	if !valid {
		return domain.ErrInvalidOrder
	}

	if o.IsExpired(meta.Time) {
		return domain.ErrOrderExpired
	}
	return nil
}

func (im *impl) validateListing(ctx bCtx.Ctx, meta domain.CallMeta, l *order.Listing, payment order.PaymentMethod) error {
	if l == nil || !l.IsWellFormed() {
		return domain.ErrBadParamInput
	}
	if err := im.checkAccepted(ctx, meta, &l.Order, l.Seller); err != nil {
		return err
	}
	if err := im.checkAmount(&l.Order); err != nil {
		return err
	}

	switch payment.Kind {
	case order.PaymentNative:
		if im.wrappedNative.IsEmpty() || !l.Currency.Equals(im.wrappedNative) {
			return domain.ErrInvalidPayment
		}
		if meta.Value.Cmp(l.Amount) != 0 {
			return domain.ErrInvalidPayment
		}
		balance, err := im.native.BalanceOf(ctx, meta.Caller)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"caller": meta.Caller,
			}).Error("native.BalanceOf failed")
			return err
		}
		if balance.Cmp(l.Amount) < 0 {
			return domain.ErrInsufficientBalance
		}
	case order.PaymentToken:
		if meta.Value.Sign() != 0 || !payment.Token.Equals(l.Currency) {
			return domain.ErrInvalidPayment
		}
		if err := im.checkTokenBalance(ctx, l.Currency, meta.Caller, l.Amount); err != nil {
			return err
		}
	default:
		return domain.ErrInvalidPayment
	}

	if err := im.checkOrderState(ctx, meta, &l.Order, l.Seller, l.Seller); err != nil {
		return err
	}
	if !im.auth.VerifyListing(ctx, l) {
		return domain.ErrSignatureInvalid
	}
	return nil
}

func (im *impl) validateOffer(ctx bCtx.Ctx, meta domain.CallMeta, o *order.Offer) error {
	if o == nil || !o.IsWellFormed() {
		return domain.ErrBadParamInput
	}
	if err := im.checkAccepted(ctx, meta, &o.Order, o.Buyer); err != nil {
		return err
	}
	if err := im.checkAmount(&o.Order); err != nil {
		return err
	}
	// an offer is always paid from the buyer's token approval
	if meta.Value.Sign() != 0 {
		return domain.ErrInvalidPayment
	}
	if err := im.checkTokenBalance(ctx, o.Currency, o.Buyer, o.Amount); err != nil {
		return err
	}
	if err := im.checkOrderState(ctx, meta, &o.Order, meta.Caller, o.Buyer); err != nil {
		return err
	}
	if !im.auth.VerifyOffer(ctx, o) {
		return domain.ErrSignatureInvalid
	}
	return nil
}

func (im *impl) checkTokenBalance(ctx bCtx.Ctx, token, owner domain.Address, amount *big.Int) error {
	balance, err := im.erc20.BalanceOf(ctx, token, owner)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
			"owner": owner,
		}).Error("erc20.BalanceOf failed")
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

type settlement struct {
	kind      exchange.EventType
	orderHash domain.OrderHash
	order     *order.Order
	seller    domain.Address
	buyer     domain.Address
	signer    domain.Address
	payment   order.PaymentMethod
}

func (im *impl) settleListing(ctx bCtx.Ctx, meta domain.CallMeta, l *order.Listing, payment order.PaymentMethod) (*exchange.Event, error) {
	hash, err := im.auth.ListingHash(l)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("auth.ListingHash failed")
		return nil, err
	}
	return im.settle(ctx, meta, settlement{
		kind:      exchange.EventListingExecuted,
		orderHash: hash,
		order:     &l.Order,
		seller:    l.Seller.ToLower(),
		buyer:     meta.Caller,
		signer:    l.Seller.ToLower(),
		payment:   payment,
	})
}

func (im *impl) settleOffer(ctx bCtx.Ctx, meta domain.CallMeta, o *order.Offer) (*exchange.Event, error) {
	hash, err := im.auth.OfferHash(o)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("auth.OfferHash failed")
		return nil, err
	}
	return im.settle(ctx, meta, settlement{
		kind:      exchange.EventOfferAccepted,
		orderHash: hash,
		order:     &o.Order,
		seller:    meta.Caller,
		buyer:     o.Buyer.ToLower(),
		signer:    o.Buyer.ToLower(),
		payment:   order.TokenPayment(o.Currency),
	})
}

// settle consumes the nonce before any asset moves, so a call re-entering from a transfer
// hook finds the order already used
func (im *impl) settle(ctx bCtx.Ctx, meta domain.CallMeta, s settlement) (*exchange.Event, error) {
	if err := im.nonce.MarkUsed(ctx, s.signer, s.order.Nonce); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"signer": s.signer,
			"nonce":  s.order.Nonce,
		}).Error("nonce.MarkUsed failed")
		return nil, err
	}

	feeCfg := im.fee.Get(ctx)
	feeAmount := im.fee.ComputeFee(ctx, s.order.Amount)
	proceeds := new(big.Int).Sub(s.order.Amount, feeAmount)

	if err := im.pay(ctx, s.payment, s.order.Currency, s.buyer, feeCfg.Recipient, feeAmount); err != nil {
		return nil, err
	}
	if err := im.pay(ctx, s.payment, s.order.Currency, s.buyer, s.seller, proceeds); err != nil {
		return nil, err
	}
	if err := im.erc721.SafeTransferFrom(ctx, s.order.Collection, im.address, s.seller, s.buyer, s.order.TokenId); err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"collection": s.order.Collection,
			"tokenId":    s.order.TokenId,
			"from":       s.seller,
			"to":         s.buyer,
		}).Error("erc721.SafeTransferFrom failed")
		return nil, err
	}

	event := &exchange.Event{
		Type:           s.kind,
		Caller:         meta.Caller,
		OrderHash:      s.orderHash,
		Seller:         s.seller,
		Buyer:          s.buyer,
		Collection:     s.order.Collection.ToLower(),
		TokenId:        s.order.TokenId.String(),
		Currency:       s.order.Currency.ToLower(),
		Payment:        s.payment.Kind,
		Amount:         s.order.Amount.String(),
		Fee:            feeAmount.String(),
		FeeRecipient:   feeCfg.Recipient,
		SellerProceeds: proceeds.String(),
		DisplayAmount:  im.displayAmount(ctx, s.order.Currency, s.order.Amount),
		Nonce:          s.order.Nonce.String(),
	}
	im.emit(ctx, meta, event)
	return event, nil
}

// pay moves one payment leg from payer, zero legs are skipped
func (im *impl) pay(ctx bCtx.Ctx, payment order.PaymentMethod, currency, payer, to domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	var err error
	switch payment.Kind {
	case order.PaymentNative:
		err = im.native.Transfer(ctx, payer, to, amount)
	case order.PaymentToken:
		err = im.erc20.TransferFrom(ctx, currency, im.address, payer, to, amount)
	default:
		err = domain.ErrInvalidPayment
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"payment":  payment.Kind,
			"currency": currency,
			"from":     payer,
			"to":       to,
			"amount":   amount,
		}).Error("pay failed")
	}
	return err
}

func (im *impl) displayAmount(ctx bCtx.Ctx, currency domain.Address, amount *big.Int) string {
	if im.priceFormatter == nil {
		return ""
	}
	d, err := im.priceFormatter.FormatToken(ctx, currency, amount)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
			"amount":   amount,
		}).Warn("priceFormatter.FormatToken failed")
		return ""
	}
	return d.String()
}
