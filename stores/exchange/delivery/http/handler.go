package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/delivery"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/account"
	"github.com/x-xyz/goexchange/domain/allowlist"
	"github.com/x-xyz/goexchange/domain/exchange"
	"github.com/x-xyz/goexchange/middleware"
	"github.com/x-xyz/goexchange/service/cache/provider"
	authMiddleware "github.com/x-xyz/goexchange/stores/auth/delivery/http/middleware"
)

type handler struct {
	exchange exchange.UseCase
}

// New registers the exchange routes. Event reads are cached for eventsTtl when cache is set.
func New(
	e *echo.Echo,
	exchange exchange.UseCase,
	am *authMiddleware.AuthMiddleware,
	cache provider.Provider,
	eventsTtl time.Duration,
) {
	h := &handler{exchange: exchange}

	g := e.Group("/exchange")

	g.POST("/listings/execute", h.executeListing, am.Auth())
	g.POST("/listings/execute-native", h.executeListingNative, am.Auth())
	g.POST("/listings/validate", h.validateListing, am.Auth())
	g.POST("/listings/hash", h.listingHash)
	g.POST("/offers/accept", h.acceptOffer, am.Auth())
	g.POST("/offers/validate", h.validateOffer, am.Auth())
	g.POST("/offers/hash", h.offerHash)

	g.POST("/nonces/cancel-below", h.cancelBelow, am.Auth())
	g.POST("/nonces/cancel", h.cancel, am.Auth())
	g.GET("/nonces/:account", h.getNonces, middleware.IsValidAddress("account"))
	g.GET("/nonces/:account/:nonce", h.getNonceValidity, middleware.IsValidAddress("account"))

	g.GET("/fee", h.getFee)
	g.PUT("/fee/rate", h.setFeeRate, am.Auth(), am.IsOwner())
	g.PUT("/fee/recipient", h.setFeeRecipient, am.Auth(), am.IsOwner())

	for path, kind := range map[string]allowlist.Kind{
		"/currencies":  allowlist.KindCurrency,
		"/collections": allowlist.KindCollection,
	} {
		g.GET(path, h.getAllowlist(kind))
		g.POST(path, h.addToAllowlist(kind), am.Auth(), am.IsOwner())
		g.DELETE(path+"/:address", h.removeFromAllowlist(kind), am.Auth(), am.IsOwner(), middleware.IsValidAddress("address"))
	}

	if cache != nil && eventsTtl > 0 {
		g.GET("/events", h.getEvents, middleware.CacheHttp(cache, eventsTtl))
	} else {
		g.GET("/events", h.getEvents)
	}
}

// callMeta builds the call context of the authenticated caller, value is the attached native amount
func callMeta(c echo.Context, value string) (domain.CallMeta, error) {
	caller, _ := c.Get(authMiddleware.AddressKey).(domain.Address)
	if caller.IsEmpty() {
		return domain.CallMeta{}, domain.ErrUnauthorized
	}
	v, err := parseBig(value)
	if err != nil {
		return domain.CallMeta{}, err
	}
	return domain.CallMeta{Caller: caller, Value: v, Time: time.Now()}, nil
}

// bind decodes and validates the request into req
func bind(c echo.Context, req interface{}) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	if err := c.Bind(req); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return domain.ErrBadParamInput
	}
	if err := c.Validate(req); err != nil {
		ctx.WithField("err", err).Warn("validate failed")
		return err
	}
	return nil
}

func fail(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return delivery.MakeJsonResp(c, he.Code, he.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, delivery.StatusOf(err), err)
}

// executeListing
//
//	@Summary		Execute listing
//	@Description	Buy a signed listing, paying in the listing currency or natively
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		executeListingReq	true	"params"
//	@Success		200		{object}	exchange.Event
//	@Failure		400
//	@Failure		403
//	@Failure		410
//	@Failure		422
//	@Router			/exchange/listings/execute [post]
func (h *handler) executeListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := executeListingReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, req.Value)
	if err != nil {
		return fail(c, err)
	}
	listing, err := req.Listing.toListing()
	if err != nil {
		return fail(c, err)
	}

	ev, err := h.exchange.ExecuteListing(ctx, meta, listing, req.Payment.toPayment())
	if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ev)
}

// executeListingNative
//
//	@Summary		Execute listing with native currency
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		executeNativeReq	true	"params"
//	@Success		200		{object}	exchange.Event
//	@Router			/exchange/listings/execute-native [post]
func (h *handler) executeListingNative(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := executeNativeReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, req.Value)
	if err != nil {
		return fail(c, err)
	}
	listing, err := req.Listing.toListing()
	if err != nil {
		return fail(c, err)
	}

	ev, err := h.exchange.ExecuteListingWithNativeCurrency(ctx, meta, listing)
	if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ev)
}

// validateListing
//
//	@Summary		Validate listing
//	@Description	Run every settlement check of execute without settling
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	executeListingReq	true	"params"
//	@Success		200
//	@Router			/exchange/listings/validate [post]
func (h *handler) validateListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := executeListingReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, req.Value)
	if err != nil {
		return fail(c, err)
	}
	listing, err := req.Listing.toListing()
	if err != nil {
		return fail(c, err)
	}

	if err := h.exchange.ValidateListing(ctx, meta, listing, req.Payment.toPayment()); err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// listingHash
//
//	@Summary		Listing hash
//	@Description	The EIP-712 digest a seller signs for this listing
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Param			params	body		listingReq	true	"params, signature may be 0x"
//	@Success		200		{object}	hashResp
//	@Router			/exchange/listings/hash [post]
func (h *handler) listingHash(c echo.Context) error {
	req := listingReq{}
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrBadParamInput)
	}
	req.Signature = "0x"
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}
	listing, err := req.toListing()
	if err != nil {
		return fail(c, err)
	}
	hash, err := h.exchange.ListingHash(listing)
	if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, hashResp{OrderHash: hash})
}

// acceptOffer
//
//	@Summary		Accept offer
//	@Description	Sell the offered token to the buyer, the caller is the seller
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		acceptOfferReq	true	"params"
//	@Success		200		{object}	exchange.Event
//	@Router			/exchange/offers/accept [post]
func (h *handler) acceptOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := acceptOfferReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, "")
	if err != nil {
		return fail(c, err)
	}
	offer, err := req.Offer.toOffer()
	if err != nil {
		return fail(c, err)
	}

	ev, err := h.exchange.AcceptOffer(ctx, meta, offer)
	if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ev)
}

// validateOffer
//
//	@Summary		Validate offer
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	acceptOfferReq	true	"params"
//	@Success		200
//	@Router			/exchange/offers/validate [post]
func (h *handler) validateOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := acceptOfferReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, "")
	if err != nil {
		return fail(c, err)
	}
	offer, err := req.Offer.toOffer()
	if err != nil {
		return fail(c, err)
	}

	if err := h.exchange.ValidateOffer(ctx, meta, offer); err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// offerHash
//
//	@Summary		Offer hash
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Param			params	body		offerReq	true	"params, signature may be 0x"
//	@Success		200		{object}	hashResp
//	@Router			/exchange/offers/hash [post]
func (h *handler) offerHash(c echo.Context) error {
	req := offerReq{}
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrBadParamInput)
	}
	req.Signature = "0x"
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}
	offer, err := req.toOffer()
	if err != nil {
		return fail(c, err)
	}
	hash, err := h.exchange.OfferHash(offer)
	if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, hashResp{OrderHash: hash})
}

// cancelBelow
//
//	@Summary		Cancel all orders below nonce
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	cancelBelowReq	true	"params"
//	@Success		200
//	@Failure		410
//	@Router			/exchange/nonces/cancel-below [post]
func (h *handler) cancelBelow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := cancelBelowReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, "")
	if err != nil {
		return fail(c, err)
	}
	minNonce, err := parseBig(req.MinNonce)
	if err != nil {
		return fail(c, err)
	}

	if err := h.exchange.CancelAllOrdersBelow(ctx, meta, minNonce); err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// cancel
//
//	@Summary		Cancel orders
//	@Description	Cancel every given nonce or none of them
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	cancelReq	true	"params"
//	@Success		200
//	@Failure		410
//	@Router			/exchange/nonces/cancel [post]
func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := cancelReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, "")
	if err != nil {
		return fail(c, err)
	}
	nonces, err := domain.ToBigInt(req.Nonces)
	if err != nil {
		return fail(c, err)
	}

	if err := h.exchange.CancelOrders(ctx, meta, nonces); err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// getNonces
//
//	@Summary		Nonce state
//	@Tags			exchange
//	@Produce		json
//	@Param			account	path		string	true	"address"
//	@Success		200		{object}	account.OrderNonceView
//	@Router			/exchange/nonces/{account} [get]
func (h *handler) getNonces(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("account")).ToLower()

	state, err := h.exchange.NonceState(ctx, address)
	if errors.Is(err, domain.ErrNotFound) {
		state = &account.OrderNonce{Address: address}
	} else if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, state.ToView())
}

// getNonceValidity
//
//	@Summary		Nonce validity
//	@Tags			exchange
//	@Produce		json
//	@Param			account	path		string	true	"address"
//	@Param			nonce	path		string	true	"nonce"
//	@Success		200		{object}	nonceValidity
//	@Router			/exchange/nonces/{account}/{nonce} [get]
func (h *handler) getNonceValidity(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("account")).ToLower()

	nonce, err := parseBig(c.Param("nonce"))
	if err != nil {
		return fail(c, err)
	}
	valid, err := h.exchange.IsNonceValid(ctx, address, nonce)
	if err != nil {
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nonceValidity{Address: address, Nonce: nonce.String(), Valid: valid})
}

// getFee
//
//	@Summary		Fee policy
//	@Tags			exchange
//	@Produce		json
//	@Success		200	{object}	fee.Config
//	@Router			/exchange/fee [get]
func (h *handler) getFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return h.feeResp(ctx, c)
}

func (h *handler) feeResp(ctx ctx.Ctx, c echo.Context) error {
	cfg, err := h.exchange.Fee(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("exchange.Fee failed")
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}

// setFeeRate
//
//	@Summary		Set fee rate
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	feeRateReq	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Router			/exchange/fee/rate [put]
func (h *handler) setFeeRate(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := feeRateReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, "")
	if err != nil {
		return fail(c, err)
	}

	if err := h.exchange.SetFeeRate(ctx, meta, *req.Rate); err != nil {
		return fail(c, err)
	}
	return h.feeResp(ctx, c)
}

// setFeeRecipient
//
//	@Summary		Set fee recipient
//	@Tags			exchange
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	feeRecipientReq	true	"params"
//	@Success		200
//	@Router			/exchange/fee/recipient [put]
func (h *handler) setFeeRecipient(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := feeRecipientReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	meta, err := callMeta(c, "")
	if err != nil {
		return fail(c, err)
	}

	if err := h.exchange.SetFeeRecipient(ctx, meta, domain.Address(req.Recipient)); err != nil {
		return fail(c, err)
	}
	return h.feeResp(ctx, c)
}

func (h *handler) getAllowlist(kind allowlist.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(ctx.Ctx)
		addresses, err := h.exchange.Allowlist(ctx, kind)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":  err,
				"kind": kind,
			}).Error("exchange.Allowlist failed")
			return fail(c, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, allowlistResp{Kind: kind, Addresses: addresses})
	}
}

func (h *handler) addToAllowlist(kind allowlist.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(ctx.Ctx)

		req := allowlistReq{}
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		meta, err := callMeta(c, "")
		if err != nil {
			return fail(c, err)
		}

		if err := h.exchange.AddToAllowlist(ctx, meta, kind, domain.Address(req.Address)); err != nil {
			return fail(c, err)
		}
		return delivery.MakeJsonResp(c, http.StatusCreated, nil)
	}
}

func (h *handler) removeFromAllowlist(kind allowlist.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(ctx.Ctx)

		meta, err := callMeta(c, "")
		if err != nil {
			return fail(c, err)
		}
		if err := h.exchange.RemoveFromAllowlist(ctx, meta, kind, domain.Address(c.Param("address"))); err != nil {
			return fail(c, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, nil)
	}
}

// getEvents
//
//	@Summary		Committed events
//	@Description	Newest first
//	@Tags			exchange
//	@Produce		json
//	@Param			type		query		string	false	"event type"
//	@Param			user		query		string	false	"seller, buyer, caller or cancelling user"
//	@Param			collection	query		string	false	"collection"
//	@Param			orderHash	query		string	false	"order hash"
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit"
//	@Success		200			{object}	[]exchange.Event
//	@Router			/exchange/events [get]
func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := eventsReq{}
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	opts := []exchange.FindAllOptionsFunc{}
	if req.Type != "" {
		opts = append(opts, exchange.WithType(exchange.EventType(req.Type)))
	}
	if req.User != "" {
		opts = append(opts, exchange.WithUser(domain.Address(req.User)))
	}
	if req.Collection != "" {
		opts = append(opts, exchange.WithCollection(domain.Address(req.Collection)))
	}
	if req.OrderHash != "" {
		opts = append(opts, exchange.WithOrderHash(domain.OrderHash(req.OrderHash)))
	}
	if req.Offset > 0 || req.Limit > 0 {
		opts = append(opts, exchange.WithPagination(req.Offset, req.Limit))
	}

	events, err := h.exchange.FindEvents(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("exchange.FindEvents failed")
		return fail(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, events)
}
