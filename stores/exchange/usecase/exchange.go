package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/viney-shih/goroutines"

	bCtx "github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/base/metrics"
	pricefomatter "github.com/x-xyz/goexchange/base/price_fomatter"
	"github.com/x-xyz/goexchange/base/sequencer"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/account"
	"github.com/x-xyz/goexchange/domain/allowlist"
	"github.com/x-xyz/goexchange/domain/exchange"
	"github.com/x-xyz/goexchange/domain/fee"
	"github.com/x-xyz/goexchange/domain/ledger"
	"github.com/x-xyz/goexchange/domain/order"
)

// errDryRun forces a revert after a successful validation
var errDryRun = errors.New("dry run")

type ExchangeUseCaseCfg struct {
	// Address is the exchange's own account, the operator and spender of user assets
	Address domain.Address
	Owner   domain.Address
	// WrappedNative is the currency a native payment must be priced in
	WrappedNative         domain.Address
	AllowZeroAmountOrders bool

	Journal   *journal.Journal
	Sequencer *sequencer.Sequencer

	Authenticator     order.Authenticator
	OrderNonceUseCase account.OrderNonceUseCase
	AllowlistUseCase  allowlist.UseCase
	FeeUseCase        fee.UseCase

	Erc20  ledger.Erc20
	Erc721 ledger.Erc721
	Native ledger.Native

	EventRepo  exchange.EventRepo
	EventSinks []exchange.EventSink
	// EventQueueLength is how many committed events may wait for publication, default 1024
	EventQueueLength int
	PriceFormatter   pricefomatter.PriceFormatter
	Metrics          metrics.Service
}

type impl struct {
	address               domain.Address
	owner                 domain.Address
	wrappedNative         domain.Address
	allowZeroAmountOrders bool

	journal *journal.Journal
	seq     *sequencer.Sequencer

	auth      order.Authenticator
	nonce     account.OrderNonceUseCase
	allowlist allowlist.UseCase
	fee       fee.UseCase

	erc20  ledger.Erc20
	erc721 ledger.Erc721
	native ledger.Native

	eventRepo      exchange.EventRepo
	eventSinks     []exchange.EventSink
	publisher      *goroutines.Pool
	priceFormatter pricefomatter.PriceFormatter
	metrics        metrics.Service
}

func NewExchangeUseCase(cfg *ExchangeUseCaseCfg) exchange.UseCase {
	met := cfg.Metrics
	if met == nil {
		met = metrics.New("exchange")
	}
	queueLength := cfg.EventQueueLength
	if queueLength <= 0 {
		queueLength = 1024
	}
	return &impl{
		address:               cfg.Address.ToLower(),
		owner:                 cfg.Owner.ToLower(),
		wrappedNative:         cfg.WrappedNative.ToLower(),
		allowZeroAmountOrders: cfg.AllowZeroAmountOrders,
		journal:               cfg.Journal,
		seq:                   cfg.Sequencer,
		auth:                  cfg.Authenticator,
		nonce:                 cfg.OrderNonceUseCase,
		allowlist:             cfg.AllowlistUseCase,
		fee:                   cfg.FeeUseCase,
		erc20:                 cfg.Erc20,
		erc721:                cfg.Erc721,
		native:                cfg.Native,
		eventRepo:             cfg.EventRepo,
		eventSinks:            cfg.EventSinks,
		publisher:             goroutines.NewPool(1, goroutines.WithTaskQueueLength(queueLength)),
		priceFormatter:        cfg.PriceFormatter,
		metrics:               met,
	}
}

// run executes fn as one sequenced, all-or-nothing call
func (im *impl) run(ctx bCtx.Ctx, fn func(bCtx.Ctx) error) error {
	return im.seq.Do(ctx, func(c bCtx.Ctx) error {
		return im.journal.Atomic(func() error {
			return fn(c)
		})
	})
}

// dryRun executes fn like run but never keeps its writes
func (im *impl) dryRun(ctx bCtx.Ctx, fn func(bCtx.Ctx) error) error {
	err := im.run(ctx, func(c bCtx.Ctx) error {
		if err := fn(c); err != nil {
			return err
		}
		return errDryRun
	})
	if err == errDryRun {
		return nil
	}
	return err
}

func normalizeMeta(meta domain.CallMeta) (domain.CallMeta, error) {
	if meta.Caller.IsEmpty() {
		return meta, domain.ErrUnauthorized
	}
	if meta.Time.IsZero() {
		meta.Time = time.Now()
	}
	if meta.Value == nil {
		meta.Value = new(big.Int)
	}
	if meta.Value.Sign() < 0 {
		return meta, domain.ErrInvalidPayment
	}
	meta.Caller = meta.Caller.ToLower()
	return meta, nil
}

func (im *impl) Fee(ctx bCtx.Ctx) (fee.Config, error) {
	var cfg fee.Config
	err := im.seq.Do(ctx, func(c bCtx.Ctx) error {
		cfg = im.fee.Get(c)
		return nil
	})
	return cfg, err
}

func (im *impl) Allowlist(ctx bCtx.Ctx, kind allowlist.Kind) ([]domain.Address, error) {
	var res []domain.Address
	err := im.seq.Do(ctx, func(c bCtx.Ctx) error {
		res = im.allowlist.List(c, kind)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) NonceState(ctx bCtx.Ctx, user domain.Address) (*account.OrderNonce, error) {
	var res *account.OrderNonce
	err := im.seq.Do(ctx, func(c bCtx.Ctx) error {
		var err error
		res, err = im.nonce.FindOne(c, user)
		return err
	})
	return res, err
}

func (im *impl) IsNonceValid(ctx bCtx.Ctx, user domain.Address, nonce *big.Int) (bool, error) {
	var res bool
	err := im.seq.Do(ctx, func(c bCtx.Ctx) error {
		var err error
		res, err = im.nonce.IsValid(c, user, nonce)
		return err
	})
	return res, err
}

func (im *impl) ListingHash(listing *order.Listing) (domain.OrderHash, error) {
	return im.auth.ListingHash(listing)
}

func (im *impl) OfferHash(offer *order.Offer) (domain.OrderHash, error) {
	return im.auth.OfferHash(offer)
}

func (im *impl) FindEvents(ctx bCtx.Ctx, opts ...exchange.FindAllOptionsFunc) ([]*exchange.Event, error) {
	return im.eventRepo.FindAll(ctx, opts...)
}

func (im *impl) Owner() domain.Address {
	return im.owner
}

func (im *impl) Address() domain.Address {
	return im.address
}
