package exchange

import (
	"math/big"
	"time"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/account"
	"github.com/x-xyz/goexchange/domain/allowlist"
	"github.com/x-xyz/goexchange/domain/fee"
	"github.com/x-xyz/goexchange/domain/order"
)

type EventType string

const (
	EventListingExecuted      EventType = "ListingExecuted"
	EventOfferAccepted        EventType = "OfferAccepted"
	EventCancelAllOrders      EventType = "CancelAllOrders"
	EventCancelMultipleOrders EventType = "CancelMultipleOrders"
	EventNewFeeRate           EventType = "NewFeeRate"
	EventNewFeeRecipient      EventType = "NewFeeRecipient"
	EventCurrencyAdded        EventType = "CurrencyAdded"
	EventCurrencyRemoved      EventType = "CurrencyRemoved"
	EventCollectionAdded      EventType = "CollectionAdded"
	EventCollectionRemoved    EventType = "CollectionRemoved"
)

// Event is emitted for every committed state change. Amounts are decimal strings.
type Event struct {
	Id        string         `json:"id" bson:"id"`
	Type      EventType      `json:"type" bson:"type"`
	Caller    domain.Address `json:"caller" bson:"caller"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`

	// settlement
	OrderHash      domain.OrderHash  `json:"orderHash,omitempty" bson:"orderHash,omitempty"`
	Seller         domain.Address    `json:"seller,omitempty" bson:"seller,omitempty"`
	Buyer          domain.Address    `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Collection     domain.Address    `json:"collection,omitempty" bson:"collection,omitempty"`
	TokenId        string            `json:"tokenId,omitempty" bson:"tokenId,omitempty"`
	Currency       domain.Address    `json:"currency,omitempty" bson:"currency,omitempty"`
	Payment        order.PaymentKind `json:"payment,omitempty" bson:"payment,omitempty"`
	Amount         string            `json:"amount,omitempty" bson:"amount,omitempty"`
	Fee            string            `json:"fee,omitempty" bson:"fee,omitempty"`
	FeeRecipient   domain.Address    `json:"feeRecipient,omitempty" bson:"feeRecipient,omitempty"`
	SellerProceeds string            `json:"sellerProceeds,omitempty" bson:"sellerProceeds,omitempty"`
	DisplayAmount  string            `json:"displayAmount,omitempty" bson:"displayAmount,omitempty"`
	Nonce          string            `json:"nonce,omitempty" bson:"nonce,omitempty"`

	// cancellation
	User     domain.Address `json:"user,omitempty" bson:"user,omitempty"`
	MinNonce string         `json:"minNonce,omitempty" bson:"minNonce,omitempty"`
	Nonces   []string       `json:"nonces,omitempty" bson:"nonces,omitempty"`

	// administration
	FeeRate *int64         `json:"feeRate,omitempty" bson:"feeRate,omitempty"`
	Address domain.Address `json:"address,omitempty" bson:"address,omitempty"`
}

// DefaultEventLimit is the page size of an event query without a limit
const DefaultEventLimit = 100

type FindAllOptions struct {
	Type       *EventType
	User       *domain.Address
	Collection *domain.Address
	OrderHash  *domain.OrderHash
	Offset     *int32
	Limit      *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithType(t EventType) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.Type = &t
		return nil
	}
}

// WithUser matches events where address is the seller, buyer, caller or cancelling user
func WithUser(address domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		a := address.ToLower()
		opts.User = &a
		return nil
	}
}

func WithCollection(address domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		a := address.ToLower()
		opts.Collection = &a
		return nil
	}
}

func WithOrderHash(h domain.OrderHash) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		h = h.ToLower()
		opts.OrderHash = &h
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

// Page returns the offset and limit to query with, a missing or zero limit is DefaultEventLimit
func (o FindAllOptions) Page() (offset, limit int) {
	offset, limit = 0, DefaultEventLimit
	if o.Offset != nil {
		offset = int(*o.Offset)
	}
	if o.Limit != nil && *o.Limit > 0 {
		limit = int(*o.Limit)
	}
	return offset, limit
}

// Match applies the filters in memory
func (o FindAllOptions) Match(e *Event) bool {
	if o.Type != nil && e.Type != *o.Type {
		return false
	}
	if o.Collection != nil && !e.Collection.Equals(*o.Collection) {
		return false
	}
	if o.OrderHash != nil && e.OrderHash.ToLower() != *o.OrderHash {
		return false
	}
	if o.User != nil {
		u := *o.User
		if !e.Seller.Equals(u) && !e.Buyer.Equals(u) && !e.Caller.Equals(u) && !e.User.Equals(u) {
			return false
		}
	}
	return true
}

// EventRepo stores committed events, newest last
type EventRepo interface {
	Insert(ctx ctx.Ctx, event *Event) error
	// FindAll returns matching events newest first
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
}

// EventSink receives committed events, e.g. for live consumers
type EventSink interface {
	Publish(ctx ctx.Ctx, event *Event) error
}

// UseCase is the settlement engine. Every mutating call is atomic and totally ordered with
// all other calls; meta.Caller is the authenticated caller.
type UseCase interface {
	ExecuteListing(ctx ctx.Ctx, meta domain.CallMeta, listing *order.Listing, payment order.PaymentMethod) (*Event, error)
	ExecuteListingWithNativeCurrency(ctx ctx.Ctx, meta domain.CallMeta, listing *order.Listing) (*Event, error)
	AcceptOffer(ctx ctx.Ctx, meta domain.CallMeta, offer *order.Offer) (*Event, error)

	// ValidateListing and ValidateOffer run every settlement check without changing state
	ValidateListing(ctx ctx.Ctx, meta domain.CallMeta, listing *order.Listing, payment order.PaymentMethod) error
	ValidateOffer(ctx ctx.Ctx, meta domain.CallMeta, offer *order.Offer) error

	CancelAllOrdersBelow(ctx ctx.Ctx, meta domain.CallMeta, minNonce *big.Int) error
	CancelOrders(ctx ctx.Ctx, meta domain.CallMeta, nonces []*big.Int) error

	// owner only
	SetFeeRate(ctx ctx.Ctx, meta domain.CallMeta, rate int64) error
	SetFeeRecipient(ctx ctx.Ctx, meta domain.CallMeta, recipient domain.Address) error
	AddToAllowlist(ctx ctx.Ctx, meta domain.CallMeta, kind allowlist.Kind, address domain.Address) error
	RemoveFromAllowlist(ctx ctx.Ctx, meta domain.CallMeta, kind allowlist.Kind, address domain.Address) error

	Fee(ctx ctx.Ctx) (fee.Config, error)
	Allowlist(ctx ctx.Ctx, kind allowlist.Kind) ([]domain.Address, error)
	NonceState(ctx ctx.Ctx, user domain.Address) (*account.OrderNonce, error)
	IsNonceValid(ctx ctx.Ctx, user domain.Address, nonce *big.Int) (bool, error)
	ListingHash(listing *order.Listing) (domain.OrderHash, error)
	OfferHash(offer *order.Offer) (domain.OrderHash, error)
	FindEvents(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
	// Flush waits until events committed so far have reached the repo and sinks
	Flush(ctx ctx.Ctx) error
	Owner() domain.Address
	Address() domain.Address
}
