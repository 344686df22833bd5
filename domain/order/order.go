package order

import (
	"math/big"
	"time"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

// Order is the content both parties sign. Its identity is the EIP-712 hash of these fields,
// the signer and the exchange domain.
type Order struct {
	Collection domain.Address `json:"collection"`
	TokenId    *big.Int       `json:"tokenId"`
	Currency   domain.Address `json:"currency"`
	Amount     *big.Int       `json:"amount"`
	// Expiry is a unix timestamp in seconds, the order is settleable up to and including it
	Expiry *big.Int `json:"expiry"`
	Nonce  *big.Int `json:"nonce"`
}

func (o *Order) LowerCase() {
	o.Collection = o.Collection.ToLower()
	o.Currency = o.Currency.ToLower()
}

// IsExpired is true strictly after expiry
func (o *Order) IsExpired(now time.Time) bool {
	if o.Expiry == nil {
		return true
	}
	return big.NewInt(now.Unix()).Cmp(o.Expiry) > 0
}

// IsWellFormed checks the fields are present and non-negative
func (o *Order) IsWellFormed() bool {
	for _, n := range []*big.Int{o.TokenId, o.Amount, o.Expiry, o.Nonce} {
		if n == nil || n.Sign() < 0 {
			return false
		}
	}
	return !o.Collection.IsEmpty()
}

type Listing struct {
	Order
	Seller    domain.Address `json:"seller"`
	Signature []byte         `json:"signature"`
}

type Offer struct {
	Order
	Buyer     domain.Address `json:"buyer"`
	Signature []byte         `json:"signature"`
}

type PaymentKind string

const (
	PaymentNative PaymentKind = "native"
	PaymentToken  PaymentKind = "token"
)

// PaymentMethod says how the caller funds a listing. Token is only set for PaymentToken.
type PaymentMethod struct {
	Kind  PaymentKind    `json:"kind"`
	Token domain.Address `json:"token,omitempty"`
}

func NativePayment() PaymentMethod {
	return PaymentMethod{Kind: PaymentNative}
}

func TokenPayment(token domain.Address) PaymentMethod {
	return PaymentMethod{Kind: PaymentToken, Token: token.ToLower()}
}

// Authenticator checks that orders were signed by the party they name, for one exchange domain
type Authenticator interface {
	Domain() Domain
	DomainSeparator() []byte
	ListingHash(*Listing) (domain.OrderHash, error)
	OfferHash(*Offer) (domain.OrderHash, error)
	// VerifyListing never fails on malformed input, it just reports false
	VerifyListing(ctx.Ctx, *Listing) bool
	VerifyOffer(ctx.Ctx, *Offer) bool
}
