package http

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/allowlist"
	"github.com/x-xyz/goexchange/domain/order"
)

// numbers are decimal strings, 256 bit values do not survive a json number
type orderReq struct {
	Collection string `json:"collection" validate:"required,eth_addr"`
	TokenId    string `json:"tokenId" validate:"required,uint256"`
	Currency   string `json:"currency" validate:"required,eth_addr"`
	Amount     string `json:"amount" validate:"required,uint256"`
	Expiry     string `json:"expiry" validate:"required,uint256"`
	Nonce      string `json:"nonce" validate:"required,uint256"`
}

type listingReq struct {
	orderReq
	Seller    string `json:"seller" validate:"required,eth_addr"`
	Signature string `json:"signature" validate:"required,hexbytes"`
}

type offerReq struct {
	orderReq
	Buyer     string `json:"buyer" validate:"required,eth_addr"`
	Signature string `json:"signature" validate:"required,hexbytes"`
}

type paymentReq struct {
	Kind  order.PaymentKind `json:"kind" validate:"required,oneof=native token"`
	Token string            `json:"token" validate:"omitempty,eth_addr"`
}

type executeListingReq struct {
	Listing listingReq `json:"listing"`
	Payment paymentReq `json:"payment"`
	Value   string     `json:"value" validate:"omitempty,uint256"`
}

type executeNativeReq struct {
	Listing listingReq `json:"listing"`
	Value   string     `json:"value" validate:"required,uint256"`
}

type acceptOfferReq struct {
	Offer offerReq `json:"offer"`
}

type cancelBelowReq struct {
	MinNonce string `json:"minNonce" validate:"required,uint256"`
}

type cancelReq struct {
	Nonces []string `json:"nonces" validate:"required,min=1,dive,uint256"`
}

type feeRateReq struct {
	Rate *int64 `json:"rate" validate:"required"`
}

type feeRecipientReq struct {
	Recipient string `json:"recipient" validate:"required,eth_addr"`
}

type allowlistReq struct {
	Address string `json:"address" validate:"required,eth_addr"`
}

type eventsReq struct {
	Type       string `query:"type"`
	User       string `query:"user" validate:"omitempty,eth_addr"`
	Collection string `query:"collection" validate:"omitempty,eth_addr"`
	OrderHash  string `query:"orderHash" validate:"omitempty,hexbytes"`
	Offset     int32  `query:"offset" validate:"min=0"`
	Limit      int32  `query:"limit" validate:"min=0,max=1000"`
}

type nonceValidity struct {
	Address domain.Address `json:"address"`
	Nonce   string         `json:"nonce"`
	Valid   bool           `json:"valid"`
}

type allowlistResp struct {
	Kind      allowlist.Kind   `json:"kind"`
	Addresses []domain.Address `json:"addresses"`
}

type hashResp struct {
	OrderHash domain.OrderHash `json:"orderHash"`
}

func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}
	return n, nil
}

func (r *orderReq) toOrder() (order.Order, error) {
	o := order.Order{
		Collection: domain.Address(r.Collection).ToLower(),
		Currency:   domain.Address(r.Currency).ToLower(),
	}
	for _, f := range []struct {
		src string
		dst **big.Int
	}{
		{r.TokenId, &o.TokenId},
		{r.Amount, &o.Amount},
		{r.Expiry, &o.Expiry},
		{r.Nonce, &o.Nonce},
	} {
		n, err := parseBig(f.src)
		if err != nil {
			return o, err
		}
		*f.dst = n
	}
	return o, nil
}

func (r *listingReq) toListing() (*order.Listing, error) {
	o, err := r.toOrder()
	if err != nil {
		return nil, err
	}
	sig, err := hexutil.Decode(r.Signature)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	return &order.Listing{Order: o, Seller: domain.Address(r.Seller).ToLower(), Signature: sig}, nil
}

func (r *offerReq) toOffer() (*order.Offer, error) {
	o, err := r.toOrder()
	if err != nil {
		return nil, err
	}
	sig, err := hexutil.Decode(r.Signature)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	return &order.Offer{Order: o, Buyer: domain.Address(r.Buyer).ToLower(), Signature: sig}, nil
}

func (r *paymentReq) toPayment() order.PaymentMethod {
	if r.Kind == order.PaymentNative {
		return order.NativePayment()
	}
	return order.TokenPayment(domain.Address(r.Token))
}
