package order

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/x-xyz/goexchange/domain"
)

const (
	ListingPrimaryType = "Listing"
	OfferPrimaryType   = "Offer"
	Eip712DomainName   = "EIP712Domain"
)

// Domain binds signatures to one deployment of the exchange
type Domain struct {
	Name              string         `mapstructure:"name"`
	Version           string         `mapstructure:"version"`
	ChainId           domain.ChainId `mapstructure:"chainId"`
	VerifyingContract domain.Address `mapstructure:"address"`
}

func GetDomainSeperator(d Domain) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           math.NewHexOrDecimal256(int64(d.ChainId)),
		VerifyingContract: d.VerifyingContract.ToLowerStr(),
	}
}

var OrderTypes = apitypes.Types{
	ListingPrimaryType: {
		{Name: "collection", Type: "address"},
		{Name: "tokenId", Type: "uint256"},
		{Name: "currency", Type: "address"},
		{Name: "amount", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "seller", Type: "address"},
	},
	OfferPrimaryType: {
		{Name: "collection", Type: "address"},
		{Name: "tokenId", Type: "uint256"},
		{Name: "currency", Type: "address"},
		{Name: "amount", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "buyer", Type: "address"},
	},
	Eip712DomainName: {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
}

func (o *Order) toMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"collection": o.Collection.ToLowerStr(),
		"tokenId":    domain.BigString(o.TokenId),
		"currency":   o.Currency.ToLowerStr(),
		"amount":     domain.BigString(o.Amount),
		"expiry":     domain.BigString(o.Expiry),
		"nonce":      domain.BigString(o.Nonce),
	}
}

func (l *Listing) ToMessage() apitypes.TypedDataMessage {
	msg := l.Order.toMessage()
	msg["seller"] = l.Seller.ToLowerStr()
	return msg
}

func (o *Offer) ToMessage() apitypes.TypedDataMessage {
	msg := o.Order.toMessage()
	msg["buyer"] = o.Buyer.ToLowerStr()
	return msg
}

func (l *Listing) TypedData(d Domain) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       OrderTypes,
		PrimaryType: ListingPrimaryType,
		Domain:      GetDomainSeperator(d),
		Message:     l.ToMessage(),
	}
}

func (o *Offer) TypedData(d Domain) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       OrderTypes,
		PrimaryType: OfferPrimaryType,
		Domain:      GetDomainSeperator(d),
		Message:     o.ToMessage(),
	}
}

// DomainSeparatorHash is hashStruct(EIP712Domain)
func DomainSeparatorHash(d Domain) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types:  OrderTypes,
		Domain: GetDomainSeperator(d),
	}
	return typedData.HashStruct(Eip712DomainName, typedData.Domain.Map())
}

// Digest returns keccak256("\x19\x01" || domainSeparator || hashStruct(message)),
// the value that is actually signed
func Digest(domainSeparator []byte, typedData apitypes.TypedData) ([]byte, error) {
	structHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, err
	}
	raw := []byte(fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(structHash)))
	return crypto.Keccak256(raw), nil
}

func HashToOrderHash(h []byte) domain.OrderHash {
	return domain.OrderHash(hexutil.Encode(h))
}
