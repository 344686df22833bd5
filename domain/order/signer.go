package order

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/goexchange/domain"
)

// Signer produces listings and offers the way a wallet would with eth_signTypedData_v4
type Signer struct {
	key       *ecdsa.PrivateKey
	domain    Domain
	separator []byte
}

func NewSigner(key *ecdsa.PrivateKey, d Domain) (*Signer, error) {
	sep, err := DomainSeparatorHash(d)
	if err != nil {
		return nil, err
	}
	return &Signer{key: key, domain: d, separator: sep}, nil
}

func (s *Signer) Address() domain.Address {
	return domain.AddressFromCommon(crypto.PubkeyToAddress(s.key.PublicKey))
}

func (s *Signer) SignListing(o Order) (*Listing, error) {
	l := &Listing{Order: o, Seller: s.Address()}
	digest, err := Digest(s.separator, l.TypedData(s.domain))
	if err != nil {
		return nil, err
	}
	if l.Signature, err = s.sign(digest); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Signer) SignOffer(o Order) (*Offer, error) {
	of := &Offer{Order: o, Buyer: s.Address()}
	digest, err := Digest(s.separator, of.TypedData(s.domain))
	if err != nil {
		return nil, err
	}
	if of.Signature, err = s.sign(digest); err != nil {
		return nil, err
	}
	return of, nil
}

func (s *Signer) sign(digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
