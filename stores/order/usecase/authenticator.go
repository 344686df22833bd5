package usecase

import (
	"bytes"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/ethereum"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/keys"
	"github.com/x-xyz/goexchange/domain/order"
	"github.com/x-xyz/goexchange/service/cache/provider"
)

const recoveredSignerTtl = 10 * time.Minute

type AuthenticatorCfg struct {
	Domain order.Domain
	// Cache keeps recovered signers keyed by digest and signature. Optional.
	Cache provider.Provider
}

type impl struct {
	domain    order.Domain
	separator []byte
	cache     provider.Provider
}

func NewAuthenticator(cfg *AuthenticatorCfg) (order.Authenticator, error) {
	sep, err := order.DomainSeparatorHash(cfg.Domain)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"err":    err,
			"domain": cfg.Domain,
		}).Error("order.DomainSeparatorHash failed")
		return nil, err
	}
	return &impl{
		domain:    cfg.Domain,
		separator: sep,
		cache:     cfg.Cache,
	}, nil
}

func (im *impl) Domain() order.Domain {
	return im.domain
}

func (im *impl) DomainSeparator() []byte {
	return common.CopyBytes(im.separator)
}

func (im *impl) ListingHash(l *order.Listing) (domain.OrderHash, error) {
	digest, err := order.Digest(im.separator, l.TypedData(im.domain))
	if err != nil {
		return "", err
	}
	return order.HashToOrderHash(digest), nil
}

func (im *impl) OfferHash(o *order.Offer) (domain.OrderHash, error) {
	digest, err := order.Digest(im.separator, o.TypedData(im.domain))
	if err != nil {
		return "", err
	}
	return order.HashToOrderHash(digest), nil
}

func (im *impl) VerifyListing(c ctx.Ctx, l *order.Listing) bool {
	if l == nil {
		return false
	}
	return im.verify(c, l.TypedData(im.domain), l.Seller, l.Signature)
}

func (im *impl) VerifyOffer(c ctx.Ctx, o *order.Offer) bool {
	if o == nil {
		return false
	}
	return im.verify(c, o.TypedData(im.domain), o.Buyer, o.Signature)
}

func (im *impl) verify(c ctx.Ctx, typedData apitypes.TypedData, signer domain.Address, sig []byte) bool {
	if signer.IsEmpty() || !common.IsHexAddress(string(signer)) {
		return false
	}
	digest, err := order.Digest(im.separator, typedData)
	if err != nil {
		c.WithFields(log.Fields{
			"err":         err,
			"primaryType": typedData.PrimaryType,
		}).Warn("order.Digest failed")
		return false
	}
	recovered, err := im.recover(c, digest, sig)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"signer": signer,
		}).Warn("recover failed")
		return false
	}
	return recovered == signer.ToCommon()
}

func (im *impl) recover(c ctx.Ctx, digest, sig []byte) (common.Address, error) {
	if im.cache == nil {
		return ethereum.RecoverSigner(digest, sig)
	}
	key := bytes.Join([][]byte{[]byte(keys.PfxSignerCache), digest, sig}, []byte(":"))
	if val, err := im.cache.Get(c, key); err == nil && len(val) == common.AddressLength {
		return common.BytesToAddress(val), nil
	}
	addr, err := ethereum.RecoverSigner(digest, sig)
	if err != nil {
		return common.Address{}, err
	}
	if err := im.cache.Set(c, key, addr.Bytes(), recoveredSignerTtl); err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Warn("cache.Set failed")
	}
	return addr, nil
}
