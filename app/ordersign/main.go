// ordersign prints request bodies signed by a devnet key: a login proof for POST /auth/token
// and listings or offers for the exchange endpoints.
package main

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goexchange/base/ethereum"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/order"
)

var (
	configFile = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	hexKey     = pflag.String("key", "", "private key in hex")
	kind       = pflag.String("kind", "listing", "login, listing or offer")
	collection = pflag.String("collection", "", "collection address")
	tokenId    = pflag.String("tokenId", "0", "token id")
	currency   = pflag.String("currency", "", "currency address")
	amount     = pflag.String("amount", "0", "amount in the currency's smallest unit")
	ttl        = pflag.Duration("ttl", 24*time.Hour, "order lifetime")
	nonce      = pflag.String("nonce", "0", "order nonce")
)

func main() {
	pflag.Parse()
	defer log.Sync()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Log().WithField("err", err).Panic("viper.ReadInConfig failed")
	}

	key, err := ethereum.KeyFromHex(*hexKey)
	if err != nil {
		log.Log().WithField("err", err).Panic("ethereum.KeyFromHex failed")
	}

	var body interface{}
	switch *kind {
	case "login":
		body, err = loginProof(key)
	case "listing", "offer":
		body, err = signOrder(key)
	default:
		err = fmt.Errorf("unknown kind %q", *kind)
	}
	if err != nil {
		log.Log().WithField("err", err).Panic("signing failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		log.Log().WithField("err", err).Panic("encode failed")
	}
}

func loginProof(key *ecdsa.PrivateKey) (interface{}, error) {
	template := viper.GetString("jwt.signingMsg")
	if template == "" {
		return nil, fmt.Errorf("jwt.signingMsg not set")
	}
	ts := time.Now().Unix()
	sig, err := crypto.Sign(accounts.TextHash([]byte(fmt.Sprintf(template, ts))), key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return domain.LoginProof{
		Address:   domain.AddressFromCommon(crypto.PubkeyToAddress(key.PublicKey)),
		Timestamp: ts,
		Signature: hexutil.Encode(sig),
	}, nil
}

func signOrder(key *ecdsa.PrivateKey) (interface{}, error) {
	var d order.Domain
	if err := viper.UnmarshalKey("exchange", &d); err != nil {
		return nil, err
	}
	signer, err := order.NewSigner(key, d)
	if err != nil {
		return nil, err
	}

	nums, err := domain.ToBigInt([]string{*tokenId, *amount, *nonce})
	if err != nil {
		return nil, err
	}
	o := order.Order{
		Collection: domain.Address(*collection).ToLower(),
		TokenId:    nums[0],
		Currency:   domain.Address(*currency).ToLower(),
		Amount:     nums[1],
		Expiry:     big.NewInt(time.Now().Add(*ttl).Unix()),
		Nonce:      nums[2],
	}

	fields := map[string]string{
		"collection": string(o.Collection),
		"tokenId":    o.TokenId.String(),
		"currency":   string(o.Currency),
		"amount":     o.Amount.String(),
		"expiry":     o.Expiry.String(),
		"nonce":      o.Nonce.String(),
	}
	if *kind == "offer" {
		offer, err := signer.SignOffer(o)
		if err != nil {
			return nil, err
		}
		fields["buyer"] = string(offer.Buyer)
		fields["signature"] = hexutil.Encode(offer.Signature)
		return map[string]interface{}{"offer": fields}, nil
	}
	listing, err := signer.SignListing(o)
	if err != nil {
		return nil, err
	}
	fields["seller"] = string(listing.Seller)
	fields["signature"] = hexutil.Encode(listing.Signature)
	return map[string]interface{}{
		"listing": fields,
		"payment": map[string]string{"kind": string(order.PaymentToken), "token": string(o.Currency)},
	}, nil
}
