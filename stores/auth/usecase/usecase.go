package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/ethereum"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/keys"
	"github.com/x-xyz/goexchange/service/cache/provider"
)

const (
	defaultTokenTtl    = 24 * time.Hour
	defaultProofWindow = 5 * time.Minute
	defaultTemplate    = "Sign in to the exchange at %d"
)

var timeNow = time.Now

type AuthUseCaseCfg struct {
	JwtSecret string
	// Template must contain one %d for the timestamp
	Template    string
	TokenTtl    time.Duration
	ProofWindow time.Duration
	// UsedProofs remembers accepted signatures until they leave the window. Optional.
	UsedProofs provider.Provider
}

type impl struct {
	jwtSecret   []byte
	template    string
	tokenTtl    time.Duration
	proofWindow time.Duration
	usedProofs  provider.Provider
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	im := &impl{
		jwtSecret:   []byte(cfg.JwtSecret),
		template:    cfg.Template,
		tokenTtl:    cfg.TokenTtl,
		proofWindow: cfg.ProofWindow,
		usedProofs:  cfg.UsedProofs,
	}
	if im.tokenTtl == 0 {
		im.tokenTtl = defaultTokenTtl
	}
	if im.template == "" {
		im.template = defaultTemplate
	}
	if im.proofWindow == 0 {
		im.proofWindow = defaultProofWindow
	}
	return im
}

func (im *impl) SigningMessage(timestamp int64) string {
	return fmt.Sprintf(im.template, timestamp)
}

func (im *impl) SignToken(ctx ctx.Ctx, proof domain.LoginProof) (string, error) {
	now := timeNow()
	signedAt := time.Unix(proof.Timestamp, 0)
	if signedAt.Before(now.Add(-im.proofWindow)) || signedAt.After(now.Add(im.proofWindow)) {
		return "", domain.ErrUnauthorized
	}

	msg := im.SigningMessage(proof.Timestamp)
	ok, err := ethereum.ValidateMsgSignature([]byte(msg), proof.Signature, string(proof.Address))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": proof.Address,
		}).Warn("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	}
	if !ok {
		return "", domain.ErrInvalidSignature
	}

	if im.usedProofs != nil {
		key := []byte(keys.RedisKey(keys.PfxLoginProof, strings.ToLower(proof.Signature)))
		if _, err := im.usedProofs.Get(ctx, key); err == nil {
			return "", domain.ErrUnauthorized
		}
		if err := im.usedProofs.Set(ctx, key, []byte{1}, 2*im.proofWindow); err != nil {
			ctx.WithField("err", err).Warn("usedProofs.Set failed")
		}
	}

	address := proof.Address.ToLower()
	claims := domain.JwtCustomClaims{
		Address: string(address),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return domain.Address(claims.Address), nil
		}
	}
	if err == nil {
		err = domain.ErrUnauthorized
	}
	return "", err
}
