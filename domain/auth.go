package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/goexchange/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

// LoginProof is a personal_sign signature over the signing message built for Timestamp
type LoginProof struct {
	Address   Address `json:"address" validate:"required,eth_addr"`
	Timestamp int64   `json:"timestamp" validate:"required"`
	Signature string  `json:"signature" validate:"required"`
}

type AuthUsecase interface {
	// SigningMessage is the text a wallet signs to log in at timestamp
	SigningMessage(timestamp int64) string
	SignToken(ctx ctx.Ctx, proof LoginProof) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address Address, err error)
}
