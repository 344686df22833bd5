package domain

import (
	"github.com/x-xyz/goexchange/base/ctx"
)

// PayToken describes a settlement currency for display purposes
type PayToken struct {
	Name          string  `json:"name" mapstructure:"name"`
	Symbol        string  `json:"symbol" mapstructure:"symbol"`
	TokenDecimals int32   `json:"tokenDecimals" mapstructure:"decimals"`
	Address       Address `json:"address" mapstructure:"address"`
}

type PayTokenRepo interface {
	// FindOne returns ErrNotFound for an unknown token
	FindOne(ctx.Ctx, Address) (*PayToken, error)
	Upsert(ctx.Ctx, *PayToken) error
}
