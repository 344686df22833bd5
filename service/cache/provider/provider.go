package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/goexchange/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// raw byte cache
type Provider interface {
	Get(c ctx.Ctx, key []byte) ([]byte, error)
	Set(c ctx.Ctx, key, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key []byte) error
	Stats() Stats
}

type Stats struct {
	Entries int64
	Hits    int64
	Misses  int64
}
