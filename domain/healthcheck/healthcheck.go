package healthcheck

import (
	"errors"

	"github.com/x-xyz/goexchange/base/ctx"
)

// ErrDisabled is returned by a check whose backend is not configured
var ErrDisabled = errors.New("disabled")

type Status string

const (
	StatusOk       Status = "ok"
	StatusDisabled Status = "disabled"
	StatusDown     Status = "down"
)

// Report is the status of every checked component
type Report map[string]Status

// Healthy is false if any component is down
func (r Report) Healthy() bool {
	for _, s := range r {
		if s == StatusDown {
			return false
		}
	}
	return true
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) Report
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
	PingCache(context ctx.Ctx) error
}
