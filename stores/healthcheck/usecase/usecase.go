package usecase

import (
	"time"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain/exchange"
	hcdomain "github.com/x-xyz/goexchange/domain/healthcheck"
)

var engineTimeout = 2 * time.Second

type impl struct {
	repo   hcdomain.HealthCheckRepo
	engine exchange.UseCase
}

// New creates a HealthCheckUsecase covering the event store, the event channel and the
// settlement engine's call queue
func New(repo hcdomain.HealthCheckRepo, engine exchange.UseCase) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:   repo,
		engine: engine,
	}
}

func (im *impl) Check(context ctx.Ctx) hcdomain.Report {
	return hcdomain.Report{
		"mongo":  status(im.repo.PingDB(context)),
		"redis":  status(im.repo.PingCache(context)),
		"engine": status(im.pingEngine(context)),
	}
}

// pingEngine fails when a read cannot get through the sequencer in time
func (im *impl) pingEngine(context ctx.Ctx) error {
	c, cancel := ctx.WithTimeout(context, engineTimeout)
	defer cancel()
	if _, err := im.engine.Fee(c); err != nil {
		context.WithFields(log.Fields{
			"err":     err,
			"timeout": engineTimeout,
		}).Error("engine.Fee failed")
		return err
	}
	return nil
}

func status(err error) hcdomain.Status {
	switch err {
	case nil:
		return hcdomain.StatusOk
	case hcdomain.ErrDisabled:
		return hcdomain.StatusDisabled
	default:
		return hcdomain.StatusDown
	}
}
