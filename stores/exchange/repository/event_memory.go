package repository

import (
	"sync"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain/exchange"
)

type eventMemoryRepo struct {
	mu     sync.RWMutex
	events []*exchange.Event
}

// NewEventMemoryRepo keeps events in process, for tests and single node deployments
func NewEventMemoryRepo() exchange.EventRepo {
	return &eventMemoryRepo{}
}

func (r *eventMemoryRepo) Insert(ctx ctx.Ctx, event *exchange.Event) error {
	e := *event
	e.Nonces = append([]string(nil), event.Nonces...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, &e)
	return nil
}

func (r *eventMemoryRepo) FindAll(ctx ctx.Ctx, opts ...exchange.FindAllOptionsFunc) ([]*exchange.Event, error) {
	opt, err := exchange.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	offset, limit := opt.Page()

	res := []*exchange.Event{}
	skipped := 0
	for i := len(r.events) - 1; i >= 0 && len(res) < limit; i-- {
		e := r.events[i]
		if !opt.Match(e) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		cp := *e
		res = append(res, &cp)
	}
	return res, nil
}
