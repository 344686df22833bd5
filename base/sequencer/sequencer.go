// Package sequencer totally orders calls into a shared in-memory state machine.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
)

var ErrReleased = errors.New("sequencer released")

type ctxKey struct{}

const (
	callQueued int32 = iota
	callRunning
	callAbandoned
)

// Sequencer runs every submitted call on a single worker goroutine, one at a time.
// A call made from inside a running call (same ctx lineage) runs inline instead of being
// queued, so collaborators may call back into the state machine.
type Sequencer struct {
	pool     *goroutines.Pool
	released chan struct{}
	once     sync.Once
}

func New(queueLength int) *Sequencer {
	return &Sequencer{
		pool:     goroutines.NewPool(1, goroutines.WithTaskQueueLength(queueLength)),
		released: make(chan struct{}),
	}
}

// Do runs fn in order with all other calls and returns its error.
// A caller whose ctx ends, or whose sequencer is released, before fn starts gets an error
// and fn never runs. Once fn has started Do waits for it.
func (s *Sequencer) Do(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if s.InCall(c) {
		return fn(c)
	}
	if err := c.Err(); err != nil {
		return err
	}
	select {
	case <-s.released:
		return ErrReleased
	default:
	}

	state := callQueued
	done := make(chan error, 1)
	inner := ctx.Ctx{
		Context: context.WithValue(c.Context, ctxKey{}, s),
		Logger:  c.Logger,
	}
	task := func() {
		if !atomic.CompareAndSwapInt32(&state, callQueued, callRunning) {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				c.WithFields(log.Fields{"panic": r}).Error("sequencer: call panicked")
				done <- fmt.Errorf("sequencer: call panicked: %v", r)
			}
		}()
		done <- fn(inner)
	}
	if err := s.pool.ScheduleWithContext(c, task); err != nil {
		if cErr := c.Err(); cErr != nil {
			return cErr
		}
		c.WithFields(log.Fields{"err": err}).Error("pool.ScheduleWithContext failed")
		return ErrReleased
	}

	select {
	case err := <-done:
		return err
	case <-c.Done():
		if atomic.CompareAndSwapInt32(&state, callQueued, callAbandoned) {
			return c.Err()
		}
	case <-s.released:
		if atomic.CompareAndSwapInt32(&state, callQueued, callAbandoned) {
			return ErrReleased
		}
	}
	return <-done
}

// InCall tells whether c belongs to a call currently running on s
func (s *Sequencer) InCall(c ctx.Ctx) bool {
	if c.Context == nil {
		return false
	}
	v, _ := c.Value(ctxKey{}).(*Sequencer)
	return v == s
}

// Release stops the worker once the running call returns. Queued calls fail with ErrReleased.
func (s *Sequencer) Release() {
	s.once.Do(func() {
		close(s.released)
	})
	s.pool.Release()
}
