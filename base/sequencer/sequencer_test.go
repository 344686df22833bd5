package sequencer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goexchange/base/ctx"
)

type testsuite struct {
	suite.Suite
	seq *Sequencer
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	s.seq = New(16)
}

func (s *testsuite) TearDownTest() {
	s.seq.Release()
}

func (s *testsuite) TestSerializes() {
	counter := 0
	inFlight := 0
	maxInFlight := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.seq.Do(ctx.Background(), func(ctx.Ctx) error {
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				counter++
				inFlight--
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()
	s.Equal(50, counter)
	s.Equal(1, maxInFlight)
}

func (s *testsuite) TestReentrantRunsInline() {
	depth := 0
	err := s.seq.Do(ctx.Background(), func(c ctx.Ctx) error {
		s.True(s.seq.InCall(c))
		depth++
		return s.seq.Do(c, func(ctx.Ctx) error {
			depth++
			return nil
		})
	})
	s.NoError(err)
	s.Equal(2, depth)
	s.False(s.seq.InCall(ctx.Background()))
}

func (s *testsuite) TestPropagatesError() {
	errBoom := errors.New("boom")
	s.ErrorIs(s.seq.Do(ctx.Background(), func(ctx.Ctx) error { return errBoom }), errBoom)
}

func (s *testsuite) TestPanicBecomesError() {
	err := s.seq.Do(ctx.Background(), func(ctx.Ctx) error { panic("boom") })
	s.Error(err)
	s.NoError(s.seq.Do(ctx.Background(), func(ctx.Ctx) error { return nil }))
}

func (s *testsuite) TestCancelledContext() {
	c, cancel := ctx.WithCancel(ctx.Background())
	cancel()
	called := false
	err := s.seq.Do(c, func(ctx.Ctx) error { called = true; return nil })
	s.Error(err)
	s.False(called)
}

func (s *testsuite) TestReleased() {
	s.seq.Release()
	called := false
	err := s.seq.Do(ctx.Background(), func(ctx.Ctx) error { called = true; return nil })
	s.ErrorIs(err, ErrReleased)
	s.False(called)
}

func (s *testsuite) TestQueuedCallHonorsDeadline() {
	block := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = s.seq.Do(ctx.Background(), func(ctx.Ctx) error {
			close(started)
			<-block
			return nil
		})
	}()
	<-started

	c, cancel := ctx.WithTimeout(ctx.Background(), 20*time.Millisecond)
	defer cancel()
	called := false
	err := s.seq.Do(c, func(ctx.Ctx) error { called = true; return nil })
	s.ErrorIs(err, context.DeadlineExceeded)

	close(block)
	s.NoError(s.seq.Do(ctx.Background(), func(ctx.Ctx) error { return nil }))
	s.False(called)
}

func (s *testsuite) TestReleaseFailsQueuedCalls() {
	block := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = s.seq.Do(ctx.Background(), func(ctx.Ctx) error {
			close(started)
			<-block
			return nil
		})
	}()
	<-started

	errs := make(chan error, 1)
	go func() {
		errs <- s.seq.Do(ctx.Background(), func(ctx.Ctx) error { return nil })
	}()
	time.Sleep(10 * time.Millisecond)

	go s.seq.Release()
	s.ErrorIs(<-errs, ErrReleased)
	close(block)
}
