package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/sequencer"
	"github.com/x-xyz/goexchange/domain/exchange/mocks"
	"github.com/x-xyz/goexchange/domain/fee"
	hcdomain "github.com/x-xyz/goexchange/domain/healthcheck"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) PingDB(c ctx.Ctx) error {
	return m.Called(c).Error(0)
}

func (m *mockRepo) PingCache(c ctx.Ctx) error {
	return m.Called(c).Error(0)
}

type usecaseSuite struct {
	suite.Suite

	repo   *mockRepo
	engine *mocks.UseCase
}

func (s *usecaseSuite) SetupTest() {
	s.repo = &mockRepo{}
	s.engine = &mocks.UseCase{}
}

func TestUsecaseSuite(t *testing.T) {
	suite.Run(t, new(usecaseSuite))
}

func (s *usecaseSuite) TestHealthy() {
	s.repo.On("PingDB", mock.Anything).Return(nil).Once()
	s.repo.On("PingCache", mock.Anything).Return(hcdomain.ErrDisabled).Once()
	s.engine.On("Fee", mock.Anything).Return(fee.Config{}, nil).Once()

	report := New(s.repo, s.engine).Check(ctx.Background())
	s.Equal(hcdomain.Report{
		"mongo":  hcdomain.StatusOk,
		"redis":  hcdomain.StatusDisabled,
		"engine": hcdomain.StatusOk,
	}, report)
	s.True(report.Healthy())
	s.repo.AssertExpectations(s.T())
}

func (s *usecaseSuite) TestDBDown() {
	s.repo.On("PingDB", mock.Anything).Return(errors.New("down")).Once()
	s.repo.On("PingCache", mock.Anything).Return(nil).Once()
	s.engine.On("Fee", mock.Anything).Return(fee.Config{}, nil).Once()

	report := New(s.repo, s.engine).Check(ctx.Background())
	s.Equal(hcdomain.StatusDown, report["mongo"])
	s.False(report.Healthy())
}

func (s *usecaseSuite) TestEngineStuck() {
	old := engineTimeout
	engineTimeout = 10 * time.Millisecond
	defer func() { engineTimeout = old }()

	s.repo.On("PingDB", mock.Anything).Return(hcdomain.ErrDisabled).Once()
	s.repo.On("PingCache", mock.Anything).Return(hcdomain.ErrDisabled).Once()
	s.engine.On("Fee", mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(ctx.Ctx).Done()
	}).Return(fee.Config{}, context.DeadlineExceeded).Once()

	start := time.Now()
	report := New(s.repo, s.engine).Check(ctx.Background())
	s.Less(time.Since(start), time.Second)
	s.Equal(hcdomain.StatusDown, report["engine"])
	s.False(report.Healthy())
	s.engine.AssertExpectations(s.T())
}

func (s *usecaseSuite) TestEngineReleased() {
	s.repo.On("PingDB", mock.Anything).Return(nil).Once()
	s.repo.On("PingCache", mock.Anything).Return(nil).Once()
	s.engine.On("Fee", mock.Anything).Return(fee.Config{}, sequencer.ErrReleased).Once()

	report := New(s.repo, s.engine).Check(ctx.Background())
	s.Equal(hcdomain.StatusDown, report["engine"])
	s.False(report.Healthy())
}
