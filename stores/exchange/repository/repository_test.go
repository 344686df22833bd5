package repository

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/exchange"
)

var (
	mockCtx = ctx.Background()
)

const (
	alice      = domain.Address("0xa11ce00000000000000000000000000000000001")
	bob        = domain.Address("0xb0b0000000000000000000000000000000000002")
	collection = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
)

type memorySuite struct {
	suite.Suite
	repo exchange.EventRepo
}

func TestEventMemoryRepo(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (s *memorySuite) SetupTest() {
	s.repo = NewEventMemoryRepo()
	events := []*exchange.Event{
		{Id: "1", Type: exchange.EventListingExecuted, Caller: bob, Seller: alice, Buyer: bob, Collection: collection},
		{Id: "2", Type: exchange.EventCancelAllOrders, Caller: alice, User: alice, MinNonce: "5"},
		{Id: "3", Type: exchange.EventOfferAccepted, Caller: alice, Seller: alice, Buyer: bob, Collection: collection},
		{Id: "4", Type: exchange.EventCancelMultipleOrders, Caller: bob, User: bob, Nonces: []string{"1", "2"}},
	}
	for _, e := range events {
		s.Require().NoError(s.repo.Insert(mockCtx, e))
	}
}

func ids(events []*exchange.Event) []string {
	res := []string{}
	for _, e := range events {
		res = append(res, e.Id)
	}
	return res
}

func (s *memorySuite) TestNewestFirst() {
	res, err := s.repo.FindAll(mockCtx)
	s.NoError(err)
	s.Equal([]string{"4", "3", "2", "1"}, ids(res))
}

func (s *memorySuite) TestFilters() {
	res, err := s.repo.FindAll(mockCtx, exchange.WithType(exchange.EventListingExecuted))
	s.NoError(err)
	s.Equal([]string{"1"}, ids(res))

	res, err = s.repo.FindAll(mockCtx, exchange.WithUser("0xA11CE00000000000000000000000000000000001"))
	s.NoError(err)
	s.Equal([]string{"3", "2", "1"}, ids(res))

	res, err = s.repo.FindAll(mockCtx, exchange.WithCollection(collection))
	s.NoError(err)
	s.Equal([]string{"3", "1"}, ids(res))
}

func (s *memorySuite) TestPagination() {
	res, err := s.repo.FindAll(mockCtx, exchange.WithPagination(1, 2))
	s.NoError(err)
	s.Equal([]string{"3", "2"}, ids(res))

	_, err = s.repo.FindAll(mockCtx, exchange.WithPagination(-1, 2))
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *memorySuite) TestDefaultLimit() {
	for i := 0; i < exchange.DefaultEventLimit+5; i++ {
		s.Require().NoError(s.repo.Insert(mockCtx, &exchange.Event{Type: exchange.EventNewFeeRate}))
	}

	res, err := s.repo.FindAll(mockCtx)
	s.NoError(err)
	s.Len(res, exchange.DefaultEventLimit)

	res, err = s.repo.FindAll(mockCtx, exchange.WithPagination(0, 0))
	s.NoError(err)
	s.Len(res, exchange.DefaultEventLimit)

	res, err = s.repo.FindAll(mockCtx, exchange.WithPagination(exchange.DefaultEventLimit, 0))
	s.NoError(err)
	s.Len(res, 9)
}

func (s *memorySuite) TestStoredCopy() {
	e := &exchange.Event{Id: "5", Type: exchange.EventCancelMultipleOrders, Nonces: []string{"9"}}
	s.Require().NoError(s.repo.Insert(mockCtx, e))
	e.Nonces[0] = "10"

	res, err := s.repo.FindAll(mockCtx, exchange.WithPagination(0, 1))
	s.NoError(err)
	s.Equal([]string{"9"}, res[0].Nonces)
}

func TestToSelector(t *testing.T) {
	s := suite.Suite{}
	s.SetT(t)

	opt, err := exchange.GetFindAllOptions(exchange.WithType(exchange.EventOfferAccepted), exchange.WithUser(alice))
	s.Require().NoError(err)
	s.Equal(bson.M{
		"type": exchange.EventOfferAccepted,
		"$or": bson.A{
			bson.M{"seller": alice},
			bson.M{"buyer": alice},
			bson.M{"caller": alice},
			bson.M{"user": alice},
		},
	}, toSelector(opt))
}

type fakeConn struct {
	sent    [][]interface{}
	failErr error
}

func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Err() error   { return nil }
func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	return nil, nil
}
func (c *fakeConn) Send(cmd string, args ...interface{}) error {
	c.sent = append(c.sent, append([]interface{}{cmd}, args...))
	return nil
}
func (c *fakeConn) Flush() error { return nil }
func (c *fakeConn) Receive() (interface{}, error) {
	if c.failErr != nil {
		return nil, c.failErr
	}
	return int64(1), nil
}

type publisherSuite struct {
	suite.Suite
	conn *fakeConn
	sink exchange.EventSink
}

func TestEventPublisher(t *testing.T) {
	suite.Run(t, new(publisherSuite))
}

func (s *publisherSuite) SetupTest() {
	s.conn = &fakeConn{}
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) { return s.conn, nil },
	}
	s.sink = NewEventPublisher(pool, "")
}

func (s *publisherSuite) TestPublish() {
	e := &exchange.Event{Id: "1", Type: exchange.EventListingExecuted, Amount: "100", Nonce: "1"}
	s.Require().NoError(s.sink.Publish(mockCtx, e))

	s.Require().Len(s.conn.sent, 2)
	s.Equal("PUBLISH", s.conn.sent[0][0])
	s.Equal(DefaultEventChannel, s.conn.sent[0][1])
	s.Equal(DefaultEventChannel+":ListingExecuted", s.conn.sent[1][1])

	got := exchange.Event{}
	s.Require().NoError(json.Unmarshal(s.conn.sent[0][2].([]byte), &got))
	s.Equal("100", got.Amount)
	s.Equal("1", got.Nonce)
}

func (s *publisherSuite) TestReceiveError() {
	s.conn.failErr = errors.New("boom")
	s.Error(s.sink.Publish(mockCtx, &exchange.Event{Id: "1", Type: exchange.EventNewFeeRate}))
}
