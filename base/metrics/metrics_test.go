package metrics

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type record struct {
	kind  string
	name  string
	value float64
	tags  []string
}

type recorder struct {
	records []record
}

func (r *recorder) Gauge(name string, value float64, tags []string, rate float64) error {
	r.records = append(r.records, record{"gauge", name, value, tags})
	return nil
}

func (r *recorder) Count(name string, value int64, tags []string, rate float64) error {
	r.records = append(r.records, record{"count", name, float64(value), tags})
	return nil
}

func (r *recorder) Histogram(name string, value float64, tags []string, rate float64) error {
	r.records = append(r.records, record{"histogram", name, value, tags})
	return nil
}

func (r *recorder) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	r.records = append(r.records, record{"time", name, value, tags})
	return nil
}

type testsuite struct {
	suite.Suite
	rec *recorder
	mt  Service
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	s.rec = &recorder{}
	s.mt = New("exchange", WithoutPodName(), WithClient(s.rec))
}

func (s *testsuite) TestBumpSum() {
	s.mt.BumpSum("settlement.count", 1, "type", "listing")
	s.Require().Len(s.rec.records, 1)
	r := s.rec.records[0]
	s.Equal("count", r.kind)
	s.Equal("exchange.settlement.count", r.name)
	s.Equal(float64(1), r.value)
	s.Contains(r.tags, "type:listing")
	s.Contains(r.tags, "host:")
}

func (s *testsuite) TestBumpTime() {
	s.mt.BumpTime("settlement.time").End()
	s.Require().Len(s.rec.records, 1)
	s.Equal("time", s.rec.records[0].kind)
	s.True(s.rec.records[0].value >= 0)
}

func (s *testsuite) TestOddTagsPanic() {
	s.Panics(func() { s.mt.BumpAvg("x", 1, "lonely") })
}

func (s *testsuite) TestLogClientFallback() {
	s.IsType(&LogClient{}, defaultClient())
	s.NotPanics(func() { New("exchange").BumpHistogram("size", 3) })
}
