package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
	j     *Journal
	state map[string]int
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	s.j = New()
	s.state = map[string]int{}
}

func (s *testsuite) set(key string, v int) {
	prev, ok := s.state[key]
	s.state[key] = v
	s.j.Append(func() {
		if ok {
			s.state[key] = prev
		} else {
			delete(s.state, key)
		}
	})
}

func (s *testsuite) TestCommit() {
	committed := false
	err := s.j.Atomic(func() error {
		s.set("a", 1)
		s.j.OnCommit(func() { committed = true })
		return nil
	})
	s.Require().NoError(err)
	s.Equal(map[string]int{"a": 1}, s.state)
	s.True(committed)
	s.Equal(0, s.j.Len())
}

func (s *testsuite) TestRevert() {
	s.set("a", 1)
	committed := false
	errBoom := errors.New("boom")
	err := s.j.Atomic(func() error {
		s.set("a", 2)
		s.set("b", 3)
		s.j.OnCommit(func() { committed = true })
		return errBoom
	})
	s.ErrorIs(err, errBoom)
	s.Equal(map[string]int{"a": 1}, s.state)
	s.False(committed)
}

func (s *testsuite) TestNestedRevertKeepsOuter() {
	var hooks []string
	err := s.j.Atomic(func() error {
		s.set("outer", 1)
		s.j.OnCommit(func() { hooks = append(hooks, "outer") })
		inner := s.j.Atomic(func() error {
			s.set("inner", 1)
			s.j.OnCommit(func() { hooks = append(hooks, "inner") })
			return errors.New("inner failed")
		})
		s.Error(inner)
		s.Equal(1, s.j.Depth())
		return nil
	})
	s.Require().NoError(err)
	s.Equal(map[string]int{"outer": 1}, s.state)
	s.Equal([]string{"outer"}, hooks)
}

func (s *testsuite) TestNestedCommitRevertedByOuter() {
	var hooks []string
	err := s.j.Atomic(func() error {
		s.Require().NoError(s.j.Atomic(func() error {
			s.set("inner", 1)
			s.j.OnCommit(func() { hooks = append(hooks, "inner") })
			return nil
		}))
		s.Empty(hooks)
		return errors.New("outer failed")
	})
	s.Error(err)
	s.Empty(s.state)
	s.Empty(hooks)
}

func (s *testsuite) TestPanicReverts() {
	s.Panics(func() {
		_ = s.j.Atomic(func() error {
			s.set("a", 1)
			panic("boom")
		})
	})
	s.Empty(s.state)
	s.Equal(0, s.j.Depth())
}

func (s *testsuite) TestOutsideAtomic() {
	ran := false
	s.set("a", 1)
	s.j.OnCommit(func() { ran = true })
	s.True(ran)
	s.Equal(0, s.j.Len())
}
