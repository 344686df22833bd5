package primitive

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("test", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetExpires() {
	k := []byte("key")
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r, e := ts.im.cache.Get(k)
	ts.NoError(e)
	ts.Equal(v, r)

	time.Sleep(1100 * time.Millisecond)
	_, e = ts.im.cache.Get(k)
	ts.Equal(freecache.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc string
		Key  string
		Val  string
		Err  error
	}{
		{
			Desc: "Success",
			Key:  "key",
			Val:  "value",
		},
		{
			Desc: "Not found",
			Key:  "missing",
			Err:  provider.ErrNotFound,
		},
	}

	for _, c := range cases {
		if c.Err == nil {
			ts.NoError(ts.im.cache.Set([]byte(c.Key), []byte(c.Val), 10), c.Desc)
		}

		v, e := ts.im.Get(mockCtx, []byte(c.Key))
		ts.Equal(c.Val, string(v), c.Desc)
		ts.Equal(c.Err, e, c.Desc)
	}
}

func (ts *testsuite) TestDelAndStats() {
	k := []byte("key")
	ts.NoError(ts.im.Set(mockCtx, k, []byte("v"), 0))
	_, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.NoError(ts.im.Del(mockCtx, k))
	_, err = ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)

	st := ts.im.Stats()
	ts.Equal(int64(0), st.Entries)
	ts.Equal(int64(1), st.Hits)
	ts.Equal(int64(1), st.Misses)
}
