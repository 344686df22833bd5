package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/service/cache/provider"
	"github.com/x-xyz/goexchange/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	cache provider.Provider
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.cache = primitive.NewPrimitive("http-cache-test", 1)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(target, body string, status int) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	h := func(c echo.Context) error {
		return c.String(status, body)
	}
	s.Require().NoError(CacheHttp(s.cache, 30*time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	rec := s.serve("/exchange/events?limit=1&type=a", "Hello, World", http.StatusOK)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	// query parameter order does not matter
	rec = s.serve("/exchange/events?type=a&limit=1", "Hello, again", http.StatusOK)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	rec = s.serve("/exchange/events?type=b", "Hello, again", http.StatusOK)
	s.Equal("Hello, again", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/exchange/events?limit=1&type=a", nil)
	sortURLParams(req.URL)
	_, err := s.cache.Get(ctx.Background(), generateKey(req.URL.String()))
	s.NoError(err)
}

func (s *cacheMiddlewareSuite) TestErrorsAreNotCached() {
	rec := s.serve("/exchange/events", "boom", http.StatusInternalServerError)
	s.Equal(http.StatusInternalServerError, rec.Code)

	rec = s.serve("/exchange/events", "ok", http.StatusOK)
	s.Equal("ok", rec.Body.String())
}
