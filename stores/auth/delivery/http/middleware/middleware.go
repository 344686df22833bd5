package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/delivery"
	"github.com/x-xyz/goexchange/domain"
)

// AddressKey is where Auth stores the caller's address in the echo context
const AddressKey = "address"

type AuthMiddleware struct {
	auth  domain.AuthUsecase
	owner domain.Address
}

func New(auth domain.AuthUsecase, owner domain.Address) *AuthMiddleware {
	return &AuthMiddleware{
		auth:  auth,
		owner: owner.ToLower(),
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

// IsOwner lets only the exchange owner through, run it after Auth
func (m *AuthMiddleware) IsOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address, _ := c.Get(AddressKey).(domain.Address)
			if !address.Equals(m.owner) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrNotOwner)
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if ads, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	} else {
		c.Set(AddressKey, ads)
		return true, nil
	}
}
