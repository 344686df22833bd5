package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goexchange/base/ctx"
	hcdomain "github.com/x-xyz/goexchange/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New will initialize the healthcheck/
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	e.GET("/healthcheck", handler.check)
}

// check
//
//	@Summary	Health check
//	@Tags		healthcheck
//	@Produce	json
//	@Success	200	{object}	healthcheck.Report
//	@Failure	503	{object}	healthcheck.Report
//	@Router		/healthcheck [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	report := h.healthCheck.Check(context)
	if !report.Healthy() {
		return c.JSON(http.StatusServiceUnavailable, report)
	}
	return c.JSON(http.StatusOK, report)
}
