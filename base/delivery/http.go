package delivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goexchange/base/sequencer"
	"github.com/x-xyz/goexchange/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
	// Class tells a caller whether a failed call may succeed later, see domain.ErrorClass
	Class     domain.ErrorClass `json:"class,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

// StatusOf maps an error to its http status
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadParamInput), errors.Is(err, domain.ErrInvalidNumberFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, sequencer.ErrReleased), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch domain.ClassOf(err) {
	case domain.ErrorClassConfiguration:
		return http.StatusBadRequest
	case domain.ErrorClassAuthorization:
		return http.StatusForbidden
	case domain.ErrorClassStaleness:
		return http.StatusGone
	case domain.ErrorClassIntegrity:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	var class domain.ErrorClass
	retryable := false
	if err, ok := data.(error); ok {
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		if class = domain.ClassOf(err); class == domain.ErrorClassUnknown {
			class = ""
		}
		retryable = domain.IsRetryable(err)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusFail, Class: class, Retryable: retryable})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
