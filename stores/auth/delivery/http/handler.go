package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/delivery"
	"github.com/x-xyz/goexchange/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/token", handler.token)
	g.GET("/signingMsg/:timestamp", handler.getSigningMsg)
}

// token
//
//	@Summary		Get access token
//	@Description	Exchange a personal_sign signature of the signing message for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		domain.LoginProof	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/token [post]
func (h *authHandler) token(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := domain.LoginProof{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(&p); err != nil {
		ctx.WithField("err", err).Warn("validate failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.SignToken(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, delivery.StatusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}

// getSigningMsg
//
//	@Summary		Get signing message
//	@Description	The message to personal_sign for POST /auth/token at the given unix timestamp
//	@Tags			auth
//	@Produce		json
//	@Param			timestamp	path		int	true	"unix seconds"
//	@Success		200			{object}	object{data=object{msg=string}}
//	@Router			/auth/signingMsg/{timestamp} [get]
func (h *authHandler) getSigningMsg(c echo.Context) error {
	var ts int64
	if err := echo.PathParamsBinder(c).Int64("timestamp", &ts).BindError(); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	res := struct {
		Msg string `json:"msg"`
	}{
		Msg: h.auth.SigningMessage(ts),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
