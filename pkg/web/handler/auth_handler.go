package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	jwth "github.com/hertz-contrib/jwt"

	errs "book-catalog/pkg/common/errors"
	authmodel "book-catalog/pkg/core/auth/model"
	"book-catalog/pkg/core/auth/service"
	"book-catalog/pkg/metrics"
	"book-catalog/pkg/web/model"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /login with {username, password, rol, confirmacion?}.
func (h *AuthHandler) Login(ctx context.Context, c *app.RequestContext) {
	payload, err := decodePayload(c)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(authmodel.RoleUsuario.String(), "invalid").Inc()
		respondError(ctx, c, err, "Error al iniciar sesión")
		return
	}

	confirmacion := payload.Field("confirmacion")
	req := service.LoginRequest{
		Username:        payload["username"],
		Password:        payload["password"],
		Rol:             payload["rol"],
		Confirmacion:    confirmacion.Value,
		ConfirmacionSet: confirmacion.Set,
	}
	rol := authmodel.ParseRole(req.Rol).String()

	// the response echoes rol as sent, defaulting to usuario when absent
	var echoRol interface{} = authmodel.RoleUsuario.String()
	if f := payload.Field("rol"); f.Set {
		echoRol = f.Value
	}

	res, err := h.svc.Login(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrInvalidCredentials):
		metrics.LoginAttempts.WithLabelValues(rol, "unauthorized").Inc()
		hlog.CtxInfof(ctx, "login rejected rol=%s", rol)
		c.JSON(http.StatusUnauthorized, model.ErrorRes{Error: errs.ErrInvalidCredentials.Error()})
		return
	default:
		metrics.LoginAttempts.WithLabelValues(rol, respondError(ctx, c, err, "Error al iniciar sesión")).Inc()
		return
	}

	metrics.LoginAttempts.WithLabelValues(rol, "ok").Inc()
	c.JSON(http.StatusOK, model.LoginRes{
		Token:    res.Token,
		Rol:      echoRol,
		Username: res.Username,
		Expira:   res.ExpiresAt.UTC(),
	})
}

// Session handles GET /sesion behind the JWT middleware and describes the caller.
func (h *AuthHandler) Session(ctx context.Context, c *app.RequestContext) {
	claims := jwth.ExtractClaims(ctx, c)

	username, _ := claims[service.ClaimUsername].(string)
	role := authmodel.ParseRole(claims[service.ClaimRole])

	c.JSON(http.StatusOK, model.SessionRes{
		Username: username,
		Rol:      role.String(),
		Permisos: role.Permissions(),
	})
}
