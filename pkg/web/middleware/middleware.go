package middleware

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/google/uuid"
	"github.com/hertz-contrib/cors"
	jwth "github.com/hertz-contrib/jwt"
	"golang.org/x/time/rate"

	"book-catalog/pkg/common/config"
)

const (
	HeaderRequestID = "X-Request-Id"
	KeyRequestID    = "request_id"
)

// RequestIDFrom returns the id assigned by RequestIDMiddleware, or "".
func RequestIDFrom(ctx *app.RequestContext) string {
	return ctx.GetString(KeyRequestID)
}

// RequestIDMiddleware reuses a sane incoming X-Request-Id or assigns a new uuid.
func RequestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := string(ctx.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx.Set(KeyRequestID, id)
		ctx.Response.Header.Set(HeaderRequestID, id)
		ctx.Next(c)
	}
}

// LoggerMiddleware writes one access line per request, plus any errors handlers attached.
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		latency := time.Since(start)

		status := ctx.Response.StatusCode()
		line := fmt.Sprintf("| %3d | %13v | %15s | %-7s | %s | rid=%s",
			status,
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			RequestIDFrom(ctx),
		)
		if len(ctx.Errors) > 0 {
			line += " | err=" + strings.ReplaceAll(ctx.Errors.String(), "\n", "; ")
		}

		switch {
		case status >= http.StatusInternalServerError:
			hlog.CtxErrorf(c, "%s", line)
		case status >= http.StatusBadRequest:
			hlog.CtxWarnf(c, "%s", line)
		default:
			hlog.CtxInfof(c, "%s", line)
		}
	}
}

// RecoveryMiddleware turns panics into 500s. The stack is only returned outside production.
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] rid=%s %v\n%s", RequestIDFrom(ctx), err, stack)

				if cfg.IsProd() {
					ctx.AbortWithStatusJSON(http.StatusInternalServerError, utils.H{
						"error": "Error interno del servidor",
					})
				} else {
					ctx.AbortWithStatusJSON(http.StatusInternalServerError, utils.H{
						"error": fmt.Sprintf("%v", err),
						"stack": strings.Split(stack, "\n"),
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware wires hertz-contrib/cors. AllowAllOrigins wins over every origin list.
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     corsConfig.AllowMethods,
		AllowHeaders:     corsConfig.AllowHeaders,
		ExposeHeaders:    corsConfig.ExposeHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAge,
	}

	if corsConfig.AllowAllOrigins {
		cc.AllowAllOrigins = true
		return cors.New(cc)
	}

	cc.AllowOrigins = corsConfig.AllowOrigins
	if len(corsConfig.TrustedDomains) > 0 {
		allowed := make(map[string]bool, len(corsConfig.AllowOrigins))
		for _, o := range corsConfig.AllowOrigins {
			allowed[o] = true
		}
		cc.AllowOrigins = nil
		cc.AllowOriginFunc = func(origin string) bool {
			if allowed[origin] {
				return true
			}
			for _, domain := range corsConfig.TrustedDomains {
				if strings.HasSuffix(origin, domain) {
					return true
				}
			}
			return false
		}
	}
	return cors.New(cc)
}

// RateLimitMiddleware admits n requests per interval across all clients,
// with bursts of up to n.
func RateLimitMiddleware(n int, interval time.Duration) app.HandlerFunc {
	limiter := NewLimiter(n, interval)

	return func(c context.Context, ctx *app.RequestContext) {
		if !limiter.Allow() {
			hlog.CtxInfof(c, "[RATE LIMIT] path=%s", ctx.Path())
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, utils.H{
				"error": "Demasiadas solicitudes",
			})
			return
		}
		ctx.Next(c)
	}
}

// NewLimiter builds a token bucket that starts full and refills one token every interval/n.
func NewLimiter(n int, interval time.Duration) *rate.Limiter {
	if n < 1 {
		n = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return rate.NewLimiter(rate.Every(interval/time.Duration(n)), n)
}

var xssRegex = regexp.MustCompile(`(?i)<script.*?>|<\/script>|alert\(|onerror=`)

// SecurityCheckMiddleware enforces the body size cap, the method allow-list and
// rejects script injection in query parameters.
func SecurityCheckMiddleware(sc config.SecurityConfig) app.HandlerFunc {
	allowed := make(map[string]bool, len(sc.AllowedMethods))
	for _, m := range sc.AllowedMethods {
		allowed[strings.ToUpper(m)] = true
	}

	return func(c context.Context, ctx *app.RequestContext) {
		if sc.MaxBodySize > 0 && int64(ctx.Request.Header.ContentLength()) > sc.MaxBodySize {
			securityResponse(c, ctx, http.StatusRequestEntityTooLarge, "El cuerpo de la solicitud es demasiado grande")
			return
		}

		if len(allowed) > 0 && !allowed[string(ctx.Method())] {
			securityResponse(c, ctx, http.StatusMethodNotAllowed, "Método no permitido")
			return
		}

		if hasMaliciousQuery(ctx) {
			securityResponse(c, ctx, http.StatusBadRequest, "La solicitud contiene caracteres no válidos")
			return
		}

		ctx.Next(c)
	}
}

func hasMaliciousQuery(ctx *app.RequestContext) bool {
	found := false
	ctx.QueryArgs().VisitAll(func(key, value []byte) {
		if !found && (xssRegex.Match(key) || xssRegex.Match(value)) {
			found = true
		}
	})
	return found
}

func securityResponse(c context.Context, ctx *app.RequestContext, status int, msg string) {
	hlog.CtxWarnf(c, "SecurityAlert[%d] path=%s: %s", status, ctx.Path(), msg)
	ctx.AbortWithStatusJSON(status, utils.H{"error": msg})
}

// JWTAuthMiddleware validates the Bearer token issued by /login.
// identityKey names the claim used as the caller identity.
func JWTAuthMiddleware(cfg config.JWTAuthConfig, identityKey string) app.HandlerFunc {
	authMiddleware, err := jwth.New(&jwth.HertzJWTMiddleware{
		Realm:            cfg.Issuer,
		SigningAlgorithm: cfg.SigningMethod,
		Key:              []byte(cfg.Secret),
		Timeout:          cfg.ExpireDuration,
		TokenLookup:      "header: Authorization",
		TokenHeadName:    "Bearer",
		IdentityKey:      identityKey,
		TimeFunc:         time.Now,
		Unauthorized:     handleJWTError,
	})
	if err != nil {
		panic(fmt.Sprintf("JWT middleware init failed: %v", err))
	}
	return authMiddleware.MiddlewareFunc()
}

func handleJWTError(c context.Context, ctx *app.RequestContext, code int, message string) {
	hlog.CtxWarnf(c, "JWT Error (code=%d) path=%s: %s", code, ctx.Path(), message)
	ctx.JSON(code, utils.H{"error": message})
}
