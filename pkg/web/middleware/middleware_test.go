package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"book-catalog/pkg/common/config"
)

func ok(c context.Context, ctx *app.RequestContext) {
	ctx.String(http.StatusOK, RequestIDFrom(ctx))
}

func TestLimiterStartsFull(t *testing.T) {
	l := NewLimiter(3, time.Hour)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	start := time.Now()
	assert.True(t, l.AllowN(start.Add(20*time.Minute), 1), "one token is back after interval/n")
	assert.False(t, l.AllowN(start.Add(20*time.Minute), 1))
}

func TestLimiterDefaults(t *testing.T) {
	l := NewLimiter(0, 0)

	assert.Equal(t, 1, l.Burst())
	assert.Equal(t, rate.Every(time.Second), l.Limit())
}

func TestRequestID(t *testing.T) {
	h := server.New()
	h.Use(RequestIDMiddleware())
	h.GET("/", ok)

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/", nil).Result()
	id := resp.Header.Get(HeaderRequestID)
	assert.Len(t, id, 36)
	assert.Equal(t, id, string(resp.Body()))

	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/", nil,
		ut.Header{Key: HeaderRequestID, Value: "abc-123"}).Result()
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	h := server.New()
	h.Use(RateLimitMiddleware(1, time.Hour))
	h.GET("/", ok)

	assert.Equal(t, http.StatusOK, ut.PerformRequest(h.Engine, http.MethodGet, "/", nil).Result().StatusCode())
	assert.Equal(t, http.StatusTooManyRequests, ut.PerformRequest(h.Engine, http.MethodGet, "/", nil).Result().StatusCode())
}

func TestSecurityCheck(t *testing.T) {
	h := server.New()
	h.Use(SecurityCheckMiddleware(config.SecurityConfig{
		MaxBodySize:    1 << 10,
		AllowedMethods: []string{"GET"},
	}))
	h.GET("/", ok)
	h.PATCH("/", ok)

	assert.Equal(t, http.StatusOK,
		ut.PerformRequest(h.Engine, http.MethodGet, "/?q=cort%C3%A1zar", nil).Result().StatusCode())
	assert.Equal(t, http.StatusBadRequest,
		ut.PerformRequest(h.Engine, http.MethodGet, "/?q=%3Cscript%3Ealert(1)%3C%2Fscript%3E", nil).Result().StatusCode())
	assert.Equal(t, http.StatusMethodNotAllowed,
		ut.PerformRequest(h.Engine, http.MethodPatch, "/", nil).Result().StatusCode())
}

func TestRecoveryHidesStackInProduction(t *testing.T) {
	cfg := config.Default()
	cfg.Env = "production"

	h := server.New()
	h.Use(RecoveryMiddleware(cfg))
	h.GET("/", func(c context.Context, ctx *app.RequestContext) { panic("boom") })

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/", nil).Result()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.JSONEq(t, `{"error":"Error interno del servidor"}`, string(resp.Body()))
}
