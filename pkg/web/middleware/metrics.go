package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"book-catalog/pkg/metrics"
)

// MetricsMiddleware records request count and latency by route pattern.
func MetricsMiddleware() app.HandlerFunc {
	metrics.Init()

	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := string(ctx.Method())
		status := strconv.Itoa(ctx.Response.StatusCode())

		metrics.RequestsTotal.WithLabelValues(route, method, status).Inc()
		metrics.RequestLatency.WithLabelValues(method, route, status).
			Observe(time.Since(start).Seconds())
	}
}
