package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"book-catalog/pkg/web/model"
)

// NewMetricsHandler serves a net/http handler, such as the Prometheus exporter, on a Hertz route.
func NewMetricsHandler(next http.Handler) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		req, err := adaptor.GetCompatRequest(&c.Request)
		if err != nil {
			hlog.CtxErrorf(ctx, "metrics request conversion: %v", err)
			c.JSON(http.StatusInternalServerError, model.ErrorRes{Error: "Error al obtener las métricas"})
			return
		}
		next.ServeHTTP(adaptor.GetCompatResponseWriter(&c.Response), req.WithContext(ctx))
	}
}
