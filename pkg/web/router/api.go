package router

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"book-catalog/pkg/common/config"
	authservice "book-catalog/pkg/core/auth/service"
	bookservice "book-catalog/pkg/core/book/service"
	"book-catalog/pkg/metrics"
	"book-catalog/pkg/web/handler"
	"book-catalog/pkg/web/middleware"
	"book-catalog/pkg/web/model"
)

// Deps is the application context handed to every handler.
type Deps struct {
	Config *config.Config
	Books  *bookservice.BookService
	Auth   *authservice.AuthService
}

// RegisterAPIs registers middleware and every route on h.
func RegisterAPIs(h *server.Hertz, deps Deps) {
	cfg := deps.Config
	metrics.Init()

	healthHandler := handler.NewHealthCheckHandler(deps.Books)
	bookHandler := handler.NewBookHandler(deps.Books)
	authHandler := handler.NewAuthHandler(deps.Auth)

	// global middleware, in execution order
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.SecurityCheckMiddleware(cfg.Middleware.Security),
	)
	if cfg.Middleware.RateLimit.Rate > 0 {
		h.Use(middleware.RateLimitMiddleware(
			cfg.Middleware.RateLimit.Rate,
			cfg.Middleware.RateLimit.Interval,
		))
	}

	h.NoRoute(func(ctx context.Context, c *app.RequestContext) {
		c.JSON(http.StatusNotFound, model.ErrorRes{Error: "Recurso no encontrado"})
	})
	h.NoMethod(func(ctx context.Context, c *app.RequestContext) {
		c.JSON(http.StatusMethodNotAllowed, model.ErrorRes{Error: "Método no permitido"})
	})

	// operational
	h.GET("/health", healthHandler.AdvancedHealthCheck)
	h.GET("/metrics", handler.NewMetricsHandler(metrics.Handler()))

	// catalog
	h.GET("/libros", bookHandler.List)
	libros := h.Group("/libros")
	{
		libros.GET("/", bookHandler.List)
		libros.GET("/:id", bookHandler.Get)
		libros.POST("/nuevo", bookHandler.Create)
		libros.PUT("/:id", bookHandler.Update)
		libros.DELETE("/eliminar/:id", bookHandler.Delete)
	}

	// auth
	h.POST("/login", authHandler.Login)
	h.GET("/sesion",
		middleware.JWTAuthMiddleware(cfg.Middleware.JWT, authservice.ClaimUsername),
		authHandler.Session,
	)
}
