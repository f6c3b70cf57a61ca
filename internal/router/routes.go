package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-pipeline/internal/auth"
	"github.com/octobees/leads-pipeline/internal/config"
	"github.com/octobees/leads-pipeline/internal/handler"
	middlewarepkg "github.com/octobees/leads-pipeline/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Jobs *handler.JobsHandler
}

// Register wires all HTTP routes for the worker.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	secured := e.Group("")
	secured.Use(middlewarepkg.ServiceToken(jwtManager))

	secured.GET("/jobs/:id", handlers.Jobs.Get)
	secured.POST("/jobs/:id/process", handlers.Jobs.Process, middlewarepkg.ProcessRateLimiter(cfg.RateLimitProcess))
	secured.POST("/jobs/:id/retry", handlers.Jobs.Retry)
	secured.POST("/jobs/:id/cancel", handlers.Jobs.Cancel)
}
