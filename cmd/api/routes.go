package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	httphandler "accounthub/internal/handler/http"
	"accounthub/internal/infrastructure/httpserver"
	"accounthub/internal/middleware"
	"accounthub/web"
)

const healthCheckTimeout = 2 * time.Second

// SetupRoutes builds the middleware chain and registers all routes on the
// given Echo instance.
func SetupRoutes(container *Container, e *echo.Echo) *httpserver.Router {
	routerConfig := httpserver.DefaultRouterConfig()
	routerConfig.Logger = container.Logger
	routerConfig.LoggingConfig = middleware.LoggingConfig{
		Logger:    container.Logger,
		SkipPaths: []string{"/health", "/ready"},
	}
	routerConfig.RecoveryConfig = middleware.RecoveryConfig{
		Logger:    container.Logger,
		StackSize: middleware.DefaultStackSize,
	}
	routerConfig.AuthMiddleware = middleware.Auth(middleware.AuthConfig{
		Logger:   container.Logger,
		Verifier: container.Tokens,
	})

	if container.RateLimitStore != nil {
		routerConfig.RateLimitMiddleware = middleware.RateLimit(middleware.RateLimitConfig{
			Logger: container.Logger,
			Store:  container.RateLimitStore,
			Limit:  container.Config.RateLimit.Limit,
			Window: container.Config.RateLimit.Window,
		})
	}

	router := httpserver.NewRouter(e, routerConfig)

	container.UserHandler.RegisterRoutes(router)

	setupHealthRoutes(e, container)

	if err := httphandler.SetupStaticRoutes(e, web.StaticFS); err != nil {
		container.Logger.Error("failed to setup static routes", "error", err.Error())
	}

	return router
}

// setupHealthRoutes registers liveness and readiness endpoints.
func setupHealthRoutes(e *echo.Echo, container *Container) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	e.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		if !container.Healthy(ctx) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
}
