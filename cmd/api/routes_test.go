package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"accounthub/internal/config"
	httphandler "accounthub/internal/handler/http"
	"accounthub/internal/infrastructure/auth"
	"accounthub/internal/infrastructure/httpserver"
)

// newTestContainer builds a container without live storage backends.
func newTestContainer() *Container {
	cfg := config.DefaultConfig()
	logger := slog.Default()

	c := &Container{
		Config: cfg,
		Logger: logger,
		Hasher: auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, time.Hour),
	}
	c.UserHandler = httphandler.NewUserHandler(nil, logger)
	return c
}

// newTestServer builds the server and routes the way main does.
func newTestServer(container *Container) *httpserver.Server {
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:            container.Config.Server.Host,
		Port:            container.Config.Server.Port,
		ReadTimeout:     container.Config.Server.ReadTimeout,
		WriteTimeout:    container.Config.Server.WriteTimeout,
		ShutdownTimeout: container.Config.Server.ShutdownTimeout,
	}, container.Logger)

	SetupRoutes(container, server.Echo())

	return server
}

func TestSetupRoutes_HealthEndpoint(t *testing.T) {
	server := newTestServer(newTestContainer())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}

func TestSetupRoutes_ReadyWithoutBackends(t *testing.T) {
	server := newTestServer(newTestContainer())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSetupRoutes_ProtectedRouteRequiresToken(t *testing.T) {
	server := newTestServer(newTestContainer())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization token missing or invalid")
}

func TestSetupRoutes_ServesStaticIndex(t *testing.T) {
	server := newTestServer(newTestContainer())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AccountHub")
}

func TestNewTestServer_ConfiguredTimeouts(t *testing.T) {
	container := newTestContainer()
	server := newTestServer(container)

	assert.Equal(t, container.Config.Server.ReadTimeout, server.Echo().Server.ReadTimeout)
	assert.Equal(t, container.Config.Server.WriteTimeout, server.Echo().Server.WriteTimeout)
}
