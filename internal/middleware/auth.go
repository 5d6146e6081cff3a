// Package middleware provides the HTTP middleware chain: auth gate,
// request logging, panic recovery, CORS, and rate limiting.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"accounthub/internal/domain/uuid"
)

// contextKey is the type for values stored in the echo context.
type contextKey string

// ContextKeySubjectID is the context key for the authenticated subject id.
const ContextKeySubjectID contextKey = "subject_id"

// Auth errors.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
)

// TokenVerifier verifies a bearer token and returns the subject id it asserts.
// Declared on the consumer side; implemented by auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	// Logger is the structured logger for auth events.
	Logger *slog.Logger

	// Verifier validates bearer tokens.
	Verifier TokenVerifier
}

// Auth returns the authentication gate. It extracts the bearer token from
// the Authorization header, verifies it, and stores the subject id in the
// request context. Requests without a valid token are rejected with 401.
// The gate holds no mutable state and is safe for concurrent use.
func Auth(config AuthConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			token, extractErr := extractBearerToken(authHeader)
			if extractErr != nil {
				return respondAuthError(c, extractErr)
			}

			if config.Verifier == nil {
				config.Logger.Error("token verifier not configured")
				return respondAuthError(c, ErrInvalidToken)
			}

			subjectID, verifyErr := config.Verifier.Verify(token)
			if verifyErr != nil {
				config.Logger.Warn("token verification failed",
					slog.String("error", verifyErr.Error()),
					slog.String("path", c.Request().URL.Path),
					slog.String("remote_ip", c.RealIP()),
				)
				return respondAuthError(c, ErrInvalidToken)
			}

			c.Set(string(ContextKeySubjectID), subjectID)

			return next(c)
		}
	}
}

// extractBearerToken extracts the token from a Bearer authorization header.
func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrInvalidAuthHeader
	}

	return token, nil
}

// respondAuthError sends a 401 response with the same body shapes the
// original surface used for missing and invalid credentials.
func respondAuthError(c echo.Context, err error) error {
	message := "Invalid or expired token"
	if errors.Is(err, ErrMissingAuthHeader) || errors.Is(err, ErrInvalidAuthHeader) {
		message = "Authorization token missing or invalid"
	}

	return c.JSON(http.StatusUnauthorized, map[string]string{
		"message": message,
	})
}

// GetSubjectID extracts the authenticated subject id from the echo context.
// Returns the zero UUID when the request did not pass the auth gate.
func GetSubjectID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(string(ContextKeySubjectID)).(uuid.UUID); ok {
		return id
	}
	return uuid.UUID("")
}
