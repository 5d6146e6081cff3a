package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/internal/domain/uuid"
	"accounthub/internal/middleware"
)

// mockVerifier is a mock implementation of TokenVerifier for testing.
type mockVerifier struct {
	subjectID uuid.UUID
	err       error
}

func (m *mockVerifier) Verify(_ string) (uuid.UUID, error) {
	return m.subjectID, m.err
}

func newAuthServer(verifier middleware.TokenVerifier) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{Verifier: verifier}))
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, middleware.GetSubjectID(c).String())
	})
	return e
}

func TestAuth_MissingAuthorizationHeader(t *testing.T) {
	e := newAuthServer(&mockVerifier{subjectID: uuid.NewUUID()})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization token missing or invalid")
}

func TestAuth_InvalidAuthorizationHeaderFormat(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "no bearer prefix", authHeader: "Basic token123"},
		{name: "empty bearer token", authHeader: "Bearer "},
		{name: "just bearer", authHeader: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAuthServer(&mockVerifier{subjectID: uuid.NewUUID()})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Authorization token missing or invalid")
		})
	}
}

func TestAuth_VerificationFailure(t *testing.T) {
	e := newAuthServer(&mockVerifier{err: middleware.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuth_ValidToken(t *testing.T) {
	subject := uuid.NewUUID()
	e := newAuthServer(&mockVerifier{subjectID: subject})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, subject.String(), rec.Body.String())
}

func TestAuth_NoVerifierConfigured(t *testing.T) {
	e := newAuthServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSubjectID_Unauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.True(t, middleware.GetSubjectID(c).IsZero())
}
