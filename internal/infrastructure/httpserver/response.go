package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"accounthub/internal/domain/errs"
)

// MessageResponse is the plain `{message}` response body used by most routes.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the `{message, token}` body returned on successful
// sign-up and sign-in.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RespondMessage sends a `{message}` JSON response with the given status.
func RespondMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, MessageResponse{Message: message})
}

// RespondToken sends a `{message, token}` JSON response with the given status.
func RespondToken(c echo.Context, code int, message, token string) error {
	return c.JSON(code, TokenResponse{Message: message, Token: token})
}

// RespondError maps a domain error to its HTTP status and sends a generic
// `{message}` body. Internal detail never reaches the client; callers are
// expected to have logged it already.
func RespondError(c echo.Context, err error) error {
	code, message := mapError(err)
	return RespondMessage(c, code, message)
}

// mapError maps domain errors to HTTP status codes and client-safe messages.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusBadRequest, "Email already taken"
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, errs.ErrInternal):
		return http.StatusInternalServerError, "Internal server error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
