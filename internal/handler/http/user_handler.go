// Package httphandler contains the HTTP route handlers.
package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"accounthub/internal/application/account"
	"accounthub/internal/domain/errs"
	"accounthub/internal/domain/uuid"
	"accounthub/internal/infrastructure/httpserver"
	"accounthub/internal/middleware"
)

// ValidationResponse is the body returned when request validation fails.
type ValidationResponse struct {
	Message string          `json:"message"`
	Errors  []account.Issue `json:"errors"`
}

// SearchResponse is the body returned by the directory search.
type SearchResponse struct {
	User []account.Profile `json:"user"`
}

// AccountService defines the account operations the handler depends on.
// Declared on the consumer side; implemented by account.Service.
type AccountService interface {
	SignUp(ctx context.Context, input account.SignUpInput) (string, error)
	SignIn(ctx context.Context, input account.SignInInput) (string, error)
	UpdateProfile(ctx context.Context, subjectID uuid.UUID, patch account.ProfilePatch) error
	SearchUsers(ctx context.Context, filter string) ([]account.Profile, error)
}

// UserHandler handles the account HTTP routes.
type UserHandler struct {
	accounts AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts AccountService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// RegisterRoutes registers the account routes with the router. The
// credential routes sit behind the rate limiter; the profile update sits
// behind the auth gate.
func (h *UserHandler) RegisterRoutes(r *httpserver.Router) {
	r.Limited().POST("/users/signup", h.SignUp)
	r.Limited().POST("/users/signin", h.SignIn)
	r.Auth().PUT("/users", h.UpdateProfile)
	r.Public().GET("/users/bulk", h.SearchUsers)
}

// SignUp handles POST /api/v1/users/signup.
func (h *UserHandler) SignUp(c echo.Context) error {
	var input account.SignUpInput
	if bindErr := c.Bind(&input); bindErr != nil {
		return respondValidation(c, nil)
	}

	token, err := h.accounts.SignUp(c.Request().Context(), input)
	if err != nil {
		var validationErr *account.ValidationError
		if errors.As(err, &validationErr) {
			return respondValidation(c, validationErr.Issues)
		}
		if !errors.Is(err, errs.ErrAlreadyExists) {
			h.logger.Error("sign-up failed", slog.String("error", err.Error()))
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondToken(c, http.StatusCreated, "User created successfully", token)
}

// SignIn handles POST /api/v1/users/signin.
func (h *UserHandler) SignIn(c echo.Context) error {
	var input account.SignInInput
	if bindErr := c.Bind(&input); bindErr != nil {
		return respondValidation(c, nil)
	}

	token, err := h.accounts.SignIn(c.Request().Context(), input)
	if err != nil {
		var validationErr *account.ValidationError
		if errors.As(err, &validationErr) {
			return respondValidation(c, validationErr.Issues)
		}
		if !errors.Is(err, errs.ErrUnauthorized) {
			h.logger.Error("sign-in failed", slog.String("error", err.Error()))
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondToken(c, http.StatusOK, "User signed in successfully", token)
}

// UpdateProfile handles PUT /api/v1/users.
// A rejected patch answers 411, the status the original surface used for
// this route, rather than a standard 4xx.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	subjectID := middleware.GetSubjectID(c)

	var patch account.ProfilePatch
	if bindErr := c.Bind(&patch); bindErr != nil {
		return httpserver.RespondMessage(c, http.StatusLengthRequired, "Error while updating information")
	}

	if err := h.accounts.UpdateProfile(c.Request().Context(), subjectID, patch); err != nil {
		// A missing record behind a still-valid token fails like any other
		// rejected update; this route's contract has no 404.
		if errors.Is(err, errs.ErrInvalidInput) || errors.Is(err, errs.ErrNotFound) {
			return httpserver.RespondMessage(c, http.StatusLengthRequired, "Error while updating information")
		}
		if errors.Is(err, errs.ErrUnauthorized) {
			return httpserver.RespondError(c, err)
		}
		h.logger.Error("profile update failed",
			slog.String("user_id", subjectID.String()),
			slog.String("error", err.Error()),
		)
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondMessage(c, http.StatusOK, "Updated successfully")
}

// SearchUsers handles GET /api/v1/users/bulk.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	filter := c.QueryParam("filter")

	profiles, err := h.accounts.SearchUsers(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("user search failed", slog.String("error", err.Error()))
		return httpserver.RespondError(c, err)
	}
	if profiles == nil {
		profiles = []account.Profile{}
	}

	return c.JSON(http.StatusOK, SearchResponse{User: profiles})
}

// respondValidation sends a 400 response with the field-level issue list.
func respondValidation(c echo.Context, issues []account.Issue) error {
	if issues == nil {
		issues = []account.Issue{}
	}
	return c.JSON(http.StatusBadRequest, ValidationResponse{
		Message: "Validation failed",
		Errors:  issues,
	})
}
