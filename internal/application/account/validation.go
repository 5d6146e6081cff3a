package account

import (
	"fmt"
	"strings"

	"accounthub/internal/domain/errs"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Issue is a single field-level validation problem.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field-level issues for a request.
// It unwraps to errs.ErrInvalidInput so the transport layer can map it.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return errs.ErrInvalidInput
}

// SignUpInput is the sign-up request payload.
type SignUpInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SignInInput is the sign-in request payload.
type SignInInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfilePatch is the partial profile update payload. Nil fields are left
// untouched.
type ProfilePatch struct {
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// ValidateSignUp checks a sign-up payload and collects every issue found.
func ValidateSignUp(input SignUpInput) error {
	var issues []Issue

	if issue := checkEmail("username", input.Username); issue != nil {
		issues = append(issues, *issue)
	}
	if issue := checkPassword("password", input.Password); issue != nil {
		issues = append(issues, *issue)
	}
	if input.FirstName == "" {
		issues = append(issues, Issue{Field: "firstName", Message: "is required"})
	}
	if input.LastName == "" {
		issues = append(issues, Issue{Field: "lastName", Message: "is required"})
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateSignIn checks a sign-in payload.
func ValidateSignIn(input SignInInput) error {
	var issues []Issue

	if issue := checkEmail("username", input.Username); issue != nil {
		issues = append(issues, *issue)
	}
	if issue := checkPassword("password", input.Password); issue != nil {
		issues = append(issues, *issue)
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidatePatch checks a profile patch. Every field is optional, but any
// supplied field must carry an acceptable value, and an empty patch is
// rejected outright.
func ValidatePatch(patch ProfilePatch) error {
	var issues []Issue

	if patch.Password == nil && patch.FirstName == nil && patch.LastName == nil {
		issues = append(issues, Issue{Field: "body", Message: "at least one field must be provided"})
		return &ValidationError{Issues: issues}
	}

	if patch.Password != nil {
		if issue := checkPassword("password", *patch.Password); issue != nil {
			issues = append(issues, *issue)
		}
	}
	if patch.FirstName != nil && *patch.FirstName == "" {
		issues = append(issues, Issue{Field: "firstName", Message: "cannot be empty"})
	}
	if patch.LastName != nil && *patch.LastName == "" {
		issues = append(issues, Issue{Field: "lastName", Message: "cannot be empty"})
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func checkPassword(field, value string) *Issue {
	if len(value) < MinPasswordLength {
		return &Issue{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// checkEmail performs a basic shape check: a local part, an @, and a dotted
// domain. Full RFC address parsing is deliberately out of scope.
func checkEmail(field, value string) *Issue {
	if value == "" {
		return &Issue{Field: field, Message: "is required"}
	}

	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 {
		return &Issue{Field: field, Message: "must be a valid email address"}
	}

	domain := value[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return &Issue{Field: field, Message: "must be a valid email address"}
	}

	return nil
}
