// Package account orchestrates sign-up, sign-in, profile update, and the
// user directory search over the user repository, the credential hasher,
// and the session token service.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"accounthub/internal/domain/errs"
	"accounthub/internal/domain/user"
	"accounthub/internal/domain/uuid"
	"accounthub/internal/infrastructure/auth"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs session tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subjectID uuid.UUID) (string, error)
}

// Profile is the directory search projection. It exposes everything a
// user record holds except the password hash.
type Profile struct {
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	ID        uuid.UUID `json:"_id"`
}

// Service implements the account operations. It holds no mutable state and
// is safe for concurrent use.
type Service struct {
	users  user.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService creates an account service.
func NewService(users user.Repository, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// SignUp registers a new user and returns a session token for them.
// Returns errs.ErrAlreadyExists when the username is taken, either by the
// pre-write check or by the store's uniqueness constraint closing the
// check-then-create race.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (string, error) {
	if err := ValidateSignUp(input); err != nil {
		return "", err
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return "", fmt.Errorf("%w: check username: %w", errs.ErrInternal, err)
	}
	if taken {
		return "", errs.ErrAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %w", errs.ErrInternal, err)
	}

	usr, err := user.NewUser(input.Username, passwordHash, input.FirstName, input.LastName)
	if err != nil {
		return "", err
	}

	if createErr := s.users.Create(ctx, usr); createErr != nil {
		// A duplicate insert means the racing sign-up won; everything else
		// is an unexpected store failure.
		if errors.Is(createErr, errs.ErrAlreadyExists) {
			return "", createErr
		}
		return "", fmt.Errorf("%w: create user: %w", errs.ErrInternal, createErr)
	}

	token, err := s.tokens.Issue(usr.ID())
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %w", errs.ErrInternal, err)
	}

	s.logger.Info("user signed up",
		slog.String("user_id", usr.ID().String()),
	)

	return token, nil
}

// SignIn authenticates a user and returns a session token. An unknown
// username and a wrong password both map to errs.ErrUnauthorized so the
// response cannot be used to enumerate accounts.
func (s *Service) SignIn(ctx context.Context, input SignInInput) (string, error) {
	if err := ValidateSignIn(input); err != nil {
		return "", err
	}

	usr, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrUnauthorized
		}
		return "", fmt.Errorf("%w: find user: %w", errs.ErrInternal, err)
	}

	if compareErr := s.hasher.Compare(usr.PasswordHash(), input.Password); compareErr != nil {
		if errors.Is(compareErr, auth.ErrPasswordMismatch) {
			return "", errs.ErrUnauthorized
		}
		return "", fmt.Errorf("%w: compare password: %w", errs.ErrInternal, compareErr)
	}

	token, err := s.tokens.Issue(usr.ID())
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %w", errs.ErrInternal, err)
	}

	s.logger.Info("user signed in",
		slog.String("user_id", usr.ID().String()),
	)

	return token, nil
}

// UpdateProfile applies a partial update to the subject's record. A supplied
// password is hashed before it is persisted; the raw value never reaches
// the store.
func (s *Service) UpdateProfile(ctx context.Context, subjectID uuid.UUID, patch ProfilePatch) error {
	if subjectID.IsZero() {
		return errs.ErrUnauthorized
	}
	if err := ValidatePatch(patch); err != nil {
		return err
	}

	usr, err := s.users.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("find user: %w", err)
		}
		return fmt.Errorf("%w: find user: %w", errs.ErrInternal, err)
	}

	var passwordHash *string
	if patch.Password != nil {
		hashed, hashErr := s.hasher.Hash(*patch.Password)
		if hashErr != nil {
			return fmt.Errorf("%w: hash password: %w", errs.ErrInternal, hashErr)
		}
		passwordHash = &hashed
	}

	if updateErr := usr.UpdateProfile(passwordHash, patch.FirstName, patch.LastName); updateErr != nil {
		return updateErr
	}

	if saveErr := s.users.Update(ctx, usr); saveErr != nil {
		if errors.Is(saveErr, errs.ErrNotFound) {
			return fmt.Errorf("save user: %w", saveErr)
		}
		return fmt.Errorf("%w: save user: %w", errs.ErrInternal, saveErr)
	}

	s.logger.Info("profile updated",
		slog.String("user_id", subjectID.String()),
	)

	return nil
}

// SearchUsers returns every user whose first or last name contains the
// filter as a case-sensitive substring. An empty filter matches everyone.
func (s *Service) SearchUsers(ctx context.Context, filter string) ([]Profile, error) {
	users, err := s.users.SearchByName(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: search users: %w", errs.ErrInternal, err)
	}

	profiles := make([]Profile, 0, len(users))
	for _, usr := range users {
		profiles = append(profiles, Profile{
			Username:  usr.Username(),
			FirstName: usr.FirstName(),
			LastName:  usr.LastName(),
			ID:        usr.ID(),
		})
	}

	return profiles, nil
}
