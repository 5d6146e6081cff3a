package user

import (
	"context"

	"accounthub/internal/domain/uuid"
)

// Repository defines persistence operations for user records.
type Repository interface {
	// Create inserts a new user. Returns errs.ErrAlreadyExists when the
	// username is already taken.
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by their store-assigned id.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by their unique username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername reports whether a record with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Update persists the current state of an existing user.
	Update(ctx context.Context, user *User) error

	// SearchByName returns all users whose first or last name contains
	// the filter as a case-sensitive substring. An empty filter matches
	// every record.
	SearchByName(ctx context.Context, filter string) ([]*User, error)
}
