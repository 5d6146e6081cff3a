// Package user contains the user identity record and its repository contract.
package user

import (
	"time"

	"accounthub/internal/domain/errs"
	"accounthub/internal/domain/uuid"
)

// User is the identity record stored in the users collection.
// The raw password never appears here, only its bcrypt hash.
type User struct {
	id           uuid.UUID
	username     string
	passwordHash string
	firstName    string
	lastName     string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user record with a fresh id.
// The caller is responsible for hashing the password beforehand.
func NewUser(username, passwordHash, firstName, lastName string) (*User, error) {
	if username == "" || passwordHash == "" {
		return nil, errs.ErrInvalidInput
	}
	if firstName == "" || lastName == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &User{
		id:           uuid.NewUUID(),
		username:     username,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a user from storage.
func Reconstruct(
	id uuid.UUID,
	username, passwordHash, firstName, lastName string,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the store-assigned identifier.
func (u *User) ID() uuid.UUID {
	return u.id
}

// Username returns the unique email-shaped username.
func (u *User) Username() string {
	return u.username
}

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// FirstName returns the user's first name.
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name.
func (u *User) LastName() string {
	return u.lastName
}

// CreatedAt returns the creation time.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the time of the last modification.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// UpdateProfile applies a partial profile update. Nil fields are left
// untouched; at least one field must be supplied.
func (u *User) UpdateProfile(passwordHash, firstName, lastName *string) error {
	updated := false

	if passwordHash != nil && *passwordHash != "" {
		u.passwordHash = *passwordHash
		updated = true
	}
	if firstName != nil && *firstName != "" {
		u.firstName = *firstName
		updated = true
	}
	if lastName != nil && *lastName != "" {
		u.lastName = *lastName
		updated = true
	}

	if !updated {
		return errs.ErrInvalidInput
	}

	u.updatedAt = time.Now()
	return nil
}
