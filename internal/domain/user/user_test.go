package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/internal/domain/errs"
	"accounthub/internal/domain/user"
	"accounthub/internal/domain/uuid"
)

func TestNewUser(t *testing.T) {
	u, err := user.NewUser("jane@example.com", "$2a$10$hash", "Jane", "Doe")
	require.NoError(t, err)

	assert.False(t, u.ID().IsZero())
	assert.Equal(t, "jane@example.com", u.Username())
	assert.Equal(t, "$2a$10$hash", u.PasswordHash())
	assert.Equal(t, "Jane", u.FirstName())
	assert.Equal(t, "Doe", u.LastName())
	assert.False(t, u.CreatedAt().IsZero())
	assert.Equal(t, u.CreatedAt(), u.UpdatedAt())
}

func TestNewUser_RequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		username string
		hash     string
		first    string
		last     string
	}{
		{name: "empty username", username: "", hash: "h", first: "A", last: "B"},
		{name: "empty password hash", username: "a@b.com", hash: "", first: "A", last: "B"},
		{name: "empty first name", username: "a@b.com", hash: "h", first: "", last: "B"},
		{name: "empty last name", username: "a@b.com", hash: "h", first: "A", last: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.NewUser(tt.username, tt.hash, tt.first, tt.last)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestReconstruct(t *testing.T) {
	original, err := user.NewUser("jane@example.com", "hash", "Jane", "Doe")
	require.NoError(t, err)

	rebuilt := user.Reconstruct(
		original.ID(),
		original.Username(),
		original.PasswordHash(),
		original.FirstName(),
		original.LastName(),
		original.CreatedAt(),
		original.UpdatedAt(),
	)

	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, original.Username(), rebuilt.Username())
	assert.Equal(t, original.PasswordHash(), rebuilt.PasswordHash())
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	u, err := user.NewUser("jane@example.com", "hash", "Jane", "Doe")
	require.NoError(t, err)

	newFirst := "Janet"
	require.NoError(t, u.UpdateProfile(nil, &newFirst, nil))

	assert.Equal(t, "Janet", u.FirstName())
	assert.Equal(t, "Doe", u.LastName())
	assert.Equal(t, "hash", u.PasswordHash())
}

func TestUpdateProfile_AllFields(t *testing.T) {
	u, err := user.NewUser("jane@example.com", "hash", "Jane", "Doe")
	require.NoError(t, err)

	newHash := "newhash"
	newFirst := "Janet"
	newLast := "Smith"
	require.NoError(t, u.UpdateProfile(&newHash, &newFirst, &newLast))

	assert.Equal(t, "newhash", u.PasswordHash())
	assert.Equal(t, "Janet", u.FirstName())
	assert.Equal(t, "Smith", u.LastName())
	assert.True(t, u.UpdatedAt().After(u.CreatedAt()) || u.UpdatedAt().Equal(u.CreatedAt()))
}

func TestUpdateProfile_NoFields(t *testing.T) {
	u, err := user.NewUser("jane@example.com", "hash", "Jane", "Doe")
	require.NoError(t, err)

	assert.ErrorIs(t, u.UpdateProfile(nil, nil, nil), errs.ErrInvalidInput)

	empty := ""
	assert.ErrorIs(t, u.UpdateProfile(&empty, &empty, &empty), errs.ErrInvalidInput)
}

func TestUserIDsAreUnique(t *testing.T) {
	a, err := user.NewUser("a@example.com", "hash", "A", "A")
	require.NoError(t, err)
	b, err := user.NewUser("b@example.com", "hash", "B", "B")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	_, parseErr := uuid.ParseUUID(a.ID().String())
	assert.NoError(t, parseErr)
}
