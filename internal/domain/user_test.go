package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("Alice@Example.com", "alice", "correcthorse")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice@example.com", user.Email, "email should be lowercased")
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.False(t, user.IsSuperuser)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("not-an-email", "alice", "correcthorse")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("", "alice", "correcthorse")
		assert.ErrorIs(t, err, domain.ErrEmptyEmail)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("alice@example.com", "", "correcthorse")
		assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("alice@example.com", "alice", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("rejects overlong password", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 73)
		for i := range long {
			long[i] = 'a'
		}
		_, err := domain.NewUser("alice@example.com", "alice", string(long))
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
	})
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("stored user needs only the hash", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			ID:             uuid.New(),
			Email:          "alice@example.com",
			Username:       "alice",
			HashedPassword: "$2a$10$notarealhashbutpresent",
			IsActive:       true,
		}
		assert.NoError(t, user.Validate())
	})

	t.Run("missing both password and hash", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			ID:       uuid.New(),
			Email:    "alice@example.com",
			Username: "alice",
		}
		assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
	})
}

func TestUserIsAdmin(t *testing.T) {
	t.Parallel()

	assert.False(t, (&domain.User{}).IsAdmin())
	assert.True(t, (&domain.User{IsStaff: true}).IsAdmin())
	assert.True(t, (&domain.User{IsSuperuser: true}).IsAdmin())
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alice@example.com", domain.NormalizeEmail("  Alice@EXAMPLE.com "))
}
