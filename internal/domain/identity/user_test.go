package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	agencyID := uuid.New()

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser(agencyID, "jdoe", "s3cret-pass", "J. Doe", RoleAgent)
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.False(t, user.IsSuperuser())
	})

	t.Run("superuser role", func(t *testing.T) {
		user, err := NewUser(agencyID, "boss", "s3cret-pass", "Boss", RoleSuperuser)
		require.NoError(t, err)
		assert.True(t, user.IsSuperuser())
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(agencyID, "jdoe", "short", "J. Doe", RoleAgent)
		assert.Error(t, err)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser(agencyID, "", "s3cret-pass", "J. Doe", RoleAgent)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(agencyID, "jdoe", "s3cret-pass", "J. Doe", Role("ADMIN"))
		assert.Error(t, err)
	})
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser(uuid.New(), "jdoe", "s3cret-pass", "J. Doe", RoleAgent)
	require.NoError(t, err)
	assert.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	require.NotNil(t, user.LastLoginAt)
}
