package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irisweb/common"
	"irisweb/models"
)

func newAuthService(t *testing.T) (*AuthService, *UserRepository) {
	t.Helper()
	users := NewUserRepository(setupDB(t))
	policy := NewPolicy(users, "admin")
	return NewAuthService(users, policy), users
}

func TestAuthService_Authenticate(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	user, err := auth.Authenticate(ctx, "alice", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Wrong password and unknown user are indistinguishable.
	_, err = auth.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = auth.Authenticate(ctx, "nobody", "pw1234")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthService_Register(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "pw1234", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := auth.Register(ctx, "alice", "other", "other")
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("reserved username", func(t *testing.T) {
		_, err := auth.Register(ctx, "Admin", "pw1234", "pw1234")
		assert.ErrorIs(t, err, ErrReservedUsername)
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		_, err := auth.Register(ctx, "bob", "pw1234", "pw5678")
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := auth.Register(ctx, "", "pw1234", "pw1234")
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}
