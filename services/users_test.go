package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irisweb/common"
	"irisweb/database"
	"irisweb/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, dialect, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(db, dialect))
	return db
}

func TestUserRepository_Create(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	user, err := r.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.True(t, VerifyPassword("pw1234", user.PasswordHash))
	assert.NotContains(t, user.PasswordHash, "pw1234")
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	_, err = r.Create(ctx, "alice", "other", models.RoleUser)
	assert.ErrorIs(t, err, common.ErrConflict)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'alice'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	r := NewUserRepository(setupDB(t))

	_, err := r.FindByUsername(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	user, err := r.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, r.UpdatePassword(ctx, user.ID, "newpass"))

	updated, err := r.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, VerifyPassword("newpass", updated.PasswordHash))
	assert.False(t, VerifyPassword("pw1234", updated.PasswordHash))
}

func TestUserRepository_UpdateUsername_Conflict(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	alice, err := r.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)
	_, err = r.Create(ctx, "bob", "pw1234", models.RoleUser)
	require.NoError(t, err)

	err = r.UpdateUsername(ctx, alice.ID, "bob")
	assert.ErrorIs(t, err, common.ErrConflict)

	// Both rows unchanged.
	unchanged, err := r.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", unchanged.Username)
	_, err = r.FindByUsername(ctx, "bob")
	assert.NoError(t, err)
}

func TestUserRepository_EnsureAdmin(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.EnsureAdmin(ctx, "admin", "admin"))

	admin, err := r.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Idempotent: second run changes nothing.
	require.NoError(t, r.EnsureAdmin(ctx, "admin", "admin"))
	again, err := r.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, admin.UpdatedAt, again.UpdatedAt)
}

func TestUserRepository_EnsureAdmin_PromotesExisting(t *testing.T) {
	r := NewUserRepository(setupDB(t))
	ctx := context.Background()

	existing, err := r.Create(ctx, "admin", "whatever", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, r.EnsureAdmin(ctx, "admin", "admin"))

	promoted, err := r.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	// Password is not reset on promotion.
	assert.True(t, VerifyPassword("whatever", promoted.PasswordHash))
}

func TestUserRepository_Delete_CascadesPredictions(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	predictions := NewPredictionRepository(db)
	ctx := context.Background()

	user, err := users.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	features := [4]float64{5.1, 3.5, 1.4, 0.2}
	require.NoError(t, predictions.Append(ctx, user.ID, features, 0, "Iris-setosa"))
	require.NoError(t, predictions.Append(ctx, user.ID, features, 0, "Iris-setosa"))

	require.NoError(t, users.Delete(ctx, user.ID))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM predictions WHERE user_id = $1`, user.ID).Scan(&count))
	assert.Equal(t, 0, count)
}
