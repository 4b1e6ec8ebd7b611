package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irisweb/common"
	"irisweb/models"
)

func TestPredictionRepository_Append_MissingUser(t *testing.T) {
	r := NewPredictionRepository(setupDB(t))

	err := r.Append(context.Background(), 9999, [4]float64{5.1, 3.5, 1.4, 0.2}, 0, "Iris-setosa")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPredictionRepository_RecentForUser(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	predictions := NewPredictionRepository(db)
	ctx := context.Background()

	user, err := users.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	features := [4]float64{5.1, 3.5, 1.4, 0.2}
	require.NoError(t, predictions.Append(ctx, user.ID, features, 0, "first"))
	require.NoError(t, predictions.Append(ctx, user.ID, features, 1, "second"))
	require.NoError(t, predictions.Append(ctx, user.ID, features, 2, "third"))

	// Ordering is by insertion order, not timestamp: all three rows may
	// share a created_at to the second.
	history, err := predictions.RecentForUser(ctx, user.ID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "third", history[0].Label)
	assert.Equal(t, "second", history[1].Label)
}

func TestPredictionRepository_RecentForUser_DefaultLimit(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	predictions := NewPredictionRepository(db)
	ctx := context.Background()

	user, err := users.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)

	features := [4]float64{5.1, 3.5, 1.4, 0.2}
	for i := 0; i < 12; i++ {
		require.NoError(t, predictions.Append(ctx, user.ID, features, 0, "Iris-setosa"))
	}

	history, err := predictions.RecentForUser(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, defaultHistoryLimit)
}

func TestPredictionRepository_RecentForUser_ScopedToUser(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	predictions := NewPredictionRepository(db)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice", "pw1234", models.RoleUser)
	require.NoError(t, err)
	bob, err := users.Create(ctx, "bob", "pw1234", models.RoleUser)
	require.NoError(t, err)

	features := [4]float64{5.1, 3.5, 1.4, 0.2}
	require.NoError(t, predictions.Append(ctx, alice.ID, features, 0, "Iris-setosa"))

	history, err := predictions.RecentForUser(ctx, bob.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
