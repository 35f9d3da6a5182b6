package service

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db, nil, nopLogger())
	ctx := context.Background()

	alice, err := svc.CreateUser(ctx, models.UserInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)

	bob, err := svc.CreateUser(ctx, models.UserInput{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, models.UserInput{Name: "Alice 2", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	t.Run("update applies non-empty fields", func(t *testing.T) {
		got, err := svc.UpdateUser(ctx, alice.ID, models.UserPatch{Name: "Alicia"})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, alice.ID, models.UserPatch{Email: "Alice@Example.com"})
		assert.NoError(t, err)
	})

	t.Run("taken email", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, bob.ID, models.UserPatch{Email: "alice@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, 999, models.UserPatch{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = svc.GetUser(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, svc.DeleteUser(ctx, 999), domain.ErrNotFound)
	})

	all, err := svc.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteUser(ctx, bob.ID))
	_, err = svc.GetUser(ctx, bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateUser(ctx, models.UserInput{Name: "Bob", Email: "bob@example.com"})
	assert.NoError(t, err, "email is free after delete")
}
