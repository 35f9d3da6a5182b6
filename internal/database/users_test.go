package database

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *got)

	byEmail, err := db.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	user.Name = "Alice B"
	require.NoError(t, db.UpdateUser(ctx, user))
	got, err = db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)

	all, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "A", Email: "same@example.com"}))
	err := db.CreateUser(ctx, &models.User{Name: "B", Email: "Same@Example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	other := &models.User{Name: "C", Email: "c@example.com"}
	require.NoError(t, db.CreateUser(ctx, other))
	other.Email = "SAME@example.com"
	assert.ErrorIs(t, db.UpdateUser(ctx, other), domain.ErrConflict)
}

func TestUsers_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, err := db.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, db.UpdateUser(ctx, &models.User{ID: 99, Name: "x", Email: "x@example.com"}), domain.ErrNotFound)
	assert.ErrorIs(t, db.DeleteUser(ctx, 99), domain.ErrNotFound)
}

func TestUsers_GetByIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	a := &models.User{Name: "A", Email: "a@example.com"}
	b := &models.User{Name: "B", Email: "b@example.com"}
	require.NoError(t, db.CreateUser(ctx, a))
	require.NoError(t, db.CreateUser(ctx, b))

	users, err := db.GetUsersByIDs(ctx, []int64{a.ID, b.ID, 404})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "B", users[b.ID].Name)

	empty, err := db.GetUsersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteUser_RemovesOwnedData(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	booker := &models.User{Name: "Booker", Email: "booker@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))
	require.NoError(t, db.CreateUser(ctx, booker))

	item := &models.Item{Name: "Drill", Description: "Cordless", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))
	booking := &models.Booking{ItemID: item.ID, BookerID: booker.ID, Start: base, End: base.Add(day), Status: models.StatusWaiting}
	require.NoError(t, db.CreateBooking(ctx, booking))

	require.NoError(t, db.DeleteUser(ctx, owner.ID))

	_, err := db.GetItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = db.GetBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = db.GetUserByID(ctx, booker.ID)
	assert.NoError(t, err)
}
