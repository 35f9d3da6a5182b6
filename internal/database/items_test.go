package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOwner(t *testing.T, db *DB, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Owner " + email, Email: email}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func TestItems_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := createOwner(t, db, "o@example.com")

	item := &models.Item{Name: "Ladder", Description: "Three meters", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	got, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, *item, *got)
	assert.Nil(t, got.RequestID)

	item.Available = false
	item.Name = "Tall ladder"
	require.NoError(t, db.UpdateItem(ctx, item))
	got, err = db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "Tall ladder", got.Name)

	owned, err := db.GetItemsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	require.NoError(t, db.DeleteItem(ctx, item.ID))
	_, err = db.GetItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, db.DeleteItem(ctx, item.ID), domain.ErrNotFound)
	assert.ErrorIs(t, db.UpdateItem(ctx, item), domain.ErrNotFound)
}

func TestSearchAvailableItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := createOwner(t, db, "o@example.com")

	drill := &models.Item{Name: "Power Drill", Description: "18V", Available: true, OwnerID: owner.ID}
	saw := &models.Item{Name: "Saw", Description: "Fits any DRILL press", Available: true, OwnerID: owner.ID}
	hidden := &models.Item{Name: "Drill bits", Description: "Set", Available: false, OwnerID: owner.ID}
	percent := &models.Item{Name: "100% cotton rag", Description: "Rag", Available: true, OwnerID: owner.ID}
	for _, it := range []*models.Item{drill, saw, hidden, percent} {
		require.NoError(t, db.CreateItem(ctx, it))
	}

	found, err := db.SearchAvailableItems(ctx, "dRiLl")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, drill.ID, found[0].ID)
	assert.Equal(t, saw.ID, found[1].ID)

	found, err = db.SearchAvailableItems(ctx, "0%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, percent.ID, found[0].ID)
}

func TestItemsByRequestAndIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := createOwner(t, db, "o@example.com")

	req := &models.ItemRequest{Description: "Need a tent", RequesterID: owner.ID}
	require.NoError(t, db.CreateItemRequest(ctx, req))

	tent := &models.Item{Name: "Tent", Description: "Two person", Available: true, OwnerID: owner.ID, RequestID: &req.ID}
	other := &models.Item{Name: "Stove", Description: "Gas", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, tent))
	require.NoError(t, db.CreateItem(ctx, other))

	answered, err := db.GetItemsByRequestIDs(ctx, []int64{req.ID})
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.NotNil(t, answered[0].RequestID)
	assert.Equal(t, req.ID, *answered[0].RequestID)

	byID, err := db.GetItemsByIDs(ctx, []int64{tent.ID, other.ID})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
}

func TestComments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := createOwner(t, db, "o@example.com")
	author := createOwner(t, db, "a@example.com")

	item := &models.Item{Name: "Kayak", Description: "Red", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	first := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "Great", Created: base}
	second := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "Still great", Created: base.Add(time.Hour)}
	require.NoError(t, db.CreateComment(ctx, second))
	require.NoError(t, db.CreateComment(ctx, first))

	comments, err := db.GetCommentsByItems(ctx, []int64{item.ID})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Great", comments[0].Text)
	assert.Equal(t, author.Name, comments[0].AuthorName)
	assert.True(t, comments[1].Created.Equal(base.Add(time.Hour)))
}
