package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRequestService(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	clock := &fixedClock{now: base}
	svc := NewItemRequestService(db, clock, nopLogger())
	ctx := context.Background()

	var mine []int64
	for i, text := range []string{"Need a tent", "Need a kayak", "Need a bike"} {
		clock.now = base.Add(time.Duration(i) * time.Hour)
		r, err := svc.CreateRequest(ctx, f.booker.ID, models.ItemRequestInput{Description: text})
		require.NoError(t, err)
		assert.NotNil(t, r.Items)
		mine = append([]int64{r.ID}, mine...)
	}

	_, err := svc.CreateRequest(ctx, 999, models.ItemRequestInput{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	own, err := svc.GetOwnRequests(ctx, f.booker.ID)
	require.NoError(t, err)
	require.Len(t, own, 3)
	for i, r := range own {
		assert.Equal(t, mine[i], r.ID, "newest first")
	}

	others, err := svc.GetOtherRequests(ctx, f.stranger.ID, models.Page{From: 1, Size: 1})
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, mine[1], others[0].ID)

	others, err = svc.GetOtherRequests(ctx, f.booker.ID, models.Page{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, others, "own requests are excluded")

	_, err = svc.GetOtherRequests(ctx, f.stranger.ID, models.Page{From: -1, Size: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.GetOtherRequests(ctx, 999, models.Page{Size: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetRequest(ctx, f.owner.ID, mine[0])
	require.NoError(t, err)
	assert.Equal(t, "Need a bike", got.Description)
	assert.Empty(t, got.Items)

	_, err = svc.GetRequest(ctx, f.owner.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetRequest(ctx, 999, mine[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
