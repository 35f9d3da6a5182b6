package service

import (
	"context"
	"io"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var (
	base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	day  = 24 * time.Hour
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func nopLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(":memory:", nopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	owner, booker, stranger *models.User
	item, hidden            *models.Item
}

func seed(t *testing.T, db *database.DB) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{
		owner:    &models.User{Name: "Owner", Email: "owner@example.com"},
		booker:   &models.User{Name: "Booker", Email: "booker@example.com"},
		stranger: &models.User{Name: "Stranger", Email: "stranger@example.com"},
	}
	for _, u := range []*models.User{f.owner, f.booker, f.stranger} {
		require.NoError(t, db.CreateUser(ctx, u))
	}

	f.item = &models.Item{Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: f.owner.ID}
	f.hidden = &models.Item{Name: "Saw", Description: "Broken saw", Available: false, OwnerID: f.owner.ID}
	require.NoError(t, db.CreateItem(ctx, f.item))
	require.NoError(t, db.CreateItem(ctx, f.hidden))
	return f
}

func insertBooking(t *testing.T, db *database.DB, itemID, bookerID int64, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	require.NoError(t, db.CreateBooking(context.Background(), b))
	return b
}

func input(itemID int64, start, end time.Time) models.BookingInput {
	return models.BookingInput{ItemID: itemID, Start: models.LocalDateTime(start), End: models.LocalDateTime(end)}
}
