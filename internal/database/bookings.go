package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status, b.created_at, b.updated_at, b.version`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	var status string
	if err := row.Scan(&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &status, &b.CreatedAt, &b.UpdatedAt, &b.Version); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatus(status)
	b.Start, b.End = utc(b.Start), utc(b.End)
	b.CreatedAt, b.UpdatedAt = utc(b.CreatedAt), utc(b.UpdatedAt)
	return b, nil
}

func collectBookings(rows *sql.Rows) ([]*models.Booking, error) {
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status, created_at, updated_at, version)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	id, err := db.insert(ctx, query,
		booking.ItemID,
		booking.BookerID,
		utc(booking.Start),
		utc(booking.End),
		string(booking.Status),
		now,
		now,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = id
	booking.Start, booking.End = utc(booking.Start), utc(booking.End)
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = ?`
	b, err := scanBooking(db.queryRow(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// UpdateBookingStatusWithVersion applies status only if the row still has
// fromVersion, bumping the version.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status models.BookingStatus) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`
	result, err := db.exec(ctx, query, string(status), time.Now().UTC(), id, fromVersion)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: booking %d version %d", domain.ErrConcurrentModification, id, fromVersion)
	}
	return nil
}

// ListBookings returns one page of a user's bookings in the given role,
// newest start first. Limit <= 0 disables paging.
func (db *DB) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*models.Booking, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT ` + bookingColumns + ` FROM bookings b`)
	switch filter.Role {
	case models.RoleOwner:
		sb.WriteString(` JOIN items i ON i.id = b.item_id WHERE i.owner_id = ?`)
	case models.RoleBooker:
		sb.WriteString(` WHERE b.booker_id = ?`)
	default:
		return nil, fmt.Errorf("unknown booking role %q", filter.Role)
	}
	args = append(args, filter.UserID)

	now := utc(filter.Now)
	switch filter.State {
	case models.StateAll, "":
	case models.StateCurrent:
		sb.WriteString(` AND b.start_time < ? AND b.end_time > ?`)
		args = append(args, now, now)
	case models.StatePast:
		sb.WriteString(` AND b.end_time < ?`)
		args = append(args, now)
	case models.StateFuture:
		sb.WriteString(` AND b.start_time > ?`)
		args = append(args, now)
	case models.StateWaiting:
		sb.WriteString(` AND b.status = ?`)
		args = append(args, string(models.StatusWaiting))
	case models.StateRejected:
		sb.WriteString(` AND b.status = ?`)
		args = append(args, string(models.StatusRejected))
	default:
		return nil, fmt.Errorf("%w: Unknown state: %s", domain.ErrUnsupportedState, filter.State)
	}

	sb.WriteString(` ORDER BY b.start_time DESC, b.id DESC`)
	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return collectBookings(rows)
}

// GetBookingsByItems returns the bookings of the given items with status,
// ordered by start.
func (db *DB) GetBookingsByItems(ctx context.Context, itemIDs []int64, status models.BookingStatus) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              WHERE b.item_id IN ` + inClause(len(itemIDs)) + ` AND b.status = ?
              ORDER BY b.start_time ASC, b.id ASC`
	args := append(int64Args(itemIDs), string(status))

	rows, err := db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get item bookings: %w", err)
	}
	return collectBookings(rows)
}

// HasStartedBooking reports whether bookerID holds a non-rejected booking of
// itemID that started before now.
func (db *DB) HasStartedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE booker_id = ? AND item_id = ? AND status <> ? AND start_time < ?`
	var count int
	err := db.queryRow(ctx, query, bookerID, itemID, string(models.StatusRejected), utc(now)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check bookings: %w", err)
	}
	return count > 0, nil
}
