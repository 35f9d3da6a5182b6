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

const itemColumns = `id, name, description, available, owner_id, request_id`

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var requestID sql.NullInt64
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID); err != nil {
		return nil, err
	}
	if requestID.Valid {
		id := requestID.Int64
		item.RequestID = &id
	}
	return item, nil
}

func collectItems(rows *sql.Rows) ([]*models.Item, error) {
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	id, err := db.insert(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		nullableID(item.RequestID),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := scanItem(db.queryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (db *DB) GetItemsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Item, error) {
	result := make(map[int64]*models.Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := db.query(ctx, `SELECT `+itemColumns+` FROM items WHERE id IN `+inClause(len(ids)), int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	result, err := db.exec(ctx, query, item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, item.ID)
	}
	return nil
}

// DeleteItem removes the item with its bookings and comments.
func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM items WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
		}
		if _, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM bookings WHERE item_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete item bookings: %w", err)
		}
		if _, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM comments WHERE item_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete item comments: %w", err)
		}
		return nil
	})
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	rows, err := db.query(ctx, `SELECT `+itemColumns+` FROM items WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner items: %w", err)
	}
	return collectItems(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchAvailableItems matches text as a case-insensitive substring of the
// name or description of available items.
func (db *DB) SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = ? AND (lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')
              ORDER BY id`
	rows, err := db.query(ctx, query, true, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return collectItems(rows)
}

func (db *DB) GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	if len(requestIDs) == 0 {
		return []*models.Item{}, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id IN ` + inClause(len(requestIDs)) + ` ORDER BY id`
	rows, err := db.query(ctx, query, int64Args(requestIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by requests: %w", err)
	}
	return collectItems(rows)
}

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.Created.IsZero() {
		comment.Created = time.Now()
	}
	comment.Created = utc(comment.Created)

	query := `INSERT INTO comments (item_id, author_id, text, created) VALUES (?, ?, ?, ?)`
	id, err := db.insert(ctx, query, comment.ItemID, comment.AuthorID, comment.Text, comment.Created)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	comment.ID = id
	return nil
}

// GetCommentsByItems returns comments with author names, oldest first.
func (db *DB) GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	query := `SELECT c.id, c.item_id, c.author_id, COALESCE(u.name, ''), c.text, c.created
              FROM comments c LEFT JOIN users u ON u.id = c.author_id
              WHERE c.item_id IN ` + inClause(len(itemIDs)) + `
              ORDER BY c.created ASC, c.id ASC`
	rows, err := db.query(ctx, query, int64Args(itemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.Created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Created = utc(c.Created)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
