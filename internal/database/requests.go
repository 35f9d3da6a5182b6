package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const requestColumns = `id, description, requester_id, created`

func scanRequest(row rowScanner) (*models.ItemRequest, error) {
	r := &models.ItemRequest{}
	if err := row.Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created); err != nil {
		return nil, err
	}
	r.Created = utc(r.Created)
	return r, nil
}

func collectRequests(rows *sql.Rows) ([]*models.ItemRequest, error) {
	defer rows.Close()

	requests := []*models.ItemRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}
	return requests, nil
}

func (db *DB) CreateItemRequest(ctx context.Context, request *models.ItemRequest) error {
	if request.Created.IsZero() {
		request.Created = time.Now()
	}
	request.Created = utc(request.Created)

	query := `INSERT INTO requests (description, requester_id, created) VALUES (?, ?, ?)`
	id, err := db.insert(ctx, query, request.Description, request.RequesterID, request.Created)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetItemRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	r, err := scanRequest(db.queryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: request %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return r, nil
}

func (db *DB) GetItemRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = ? ORDER BY created DESC, id DESC`
	rows, err := db.query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}
	return collectRequests(rows)
}

// GetItemRequestsExcept pages through other users' requests, newest first.
func (db *DB) GetItemRequestsExcept(ctx context.Context, requesterID int64, limit, offset int) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id <> ?
              ORDER BY created DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.query(ctx, query, requesterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %w", err)
	}
	return collectRequests(rows)
}
