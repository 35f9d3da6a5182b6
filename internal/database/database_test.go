package database

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"shareit/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
	assert.Equal(t, config.DriverSQLite, db.Driver())
}

func TestNewDB_SchemaIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	require.NoError(t, db.createTables())
}

func TestDB_Ping(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	assert.NoError(t, db.PingContext(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	logger := zerolog.Nop()
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, &logger)
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	sqlite := &DB{driver: config.DriverSQLite}
	pg := &DB{driver: config.DriverPostgres}

	q := `SELECT id FROM items WHERE owner_id = ? AND id IN (?, ?)`
	assert.Equal(t, q, sqlite.rebind(q))
	assert.Equal(t, `SELECT id FROM items WHERE owner_id = $1 AND id IN ($2, $3)`, pg.rebind(q))
}

func TestInClause(t *testing.T) {
	assert.Equal(t, "(?)", inClause(1))
	assert.Equal(t, "(?, ?, ?)", inClause(3))
}

func TestDB_ErrorPaths(t *testing.T) {
	db := setupTestDB(t)
	db.Close()

	ctx := context.Background()

	_, err := db.GetBooking(ctx, 1)
	assert.Error(t, err)

	_, err = db.GetAllUsers(ctx)
	assert.Error(t, err)

	_, err = db.SearchAvailableItems(ctx, "drill")
	assert.Error(t, err)

	_, err = db.GetItemRequestsByRequester(ctx, 1)
	assert.Error(t, err)
}
