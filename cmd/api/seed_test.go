package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/api"
	"shareit/internal/database"
	"shareit/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
users:
  - name: Alice
    email: alice@example.com
  - name: Bob
    email: bob@example.com
items:
  - name: Drill
    description: Cordless drill
    available: true
    owner_email: alice@example.com
  - name: Tent
    description: Two person tent
    available: false
    owner_email: bob@example.com
`

func TestLoadSeed(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	svc := api.Services{
		Users: service.NewUserService(db, nil, &logger),
		Items: service.NewItemService(db, nil, nil, nil, &logger),
	}
	ctx := context.Background()

	require.NoError(t, loadSeed(ctx, path, db, svc, &logger))
	require.NoError(t, loadSeed(ctx, path, db, svc, &logger), "reloading is a no-op")

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	alice, err := db.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	items, err := db.GetItemsByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Drill", items[0].Name)
	assert.True(t, items[0].Available)

	found, err := db.SearchAvailableItems(ctx, "tent")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLoadSeed_UnknownOwner(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - name: Saw\n    owner_email: ghost@example.com\n"), 0o600))

	svc := api.Services{
		Users: service.NewUserService(db, nil, &logger),
		Items: service.NewItemService(db, nil, nil, nil, &logger),
	}
	assert.Error(t, loadSeed(context.Background(), path, db, svc, &logger))
}

func TestReadSeed_Missing(t *testing.T) {
	_, err := readSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
