package claimlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.Orders())
		assert.NotNil(t, db.Refunds())
		assert.NotNil(t, db.WarrantyClaims())
		assert.NotNil(t, db.Contacts())
		assert.NotNil(t, db.Communications())
		assert.NotNil(t, db.Documents())
		assert.NotNil(t, db.Retailers())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrStorageUnavailable))
		assert.Nil(t, db)
	})
}

func TestDatabase_SeedsOnFirstOpen(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	retailers, err := db.Retailers().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, retailers, 6)
	assert.Equal(t, "Amazon", retailers[0].Name)
}

func TestDatabase_SeedSkippable(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(), WithoutSeeding())
	require.NoError(t, err)
	defer db.Close()

	count, err := db.Retailers().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDatabase_SeedSurvivesReopen(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)

	// Delete a seeded retailer, then reopen; the deletion must stick.
	retailers, err := db.Retailers().GetAll(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Retailers().Delete(ctx, retailers[0].Id))
	require.NoError(t, db.Close())

	db, err = NewDatabase(tmpDir)
	require.NoError(t, err)
	defer db.Close()

	count, err := db.Retailers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestDatabase_ExportAndClear(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.Orders().Add(ctx, &core.Order{RetailerName: "Amazon", PurchaseDate: "2025-08-01"})
	require.NoError(t, err)

	snap, err := db.ExportSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Orders, 1)
	assert.Len(t, snap.Retailers, 6)

	require.NoError(t, db.ClearAll(ctx))

	cleared, err := db.ExportSnapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared.TotalRecords())
}
