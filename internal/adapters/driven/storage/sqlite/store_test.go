package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func financeTaxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		Name: "finance",
		Terms: []domain.Term{
			{Name: "Revenue", Aliases: []string{"revenue", "sales", "revenue"}},
			{Name: "Profit", Aliases: []string{"profit", "net income"}},
			{Name: "Audit", Aliases: []string{}},
			{Name: "Debt", Aliases: []string{"debt"}},
		},
	}
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "tally.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".tally", "data", "tally.db"), store.Path())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	for _, table := range []string{"taxonomies", "terms", "aliases"} {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.TaxonomyStore().Save(context.Background(), financeTaxonomy()))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	got, err := second.TaxonomyStore().Get(context.Background(), "finance")
	require.NoError(t, err)
	assert.Equal(t, financeTaxonomy(), *got)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store := setupTestStore(t)

	var fkEnabled int
	err := store.db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	require.NoError(t, err)
	assert.Equal(t, 1, fkEnabled)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// ==================== TaxonomyStore Tests ====================

func TestTaxonomyStore_SaveAndGet_PreservesOrder(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	got, err := store.Get(ctx, "finance")
	require.NoError(t, err)
	assert.Equal(t, financeTaxonomy(), *got)
}

func TestTaxonomyStore_Save_Replaces(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	replacement := domain.Taxonomy{
		Name: "finance",
		Terms: []domain.Term{
			{Name: "Debt", Aliases: []string{"liabilities"}},
		},
	}
	require.NoError(t, store.Save(ctx, replacement))

	got, err := store.Get(ctx, "finance")
	require.NoError(t, err)
	assert.Equal(t, replacement, *got)
}

func TestTaxonomyStore_Save_KeepsCreatedAt(t *testing.T) {
	s := setupTestStore(t)
	store := s.TaxonomyStore()
	ctx := context.Background()

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(time.Hour)
	now = func() time.Time { return first }
	t.Cleanup(func() { now = time.Now })

	require.NoError(t, store.Save(ctx, financeTaxonomy()))
	now = func() time.Time { return second }
	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	var created, updated string
	err := s.db.QueryRow("SELECT created_at, updated_at FROM taxonomies WHERE name = ?", "finance").
		Scan(&created, &updated)
	require.NoError(t, err)
	assert.Equal(t, first.Format(time.RFC3339Nano), created)
	assert.Equal(t, second.Format(time.RFC3339Nano), updated)
}

func TestTaxonomyStore_Save_Invalid(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()
	ctx := context.Background()

	err := store.Save(ctx, domain.Taxonomy{Terms: financeTaxonomy().Terms})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Save(ctx, domain.Taxonomy{Name: "empty"})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxonomy)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaxonomyStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()

	got, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestTaxonomyStore_List(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()
	ctx := context.Background()

	esg := domain.Taxonomy{
		Name:  "esg",
		Terms: []domain.Term{{Name: "Sustainability", Aliases: []string{"sustainability", "esg"}}},
	}
	require.NoError(t, store.Save(ctx, financeTaxonomy()))
	require.NoError(t, store.Save(ctx, esg))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaxonomySummary{
		{Name: "esg", Terms: 1, Aliases: 2},
		{Name: "finance", Terms: 4, Aliases: 6},
	}, list)
}

func TestTaxonomyStore_List_Empty(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaxonomyStore_Delete(t *testing.T) {
	s := setupTestStore(t)
	store := s.TaxonomyStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	require.NoError(t, store.Delete(ctx, "finance"))

	_, err := store.Get(ctx, "finance")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var aliases int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM aliases").Scan(&aliases))
	assert.Equal(t, 0, aliases)
}

func TestTaxonomyStore_Delete_NotFound(t *testing.T) {
	store := setupTestStore(t).TaxonomyStore()

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
