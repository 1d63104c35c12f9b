package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_indexes.sql": {Data: []byte("SELECT 1;")},
		"migrations/001_init.sql":    {Data: []byte("SELECT 1;")},
		"migrations/README.md":       {Data: []byte("notes")},
	}

	pending, err := pendingMigrations(fsys, map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_indexes.sql"}, pending)
}

func TestPendingMigrations_SkipsApplied(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/001_init.sql":    {Data: []byte("SELECT 1;")},
		"migrations/002_indexes.sql": {Data: []byte("SELECT 1;")},
	}

	pending, err := pendingMigrations(fsys, map[string]bool{"001_init.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"002_indexes.sql"}, pending)
}

func TestPendingMigrations_EmbeddedInitMigration(t *testing.T) {
	pending, err := pendingMigrations(migrationsFS, map[string]bool{})
	require.NoError(t, err)
	assert.Contains(t, pending, "001_init.sql")
}

func TestPendingMigrations_MissingDirectory(t *testing.T) {
	_, err := pendingMigrations(fstest.MapFS{}, map[string]bool{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read migrations directory")
}
