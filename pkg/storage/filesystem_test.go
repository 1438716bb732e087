package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	name, err := store.Save("roster.csv", []byte("ID,Name\n"))
	require.NoError(t, err)
	assert.Equal(t, "roster.csv", name)

	raw, err := os.ReadFile(filepath.Join(dir, "roster.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ID,Name\n", string(raw))
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("stale.csv", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("fresh.csv", []byte("new"))
	require.NoError(t, err)

	stale := filepath.Join(dir, "stale.csv")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale.csv"}, deleted)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(dir, "fresh.csv"))
}
