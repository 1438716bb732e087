package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, backend.Probe(ctx))

	_, ok := backend.Read(ctx, "missing")
	assert.False(t, ok)

	require.True(t, backend.Write(ctx, "coursedesk_data", `{"courses":[]}`))
	value, ok := backend.Read(ctx, "coursedesk_data")
	require.True(t, ok)
	assert.Equal(t, `{"courses":[]}`, value)
}

func TestFileBackendKeysMapToSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, backend.Write(ctx, "primary", "a"))
	require.True(t, backend.Write(ctx, "backup", "b"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.FileExists(t, filepath.Join(dir, "primary.json"))
	assert.FileExists(t, filepath.Join(dir, "backup.json"))
}

func TestFileBackendProbeLeavesNoSentinel(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir, zap.NewNop())
	require.NoError(t, err)

	require.True(t, backend.Probe(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileBackendProbeFailsOnUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	dir := t.TempDir()
	backend, err := NewFileBackend(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	assert.False(t, backend.Probe(context.Background()))
}
