package store

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const sentinelKey = "__coursedesk_probe__"

// FileBackend persists each key as a JSON document file under a base
// directory. It is the default medium for a single-writer local deployment.
type FileBackend struct {
	baseDir string
	logger  *zap.Logger
}

// NewFileBackend ensures the base directory exists and returns a handle.
func NewFileBackend(baseDir string, logger *zap.Logger) (*FileBackend, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{baseDir: baseDir, logger: logger}, nil
}

// Probe reports whether the directory accepts writes.
func (b *FileBackend) Probe(_ context.Context) bool {
	path := b.resolve(sentinelKey)
	if err := os.WriteFile(path, []byte("ok"), 0o644); err != nil {
		b.logger.Warn("storage probe failed", zap.String("dir", b.baseDir), zap.Error(err))
		return false
	}
	_ = os.Remove(path)
	return true
}

// Read returns the stored document for key, or ok=false on miss.
func (b *FileBackend) Read(_ context.Context, key string) (string, bool) {
	raw, err := os.ReadFile(b.resolve(key))
	if err != nil {
		if !os.IsNotExist(err) {
			b.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return string(raw), true
}

// Write stores the document for key and reports success.
func (b *FileBackend) Write(_ context.Context, key, value string) bool {
	if err := os.WriteFile(b.resolve(key), []byte(value), 0o644); err != nil {
		b.logger.Warn("storage write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (b *FileBackend) resolve(key string) string {
	return filepath.Join(b.baseDir, filepath.Base(key)+".json")
}
