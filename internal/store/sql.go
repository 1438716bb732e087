package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SQLBackend keeps the document slots in a two-column upsert table. The
// relational engine is used strictly as a key-value medium: whole-value
// replacement per key, no row-level structure.
type SQLBackend struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSQLBackend wraps an established database handle.
func NewSQLBackend(db *sqlx.DB, logger *zap.Logger) *SQLBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLBackend{db: db, logger: logger}
}

// EnsureSchema creates the document table when it does not exist yet.
func (b *SQLBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv_documents (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`)
	return err
}

// Probe reports whether the table currently accepts writes.
func (b *SQLBackend) Probe(ctx context.Context) bool {
	if b.db == nil {
		return false
	}
	if !b.Write(ctx, sentinelKey, "ok") {
		return false
	}
	if _, err := b.db.ExecContext(ctx, `DELETE FROM kv_documents WHERE key = $1`, sentinelKey); err != nil {
		b.logger.Warn("storage probe cleanup failed", zap.Error(err))
	}
	return true
}

// Read returns the stored document for key, or ok=false on miss.
func (b *SQLBackend) Read(ctx context.Context, key string) (string, bool) {
	var value string
	err := b.db.GetContext(ctx, &value, `SELECT value FROM kv_documents WHERE key = $1`, key)
	if err != nil {
		if err != sql.ErrNoRows {
			b.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// Write upserts the document for key and reports success.
func (b *SQLBackend) Write(ctx context.Context, key, value string) bool {
	_, err := b.db.ExecContext(ctx, `INSERT INTO kv_documents (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	if err != nil {
		b.logger.Warn("storage write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
