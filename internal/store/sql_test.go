package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSQLBackend(t *testing.T) (*SQLBackend, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLBackend(sqlx.NewDb(db, "sqlmock"), zap.NewNop()), mock
}

func TestSQLBackendReadHit(t *testing.T) {
	backend, mock := newSQLBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_documents WHERE key = $1`)).
		WithArgs("coursedesk_data").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"courses":[]}`))

	value, ok := backend.Read(context.Background(), "coursedesk_data")
	require.True(t, ok)
	assert.Equal(t, `{"courses":[]}`, value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendReadMiss(t *testing.T) {
	backend, mock := newSQLBackend(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_documents WHERE key = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok := backend.Read(context.Background(), "missing")
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendWriteUpserts(t *testing.T) {
	backend, mock := newSQLBackend(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_documents`)).
		WithArgs("coursedesk_backup", `{}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.True(t, backend.Write(context.Background(), "coursedesk_backup", `{}`))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendWriteFailure(t *testing.T) {
	backend, mock := newSQLBackend(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_documents`)).
		WithArgs("coursedesk_data", `{}`).
		WillReturnError(errors.New("connection reset"))

	assert.False(t, backend.Write(context.Background(), "coursedesk_data", `{}`))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendProbeWritesAndCleansSentinel(t *testing.T) {
	backend, mock := newSQLBackend(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv_documents`)).
		WithArgs(sentinelKey, "ok").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_documents WHERE key = $1`)).
		WithArgs(sentinelKey).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.True(t, backend.Probe(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendEnsureSchema(t *testing.T) {
	backend, mock := newSQLBackend(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS kv_documents`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, backend.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
