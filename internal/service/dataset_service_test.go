package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	"github.com/noah-isme/coursedesk-api/internal/repository"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type mockDatasetRepo struct {
	available  bool
	saveResult bool
	saveCalls  int
	saveForced []bool
	importErr  error
	imported   []byte
	settings   models.Settings
}

func (m *mockDatasetRepo) Available() bool { return m.available }

func (m *mockDatasetRepo) Save(_ context.Context, force bool) bool {
	m.saveCalls++
	m.saveForced = append(m.saveForced, force)
	return m.saveResult
}

func (m *mockDatasetRepo) Import(_ context.Context, raw []byte) error {
	m.imported = raw
	return m.importErr
}

func (m *mockDatasetRepo) Export() models.ExportDocument {
	return models.ExportDocument{ExportDate: time.Now(), Version: repository.ExportVersion}
}

func (m *mockDatasetRepo) ListCategories() []models.Category { return nil }

func (m *mockDatasetRepo) Settings() models.Settings { return m.settings }

func (m *mockDatasetRepo) UpdateSettings(settings models.Settings) models.Settings {
	m.settings = settings
	return m.settings
}

func TestDatasetServiceExportForcesSaveWhenAvailable(t *testing.T) {
	repo := &mockDatasetRepo{available: true, saveResult: true}
	svc := NewDatasetService(repo, zap.NewNop())

	doc := svc.Export(context.Background())

	require.Equal(t, 1, repo.saveCalls)
	assert.True(t, repo.saveForced[0])
	assert.Equal(t, repository.ExportVersion, doc.Version)
}

func TestDatasetServiceExportSkipsSaveWhenUnavailable(t *testing.T) {
	repo := &mockDatasetRepo{available: false}
	svc := NewDatasetService(repo, zap.NewNop())

	svc.Export(context.Background())

	assert.Zero(t, repo.saveCalls)
}

func TestDatasetServiceSaveNowUnavailable(t *testing.T) {
	repo := &mockDatasetRepo{available: false}
	svc := NewDatasetService(repo, zap.NewNop())

	err := svc.SaveNow(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrStorageUnavailable.Code, appErr.Code)
	assert.Zero(t, repo.saveCalls)
}

func TestDatasetServiceSaveNowReportsFailure(t *testing.T) {
	repo := &mockDatasetRepo{available: true, saveResult: false}
	svc := NewDatasetService(repo, zap.NewNop())

	err := svc.SaveNow(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrSaveFailed.Code, appErr.Code)
}

func TestDatasetServiceImportMapsMalformedDocument(t *testing.T) {
	repo := &mockDatasetRepo{importErr: repository.ErrMalformedDocument}
	svc := NewDatasetService(repo, zap.NewNop())

	err := svc.Import(context.Background(), []byte(`{"oops":true}`))
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrMalformedDocument.Code, appErr.Code)
}
