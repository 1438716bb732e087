package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type datasetRepository interface {
	Available() bool
	Save(ctx context.Context, force bool) bool
	Import(ctx context.Context, raw []byte) error
	Export() models.ExportDocument
	ListCategories() []models.Category
	Settings() models.Settings
	UpdateSettings(settings models.Settings) models.Settings
}

// DatasetService covers whole-dataset concerns: import, export, settings and
// explicit saves.
type DatasetService struct {
	repo   datasetRepository
	logger *zap.Logger
}

// NewDatasetService constructs DatasetService.
func NewDatasetService(repo datasetRepository, logger *zap.Logger) *DatasetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{repo: repo, logger: logger}
}

// Import replaces the live dataset with the supplied document. The document
// runs through the same sniff and repair gate as a stored slot.
func (s *DatasetService) Import(ctx context.Context, raw []byte) error {
	if err := s.repo.Import(ctx, raw); err != nil {
		return mapRepositoryError(err, "")
	}
	s.logger.Info("dataset imported")
	return nil
}

// Export returns the live dataset with export metadata. An explicit export is
// one of the forced-save triggers, so the current state is flushed first.
func (s *DatasetService) Export(ctx context.Context) models.ExportDocument {
	if s.repo.Available() {
		s.repo.Save(ctx, true)
	}
	return s.repo.Export()
}

// SaveNow forces a persistence pass and surfaces the result as a typed error
// rather than a crash: storage problems are warnings, in-memory state stays
// authoritative.
func (s *DatasetService) SaveNow(ctx context.Context) error {
	if !s.repo.Available() {
		return appErrors.Clone(appErrors.ErrStorageUnavailable, "")
	}
	if !s.repo.Save(ctx, true) {
		return appErrors.Clone(appErrors.ErrSaveFailed, "")
	}
	return nil
}

// Categories lists the category collection.
func (s *DatasetService) Categories() []models.Category {
	return s.repo.ListCategories()
}

// Settings returns the singleton settings record.
func (s *DatasetService) Settings() models.Settings {
	return s.repo.Settings()
}

// UpdateSettings replaces the singleton settings record.
func (s *DatasetService) UpdateSettings(settings models.Settings) models.Settings {
	return s.repo.UpdateSettings(settings)
}

// StorageAvailable reports whether persistence survived the startup probe.
func (s *DatasetService) StorageAvailable() bool {
	return s.repo.Available()
}
