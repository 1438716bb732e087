package repository

import "github.com/noah-isme/coursedesk-api/internal/models"

// ListCategories returns the category collection.
func (r *DatasetRepository) ListCategories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return []models.Category{}
	}
	return append([]models.Category(nil), r.data.Categories...)
}

// Settings returns the singleton settings record.
func (r *DatasetRepository) Settings() models.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil || r.data.AISettings == nil {
		return *models.DefaultSettings()
	}
	return *r.data.AISettings
}

// UpdateSettings replaces the singleton settings record.
func (r *DatasetRepository) UpdateSettings(settings models.Settings) models.Settings {
	_ = r.mutate(func(ds *models.Dataset) error {
		ds.AISettings = &settings
		return nil
	})
	return settings
}
