package models

import "time"

// Category groups courses for browsing.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Settings is the singleton record of assistant feature toggles.
type Settings struct {
	AutoSuggestions     bool    `json:"autoSuggestions"`
	SmartScheduling     bool    `json:"smartScheduling"`
	ContentGeneration   bool    `json:"contentGeneration"`
	ConfidenceThreshold float64 `json:"confidenceThreshold"`
}

// DefaultSettings returns the settings applied when a document carries none.
func DefaultSettings() *Settings {
	return &Settings{
		AutoSuggestions:     true,
		SmartScheduling:     true,
		ContentGeneration:   true,
		ConfidenceThreshold: 0.75,
	}
}

// Dataset is the whole relational state of the application: the persisted form
// is a JSON serialization of this exact structure. Unknown top-level fields in
// a stored or imported document are tolerated and dropped on decode.
type Dataset struct {
	Courses     []Course     `json:"courses"`
	Students    []Student    `json:"students"`
	Instructors []Instructor `json:"instructors"`
	Categories  []Category   `json:"categories"`
	Enrollments []Enrollment `json:"enrollments"`
	AISettings  *Settings    `json:"aiSettings,omitempty"`
}

// ExportDocument wraps a dataset with export metadata.
type ExportDocument struct {
	Dataset
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// Pagination carries paging metadata in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
