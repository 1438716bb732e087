package models

import (
	"encoding/json"
	"strings"
)

// InstructorStatus represents the employment state of an instructor.
type InstructorStatus string

// Possible instructor statuses.
const (
	InstructorStatusActive   InstructorStatus = "Active"
	InstructorStatusInactive InstructorStatus = "Inactive"
	InstructorStatusOnLeave  InstructorStatus = "On Leave"
)

// Expertise is a list of subject areas. Legacy records stored it as a single
// comma-joined string; UnmarshalJSON absorbs that form into a trimmed slice so
// the rest of the system only ever sees the normalized shape.
type Expertise []string

// UnmarshalJSON accepts either a JSON array of strings or a legacy
// comma-separated string.
func (e *Expertise) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*e = list
		return nil
	}
	var legacy string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	parts := strings.Split(legacy, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*e = out
	return nil
}

// Instructor represents a teaching staff record.
type Instructor struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Department   string           `json:"department"`
	Expertise    Expertise        `json:"expertise"`
	Experience   int              `json:"experience"`
	Bio          string           `json:"bio"`
	Courses      []int            `json:"courses"`
	Status       InstructorStatus `json:"status"`
	Rating       *float64         `json:"rating,omitempty"`
	AIOptimized  bool             `json:"aiOptimized"`
	Availability []string         `json:"availability"`
}

// InstructorFilter captures filtering options for listing instructors.
type InstructorFilter struct {
	Search     string
	Department string
	Status     InstructorStatus
	Page       int
	PageSize   int
}
