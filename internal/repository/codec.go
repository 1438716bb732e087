package repository

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/coursedesk-api/internal/models"
)

// decodeDocument parses a stored or imported document. Acceptance is a
// structural sniff, not full schema validation: the top level must be an
// object carrying courses, students and instructors keys. Individual
// collections that fail to decode degrade to nil and are coerced to empty
// sequences by repair; unknown top-level fields are ignored.
func decodeDocument(raw string) (*models.Dataset, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	for _, key := range []string{"courses", "students", "instructors"} {
		if _, ok := top[key]; !ok {
			return nil, fmt.Errorf("document missing %q collection", key)
		}
	}

	ds := &models.Dataset{}
	decodeField(top["courses"], &ds.Courses)
	decodeField(top["students"], &ds.Students)
	decodeField(top["instructors"], &ds.Instructors)
	decodeField(top["categories"], &ds.Categories)
	decodeField(top["enrollments"], &ds.Enrollments)
	decodeField(top["aiSettings"], &ds.AISettings)
	return ds, nil
}

// decodeField unmarshals one top-level field, leaving dest at its zero value
// when the field is absent or mis-shaped.
func decodeField(raw json.RawMessage, dest interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dest)
}
