package repository

import "github.com/noah-isme/coursedesk-api/internal/models"

// ListStudents returns matching students plus the total match count.
func (r *DatasetRepository) ListStudents(filter models.StudentFilter) ([]models.Student, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return []models.Student{}, 0
	}

	matched := make([]models.Student, 0, len(r.data.Students))
	for _, s := range r.data.Students {
		if filter.Search != "" && !containsFold(s.Name, filter.Search) && !containsFold(s.Email, filter.Search) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Level != "" && s.Level != filter.Level {
			continue
		}
		matched = append(matched, s)
	}
	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total
}

// GetStudent returns one student by id.
func (r *DatasetRepository) GetStudent(id int) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, ErrNotFound
	}
	for _, s := range r.data.Students {
		if s.ID == id {
			student := s
			return &student, nil
		}
	}
	return nil, ErrNotFound
}

// AddStudent assigns the next id and appends the student.
func (r *DatasetRepository) AddStudent(student models.Student) (*models.Student, error) {
	var created models.Student
	err := r.mutate(func(ds *models.Dataset) error {
		ids := make([]int, 0, len(ds.Students))
		for _, s := range ds.Students {
			ids = append(ids, s.ID)
		}
		student.ID = nextID(ids)
		ds.Students = append(ds.Students, student)
		created = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent replaces the stored record by id lookup.
func (r *DatasetRepository) UpdateStudent(id int, student models.Student) (*models.Student, error) {
	var updated models.Student
	err := r.mutate(func(ds *models.Dataset) error {
		for i := range ds.Students {
			if ds.Students[i].ID == id {
				student.ID = id
				ds.Students[i] = student
				updated = student
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent removes the student and every enrollment referencing them.
func (r *DatasetRepository) DeleteStudent(id int) error {
	return r.mutate(func(ds *models.Dataset) error {
		found := false
		kept := ds.Students[:0]
		for _, s := range ds.Students {
			if s.ID == id {
				found = true
				continue
			}
			kept = append(kept, s)
		}
		if !found {
			return ErrNotFound
		}
		ds.Students = kept

		enrollments := ds.Enrollments[:0]
		for _, e := range ds.Enrollments {
			if e.StudentID != id {
				enrollments = append(enrollments, e)
			}
		}
		ds.Enrollments = enrollments
		return nil
	})
}
