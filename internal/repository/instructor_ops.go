package repository

import "github.com/noah-isme/coursedesk-api/internal/models"

// ListInstructors returns matching instructors plus the total match count.
func (r *DatasetRepository) ListInstructors(filter models.InstructorFilter) ([]models.Instructor, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return []models.Instructor{}, 0
	}

	matched := make([]models.Instructor, 0, len(r.data.Instructors))
	for _, in := range r.data.Instructors {
		if filter.Search != "" && !containsFold(in.Name, filter.Search) && !containsFold(in.Email, filter.Search) {
			continue
		}
		if filter.Department != "" && in.Department != filter.Department {
			continue
		}
		if filter.Status != "" && in.Status != filter.Status {
			continue
		}
		matched = append(matched, in)
	}
	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total
}

// GetInstructor returns one instructor by id.
func (r *DatasetRepository) GetInstructor(id int) (*models.Instructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, ErrNotFound
	}
	for _, in := range r.data.Instructors {
		if in.ID == id {
			instructor := in
			return &instructor, nil
		}
	}
	return nil, ErrNotFound
}

// AddInstructor assigns the next id and appends the instructor.
func (r *DatasetRepository) AddInstructor(instructor models.Instructor) (*models.Instructor, error) {
	var created models.Instructor
	err := r.mutate(func(ds *models.Dataset) error {
		ids := make([]int, 0, len(ds.Instructors))
		for _, in := range ds.Instructors {
			ids = append(ids, in.ID)
		}
		instructor.ID = nextID(ids)
		ds.Instructors = append(ds.Instructors, instructor)
		created = instructor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInstructor replaces the stored record by id lookup. Courses carrying
// the foreign key pick up the new display name automatically since the name
// is derived on read.
func (r *DatasetRepository) UpdateInstructor(id int, instructor models.Instructor) (*models.Instructor, error) {
	var updated models.Instructor
	err := r.mutate(func(ds *models.Dataset) error {
		for i := range ds.Instructors {
			if ds.Instructors[i].ID == id {
				instructor.ID = id
				ds.Instructors[i] = instructor
				updated = instructor
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

// DeleteInstructor removes the instructor and nulls the foreign key on any
// course it taught. Courses themselves are never deleted by this cascade.
func (r *DatasetRepository) DeleteInstructor(id int) error {
	return r.mutate(func(ds *models.Dataset) error {
		found := false
		kept := ds.Instructors[:0]
		for _, in := range ds.Instructors {
			if in.ID == id {
				found = true
				continue
			}
			kept = append(kept, in)
		}
		if !found {
			return ErrNotFound
		}
		ds.Instructors = kept

		for i := range ds.Courses {
			if ds.Courses[i].InstructorID != nil && *ds.Courses[i].InstructorID == id {
				ds.Courses[i].InstructorID = nil
			}
		}
		return nil
	})
}
