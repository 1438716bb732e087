package repository

import "github.com/noah-isme/coursedesk-api/internal/models"

// ListEnrollments returns matching enrollments with display names, plus the
// total match count.
func (r *DatasetRepository) ListEnrollments(filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return []models.EnrollmentDetail{}, 0
	}

	studentNames := make(map[int]string, len(r.data.Students))
	for _, s := range r.data.Students {
		studentNames[s.ID] = s.Name
	}
	courseNames := make(map[int]string, len(r.data.Courses))
	for _, c := range r.data.Courses {
		courseNames[c.ID] = c.Name
	}

	matched := make([]models.EnrollmentDetail, 0, len(r.data.Enrollments))
	for _, e := range r.data.Enrollments {
		if filter.StudentID != 0 && e.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != 0 && e.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		matched = append(matched, models.EnrollmentDetail{
			Enrollment:  e,
			StudentName: studentNames[e.StudentID],
			CourseName:  courseNames[e.CourseID],
		})
	}
	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total
}

// AddEnrollment registers a student on a course. Both references must
// resolve, the pair must not already hold an Active row, and the course must
// have seats left. The student's embedded course list is kept in step.
func (r *DatasetRepository) AddEnrollment(enrollment models.Enrollment) (*models.Enrollment, error) {
	var created models.Enrollment
	err := r.mutate(func(ds *models.Dataset) error {
		studentIdx := -1
		for i, s := range ds.Students {
			if s.ID == enrollment.StudentID {
				studentIdx = i
				break
			}
		}
		if studentIdx < 0 {
			return ErrNotFound
		}

		var course *models.Course
		for i := range ds.Courses {
			if ds.Courses[i].ID == enrollment.CourseID {
				course = &ds.Courses[i]
				break
			}
		}
		if course == nil {
			return ErrNotFound
		}

		active := 0
		for _, e := range ds.Enrollments {
			if e.Status != models.EnrollmentStatusActive {
				continue
			}
			if e.CourseID == enrollment.CourseID {
				active++
				if e.StudentID == enrollment.StudentID {
					return ErrDuplicateEnrollment
				}
			}
		}
		if course.Capacity > 0 && active >= course.Capacity {
			return ErrCapacityFull
		}

		enrollment.Status = models.EnrollmentStatusActive
		ds.Enrollments = append(ds.Enrollments, enrollment)

		student := &ds.Students[studentIdx]
		listed := false
		for _, cid := range student.Courses {
			if cid == enrollment.CourseID {
				listed = true
				break
			}
		}
		if !listed {
			student.Courses = append(student.Courses, enrollment.CourseID)
		}

		created = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEnrollmentStatus transitions the Active row for the pair to a new
// status, optionally updating progress. Leaving Active strips the course from
// the student's embedded list.
func (r *DatasetRepository) UpdateEnrollmentStatus(studentID, courseID int, status models.EnrollmentStatus, progress *int) error {
	return r.mutate(func(ds *models.Dataset) error {
		for i := range ds.Enrollments {
			e := &ds.Enrollments[i]
			if e.StudentID != studentID || e.CourseID != courseID || e.Status != models.EnrollmentStatusActive {
				continue
			}
			e.Status = status
			if progress != nil {
				e.Progress = progress
			}
			if status != models.EnrollmentStatusActive {
				for j := range ds.Students {
					if ds.Students[j].ID != studentID {
						continue
					}
					courses := ds.Students[j].Courses[:0]
					for _, cid := range ds.Students[j].Courses {
						if cid != courseID {
							courses = append(courses, cid)
						}
					}
					ds.Students[j].Courses = courses
				}
			}
			return nil
		}
		return ErrNotFound
	})
}

// UpdateEnrollmentProgress sets progress on the Active row for the pair.
func (r *DatasetRepository) UpdateEnrollmentProgress(studentID, courseID, progress int) error {
	return r.mutate(func(ds *models.Dataset) error {
		for i := range ds.Enrollments {
			e := &ds.Enrollments[i]
			if e.StudentID == studentID && e.CourseID == courseID && e.Status == models.EnrollmentStatusActive {
				e.Progress = &progress
				return nil
			}
		}
		return ErrNotFound
	})
}
