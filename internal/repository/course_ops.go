package repository

import (
	"strings"

	"github.com/noah-isme/coursedesk-api/internal/models"
)

// instructorName resolves the derived display name for a course's teaching
// assignment. A nil or dangling foreign key reads as "Unassigned".
func instructorName(ds *models.Dataset, id *int) string {
	if id == nil {
		return "Unassigned"
	}
	for _, in := range ds.Instructors {
		if in.ID == *id {
			return in.Name
		}
	}
	return "Unassigned"
}

func paginate[T any](items []T, page, size int) []T {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ListCourses returns matching courses with derived instructor names, plus
// the total match count before pagination.
func (r *DatasetRepository) ListCourses(filter models.CourseFilter) ([]models.CourseDetail, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return []models.CourseDetail{}, 0
	}

	matched := make([]models.CourseDetail, 0, len(r.data.Courses))
	for _, c := range r.data.Courses {
		if filter.Search != "" && !containsFold(c.Name, filter.Search) && !containsFold(c.Description, filter.Search) {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Level != "" && c.Level != filter.Level {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		matched = append(matched, models.CourseDetail{Course: c, Instructor: instructorName(r.data, c.InstructorID)})
	}
	total := len(matched)
	return paginate(matched, filter.Page, filter.PageSize), total
}

// GetCourse returns one course with its derived instructor name.
func (r *DatasetRepository) GetCourse(id int) (*models.CourseDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, ErrNotFound
	}
	for _, c := range r.data.Courses {
		if c.ID == id {
			detail := models.CourseDetail{Course: c, Instructor: instructorName(r.data, c.InstructorID)}
			return &detail, nil
		}
	}
	return nil, ErrNotFound
}

// AddCourse assigns the next id and appends the course.
func (r *DatasetRepository) AddCourse(course models.Course) (*models.CourseDetail, error) {
	var created models.CourseDetail
	err := r.mutate(func(ds *models.Dataset) error {
		ids := make([]int, 0, len(ds.Courses))
		for _, c := range ds.Courses {
			ids = append(ids, c.ID)
		}
		course.ID = nextID(ids)
		if course.InstructorID != nil && !instructorExists(ds, *course.InstructorID) {
			return ErrNotFound
		}
		ds.Courses = append(ds.Courses, course)
		created = models.CourseDetail{Course: course, Instructor: instructorName(ds, course.InstructorID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCourse replaces the stored record by id lookup. The enrolled counter
// is recomputed afterwards, so any value on the incoming record is ignored.
func (r *DatasetRepository) UpdateCourse(id int, course models.Course) (*models.CourseDetail, error) {
	var updated models.CourseDetail
	err := r.mutate(func(ds *models.Dataset) error {
		if course.InstructorID != nil && !instructorExists(ds, *course.InstructorID) {
			return ErrNotFound
		}
		for i := range ds.Courses {
			if ds.Courses[i].ID == id {
				course.ID = id
				ds.Courses[i] = course
				updated = models.CourseDetail{Course: course, Instructor: instructorName(ds, course.InstructorID)}
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

// DeleteCourse removes the course, its enrollments, and strips its id from
// every student's course list.
func (r *DatasetRepository) DeleteCourse(id int) error {
	return r.mutate(func(ds *models.Dataset) error {
		found := false
		kept := ds.Courses[:0]
		for _, c := range ds.Courses {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			return ErrNotFound
		}
		ds.Courses = kept

		enrollments := ds.Enrollments[:0]
		for _, e := range ds.Enrollments {
			if e.CourseID != id {
				enrollments = append(enrollments, e)
			}
		}
		ds.Enrollments = enrollments

		for i := range ds.Students {
			courses := ds.Students[i].Courses[:0]
			for _, cid := range ds.Students[i].Courses {
				if cid != id {
					courses = append(courses, cid)
				}
			}
			ds.Students[i].Courses = courses
		}
		return nil
	})
}

func instructorExists(ds *models.Dataset, id int) bool {
	for _, in := range ds.Instructors {
		if in.ID == id {
			return true
		}
	}
	return false
}
