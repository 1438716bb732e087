package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	"github.com/noah-isme/coursedesk-api/internal/repository"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type mockCourseRepo struct {
	courses    []models.CourseDetail
	total      int
	course     *models.CourseDetail
	err        error
	lastAdded  models.Course
	listFilter models.CourseFilter
	deleteID   int
}

func (m *mockCourseRepo) ListCourses(filter models.CourseFilter) ([]models.CourseDetail, int) {
	m.listFilter = filter
	return m.courses, m.total
}

func (m *mockCourseRepo) GetCourse(id int) (*models.CourseDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *mockCourseRepo) AddCourse(course models.Course) (*models.CourseDetail, error) {
	m.lastAdded = course
	if m.err != nil {
		return nil, m.err
	}
	detail := &models.CourseDetail{Course: course, Instructor: "Unassigned"}
	detail.ID = 1
	return detail, nil
}

func (m *mockCourseRepo) UpdateCourse(id int, course models.Course) (*models.CourseDetail, error) {
	m.lastAdded = course
	if m.err != nil {
		return nil, m.err
	}
	detail := &models.CourseDetail{Course: course, Instructor: "Unassigned"}
	detail.ID = id
	return detail, nil
}

func (m *mockCourseRepo) DeleteCourse(id int) error {
	m.deleteID = id
	return m.err
}

func validCourseRequest() CreateCourseRequest {
	return CreateCourseRequest{
		Name:     "Intro to Go",
		Category: "Programming",
		Level:    models.LevelBeginner,
		Capacity: 25,
		Price:    49.99,
	}
}

func TestCourseServiceCreateRejectsInvalidPayload(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, nil, zap.NewNop())

	req := validCourseRequest()
	req.Name = ""

	_, err := svc.Create(req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.lastAdded.Name)
}

func TestCourseServiceCreateDefaultsStatusToActive(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, nil, zap.NewNop())

	created, err := svc.Create(validCourseRequest())
	require.NoError(t, err)

	assert.Equal(t, models.CourseStatusActive, created.Status)
	assert.Equal(t, models.CourseStatusActive, repo.lastAdded.Status)
}

func TestCourseServiceGetMapsNotFound(t *testing.T) {
	repo := &mockCourseRepo{err: repository.ErrNotFound}
	svc := NewCourseService(repo, nil, zap.NewNop())

	_, err := svc.Get(42)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "course not found", appErr.Message)
}

func TestCourseServiceListNormalizesPagination(t *testing.T) {
	repo := &mockCourseRepo{total: 3}
	svc := NewCourseService(repo, nil, zap.NewNop())

	_, pagination, err := svc.List(models.CourseFilter{Page: 0, PageSize: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 3, pagination.TotalCount)
}

func TestCourseServiceDeleteMapsNotFound(t *testing.T) {
	repo := &mockCourseRepo{err: repository.ErrNotFound}
	svc := NewCourseService(repo, nil, zap.NewNop())

	err := svc.Delete(9)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, 9, repo.deleteID)
}
