package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	"github.com/noah-isme/coursedesk-api/internal/repository"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type courseRepository interface {
	ListCourses(filter models.CourseFilter) ([]models.CourseDetail, int)
	GetCourse(id int) (*models.CourseDetail, error)
	AddCourse(course models.Course) (*models.CourseDetail, error)
	UpdateCourse(id int, course models.Course) (*models.CourseDetail, error)
	DeleteCourse(id int) error
}

// CreateCourseRequest holds payload for creating courses.
type CreateCourseRequest struct {
	Name         string              `json:"name" validate:"required"`
	Description  string              `json:"description"`
	InstructorID *int                `json:"instructor_id"`
	Category     string              `json:"category" validate:"required"`
	Level        models.CourseLevel  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Status       models.CourseStatus `json:"status" validate:"omitempty,oneof=Active Draft Archived"`
	Capacity     int                 `json:"capacity" validate:"required,gt=0"`
	Price        float64             `json:"price" validate:"gte=0"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	AIGenerated  bool                `json:"ai_generated"`
	Popularity   *int                `json:"popularity" validate:"omitempty,gte=0,lte=100"`
	Tags         []string            `json:"tags"`
}

// UpdateCourseRequest holds payload for updating courses.
type UpdateCourseRequest CreateCourseRequest

// CourseService handles course use-cases.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns courses and pagination metadata.
func (s *CourseService) List(filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	courses, total := s.repo.ListCourses(filter)
	return courses, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns one course with its derived instructor name.
func (s *CourseService) Get(id int) (*models.CourseDetail, error) {
	course, err := s.repo.GetCourse(id)
	if err != nil {
		return nil, mapRepositoryError(err, "course not found")
	}
	return course, nil
}

// Create registers a new course.
func (s *CourseService) Create(req CreateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := courseFromRequest(CreateCourseRequest(req))
	created, err := s.repo.AddCourse(course)
	if err != nil {
		return nil, mapRepositoryError(err, "instructor not found")
	}
	return created, nil
}

// Update replaces an existing course record.
func (s *CourseService) Update(id int, req UpdateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := courseFromRequest(CreateCourseRequest(req))
	updated, err := s.repo.UpdateCourse(id, course)
	if err != nil {
		return nil, mapRepositoryError(err, "course not found")
	}
	return updated, nil
}

// Delete removes a course, cascading into enrollments and student lists.
func (s *CourseService) Delete(id int) error {
	if err := s.repo.DeleteCourse(id); err != nil {
		return mapRepositoryError(err, "course not found")
	}
	return nil
}

func courseFromRequest(req CreateCourseRequest) models.Course {
	status := req.Status
	if status == "" {
		status = models.CourseStatusActive
	}
	return models.Course{
		Name:         req.Name,
		Description:  req.Description,
		InstructorID: req.InstructorID,
		Category:     req.Category,
		Level:        req.Level,
		Status:       status,
		Capacity:     req.Capacity,
		Price:        req.Price,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AIGenerated:  req.AIGenerated,
		Popularity:   req.Popularity,
		Tags:         req.Tags,
	}
}

func paginationFor(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

func mapRepositoryError(err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMessage)
	case errors.Is(err, repository.ErrCapacityFull):
		return appErrors.Clone(appErrors.ErrCapacityFull, "")
	case errors.Is(err, repository.ErrDuplicateEnrollment):
		return appErrors.Clone(appErrors.ErrConflict, "student already enrolled in this course")
	case errors.Is(err, repository.ErrMalformedDocument):
		return appErrors.Clone(appErrors.ErrMalformedDocument, "")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "operation failed")
	}
}
