package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type studentRepository interface {
	ListStudents(filter models.StudentFilter) ([]models.Student, int)
	GetStudent(id int) (*models.Student, error)
	AddStudent(student models.Student) (*models.Student, error)
	UpdateStudent(id int, student models.Student) (*models.Student, error)
	DeleteStudent(id int) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	Name      string               `json:"name" validate:"required"`
	Email     string               `json:"email" validate:"required,email"`
	Phone     string               `json:"phone"`
	Address   string               `json:"address"`
	Status    models.StudentStatus `json:"status" validate:"omitempty,oneof=Active Inactive Graduated"`
	Level     models.CourseLevel   `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Interests []string             `json:"interests"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest CreateStudentRequest

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total := s.repo.ListStudents(filter)
	return students, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns one student.
func (s *StudentService) Get(id int) (*models.Student, error) {
	student, err := s.repo.GetStudent(id)
	if err != nil {
		return nil, mapRepositoryError(err, "student not found")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	created, err := s.repo.AddStudent(studentFromRequest(req))
	if err != nil {
		return nil, mapRepositoryError(err, "student not found")
	}
	return created, nil
}

// Update replaces an existing student record, preserving the embedded course
// list tracked by enrollments.
func (s *StudentService) Update(id int, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	existing, err := s.repo.GetStudent(id)
	if err != nil {
		return nil, mapRepositoryError(err, "student not found")
	}
	student := studentFromRequest(CreateStudentRequest(req))
	student.Courses = existing.Courses
	student.AIRecommendations = existing.AIRecommendations
	student.LearningPath = existing.LearningPath
	updated, err := s.repo.UpdateStudent(id, student)
	if err != nil {
		return nil, mapRepositoryError(err, "student not found")
	}
	return updated, nil
}

// Delete removes a student, cascading into their enrollments.
func (s *StudentService) Delete(id int) error {
	if err := s.repo.DeleteStudent(id); err != nil {
		return mapRepositoryError(err, "student not found")
	}
	return nil
}

func studentFromRequest(req CreateStudentRequest) models.Student {
	status := req.Status
	if status == "" {
		status = models.StudentStatusActive
	}
	level := req.Level
	if level == "" {
		level = models.LevelBeginner
	}
	return models.Student{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    status,
		Level:     level,
		Interests: req.Interests,
	}
}
