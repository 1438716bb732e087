package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type instructorRepository interface {
	ListInstructors(filter models.InstructorFilter) ([]models.Instructor, int)
	GetInstructor(id int) (*models.Instructor, error)
	AddInstructor(instructor models.Instructor) (*models.Instructor, error)
	UpdateInstructor(id int, instructor models.Instructor) (*models.Instructor, error)
	DeleteInstructor(id int) error
}

// CreateInstructorRequest holds payload for creating instructors.
type CreateInstructorRequest struct {
	Name         string                  `json:"name" validate:"required"`
	Email        string                  `json:"email" validate:"required,email"`
	Phone        string                  `json:"phone"`
	Department   string                  `json:"department"`
	Expertise    []string                `json:"expertise"`
	Experience   int                     `json:"experience" validate:"gte=0"`
	Bio          string                  `json:"bio"`
	Status       models.InstructorStatus `json:"status" validate:"omitempty,oneof=Active Inactive 'On Leave'"`
	Rating       *float64                `json:"rating" validate:"omitempty,gte=0,lte=5"`
	AIOptimized  bool                    `json:"ai_optimized"`
	Availability []string                `json:"availability"`
}

// UpdateInstructorRequest holds payload for updating instructors.
type UpdateInstructorRequest CreateInstructorRequest

// InstructorService handles instructor use-cases.
type InstructorService struct {
	repo      instructorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, validator: validate, logger: logger}
}

// List returns instructors and pagination metadata.
func (s *InstructorService) List(filter models.InstructorFilter) ([]models.Instructor, *models.Pagination, error) {
	instructors, total := s.repo.ListInstructors(filter)
	return instructors, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns one instructor.
func (s *InstructorService) Get(id int) (*models.Instructor, error) {
	instructor, err := s.repo.GetInstructor(id)
	if err != nil {
		return nil, mapRepositoryError(err, "instructor not found")
	}
	return instructor, nil
}

// Create registers a new instructor.
func (s *InstructorService) Create(req CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	created, err := s.repo.AddInstructor(instructorFromRequest(req))
	if err != nil {
		return nil, mapRepositoryError(err, "instructor not found")
	}
	return created, nil
}

// Update replaces an existing instructor record. Courses referencing the
// instructor pick up a name change automatically since the display name is
// derived on read.
func (s *InstructorService) Update(id int, req UpdateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	existing, err := s.repo.GetInstructor(id)
	if err != nil {
		return nil, mapRepositoryError(err, "instructor not found")
	}
	instructor := instructorFromRequest(CreateInstructorRequest(req))
	instructor.Courses = existing.Courses
	updated, err := s.repo.UpdateInstructor(id, instructor)
	if err != nil {
		return nil, mapRepositoryError(err, "instructor not found")
	}
	return updated, nil
}

// Delete removes an instructor; their courses survive unassigned.
func (s *InstructorService) Delete(id int) error {
	if err := s.repo.DeleteInstructor(id); err != nil {
		return mapRepositoryError(err, "instructor not found")
	}
	return nil
}

func instructorFromRequest(req CreateInstructorRequest) models.Instructor {
	status := req.Status
	if status == "" {
		status = models.InstructorStatusActive
	}
	return models.Instructor{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		Expertise:    models.Expertise(req.Expertise),
		Experience:   req.Experience,
		Bio:          req.Bio,
		Status:       status,
		Rating:       req.Rating,
		AIOptimized:  req.AIOptimized,
		Availability: req.Availability,
	}
}
