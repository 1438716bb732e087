package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type enrollmentRepository interface {
	ListEnrollments(filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int)
	AddEnrollment(enrollment models.Enrollment) (*models.Enrollment, error)
	UpdateEnrollmentStatus(studentID, courseID int, status models.EnrollmentStatus, progress *int) error
	UpdateEnrollmentProgress(studentID, courseID, progress int) error
}

// EnrollStudentRequest describes enrollment creation payload.
type EnrollStudentRequest struct {
	StudentID      int    `json:"student_id" validate:"required,gt=0"`
	CourseID       int    `json:"course_id" validate:"required,gt=0"`
	EnrollmentDate string `json:"enrollment_date"`
	AISuggested    *bool  `json:"ai_suggested"`
}

// UpdateEnrollmentStatusRequest transitions an Active enrollment.
type UpdateEnrollmentStatusRequest struct {
	Status   models.EnrollmentStatus `json:"status" validate:"required,oneof=Completed Dropped"`
	Progress *int                    `json:"progress" validate:"omitempty,gte=0,lte=100"`
}

// UpdateEnrollmentProgressRequest updates progress on an Active enrollment.
type UpdateEnrollmentProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

// EnrollmentService orchestrates enrollment workflows.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, validator: validate, logger: logger}
}

// List returns enrollments with pagination metadata.
func (s *EnrollmentService) List(filter models.EnrollmentFilter) ([]models.EnrollmentDetail, *models.Pagination, error) {
	enrollments, total := s.repo.ListEnrollments(filter)
	return enrollments, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Enroll registers a student on a course. Capacity and duplicate checks run
// at enrollment time only; repair never enforces them retroactively.
func (s *EnrollmentService) Enroll(req EnrollStudentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	date := req.EnrollmentDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	created, err := s.repo.AddEnrollment(models.Enrollment{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		EnrollmentDate: date,
		AISuggested:    req.AISuggested,
	})
	if err != nil {
		return nil, mapRepositoryError(err, "student or course not found")
	}
	return created, nil
}

// UpdateStatus transitions the Active enrollment for the pair to a terminal
// state.
func (s *EnrollmentService) UpdateStatus(studentID, courseID int, req UpdateEnrollmentStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if err := s.repo.UpdateEnrollmentStatus(studentID, courseID, req.Status, req.Progress); err != nil {
		return mapRepositoryError(err, "active enrollment not found")
	}
	return nil
}

// UpdateProgress sets progress on the Active enrollment for the pair.
func (s *EnrollmentService) UpdateProgress(studentID, courseID int, req UpdateEnrollmentProgressRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if err := s.repo.UpdateEnrollmentProgress(studentID, courseID, req.Progress); err != nil {
		return mapRepositoryError(err, "active enrollment not found")
	}
	return nil
}
