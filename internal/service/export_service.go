package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
	"github.com/noah-isme/coursedesk-api/pkg/export"
)

// rosterPageSize is large enough to cover any realistic local dataset.
const rosterPageSize = 10000

type rosterRepository interface {
	ListCourses(filter models.CourseFilter) ([]models.CourseDetail, int)
	ListStudents(filter models.StudentFilter) ([]models.Student, int)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RosterResult carries one rendered export.
type RosterResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportConfig tunes roster export behaviour.
type ExportConfig struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ExportService renders course and student rosters to CSV or PDF and keeps a
// copy under the export directory.
type ExportService struct {
	repo    rosterRepository
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(repo rosterRepository, storage fileStorage, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	return &ExportService{
		repo:    repo,
		storage: storage,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		cfg:     cfg,
	}
}

// CourseRoster renders the full course list as "csv" or "pdf".
func (s *ExportService) CourseRoster(format string) (*RosterResult, error) {
	courses, _ := s.repo.ListCourses(models.CourseFilter{PageSize: rosterPageSize})

	data := export.Dataset{
		Headers: []string{"ID", "Name", "Category", "Level", "Status", "Instructor", "Enrolled", "Capacity", "Price"},
	}
	for _, c := range courses {
		data.Rows = append(data.Rows, map[string]string{
			"ID":         strconv.Itoa(c.ID),
			"Name":       c.Name,
			"Category":   c.Category,
			"Level":      string(c.Level),
			"Status":     string(c.Status),
			"Instructor": c.Instructor,
			"Enrolled":   strconv.Itoa(c.Enrolled),
			"Capacity":   strconv.Itoa(c.Capacity),
			"Price":      fmt.Sprintf("%.2f", c.Price),
		})
	}
	return s.render("courses", "Course Roster", format, data)
}

// StudentRoster renders the full student list as "csv" or "pdf".
func (s *ExportService) StudentRoster(format string) (*RosterResult, error) {
	students, _ := s.repo.ListStudents(models.StudentFilter{PageSize: rosterPageSize})

	data := export.Dataset{
		Headers: []string{"ID", "Name", "Email", "Status", "Level", "Courses"},
	}
	for _, st := range students {
		ids := make([]string, 0, len(st.Courses))
		for _, id := range st.Courses {
			ids = append(ids, strconv.Itoa(id))
		}
		data.Rows = append(data.Rows, map[string]string{
			"ID":      strconv.Itoa(st.ID),
			"Name":    st.Name,
			"Email":   st.Email,
			"Status":  string(st.Status),
			"Level":   string(st.Level),
			"Courses": strings.Join(ids, " "),
		})
	}
	return s.render("students", "Student Roster", format, data)
}

// StartCleanup runs Cleanup once right away and then on every interval tick
// until the context is cancelled. No-op without a storage directory.
func (s *ExportService) StartCleanup(ctx context.Context) {
	if s.storage == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(s.cfg.CleanupInterval)
		defer ticker.Stop()
		s.Cleanup()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}

// Cleanup removes rendered exports older than the configured TTL.
func (s *ExportService) Cleanup() {
	if s.storage == nil {
		return
	}
	deleted, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("export cleanup removed files", zap.Int("count", len(deleted)))
	}
}

func (s *ExportService) render(name, title, format string, data export.Dataset) (*RosterResult, error) {
	var (
		payload     []byte
		err         error
		contentType string
		ext         string
	)
	switch format {
	case "csv", "":
		payload, err = s.csv.Render(data)
		contentType = "text/csv"
		ext = "csv"
	case "pdf":
		payload, err = s.pdf.Render(data, title)
		contentType = "application/pdf"
		ext = "pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s-%s.%s", name, uuid.NewString(), ext)
	if s.storage != nil {
		if _, err := s.storage.Save(filename, payload); err != nil {
			s.logger.Warn("failed to persist export copy", zap.String("filename", filename), zap.Error(err))
		}
	}

	return &RosterResult{Filename: filename, ContentType: contentType, Data: payload}, nil
}
