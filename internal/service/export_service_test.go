package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
)

type mockRosterRepo struct {
	courses  []models.CourseDetail
	students []models.Student
}

func (m *mockRosterRepo) ListCourses(filter models.CourseFilter) ([]models.CourseDetail, int) {
	return m.courses, len(m.courses)
}

func (m *mockRosterRepo) ListStudents(filter models.StudentFilter) ([]models.Student, int) {
	return m.students, len(m.students)
}

type memExportStorage struct {
	mu           sync.Mutex
	files        map[string][]byte
	cleanupCalls int
	cleanupTTL   time.Duration
}

func (m *memExportStorage) Save(filename string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[filename] = data
	return filename, nil
}

func (m *memExportStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupCalls++
	m.cleanupTTL = ttl
	return nil, nil
}

func (m *memExportStorage) cleanups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupCalls
}

func rosterFixture() *mockRosterRepo {
	detail := models.CourseDetail{Instructor: "Dr. Sarah Chen"}
	detail.ID = 1
	detail.Name = "Intro to Go"
	detail.Category = "Programming"
	detail.Level = models.LevelBeginner
	detail.Status = models.CourseStatusActive
	detail.Capacity = 30
	detail.Enrolled = 2
	detail.Price = 49.99
	return &mockRosterRepo{
		courses: []models.CourseDetail{detail},
		students: []models.Student{{
			ID:      1,
			Name:    "Alice Johnson",
			Email:   "alice@example.com",
			Status:  models.StudentStatusActive,
			Level:   models.LevelBeginner,
			Courses: []int{1, 3},
		}},
	}
}

func TestExportServiceCourseRosterCSV(t *testing.T) {
	storage := &memExportStorage{}
	svc := NewExportService(rosterFixture(), storage, ExportConfig{}, zap.NewNop())

	result, err := svc.CourseRoster("csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "courses-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Data)
	assert.Contains(t, body, "ID,Name,Category,Level,Status,Instructor,Enrolled,Capacity,Price")
	assert.Contains(t, body, "Intro to Go")
	assert.Contains(t, body, "Dr. Sarah Chen")

	stored, ok := storage.files[result.Filename]
	require.True(t, ok)
	assert.Equal(t, result.Data, stored)
}

func TestExportServiceStudentRosterPDF(t *testing.T) {
	svc := NewExportService(rosterFixture(), &memExportStorage{}, ExportConfig{}, zap.NewNop())

	result, err := svc.StudentRoster("pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc := NewExportService(rosterFixture(), &memExportStorage{}, ExportConfig{}, zap.NewNop())

	result, err := svc.CourseRoster("")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportServiceCleanupLoopSweepsOnInterval(t *testing.T) {
	storage := &memExportStorage{}
	svc := NewExportService(rosterFixture(), storage, ExportConfig{
		ResultTTL:       time.Hour,
		CleanupInterval: 10 * time.Millisecond,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.StartCleanup(ctx)

	deadline := time.After(2 * time.Second)
	for storage.cleanups() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected repeated cleanup sweeps, got %d", storage.cleanups())
		case <-time.After(5 * time.Millisecond):
		}
	}

	storage.mu.Lock()
	assert.Equal(t, time.Hour, storage.cleanupTTL)
	storage.mu.Unlock()
}

func TestExportServiceCleanupLoopNoopWithoutStorage(t *testing.T) {
	svc := NewExportService(rosterFixture(), nil, ExportConfig{}, zap.NewNop())

	// Must return immediately and not panic on a nil storage handle.
	ctx, cancel := context.WithCancel(context.Background())
	svc.StartCleanup(ctx)
	cancel()
	svc.Cleanup()
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(rosterFixture(), &memExportStorage{}, ExportConfig{}, zap.NewNop())

	_, err := svc.CourseRoster("xlsx")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
