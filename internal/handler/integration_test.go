package handler

import (
	"bytes"
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/repair"
	"github.com/noah-isme/coursedesk-api/internal/repository"
	"github.com/noah-isme/coursedesk-api/internal/service"
)

type memBackend struct {
	values map[string]string
}

func (m *memBackend) Probe(_ context.Context) bool { return true }

func (m *memBackend) Read(_ context.Context, key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *memBackend) Write(_ context.Context, key, value string) bool {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return true
}

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	repo := repository.New(
		&memBackend{},
		repair.New(rand.New(rand.NewSource(1)), logger),
		repository.Config{PrimaryKey: "primary", BackupKey: "backup"},
		logger,
	)
	repo.Load(context.Background())

	h := Handlers{
		Courses:     NewCourseHandler(service.NewCourseService(repo, nil, logger)),
		Students:    NewStudentHandler(service.NewStudentService(repo, nil, logger)),
		Instructors: NewInstructorHandler(service.NewInstructorService(repo, nil, logger)),
		Enrollments: NewEnrollmentHandler(service.NewEnrollmentService(repo, nil, logger)),
		Dataset:     NewDatasetHandler(service.NewDatasetService(repo, logger)),
		Exports:     NewExportHandler(service.NewExportService(repo, nil, service.ExportConfig{}, logger)),
	}

	r := gin.New()
	RegisterRoutes(r, "/api", h)
	return r
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCourseRoutesIntegration(t *testing.T) {
	router := buildRouter(t)

	t.Run("list seeded courses", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/courses", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"pagination"`)
	})

	t.Run("create course", func(t *testing.T) {
		payload := `{"name":"Test Driven Go","category":"Programming","level":"Intermediate","capacity":20,"price":99.5}`
		req, _ := http.NewRequest(http.MethodPost, "/api/courses", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"Test Driven Go"`)
	})

	t.Run("create course invalid payload", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/courses", bytes.NewBufferString(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("get missing course", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/courses/9999", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("non numeric id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/courses/abc", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestDatasetRoutesIntegration(t *testing.T) {
	router := buildRouter(t)

	t.Run("status reports availability", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/dataset/status", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"storageAvailable":true`)
	})

	t.Run("save succeeds", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/dataset/save", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("import rejects malformed document", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/dataset/import", bytes.NewBufferString(`{"foo":1}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("export carries version", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/dataset/export", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"version":"1.0.0"`)
	})

	t.Run("settings roundtrip", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(`{"autoSuggestions":false,"smartScheduling":true,"contentGeneration":true,"confidenceThreshold":0.5}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"confidenceThreshold":0.5`)
	})
}

func TestExportRoutesIntegration(t *testing.T) {
	router := buildRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/exports/courses?format=csv", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, resp.Body.String(), "ID,Name,Category")
}
