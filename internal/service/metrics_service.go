package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface
// and the persistence subsystem.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	loadTotal       *prometheus.CounterVec
	saveTotal       *prometheus.CounterVec
	backupTotal     *prometheus.CounterVec
	datasetSize     *prometheus.GaugeVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	loadTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_loads_total",
		Help: "Dataset loads by source slot (primary, backup, seed)",
	}, []string{"source"})

	saveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_saves_total",
		Help: "Primary slot writes by result",
	}, []string{"result"})

	backupTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_backup_writes_total",
		Help: "Backup slot writes by result",
	}, []string{"result"})

	datasetSize := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dataset_records",
		Help: "Live record counts per collection",
	}, []string{"collection"})

	registry.MustRegister(requestDuration, requestTotal, loadTotal, saveTotal, backupTotal, datasetSize)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		loadTotal:       loadTotal,
		saveTotal:       saveTotal,
		backupTotal:     backupTotal,
		datasetSize:     datasetSize,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler { return s.handler }

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveLoad records which slot a load resolved from.
func (s *MetricsService) ObserveLoad(source string) {
	s.loadTotal.WithLabelValues(source).Inc()
}

// ObserveSave records a primary slot write.
func (s *MetricsService) ObserveSave(success bool) {
	s.saveTotal.WithLabelValues(result(success)).Inc()
}

// ObserveBackup records a backup slot write.
func (s *MetricsService) ObserveBackup(success bool) {
	s.backupTotal.WithLabelValues(result(success)).Inc()
}

// SetDatasetSizes updates the live collection gauges.
func (s *MetricsService) SetDatasetSizes(courses, students, instructors, enrollments int) {
	s.datasetSize.WithLabelValues("courses").Set(float64(courses))
	s.datasetSize.WithLabelValues("students").Set(float64(students))
	s.datasetSize.WithLabelValues("instructors").Set(float64(instructors))
	s.datasetSize.WithLabelValues("enrollments").Set(float64(enrollments))
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
