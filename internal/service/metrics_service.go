package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baula-dev/baula-sync/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic
// and synchronisation runs.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	syncRuns        *prometheus.CounterVec
	syncDuration    prometheus.Histogram
	coursesChanged  *prometheus.CounterVec
	entitiesWritten *prometheus.CounterVec
	linksAdded      *prometheus.CounterVec
	courseErrors    prometheus.Counter
}

// NewMetricsService registers the collectors.
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

	syncRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_runs_total",
		Help: "Total number of catalog synchronisation runs",
	}, []string{"outcome"})

	syncDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_run_duration_seconds",
		Help:    "Duration of catalog synchronisation runs",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
	})

	coursesChanged := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_courses_changed_total",
		Help: "Courses changed by synchronisation runs",
	}, []string{"action"})

	entitiesWritten := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_entities_upserted_total",
		Help: "Rooms and persons written by synchronisation runs",
	}, []string{"entity"})

	linksAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_links_added_total",
		Help: "Association rows added by synchronisation runs",
	}, []string{"kind"})

	courseErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_course_errors_total",
		Help: "Courses skipped due to write failures",
	})

	registry.MustRegister(requestDuration, requestTotal, syncRuns, syncDuration, coursesChanged, entitiesWritten, linksAdded, courseErrors)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		syncRuns:        syncRuns,
		syncDuration:    syncDuration,
		coursesChanged:  coursesChanged,
		entitiesWritten: entitiesWritten,
		linksAdded:      linksAdded,
		courseErrors:    courseErrors,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRun records the outcome and the counters of a finished run.
func (m *MetricsService) ObserveRun(report *models.SyncReport, duration time.Duration, failed bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if failed {
		outcome = "failure"
	}
	m.syncRuns.WithLabelValues(outcome).Inc()
	m.syncDuration.Observe(duration.Seconds())
	if report == nil {
		return
	}
	m.coursesChanged.WithLabelValues("added").Add(float64(report.CoursesAdded))
	m.coursesChanged.WithLabelValues("updated").Add(float64(report.CoursesUpdated))
	m.coursesChanged.WithLabelValues("deleted").Add(float64(report.CoursesDeleted))
	m.entitiesWritten.WithLabelValues("room").Add(float64(report.RoomsUpserted))
	m.entitiesWritten.WithLabelValues("person").Add(float64(report.PersonsUpserted))
	m.linksAdded.WithLabelValues("staff").Add(float64(report.StaffLinks))
	m.linksAdded.WithLabelValues("competence").Add(float64(report.CompetenceLinks))
	m.linksAdded.WithLabelValues("module").Add(float64(report.ModuleLinks))
	m.courseErrors.Add(float64(report.ErrorCount))
}
