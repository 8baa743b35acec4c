package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baula-dev/baula-sync/internal/models"
	"github.com/baula-dev/baula-sync/pkg/jobs"
)

type queueStub struct {
	jobs []jobs.Job
	err  error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type leaseStub struct {
	held bool
	err  error
}

func (l *leaseStub) Held(_ context.Context, _ string) (bool, error) {
	return l.held, l.err
}

type reportLoaderStub struct {
	report *models.SyncReport
	err    error
}

func (r *reportLoaderStub) Load(_ context.Context, _ string) (*models.SyncReport, error) {
	return r.report, r.err
}

func newSyncRouter(queue *queueStub, lease *leaseStub, reports *reportLoaderStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSyncHandler(queue, lease, reports, validator.New())
	router := gin.New()
	router.POST("/sync/:semester", h.Trigger)
	router.GET("/sync/:semester/report", h.Report)
	router.GET("/sync/:semester/report/export", h.ExportReport)
	return router
}

func sampleReport() *models.SyncReport {
	return &models.SyncReport{
		Semester:       "2026s",
		CoursesAdded:   2,
		CoursesDeleted: 1,
		ChangeLog:      []string{"Added c1 - Kurs Eins", "Removed c9 - Alter Kurs"},
	}
}

func TestSyncHandlerTriggerEnqueuesJob(t *testing.T) {
	queue := &queueStub{}
	router := newSyncRouter(queue, &leaseStub{}, &reportLoaderStub{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/sync/2026s", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusAccepted, recorder.Code)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobTypeSync, queue.jobs[0].Type)
	assert.Equal(t, models.Semester("2026s"), queue.jobs[0].Payload)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data["jobId"])
	assert.Equal(t, "2026s", body.Data["semester"])
}

func TestSyncHandlerTriggerRejectsBadSemester(t *testing.T) {
	queue := &queueStub{}
	router := newSyncRouter(queue, &leaseStub{}, &reportLoaderStub{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/sync/sommer-2026", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, queue.jobs)
}

func TestSyncHandlerTriggerConflictsWhileRunInProgress(t *testing.T) {
	queue := &queueStub{}
	router := newSyncRouter(queue, &leaseStub{held: true}, &reportLoaderStub{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/sync/2026s", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Empty(t, queue.jobs)
}

func TestSyncHandlerReport(t *testing.T) {
	router := newSyncRouter(&queueStub{}, &leaseStub{}, &reportLoaderStub{report: sampleReport()})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/sync/2026s/report", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data models.SyncReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "2026s", body.Data.Semester)
	assert.Equal(t, 2, body.Data.CoursesAdded)
	assert.Len(t, body.Data.ChangeLog, 2)
}

func TestSyncHandlerReportNotFound(t *testing.T) {
	router := newSyncRouter(&queueStub{}, &leaseStub{}, &reportLoaderStub{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/sync/2026s/report", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSyncHandlerExportCSV(t *testing.T) {
	router := newSyncRouter(&queueStub{}, &leaseStub{}, &reportLoaderStub{report: sampleReport()})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/sync/2026s/report/export?format=csv", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "sync-report-2026s.csv")
	assert.Contains(t, recorder.Body.String(), "courses_added,2")
	assert.Contains(t, recorder.Body.String(), "Added c1 - Kurs Eins")
}

func TestSyncHandlerExportPDF(t *testing.T) {
	router := newSyncRouter(&queueStub{}, &leaseStub{}, &reportLoaderStub{report: sampleReport()})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/sync/2026s/report/export?format=pdf", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.True(t, recorder.Body.Len() > 0)
}

func TestSyncHandlerExportRejectsUnknownFormat(t *testing.T) {
	router := newSyncRouter(&queueStub{}, &leaseStub{}, &reportLoaderStub{report: sampleReport()})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/sync/2026s/report/export?format=xlsx", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
