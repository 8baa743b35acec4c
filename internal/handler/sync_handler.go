package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/baula-dev/baula-sync/internal/models"
	appErrors "github.com/baula-dev/baula-sync/pkg/errors"
	"github.com/baula-dev/baula-sync/pkg/export"
	"github.com/baula-dev/baula-sync/pkg/jobs"
	"github.com/baula-dev/baula-sync/pkg/response"
)

type reportLoader interface {
	Load(ctx context.Context, semester string) (*models.SyncReport, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type leaseChecker interface {
	Held(ctx context.Context, semester string) (bool, error)
}

// SyncHandler exposes the catalog synchronisation endpoints.
type SyncHandler struct {
	queue    jobEnqueuer
	lease    leaseChecker
	reports  reportLoader
	validate *validator.Validate
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewSyncHandler constructs the handler. The lease checker may be nil; the
// run guard inside the engine still rejects overlapping runs.
func NewSyncHandler(queue jobEnqueuer, lease leaseChecker, reports reportLoader, validate *validator.Validate) *SyncHandler {
	return &SyncHandler{
		queue:    queue,
		lease:    lease,
		reports:  reports,
		validate: validate,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// JobTypeSync is the queue job type for semester synchronisation runs.
const JobTypeSync = "catalog_sync"

// Trigger godoc
// @Summary Start a catalog synchronisation run
// @Tags Sync
// @Produce json
// @Param semester path string true "Semester, e.g. 2026s"
// @Success 202 {object} response.Envelope
// @Router /admin/sync/{semester} [post]
func (h *SyncHandler) Trigger(c *gin.Context) {
	semester, err := models.ParseSemester(c.Param("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.lease != nil {
		held, err := h.lease.Held(c.Request.Context(), semester.String())
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check sync lease"))
			return
		}
		if held {
			response.Error(c, appErrors.ErrSyncRunning)
			return
		}
	}

	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    JobTypeSync,
		Payload: semester,
	}
	if err := h.queue.Enqueue(job); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enqueue sync run"))
		return
	}

	response.Accepted(c, gin.H{"jobId": job.ID, "semester": semester})
}

// Report godoc
// @Summary Latest synchronisation report for a semester
// @Tags Sync
// @Produce json
// @Param semester path string true "Semester, e.g. 2026s"
// @Success 200 {object} response.Envelope
// @Router /admin/sync/{semester}/report [get]
func (h *SyncHandler) Report(c *gin.Context) {
	report, err := h.loadReport(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

type exportQuery struct {
	Format string `form:"format" validate:"required,oneof=csv pdf"`
}

// ExportReport godoc
// @Summary Download a synchronisation report as CSV or PDF
// @Tags Sync
// @Produce text/csv,application/pdf
// @Param semester path string true "Semester, e.g. 2026s"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /admin/sync/{semester}/report/export [get]
func (h *SyncHandler) ExportReport(c *gin.Context) {
	var query exportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query"))
		return
	}
	if err := h.validate.Struct(query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf"))
		return
	}

	report, err := h.loadReport(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sync-report-%s.%s", report.Semester, query.Format)
	title := fmt.Sprintf("Sync report %s", report.Semester)

	switch query.Format {
	case "csv":
		payload, err := h.csv.Render(reportDataset(report))
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", payload)
	default:
		payload, err := h.pdf.RenderLines(title, report.Messages())
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", payload)
	}
}

func (h *SyncHandler) loadReport(c *gin.Context) (*models.SyncReport, error) {
	semester, err := models.ParseSemester(c.Param("semester"))
	if err != nil {
		return nil, err
	}
	report, err := h.reports.Load(c.Request.Context(), semester.String())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load sync report")
	}
	if report == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no report for semester")
	}
	return report, nil
}

func reportDataset(report *models.SyncReport) export.Dataset {
	rows := []map[string]string{
		{"metric": "rooms_upserted", "value": fmt.Sprintf("%d", report.RoomsUpserted)},
		{"metric": "persons_upserted", "value": fmt.Sprintf("%d", report.PersonsUpserted)},
		{"metric": "courses_added", "value": fmt.Sprintf("%d", report.CoursesAdded)},
		{"metric": "courses_updated", "value": fmt.Sprintf("%d", report.CoursesUpdated)},
		{"metric": "courses_deleted", "value": fmt.Sprintf("%d", report.CoursesDeleted)},
		{"metric": "staff_links", "value": fmt.Sprintf("%d", report.StaffLinks)},
		{"metric": "competence_links", "value": fmt.Sprintf("%d", report.CompetenceLinks)},
		{"metric": "module_links", "value": fmt.Sprintf("%d", report.ModuleLinks)},
		{"metric": "errors", "value": fmt.Sprintf("%d", report.ErrorCount)},
	}
	for _, line := range report.ChangeLog {
		rows = append(rows, map[string]string{"metric": "change", "value": line})
	}
	for _, failure := range report.Failures {
		rows = append(rows, map[string]string{"metric": "failed_course", "value": fmt.Sprintf("%s: %s", failure.CourseID, failure.Message)})
	}
	return export.Dataset{Headers: []string{"metric", "value"}, Rows: rows}
}
