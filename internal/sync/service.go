package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/baula-dev/baula-sync/internal/feed"
	"github.com/baula-dev/baula-sync/internal/models"
	appErrors "github.com/baula-dev/baula-sync/pkg/errors"
)

// FeedSource fetches the raw catalog document for a semester.
type FeedSource interface {
	FetchCatalog(ctx context.Context, semester models.Semester) (string, error)
}

// CourseStore is the persisted-store contract for courses and their owned
// collections. Replace operations rewrite the whole collection.
type CourseStore interface {
	ListBySemester(ctx context.Context, semester string) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	UpdateScalars(ctx context.Context, id, semester string, values map[string]interface{}, lastUpdated time.Time) error
	ReplaceTerms(ctx context.Context, id, semester string, terms []models.Term) error
	ReplaceCompetences(ctx context.Context, id, semester string, competences []models.CompetenceFulfillment) error
	ReplaceStaffLinks(ctx context.Context, id, semester string, personIDs []string) error
	DeleteByIDs(ctx context.Context, semester string, ids []string) (int, error)
}

// RoomStore upserts rooms keyed by external id.
type RoomStore interface {
	Upsert(ctx context.Context, room models.Room) error
}

// PersonStore upserts persons keyed by external id.
type PersonStore interface {
	Upsert(ctx context.Context, person models.Person) error
}

// LinkStore adds association rows, skipping duplicates, and reports how many
// rows were actually inserted.
type LinkStore interface {
	AddStaffLinks(ctx context.Context, links []models.StaffLink) (int, error)
	AddCompetenceLinks(ctx context.Context, links []models.CompetenceFulfillment) (int, error)
	AddModuleLinks(ctx context.Context, links []models.ModuleCourseLink) (int, error)
}

// ModuleCourseCatalog lists the read-only module-curriculum entries used for
// heuristic matching.
type ModuleCourseCatalog interface {
	List(ctx context.Context) ([]models.ModuleCourse, error)
}

// RunGuard serialises runs per semester.
type RunGuard interface {
	Acquire(ctx context.Context, semester string) (bool, error)
	Release(ctx context.Context, semester string) error
}

// ReportSink receives the finished run report.
type ReportSink interface {
	Save(ctx context.Context, report *models.SyncReport) error
}

// RunObserver records run metrics.
type RunObserver interface {
	ObserveRun(report *models.SyncReport, duration time.Duration, failed bool)
}

// Service drives one catalog synchronisation run end to end: fetch, map,
// resolve hierarchy, reconcile against the persisted snapshot, rebuild
// relationships and report.
type Service struct {
	source  FeedSource
	courses CourseStore
	rooms   RoomStore
	persons PersonStore
	links   LinkStore
	catalog ModuleCourseCatalog
	guard   RunGuard
	reports ReportSink
	metrics RunObserver
	logger  *zap.Logger
	rules   []MatchRule
	now     func() time.Time
}

// NewService wires a sync service. Reports, metrics and the run guard are
// optional; everything else is required.
func NewService(
	source FeedSource,
	courses CourseStore,
	rooms RoomStore,
	persons PersonStore,
	links LinkStore,
	catalog ModuleCourseCatalog,
	guard RunGuard,
	reports ReportSink,
	metrics RunObserver,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:  source,
		courses: courses,
		rooms:   rooms,
		persons: persons,
		links:   links,
		catalog: catalog,
		guard:   guard,
		reports: reports,
		metrics: metrics,
		logger:  logger,
		rules:   moduleMatchRules,
		now:     time.Now,
	}
}

// Run executes a full synchronisation for one semester. Fatal conditions
// (feed unavailable, mapping failure, snapshot load failure, malformed
// record) abort the run before or mid-pass; per-course write failures are
// recorded and skipped.
func (s *Service) Run(ctx context.Context, semester models.Semester) (*models.SyncReport, error) {
	if s.guard != nil {
		acquired, err := s.guard.Acquire(ctx, semester.String())
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, appErrors.ErrSyncRunning
		}
		defer func() {
			if err := s.guard.Release(context.WithoutCancel(ctx), semester.String()); err != nil {
				s.logger.Sugar().Warnw("failed to release sync lease", "semester", semester, "error", err)
			}
		}()
	}

	report := &models.SyncReport{Semester: semester.String(), StartedAt: s.now().UTC()}

	err := s.run(ctx, semester, report)
	report.FinishedAt = s.now().UTC()

	if s.metrics != nil {
		s.metrics.ObserveRun(report, report.FinishedAt.Sub(report.StartedAt), err != nil)
	}
	if err != nil {
		s.logger.Sugar().Errorw("sync run failed", "semester", semester, "error", err)
		return nil, err
	}

	if s.reports != nil {
		if saveErr := s.reports.Save(ctx, report); saveErr != nil {
			s.logger.Sugar().Warnw("failed to store sync report", "semester", semester, "error", saveErr)
		}
	}

	for _, line := range report.Messages() {
		s.logger.Sugar().Infow(line, "semester", semester)
	}
	return report, nil
}

func (s *Service) run(ctx context.Context, semester models.Semester, report *models.SyncReport) error {
	raw, err := s.source.FetchCatalog(ctx, semester)
	if err != nil {
		return err
	}

	catalog, err := feed.MapCatalog(raw)
	if err != nil {
		return err
	}

	for _, room := range catalog.Rooms {
		if err := s.rooms.Upsert(ctx, room); err != nil {
			return err
		}
		report.RoomsUpserted++
	}
	for _, person := range catalog.Persons {
		if err := s.persons.Upsert(ctx, person); err != nil {
			return err
		}
		report.PersonsUpserted++
	}

	// Load the full old snapshot before any course write; the reconciliation
	// decisions of this run all derive from this one consistent read.
	oldCourses, err := s.courses.ListBySemester(ctx, semester.String())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load persisted courses")
	}
	oldSet := make(map[string]*models.Course, len(oldCourses))
	for i := range oldCourses {
		oldSet[oldCourses[i].ID] = &oldCourses[i]
	}

	moduleCourses, err := s.catalog.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load module-course catalog")
	}

	now := s.now()
	parents := &parentSet{}

	for i := range catalog.Courses {
		record := &catalog.Courses[i]
		if record.IsCopy() {
			continue
		}
		if record.IsParent() {
			parents.add(*record)
			continue
		}

		course := record.ToModel(semester, now)
		if course.ID == "" {
			// catalog integrity is a hard precondition
			return appErrors.Clone(appErrors.ErrMalformedRecord, "course record with empty id")
		}
		course.Competences = fulfillments(course.ID, course.Semester, course.Organizational)
		if parent := parents.find(course.ID); parent != nil {
			enrichFromParent(&course, parent, semester, now)
		}

		old := oldSet[course.ID]
		delete(oldSet, course.ID)

		if err := s.applyCourse(ctx, &course, old, moduleCourses, report); err != nil {
			report.Fail(course.ID, err)
			s.logger.Sugar().Errorw("course sync failed", "course", course.ID, "semester", semester, "error", err)
		}
	}

	return s.deleteLeftovers(ctx, semester, oldCourses, oldSet, report)
}

// applyCourse classifies one course against the old snapshot and performs
// the resulting writes. Any returned error is a recoverable per-course
// failure.
func (s *Service) applyCourse(ctx context.Context, course, old *models.Course, moduleCourses []models.ModuleCourse, report *models.SyncReport) error {
	if old == nil {
		if err := s.courses.Create(ctx, course); err != nil {
			return err
		}
		report.CoursesAdded++
		report.Logf("Added %s - %s", course.ID, course.Name)
		return s.buildRelationships(ctx, course, moduleCourses, report)
	}

	change := diffCourse(course, old)
	if !change.HasChanges() {
		return nil
	}

	if err := s.applyUpdate(ctx, course, change, report); err != nil {
		return err
	}
	report.CoursesUpdated++
	return s.buildRelationships(ctx, course, moduleCourses, report)
}

func (s *Service) applyUpdate(ctx context.Context, course *models.Course, change CourseChange, report *models.SyncReport) error {
	if err := s.courses.UpdateScalars(ctx, course.ID, course.Semester, change.Scalars, course.LastUpdated); err != nil {
		return err
	}
	for _, field := range change.ChangedFields {
		report.Logf("%s - update in %s", course.ID, field)
	}

	if change.TermsChanged {
		if err := s.courses.ReplaceTerms(ctx, course.ID, course.Semester, course.Terms); err != nil {
			return err
		}
		report.Logf("%s - update of terms", course.ID)
	}
	if change.CompetencesChanged {
		if err := s.courses.ReplaceCompetences(ctx, course.ID, course.Semester, course.Competences); err != nil {
			return err
		}
		report.Logf("%s - update of competence", course.ID)
	}
	if change.StaffChanged {
		if err := s.courses.ReplaceStaffLinks(ctx, course.ID, course.Semester, course.InstructorIDs); err != nil {
			return err
		}
		report.Logf("%s - update of teachers", course.ID)
	}
	return nil
}

// buildRelationships (re)creates the staff, competence and module-course
// links of a course with idempotent inserts.
func (s *Service) buildRelationships(ctx context.Context, course *models.Course, moduleCourses []models.ModuleCourse, report *models.SyncReport) error {
	staff := make([]models.StaffLink, 0, len(course.InstructorIDs))
	for _, pid := range course.InstructorIDs {
		staff = append(staff, models.StaffLink{PID: pid, CourseID: course.ID, Semester: course.Semester})
	}
	if len(staff) > 0 {
		added, err := s.links.AddStaffLinks(ctx, staff)
		if err != nil {
			return err
		}
		report.StaffLinks += added
	}

	if len(course.Competences) > 0 {
		added, err := s.links.AddCompetenceLinks(ctx, course.Competences)
		if err != nil {
			return err
		}
		report.CompetenceLinks += added
	}

	var moduleLinks []models.ModuleCourseLink
	for i := range moduleCourses {
		if matchesModuleCourse(course, &moduleCourses[i], s.rules) {
			moduleLinks = append(moduleLinks, models.ModuleCourseLink{
				MCID:     moduleCourses[i].MCID,
				CourseID: course.ID,
				Semester: course.Semester,
			})
		}
	}
	if len(moduleLinks) > 0 {
		added, err := s.links.AddModuleLinks(ctx, moduleLinks)
		if err != nil {
			return err
		}
		report.ModuleLinks += added
	}

	return nil
}

// deleteLeftovers removes every course left in the old set after the pass,
// cascading its owned terms and competence rows.
func (s *Service) deleteLeftovers(ctx context.Context, semester models.Semester, oldCourses []models.Course, oldSet map[string]*models.Course, report *models.SyncReport) error {
	if len(oldSet) == 0 {
		return nil
	}

	ids := make([]string, 0, len(oldSet))
	for i := range oldCourses {
		if _, ok := oldSet[oldCourses[i].ID]; ok {
			ids = append(ids, oldCourses[i].ID)
		}
	}

	deleted, err := s.courses.DeleteByIDs(ctx, semester.String(), ids)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete vanished courses")
	}
	report.CoursesDeleted = deleted

	for i := range oldCourses {
		if _, ok := oldSet[oldCourses[i].ID]; ok {
			report.Logf("Removed %s - %s", oldCourses[i].ID, oldCourses[i].Name)
		}
	}
	return nil
}
