package models

import (
	"fmt"
	"time"
)

// CourseFailure records one course that could not be classified or written
// during a sync run. Failures do not abort the run.
type CourseFailure struct {
	CourseID string `json:"courseId"`
	Message  string `json:"message"`
}

// SyncReport is the structured result of one synchronisation run.
type SyncReport struct {
	Semester   string    `json:"semester"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	RoomsUpserted   int `json:"roomsUpserted"`
	PersonsUpserted int `json:"personsUpserted"`
	CoursesAdded    int `json:"coursesAdded"`
	CoursesUpdated  int `json:"coursesUpdated"`
	CoursesDeleted  int `json:"coursesDeleted"`
	StaffLinks      int `json:"staffLinksAdded"`
	CompetenceLinks int `json:"competenceLinksAdded"`
	ModuleLinks     int `json:"moduleLinksAdded"`
	ErrorCount      int `json:"errorCount"`

	// ChangeLog holds one human-readable line per create/update/delete.
	ChangeLog []string        `json:"changeLog"`
	Failures  []CourseFailure `json:"failures,omitempty"`
}

// Fail records a per-course failure.
func (r *SyncReport) Fail(courseID string, err error) {
	r.ErrorCount++
	r.Failures = append(r.Failures, CourseFailure{CourseID: courseID, Message: err.Error()})
}

// Logf appends a formatted change-log line.
func (r *SyncReport) Logf(format string, args ...interface{}) {
	r.ChangeLog = append(r.ChangeLog, fmt.Sprintf(format, args...))
}

// Messages renders the report as the log-line sequence consumed by the admin
// panel: entity counts, error count, the per-course change log, and the
// elapsed wall time.
func (r *SyncReport) Messages() []string {
	msgs := []string{
		fmt.Sprintf("%d Rooms updated", r.RoomsUpserted),
		fmt.Sprintf("%d Persons updated", r.PersonsUpserted),
		fmt.Sprintf("%d Courses added", r.CoursesAdded),
		fmt.Sprintf("%d Courses updated", r.CoursesUpdated),
		fmt.Sprintf("%d Courses deleted", r.CoursesDeleted),
		fmt.Sprintf("%d Connections to Persons added", r.StaffLinks),
		fmt.Sprintf("%d Connections to Competences added", r.CompetenceLinks),
		fmt.Sprintf("%d Connections to Modules added", r.ModuleLinks),
		fmt.Sprintf("%d Errors occurred", r.ErrorCount),
	}
	msgs = append(msgs, r.ChangeLog...)

	elapsed := int(r.FinishedAt.Sub(r.StartedAt).Seconds())
	minutes := elapsed / 60
	seconds := elapsed - minutes*60
	msgs = append(msgs, fmt.Sprintf("%d Minutes and %d Seconds to process", minutes, seconds))
	return msgs
}
