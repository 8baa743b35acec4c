package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMessages(t *testing.T) {
	started := time.Date(2026, 4, 1, 3, 0, 0, 0, time.UTC)
	report := &SyncReport{
		Semester:        "2026s",
		StartedAt:       started,
		FinishedAt:      started.Add(2*time.Minute + 17*time.Second),
		RoomsUpserted:   12,
		PersonsUpserted: 34,
		CoursesAdded:    5,
		CoursesUpdated:  6,
		CoursesDeleted:  2,
		StaffLinks:      40,
		CompetenceLinks: 8,
		ModuleLinks:     3,
		ErrorCount:      1,
	}
	report.Logf("Added c1 - %s", "Kurs Eins")
	report.Logf("%s - update in %s", "c2", "name")
	report.Logf("Removed c3 - Kurs Drei")

	msgs := report.Messages()
	require.Len(t, msgs, 13)
	assert.Equal(t, "12 Rooms updated", msgs[0])
	assert.Equal(t, "34 Persons updated", msgs[1])
	assert.Equal(t, "5 Courses added", msgs[2])
	assert.Equal(t, "6 Courses updated", msgs[3])
	assert.Equal(t, "2 Courses deleted", msgs[4])
	assert.Equal(t, "40 Connections to Persons added", msgs[5])
	assert.Equal(t, "8 Connections to Competences added", msgs[6])
	assert.Equal(t, "3 Connections to Modules added", msgs[7])
	assert.Equal(t, "1 Errors occurred", msgs[8])
	assert.Equal(t, "Added c1 - Kurs Eins", msgs[9])
	assert.Equal(t, "c2 - update in name", msgs[10])
	assert.Equal(t, "Removed c3 - Kurs Drei", msgs[11])
	assert.Equal(t, "2 Minutes and 17 Seconds to process", msgs[12])
}

func TestReportFail(t *testing.T) {
	report := &SyncReport{}
	report.Fail("c1", errors.New("insert failed"))
	report.Fail("c2", errors.New("constraint violation"))

	assert.Equal(t, 2, report.ErrorCount)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "c1", report.Failures[0].CourseID)
	assert.Equal(t, "insert failed", report.Failures[0].Message)
}
