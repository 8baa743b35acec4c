package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baula-dev/baula-sync/internal/models"
)

func baseCourse() *models.Course {
	ects := 5.0
	return &models.Course{
		ID:       "lec-1",
		Semester: "2026s",
		Name:     "Einführung in die Didaktik",
		Short:    "EiD",
		Type:     "Vorlesung",
		Ects:     &ects,
		Terms: []models.Term{
			{CourseID: "lec-1", Semester: "2026s", StartDate: "2026-04-13", EndDate: "2026-07-17", StartTime: "10:15", EndTime: "11:45", Repeat: "w1 Mo"},
		},
		Competences: []models.CompetenceFulfillment{
			{CourseID: "lec-1", Semester: "2026s", CompID: "KMK_I_1", Fulfillment: 40},
		},
		InstructorIDs: []string{"p-1", "p-2"},
	}
}

func cloneCourse(c *models.Course) *models.Course {
	clone := *c
	clone.Terms = append([]models.Term(nil), c.Terms...)
	clone.Competences = append([]models.CompetenceFulfillment(nil), c.Competences...)
	clone.InstructorIDs = append([]string(nil), c.InstructorIDs...)
	if c.Ects != nil {
		ects := *c.Ects
		clone.Ects = &ects
	}
	return &clone
}

func TestDiffCourseNoChanges(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)

	change := diffCourse(course, old)
	assert.False(t, change.HasChanges())
	assert.Empty(t, change.Scalars)
	assert.Empty(t, change.ChangedFields)
}

func TestDiffCourseSingleScalar(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Name = "Vertiefung Didaktik"

	change := diffCourse(course, old)
	require.True(t, change.HasChanges())
	assert.Equal(t, []string{"name"}, change.ChangedFields)
	assert.Equal(t, map[string]interface{}{"name": "Vertiefung Didaktik"}, change.Scalars)
	assert.False(t, change.TermsChanged)
	assert.False(t, change.CompetencesChanged)
	assert.False(t, change.StaffChanged)
}

func TestDiffCourseMultipleScalarsKeepDeclarationOrder(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Short = "VD"
	course.Name = "Vertiefung Didaktik"
	course.Lang = "Englisch"

	change := diffCourse(course, old)
	assert.Equal(t, []string{"name", "short", "lang"}, change.ChangedFields)
}

func TestDiffCoursePointerScalars(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)

	// nil vs value
	course.Ects = nil
	change := diffCourse(course, old)
	assert.Contains(t, change.ChangedFields, "ects")

	// same value through distinct pointers
	course = baseCourse()
	old = cloneCourse(course)
	ects := 5.0
	old.Ects = &ects
	change = diffCourse(course, old)
	assert.NotContains(t, change.ChangedFields, "ects")

	info := "benoteter Schein"
	course.AddInfo = &info
	change = diffCourse(course, old)
	assert.Contains(t, change.ChangedFields, "addInfo")
}

func TestDiffCourseTermCountChange(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Terms = append(course.Terms, models.Term{CourseID: "lec-1", Semester: "2026s", StartDate: "2026-04-14", StartTime: "14:15", EndTime: "15:45"})

	change := diffCourse(course, old)
	assert.True(t, change.TermsChanged)
	assert.Empty(t, change.Scalars)
}

func TestDiffCourseTermFieldChange(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Terms[0].StartTime = "08:15"

	change := diffCourse(course, old)
	assert.True(t, change.TermsChanged)
}

func TestDiffCourseTermRoomChange(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	room := "room-7"
	course.Terms[0].RoomID = &room

	change := diffCourse(course, old)
	assert.True(t, change.TermsChanged)
}

func TestDiffCourseCompetenceFulfillmentChange(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Competences[0].Fulfillment = 60

	change := diffCourse(course, old)
	assert.True(t, change.CompetencesChanged)
}

func TestDiffCourseCompetenceOrderChange(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Competences = append(course.Competences, models.CompetenceFulfillment{CompID: "KMK_II_2", Fulfillment: 60})
	old.Competences = append([]models.CompetenceFulfillment{{CompID: "KMK_II_2", Fulfillment: 60}}, old.Competences...)

	change := diffCourse(course, old)
	assert.True(t, change.CompetencesChanged)
}

func TestStaffDiffer(t *testing.T) {
	// removal: old id missing from the new set
	assert.True(t, staffDiffer([]string{"p-1"}, []string{"p-1", "p-2"}))
	// pure addition is handled by the idempotent link builder
	assert.False(t, staffDiffer([]string{"p-1", "p-2"}, []string{"p-1"}))
	assert.False(t, staffDiffer([]string{"p-1", "p-2"}, []string{"p-2", "p-1"}))
	assert.True(t, staffDiffer([]string{"p-3"}, []string{"p-1"}))
	assert.False(t, staffDiffer(nil, nil))
	assert.True(t, staffDiffer(nil, []string{"p-1"}))
}

func TestDiffCourseTermsNotChronological(t *testing.T) {
	// a feed may list terms out of date order; as long as the stored
	// snapshot preserves that order the course is unchanged
	course := baseCourse()
	course.Terms = []models.Term{
		{CourseID: "lec-1", Semester: "2026s", StartDate: "2026-05-08", StartTime: "08:15", EndTime: "09:45", Repeat: "Einzeltermin"},
		{CourseID: "lec-1", Semester: "2026s", StartDate: "2026-04-13", EndDate: "2026-07-17", StartTime: "10:15", EndTime: "11:45", Repeat: "Wöchentlich Mo"},
	}
	old := cloneCourse(course)

	change := diffCourse(course, old)
	assert.False(t, change.HasChanges())
	assert.False(t, change.TermsChanged)
}

func TestDiffCourseIdempotent(t *testing.T) {
	course := baseCourse()
	old := cloneCourse(course)
	course.Name = "Neu"
	course.Terms[0].Repeat = "w2 Di"

	first := diffCourse(course, old)
	require.True(t, first.HasChanges())

	// pretend the update was applied
	applied := cloneCourse(course)
	second := diffCourse(course, applied)
	assert.False(t, second.HasChanges())
}
