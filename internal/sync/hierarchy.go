package sync

import (
	"time"

	"github.com/baula-dev/baula-sync/internal/competence"
	"github.com/baula-dev/baula-sync/internal/feed"
	"github.com/baula-dev/baula-sync/internal/models"
)

// parentSet accumulates the parent course records observed while walking the
// mapped catalog in feed order. It is scoped to a single run.
type parentSet struct {
	parents []feed.Course
}

func (s *parentSet) add(course feed.Course) {
	s.parents = append(s.parents, course)
}

// find returns the parent whose child-key list contains the course id, or nil.
func (s *parentSet) find(courseID string) *feed.Course {
	for i := range s.parents {
		for _, key := range s.parents[i].ChildKeys {
			if key == courseID {
				return &s.parents[i]
			}
		}
	}
	return nil
}

// enrichFromParent flattens a child course against its parent record: textual
// and numeric fields are inherited whenever the child's own value is empty,
// and the competence list is replaced wholesale with the parent's, re-keyed
// to the child. The child's identity and terms stay untouched.
func enrichFromParent(course *models.Course, parent *feed.Course, semester models.Semester, now time.Time) {
	parentCourse := parent.ToModel(semester, now)

	if course.Short == "" {
		course.Short = parentCourse.Short
	}
	if course.Organizational == "" {
		course.Organizational = parentCourse.Organizational
	}
	if course.Desc == "" {
		course.Desc = parentCourse.Desc
	}
	if course.Literature == "" {
		course.Literature = parentCourse.Literature
	}
	if course.Ects == nil || *course.Ects == 0 {
		course.Ects = parentCourse.Ects
	}
	if course.Sws == nil || *course.Sws == 0 {
		course.Sws = parentCourse.Sws
	}

	course.Competences = fulfillments(course.ID, course.Semester, parentCourse.Organizational)
}

// fulfillments parses the organizational text of a course and stamps the
// extracted pairs with the owning course key.
func fulfillments(courseID, semester, organizational string) []models.CompetenceFulfillment {
	parsed := competence.Parse(organizational)
	result := make([]models.CompetenceFulfillment, 0, len(parsed))
	for _, entry := range parsed {
		result = append(result, models.CompetenceFulfillment{
			CourseID:    courseID,
			Semester:    semester,
			CompID:      entry.CompID,
			Fulfillment: entry.Fulfillment,
		})
	}
	return result
}
