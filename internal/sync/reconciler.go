package sync

import "github.com/baula-dev/baula-sync/internal/models"

// scalarField declares one value-compared course attribute. The table drives
// both change detection and the partial update sent to the store; the
// last-updated timestamp is deliberately absent because it is refreshed on
// every write.
type scalarField struct {
	Name   string
	Column string
	equal  func(a, b *models.Course) bool
	value  func(c *models.Course) interface{}
}

var scalarFields = []scalarField{
	{"name", "name",
		func(a, b *models.Course) bool { return a.Name == b.Name },
		func(c *models.Course) interface{} { return c.Name }},
	{"short", "short",
		func(a, b *models.Course) bool { return a.Short == b.Short },
		func(c *models.Course) interface{} { return c.Short }},
	{"organizational", "organizational",
		func(a, b *models.Course) bool { return a.Organizational == b.Organizational },
		func(c *models.Course) interface{} { return c.Organizational }},
	{"desc", "description",
		func(a, b *models.Course) bool { return a.Desc == b.Desc },
		func(c *models.Course) interface{} { return c.Desc }},
	{"literature", "literature",
		func(a, b *models.Course) bool { return a.Literature == b.Literature },
		func(c *models.Course) interface{} { return c.Literature }},
	{"addInfo", "add_info",
		func(a, b *models.Course) bool { return eqStringPtr(a.AddInfo, b.AddInfo) },
		func(c *models.Course) interface{} { return c.AddInfo }},
	{"orgname", "orgname",
		func(a, b *models.Course) bool { return a.Orgname == b.Orgname },
		func(c *models.Course) interface{} { return c.Orgname }},
	{"chair", "chair",
		func(a, b *models.Course) bool { return a.Chair == b.Chair },
		func(c *models.Course) interface{} { return c.Chair }},
	{"type", "type",
		func(a, b *models.Course) bool { return a.Type == b.Type },
		func(c *models.Course) interface{} { return c.Type }},
	{"ects", "ects",
		func(a, b *models.Course) bool { return eqFloatPtr(a.Ects, b.Ects) },
		func(c *models.Course) interface{} { return c.Ects }},
	{"sws", "sws",
		func(a, b *models.Course) bool { return eqFloatPtr(a.Sws, b.Sws) },
		func(c *models.Course) interface{} { return c.Sws }},
	{"keywords", "keywords",
		func(a, b *models.Course) bool { return a.Keywords == b.Keywords },
		func(c *models.Course) interface{} { return c.Keywords }},
	{"lang", "lang",
		func(a, b *models.Course) bool { return a.Lang == b.Lang },
		func(c *models.Course) interface{} { return c.Lang }},
	{"expAttendance", "exp_attendance",
		func(a, b *models.Course) bool { return eqIntPtr(a.ExpAttendance, b.ExpAttendance) },
		func(c *models.Course) interface{} { return c.ExpAttendance }},
	{"format", "format",
		func(a, b *models.Course) bool { return a.Format == b.Format },
		func(c *models.Course) interface{} { return c.Format }},
	{"nameEn", "name_en",
		func(a, b *models.Course) bool { return a.NameEn == b.NameEn },
		func(c *models.Course) interface{} { return c.NameEn }},
	{"literatureEn", "literature_en",
		func(a, b *models.Course) bool { return a.LiteratureEn == b.LiteratureEn },
		func(c *models.Course) interface{} { return c.LiteratureEn }},
	{"organizationalEn", "organizational_en",
		func(a, b *models.Course) bool { return a.OrganizationalEn == b.OrganizationalEn },
		func(c *models.Course) interface{} { return c.OrganizationalEn }},
	{"descEn", "description_en",
		func(a, b *models.Course) bool { return a.DescEn == b.DescEn },
		func(c *models.Course) interface{} { return c.DescEn }},
}

// CourseChange is the classification of one mapped course against its
// persisted counterpart.
type CourseChange struct {
	Course *models.Course
	// Scalars holds the changed columns with their new values; only these
	// are written on update.
	Scalars map[string]interface{}
	// ChangedFields lists the changed scalar names in declaration order for
	// the change log.
	ChangedFields      []string
	TermsChanged       bool
	CompetencesChanged bool
	StaffChanged       bool
}

// HasChanges reports whether applying the change would write anything.
func (c *CourseChange) HasChanges() bool {
	return len(c.Scalars) > 0 || c.TermsChanged || c.CompetencesChanged || c.StaffChanged
}

// diffCourse computes the field-level difference between the newly mapped
// course and the persisted one.
func diffCourse(course, old *models.Course) CourseChange {
	change := CourseChange{Course: course, Scalars: map[string]interface{}{}}

	for _, field := range scalarFields {
		if !field.equal(course, old) {
			change.Scalars[field.Column] = field.value(course)
			change.ChangedFields = append(change.ChangedFields, field.Name)
		}
	}

	change.TermsChanged = termsDiffer(course.Terms, old.Terms)
	change.CompetencesChanged = competencesDiffer(course.Competences, old.Competences)
	change.StaffChanged = staffDiffer(course.InstructorIDs, old.InstructorIDs)

	return change
}

// termsDiffer applies the replace-all trigger: a differing count, or any
// field of any positional term.
func termsDiffer(next, old []models.Term) bool {
	if len(next) != len(old) {
		return true
	}
	for i := range next {
		if !termEqual(next[i], old[i]) {
			return true
		}
	}
	return false
}

func termEqual(a, b models.Term) bool {
	return a.StartDate == b.StartDate &&
		a.EndDate == b.EndDate &&
		a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		a.Repeat == b.Repeat &&
		a.Exclude == b.Exclude &&
		eqStringPtr(a.RoomID, b.RoomID)
}

func competencesDiffer(next, old []models.CompetenceFulfillment) bool {
	if len(next) != len(old) {
		return true
	}
	for i := range next {
		if next[i].CompID != old[i].CompID || next[i].Fulfillment != old[i].Fulfillment {
			return true
		}
	}
	return false
}

// staffDiffer reports whether the union of old and new instructor ids is
// larger than the new set alone, i.e. whether anything was removed or the
// sets diverge. Pure additions flow through the idempotent link builder.
func staffDiffer(next, old []string) bool {
	union := make(map[string]struct{}, len(next)+len(old))
	for _, id := range next {
		union[id] = struct{}{}
	}
	newSize := len(union)
	for _, id := range old {
		union[id] = struct{}{}
	}
	return len(union) > newSize
}

func eqStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
