package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/baula-dev/baula-sync/internal/models"
	appErrors "github.com/baula-dev/baula-sync/pkg/errors"
)

// Course is one mapped catalog record before reconciliation. It keeps the
// feed-level attributes (copy flags, child references) the persisted model
// does not carry.
type Course struct {
	ID             string
	Name           string
	Short          string
	Organizational string
	Desc           string
	Literature     string
	AddInfo        *string
	Orgname        string
	Chair          string
	Type           string
	Ects           *float64
	Sws            *float64
	Keywords       string
	Lang           string
	ExpAttendance  *int
	Format         string

	NameEn           string
	LiteratureEn     string
	OrganizationalEn string
	DescEn           string

	InstructorIDs []string
	Terms         []models.Term

	// ParticipationCopy and ImportCopy mark cross-listing duplicates that
	// must not reach the reconciliation engine.
	ParticipationCopy bool
	ImportCopy        bool
	ChildKeys         []string
}

// IsCopy reports whether the record is a cross-listing duplicate.
func (c *Course) IsCopy() bool {
	return c.ParticipationCopy || c.ImportCopy
}

// IsParent reports whether the record declares child courses.
func (c *Course) IsParent() bool {
	return len(c.ChildKeys) > 0
}

// ToModel stamps the record into the persisted course shape for a semester.
func (c *Course) ToModel(semester models.Semester, now time.Time) models.Course {
	course := models.Course{
		ID:               c.ID,
		Semester:         semester.String(),
		Name:             c.Name,
		Short:            c.Short,
		Organizational:   c.Organizational,
		Desc:             c.Desc,
		Literature:       c.Literature,
		AddInfo:          c.AddInfo,
		Orgname:          c.Orgname,
		Chair:            c.Chair,
		Type:             c.Type,
		Ects:             c.Ects,
		Sws:              c.Sws,
		Keywords:         c.Keywords,
		Lang:             c.Lang,
		ExpAttendance:    c.ExpAttendance,
		Format:           c.Format,
		NameEn:           c.NameEn,
		LiteratureEn:     c.LiteratureEn,
		OrganizationalEn: c.OrganizationalEn,
		DescEn:           c.DescEn,
		LastUpdated:      now.UTC(),
		InstructorIDs:    append([]string(nil), c.InstructorIDs...),
	}
	course.Terms = make([]models.Term, len(c.Terms))
	for i, term := range c.Terms {
		term.CourseID = c.ID
		term.Semester = semester.String()
		course.Terms[i] = term
	}
	return course
}

// Catalog is the result of mapping one raw feed document.
type Catalog struct {
	Courses []Course
	Rooms   []models.Room
	Persons []models.Person
}

// MapCatalog applies the declarative mapping template to a raw feed document
// and produces the course, room and person record streams.
func MapCatalog(raw string) (*Catalog, error) {
	doc, err := xmlquery.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFeedUnavailable.Code, appErrors.ErrFeedUnavailable.Status, "parse catalog document")
	}

	catalog := &Catalog{}
	for _, node := range xmlquery.Find(doc, courseRoot) {
		catalog.Courses = append(catalog.Courses, mapCourse(node))
	}
	for _, node := range xmlquery.Find(doc, roomRoot) {
		catalog.Rooms = append(catalog.Rooms, mapRoom(node))
	}
	for _, node := range xmlquery.Find(doc, personRoot) {
		catalog.Persons = append(catalog.Persons, mapPerson(node))
	}
	return catalog, nil
}

var multiSpace = regexp.MustCompile(` {2,}`)

func mapCourse(node *xmlquery.Node) Course {
	course := Course{
		ID:               text(node, courseTemplate.ID),
		Name:             text(node, courseTemplate.Name),
		Short:            text(node, courseTemplate.Short),
		Organizational:   organizationalText(node),
		Desc:             text(node, courseTemplate.Desc),
		Literature:       text(node, courseTemplate.Literature),
		AddInfo:          addInfoText(node),
		Orgname:          multiSpace.ReplaceAllString(text(node, courseTemplate.Orgname), " "),
		Chair:            text(node, courseTemplate.Chair),
		Type:             translateCourseType(text(node, courseTemplate.Type)),
		Ects:             floatValue(node, courseTemplate.Ects),
		Sws:              floatValue(node, courseTemplate.Sws),
		Keywords:         text(node, courseTemplate.Keywords),
		Lang:             text(node, courseTemplate.Lang),
		ExpAttendance:    intValue(node, courseTemplate.ExpAttendance),
		Format:           text(node, courseTemplate.Format),
		NameEn:           text(node, courseTemplate.NameEn),
		LiteratureEn:     text(node, courseTemplate.LiteratureEn),
		OrganizationalEn: text(node, courseTemplate.OrganizationalEn),
		DescEn:           text(node, courseTemplate.DescEn),

		InstructorIDs:     texts(node, courseTemplate.Instructors),
		ParticipationCopy: exists(node, courseTemplate.ParticipationParent),
		ImportCopy:        exists(node, courseTemplate.ImportParent),
		ChildKeys:         texts(node, courseTemplate.Children),
	}

	for _, termNode := range xmlquery.Find(node, courseTemplate.Terms) {
		course.Terms = append(course.Terms, mapTerm(termNode))
	}

	return course
}

// organizationalText concatenates the four organizational fragments, drops
// the empty ones and joins the rest with a display line break.
func organizationalText(node *xmlquery.Node) string {
	var parts []string
	for _, selector := range organizationalParts {
		if part := text(node, selector); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "<br>")
}

func addInfoText(node *xmlquery.Node) *string {
	var labels []string
	for _, flag := range addInfoFlags {
		if exists(node, flag.Selector) {
			labels = append(labels, flag.Label)
		}
	}
	if len(labels) == 0 {
		return nil
	}
	joined := strings.Join(labels, "; ")
	return &joined
}

func mapTerm(node *xmlquery.Node) models.Term {
	term := models.Term{
		StartDate: text(node, termTemplate.StartDate),
		EndDate:   text(node, termTemplate.EndDate),
		Exclude:   text(node, termTemplate.Exclude),
	}
	if repeat := text(node, termTemplate.Repeat); repeat != "" {
		term.Repeat = translateRepeat(repeat)
	}
	if start := text(node, termTemplate.StartTime); start != "" {
		term.StartTime = padTime(start)
	}
	if end := text(node, termTemplate.EndTime); end != "" {
		term.EndTime = padTime(end)
	}
	if roomID := text(node, termTemplate.RoomID); roomID != "" {
		term.RoomID = &roomID
	}
	return term
}

func mapRoom(node *xmlquery.Node) models.Room {
	return models.Room{
		ID:      text(node, roomTemplate.ID),
		Short:   text(node, roomTemplate.Short),
		Address: text(node, roomTemplate.Address),
		Size:    intValue(node, roomTemplate.Size),
	}
}

func mapPerson(node *xmlquery.Node) models.Person {
	return models.Person{
		PID:       text(node, personTemplate.PID),
		Title:     text(node, personTemplate.Title),
		Firstname: text(node, personTemplate.Firstname),
		Lastname:  text(node, personTemplate.Lastname),
		Email:     text(node, personTemplate.Email),
		Tel:       text(node, personTemplate.Tel),
		Office:    text(node, personTemplate.Office),
	}
}

func text(node *xmlquery.Node, selector string) string {
	if found := xmlquery.FindOne(node, selector); found != nil {
		return strings.TrimSpace(found.InnerText())
	}
	return ""
}

func texts(node *xmlquery.Node, selector string) []string {
	var values []string
	for _, found := range xmlquery.Find(node, selector) {
		if value := strings.TrimSpace(found.InnerText()); value != "" {
			values = append(values, value)
		}
	}
	return values
}

func exists(node *xmlquery.Node, selector string) bool {
	return xmlquery.FindOne(node, selector) != nil
}

// floatValue parses a numeric field; values that fail to parse become nil,
// never zero.
func floatValue(node *xmlquery.Node, selector string) *float64 {
	raw := text(node, selector)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func intValue(node *xmlquery.Node, selector string) *int {
	raw := text(node, selector)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
