package models

import "time"

// Course is one catalog entry of a semester, uniquely identified by the pair
// (external course id, semester). Terms and competence fulfillments are owned
// exclusively by the course and replaced wholesale on change.
type Course struct {
	ID             string   `db:"id" json:"id"`
	Semester       string   `db:"semester" json:"semester"`
	Name           string   `db:"name" json:"name"`
	Short          string   `db:"short" json:"short,omitempty"`
	Organizational string   `db:"organizational" json:"organizational,omitempty"`
	Desc           string   `db:"description" json:"desc,omitempty"`
	Literature     string   `db:"literature" json:"literature,omitempty"`
	AddInfo        *string  `db:"add_info" json:"addInfo,omitempty"`
	Orgname        string   `db:"orgname" json:"orgname,omitempty"`
	Chair          string   `db:"chair" json:"chair,omitempty"`
	Type           string   `db:"type" json:"type"`
	Ects           *float64 `db:"ects" json:"ects,omitempty"`
	Sws            *float64 `db:"sws" json:"sws,omitempty"`
	Keywords       string   `db:"keywords" json:"keywords,omitempty"`
	Lang           string   `db:"lang" json:"lang,omitempty"`
	ExpAttendance  *int     `db:"exp_attendance" json:"expAttendance,omitempty"`
	Format         string   `db:"format" json:"format,omitempty"`

	NameEn           string `db:"name_en" json:"nameEn,omitempty"`
	LiteratureEn     string `db:"literature_en" json:"literatureEn,omitempty"`
	OrganizationalEn string `db:"organizational_en" json:"organizationalEn,omitempty"`
	DescEn           string `db:"description_en" json:"descEn,omitempty"`

	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`

	Terms       []Term                  `db:"-" json:"terms"`
	Competences []CompetenceFulfillment `db:"-" json:"competences"`
	// InstructorIDs are the external person ids of the teaching staff.
	InstructorIDs []string `db:"-" json:"instructorIds"`
}

// Term is a single meeting series of a course. RoomID is nil rather than an
// empty string when no room is known.
type Term struct {
	CourseID  string  `db:"course_id" json:"-"`
	Semester  string  `db:"semester" json:"-"`
	StartDate string  `db:"startdate" json:"startdate"`
	EndDate   string  `db:"enddate" json:"enddate,omitempty"`
	StartTime string  `db:"starttime" json:"starttime"`
	EndTime   string  `db:"endtime" json:"endtime"`
	Repeat    string  `db:"repeat" json:"repeat"`
	Exclude   string  `db:"exclude" json:"exclude"`
	RoomID    *string `db:"room_id" json:"roomId,omitempty"`
}

// CompetenceFulfillment links a course to a competence with a percentage
// between 0 and 100. Rows are produced only by the competence annotation
// parser during a sync run.
type CompetenceFulfillment struct {
	CourseID    string `db:"course_id" json:"cId"`
	Semester    string `db:"semester" json:"semester"`
	CompID      string `db:"comp_id" json:"compId"`
	Fulfillment int    `db:"fulfillment" json:"fulfillment"`
}
