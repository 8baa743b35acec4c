package feed

// The mapping template mirrors the export schema of the university
// information system. Selectors are XPath expressions evaluated relative to
// the node named by the enclosing rule.

const (
	courseRoot = "//Lecture"
	roomRoot   = "//Room"
	personRoot = "//Person"
)

// organizationalParts are the four free-text fragments concatenated into the
// organizational field, in feed order. Empty fragments are dropped; the
// remainder is joined with a display line break.
var organizationalParts = []string{
	"time_description",
	"comment",
	"async_description",
	"organizational",
}

var courseTemplate = struct {
	ID, Name, Short, Desc, Literature      string
	Orgname, Chair, Type                   string
	Ects, Sws, ExpAttendance               string
	Keywords, Lang, Format                 string
	NameEn, LiteratureEn                   string
	OrganizationalEn, DescEn               string
	Instructors, Terms, Children           string
	ParticipationParent, ImportParent      string
}{
	ID:                  "@key",
	Name:                "name",
	Short:               "short",
	Desc:                "summary",
	Literature:          "literature",
	Orgname:             "orgunits/orgunit",
	Chair:               "orgname",
	Type:                "type",
	Ects:                "ects_cred",
	Sws:                 "sws",
	ExpAttendance:       "turnout",
	Keywords:            "keywords",
	Lang:                "leclanguage",
	Format:              "format",
	NameEn:              "ects_name",
	LiteratureEn:        "ects_literature",
	OrganizationalEn:    "ects_organizational",
	DescEn:              "ects_summary",
	Instructors:         "dozs/doz/UnivISRef/@key",
	Terms:               "terms/term",
	Children:            "courses/course/UnivISRef/@key",
	ParticipationParent: "participation_parent_id",
	ImportParent:        "import_parent_id",
}

var termTemplate = struct {
	StartDate, EndDate, StartTime, EndTime string
	Repeat, Exclude, RoomID                string
}{
	StartDate: "startdate",
	EndDate:   "enddate",
	StartTime: "starttime",
	EndTime:   "endtime",
	Repeat:    "repeat",
	Exclude:   "exclude",
	RoomID:    "room/UnivISRef/@key",
}

var roomTemplate = struct {
	ID, Short, Address, Size string
}{
	ID:      "@key",
	Short:   "short",
	Address: "address",
	Size:    "size",
}

var personTemplate = struct {
	PID, Title, Firstname, Lastname string
	Email, Tel, Office              string
}{
	PID:       "@key",
	Title:     "atitle",
	Firstname: "firstname",
	Lastname:  "lastname",
	Email:     "locations/location/email",
	Tel:       "locations/location/tel",
	Office:    "locations/location/office",
}

// addInfoFlag marks one boolean feed element folded into the additional-info
// string when present.
type addInfoFlag struct {
	Selector string
	Label    string
}

var addInfoFlags = []addInfoFlag{
	{"benschein", "benoteter Schein"},
	{"schein", "Schein"},
	{"entre", "Entrepreneurship und Existenzgründung"},
	{"erwei", "Erweiterungsbereich"},
	{"frueh", "Frühstudium"},
	{"gasth", "Gaststudierendenverzeichnis"},
	{"generale", "Studium Generale"},
	{"kultur", "Kultur und Bildung"},
	{"modulstud", "Modulstudium"},
	{"nach", "Nachhaltigkeit"},
	{"spracha", "Sprachangebot"},
	{"womspe", "Gender und Diversität"},
	{"zemas", "Zentrum für Mittelalterstudien"},
	{"zenis", "Zentrum für Interreligiöse Studien"},
}
