package models

// ModuleCourse is a module-curriculum entry from the study-planner catalog.
// The sync engine only reads these for heuristic matching; it never creates
// or mutates them.
type ModuleCourse struct {
	MCID string `db:"mc_id" json:"mcId"`
	Type string `db:"type" json:"type"`
	// Name and Acronym come from the identifier document of the entry; the
	// acronym falls back to the first connected module when the identifier
	// carries none.
	Name    string `db:"name" json:"name,omitempty"`
	Acronym string `db:"acronym" json:"acronym,omitempty"`
}

// ModuleCourseLink associates a course with a module-curriculum entry.
type ModuleCourseLink struct {
	MCID     string `db:"mc_id" json:"mcId"`
	CourseID string `db:"course_id" json:"cId"`
	Semester string `db:"semester" json:"semester"`
}

// StaffLink associates a course with a teaching-staff person.
type StaffLink struct {
	PID      string `db:"pid" json:"pId"`
	CourseID string `db:"course_id" json:"cId"`
	Semester string `db:"semester" json:"semester"`
}
