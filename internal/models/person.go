package models

// Person is a member of the teaching staff, keyed by its stable external id.
// Persons are upserted independently of course reconciliation and are never
// deleted by a sync run.
type Person struct {
	PID       string `db:"pid" json:"pId"`
	Title     string `db:"title" json:"title,omitempty"`
	Firstname string `db:"firstname" json:"firstname"`
	Lastname  string `db:"lastname" json:"lastname"`
	Email     string `db:"email" json:"email,omitempty"`
	Tel       string `db:"tel" json:"tel,omitempty"`
	Office    string `db:"office" json:"office,omitempty"`
}
