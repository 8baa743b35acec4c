package models

// Room is a lecture room, keyed by its stable external id. Size is nil when
// the feed carries a non-numeric capacity.
type Room struct {
	ID      string `db:"id" json:"id"`
	Short   string `db:"short" json:"short,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
	Size    *int   `db:"size" json:"size,omitempty"`
}
