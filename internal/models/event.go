package models

import "time"

// Event represents one career day: a named occasion with its slot grid
// and the quota policy applied to every solve run against it.
type Event struct {
	ID                   string    `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	EventDate            time.Time `db:"event_date" json:"event_date"`
	NumSlots             int       `db:"num_slots" json:"num_slots"`
	DefaultTarget        int       `db:"default_target" json:"default_target"`
	BreaksMin            int       `db:"breaks_min" json:"breaks_min"`
	BreaksMax            int       `db:"breaks_max" json:"breaks_max"`
	MinVirtualPerStudent int       `db:"min_virtual_per_student" json:"min_virtual_per_student"`
	MaxVirtualPerStudent int       `db:"max_virtual_per_student" json:"max_virtual_per_student"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// EventFilter captures filtering criteria for listing events.
type EventFilter struct {
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// EventDetail is an event with its roster sizes, used in list views so
// clients can show demand at a glance without loading the rosters.
type EventDetail struct {
	Event
	StudentCount     int `db:"student_count" json:"student_count"`
	InterviewerCount int `db:"interviewer_count" json:"interviewer_count"`
}
