package models

import "time"

// Student represents an interview candidate registered for an event.
type Student struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Name      string    `db:"name" json:"name"`
	Target    int       `db:"target" json:"target"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	EventID   string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
