package models

import "time"

// Interviewer represents a physical table or virtual (remote) interviewer
// attached to an event.
type Interviewer struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Name      string    `db:"name" json:"name"`
	IsVirtual bool      `db:"is_virtual" json:"is_virtual"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// InterviewerFilter captures filtering criteria for listing interviewers.
type InterviewerFilter struct {
	EventID   string
	Search    string
	IsVirtual *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
