package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleStatus is the terminal outcome of the solve run that produced
// a stored schedule.
type ScheduleStatus string

const (
	ScheduleStatusFeasible   ScheduleStatus = "FEASIBLE"
	ScheduleStatusInfeasible ScheduleStatus = "INFEASIBLE"
	ScheduleStatusTimeout    ScheduleStatus = "TIMEOUT"
)

// Schedule is one persisted solve result for an event. The three view
// columns and the stats column hold the solver output as JSON documents;
// the database never interprets them.
type Schedule struct {
	ID                     string         `db:"id" json:"id"`
	EventID                string         `db:"event_id" json:"event_id"`
	Status                 ScheduleStatus `db:"status" json:"status"`
	Seed                   int64          `db:"seed" json:"seed"`
	ScheduleData           types.JSONText `db:"schedule_data" json:"schedule_data"`
	InterviewerSchedule    types.JSONText `db:"interviewer_schedule" json:"interviewer_schedule"`
	InterviewerAssignments types.JSONText `db:"interviewer_assignments" json:"interviewer_assignments"`
	Stats                  types.JSONText `db:"stats" json:"stats"`
	CreatedAt              time.Time      `db:"created_at" json:"created_at"`
}

// ScheduleFilter describes query params for listing stored schedules.
type ScheduleFilter struct {
	EventID   string
	Status    *ScheduleStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ScheduleMeta is the lightweight list-view projection of a schedule,
// without the JSON payloads.
type ScheduleMeta struct {
	ID        string         `db:"id" json:"id"`
	EventID   string         `db:"event_id" json:"event_id"`
	Status    ScheduleStatus `db:"status" json:"status"`
	Seed      int64          `db:"seed" json:"seed"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
