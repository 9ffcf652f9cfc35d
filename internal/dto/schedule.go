package dto

import "github.com/careerday/interview-scheduler-api/internal/solver"

// SaveScheduleRequest stores a schedule produced outside the solver, for
// example one edited by hand after a run. The payload is persisted as
// given; validation problems are reported but do not block the save.
type SaveScheduleRequest struct {
	Schedule               map[string][]string         `json:"schedule" validate:"required"`
	InterviewerSchedule    map[string][]string         `json:"interviewer_schedule"`
	InterviewerAssignments []solver.InterviewerSummary `json:"interviewer_assignments"`
	Seed                   *int64                      `json:"seed"`
}

// SaveScheduleResponse reports the stored row and any advisory
// validation findings.
type SaveScheduleResponse struct {
	ScheduleID       string   `json:"schedule_id"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// ClearSchedulesResponse reports how many stored schedules were removed.
type ClearSchedulesResponse struct {
	Deleted int64 `json:"deleted"`
}
