package dto

import "github.com/careerday/interview-scheduler-api/internal/solver"

// SolveStudent is one candidate in a solve request. Target falls back to
// the request default when omitted.
type SolveStudent struct {
	Name   string `json:"name" validate:"required"`
	Target *int   `json:"target" validate:"omitempty,min=0"`
}

// SolveInterviewer is one interviewer in a solve request.
type SolveInterviewer struct {
	Name      string `json:"name" validate:"required"`
	IsVirtual bool   `json:"is_virtual"`
}

// SolveRequest carries a complete scheduling scenario. All quota fields
// are optional and fall back to configured defaults; EventID is optional
// and links the persisted result to an event.
type SolveRequest struct {
	EventID              string             `json:"event_id" validate:"omitempty,uuid"`
	Students             []SolveStudent     `json:"students" validate:"required,min=1,dive"`
	Interviewers         []SolveInterviewer `json:"interviewers" validate:"required,min=1,dive"`
	NumSlots             *int               `json:"num_slots" validate:"omitempty,min=1"`
	DefaultTarget        *int               `json:"default_target" validate:"omitempty,min=0"`
	BreaksMin            *int               `json:"breaks_min" validate:"omitempty,min=0"`
	BreaksMax            *int               `json:"breaks_max" validate:"omitempty,min=0"`
	MinVirtualPerStudent *int               `json:"min_virtual_per_student" validate:"omitempty,min=0"`
	MaxVirtualPerStudent *int               `json:"max_virtual_per_student" validate:"omitempty,min=0"`
	Seed                 *int64             `json:"seed"`
	AutoBalance          bool               `json:"auto_balance"`
	TimeBudgetSeconds    *int               `json:"time_budget_seconds" validate:"omitempty,min=1,max=600"`
}

// SolveEventRequest tunes a solve run built from an event's stored
// rosters and quota settings.
type SolveEventRequest struct {
	Seed              *int64 `json:"seed"`
	AutoBalance       bool   `json:"auto_balance"`
	TimeBudgetSeconds *int   `json:"time_budget_seconds" validate:"omitempty,min=1,max=600"`
}

// SolveStats is the capacity arithmetic plus run telemetry reported with
// every solve, successful or not.
type SolveStats struct {
	Capacity        int    `json:"capacity"`
	Demand          int    `json:"demand"`
	VirtualCapacity int    `json:"virtual_capacity"`
	VirtualDemand   int    `json:"virtual_demand"`
	TotalInterviews int    `json:"total_interviews"`
	SolveTimeMs     int64  `json:"solve_time_ms"`
	Nodes           int64  `json:"nodes"`
	Status          string `json:"status"`
}

// BalanceReduction mirrors one auto-balance decrement for the response.
type BalanceReduction struct {
	Student string `json:"student"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// SolveResponse is the full solve outcome: the three schedule views, the
// run statistics, and any adjustments made on the way in.
type SolveResponse struct {
	ScheduleID             string                      `json:"schedule_id,omitempty"`
	Status                 string                      `json:"status"`
	Schedule               map[string][]string         `json:"schedule,omitempty"`
	InterviewerSchedule    map[string][]string         `json:"interviewer_schedule,omitempty"`
	InterviewerAssignments []solver.InterviewerSummary `json:"interviewer_assignments,omitempty"`
	Stats                  SolveStats                  `json:"stats"`
	SeedUsed               int64                       `json:"seed_used"`
	StudentsUsed           []SolveStudentUsed          `json:"students_used"`
	Reductions             []BalanceReduction          `json:"reductions,omitempty"`
	ValidationErrors       []string                    `json:"validation_errors,omitempty"`
}

// SolveStudentUsed reports the effective target each student entered the
// search with, after defaulting and auto-balance.
type SolveStudentUsed struct {
	Name   string `json:"name"`
	Target int    `json:"target"`
}

// ValidateRequest asks for an independent re-check of a schedule against
// a scenario. InterviewerSchedule is optional.
type ValidateRequest struct {
	Students             []SolveStudent      `json:"students" validate:"required,min=1,dive"`
	Interviewers         []SolveInterviewer  `json:"interviewers" validate:"required,min=1,dive"`
	NumSlots             *int                `json:"num_slots" validate:"omitempty,min=1"`
	DefaultTarget        *int                `json:"default_target" validate:"omitempty,min=0"`
	BreaksMin            *int                `json:"breaks_min" validate:"omitempty,min=0"`
	BreaksMax            *int                `json:"breaks_max" validate:"omitempty,min=0"`
	MinVirtualPerStudent *int                `json:"min_virtual_per_student" validate:"omitempty,min=0"`
	MaxVirtualPerStudent *int                `json:"max_virtual_per_student" validate:"omitempty,min=0"`
	Schedule             map[string][]string `json:"schedule" validate:"required"`
	InterviewerSchedule  map[string][]string `json:"interviewer_schedule"`
}

// ValidateResponse lists the violations found; Valid is true when the
// list is empty.
type ValidateResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}
