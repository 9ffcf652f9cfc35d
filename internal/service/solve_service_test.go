package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/internal/solver"
	"github.com/careerday/interview-scheduler-api/pkg/config"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
)

type stubEventRepo struct {
	event *models.Event
}

func (s *stubEventRepo) FindByID(_ context.Context, id string) (*models.Event, error) {
	if s.event == nil || s.event.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.event, nil
}

type stubRosterRepo struct {
	students       []models.Student
	writtenTargets map[string]int
}

func (s *stubRosterRepo) ListByEvent(_ context.Context, _ string) ([]models.Student, error) {
	return s.students, nil
}

func (s *stubRosterRepo) UpdateTargets(_ context.Context, _ string, targets map[string]int) error {
	s.writtenTargets = targets
	return nil
}

type stubInterviewerReader struct {
	interviewers []models.Interviewer
}

func (s *stubInterviewerReader) ListByEvent(_ context.Context, _ string) ([]models.Interviewer, error) {
	return s.interviewers, nil
}

type stubScheduleWriter struct {
	created *models.Schedule
}

func (s *stubScheduleWriter) Create(_ context.Context, schedule *models.Schedule) error {
	schedule.ID = "sch-1"
	s.created = schedule
	return nil
}

type countingEngine struct {
	calls  int
	result *solver.Result
}

func (e *countingEngine) Solve(_ context.Context, _ *solver.Scenario) *solver.Result {
	e.calls++
	return e.result
}

func solveConfig() config.SolverConfig {
	return config.SolverConfig{MaxModelVars: 250000, DefaultSlots: 13, DefaultTarget: 6}
}

func newSolveFixture(engine solveEngine) (*SolveService, *stubEventRepo, *stubRosterRepo, *stubScheduleWriter) {
	events := &stubEventRepo{}
	roster := &stubRosterRepo{}
	writer := &stubScheduleWriter{}
	cache := NewCacheService(nil, nil, 0, nil, false)
	svc := NewSolveService(events, roster, &stubInterviewerReader{}, writer, cache, nil, engine, solveConfig(), nil, nil)
	svc.seedSource = func() int64 { return 777 }
	return svc, events, roster, writer
}

func feasibleRequest() dto.SolveRequest {
	two := 2
	one := 1
	four := 4
	return dto.SolveRequest{
		Students: []dto.SolveStudent{
			{Name: "S1", Target: &two},
			{Name: "S2", Target: &two},
			{Name: "S3", Target: &two},
		},
		Interviewers: []dto.SolveInterviewer{
			{Name: "P"},
			{Name: "V", IsVirtual: true},
		},
		NumSlots:             &four,
		BreaksMin:            &one,
		MinVirtualPerStudent: &one,
	}
}

func TestSolveServiceFeasibleRun(t *testing.T) {
	svc, _, _, _ := newSolveFixture(nil)

	resp, err := svc.Solve(context.Background(), feasibleRequest())
	require.NoError(t, err)
	assert.Equal(t, "FEASIBLE", resp.Status)
	assert.Equal(t, int64(777), resp.SeedUsed)
	assert.Empty(t, resp.ValidationErrors)
	assert.Equal(t, 6, resp.Stats.Demand)
	assert.Equal(t, 6, resp.Stats.Capacity)
	assert.Equal(t, 6, resp.Stats.TotalInterviews)
	assert.Len(t, resp.Schedule, 3)
	assert.Len(t, resp.InterviewerAssignments, 2)
}

func TestSolveServicePrecheckSkipsEngine(t *testing.T) {
	engine := &countingEngine{result: &solver.Result{Status: solver.StatusFeasible}}
	svc, _, _, _ := newSolveFixture(engine)

	ten := 10
	two := 2
	req := feasibleRequest()
	req.Students[0].Target = &ten
	req.Students[1].Target = &ten
	req.Students[2].Target = &ten
	req.NumSlots = &two

	resp, err := svc.Solve(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInfeasibleDemand.Code, appErr.Code)
	assert.Zero(t, engine.calls)
	require.NotNil(t, resp)
	assert.Greater(t, resp.Stats.Demand, resp.Stats.Capacity)
}

func TestSolveServiceRejectsOversizedModel(t *testing.T) {
	engine := &countingEngine{result: &solver.Result{Status: solver.StatusFeasible}}
	svc, _, _, _ := newSolveFixture(engine)
	svc.cfg.MaxModelVars = 10

	_, err := svc.Solve(context.Background(), feasibleRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrModelTooLarge.Code, appErrors.FromError(err).Code)
	assert.Zero(t, engine.calls)
}

func TestSolveServiceExplicitSeedWins(t *testing.T) {
	svc, _, _, _ := newSolveFixture(nil)

	seed := int64(42)
	req := feasibleRequest()
	req.Seed = &seed

	first, err := svc.Solve(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Solve(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, seed, first.SeedUsed)
	assert.Equal(t, first.Schedule, second.Schedule)
}

func TestSolveServiceEventRunPersists(t *testing.T) {
	svc, events, roster, writer := newSolveFixture(nil)
	events.event = &models.Event{
		ID: "ev-1", Name: "Career Day", NumSlots: 4, DefaultTarget: 2,
		BreaksMin: 1, BreaksMax: 1, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1,
	}
	roster.students = []models.Student{
		{EventID: "ev-1", Name: "S1", Target: 2},
		{EventID: "ev-1", Name: "S2", Target: 2},
		{EventID: "ev-1", Name: "S3", Target: 2},
	}
	svcInterviewers := []models.Interviewer{
		{EventID: "ev-1", Name: "P"},
		{EventID: "ev-1", Name: "V", IsVirtual: true},
	}
	svc.interviewers = &stubInterviewerReader{interviewers: svcInterviewers}

	resp, err := svc.SolveEvent(context.Background(), "ev-1", dto.SolveEventRequest{})
	require.NoError(t, err)
	assert.Equal(t, "FEASIBLE", resp.Status)
	assert.Equal(t, "sch-1", resp.ScheduleID)

	require.NotNil(t, writer.created)
	assert.Equal(t, "ev-1", writer.created.EventID)
	assert.Equal(t, models.ScheduleStatusFeasible, writer.created.Status)
	assert.NotEmpty(t, writer.created.ScheduleData)
}

func TestSolveServiceAutoBalanceWritesBackTargets(t *testing.T) {
	svc, events, roster, writer := newSolveFixture(nil)
	events.event = &models.Event{
		ID: "ev-1", Name: "Career Day", NumSlots: 3, DefaultTarget: 2,
		BreaksMin: 0, BreaksMax: 1, MinVirtualPerStudent: 0, MaxVirtualPerStudent: 0,
	}
	// demand 6 against capacity 3, auto-balance must shed three interviews
	roster.students = []models.Student{
		{EventID: "ev-1", Name: "S1", Target: 2},
		{EventID: "ev-1", Name: "S2", Target: 2},
		{EventID: "ev-1", Name: "S3", Target: 2},
	}
	svc.interviewers = &stubInterviewerReader{interviewers: []models.Interviewer{{EventID: "ev-1", Name: "P"}}}

	resp, err := svc.SolveEvent(context.Background(), "ev-1", dto.SolveEventRequest{AutoBalance: true})
	require.NoError(t, err)
	assert.Equal(t, "FEASIBLE", resp.Status)
	assert.Len(t, resp.Reductions, 3)

	total := 0
	for _, st := range resp.StudentsUsed {
		total += st.Target
	}
	assert.Equal(t, 3, total)
	require.NotNil(t, writer.created)
	assert.Len(t, roster.writtenTargets, 3)
}

func TestSolveServiceEventNotFound(t *testing.T) {
	svc, _, _, _ := newSolveFixture(nil)
	_, err := svc.SolveEvent(context.Background(), "missing", dto.SolveEventRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSolveServiceValidate(t *testing.T) {
	svc, _, _, _ := newSolveFixture(nil)

	two := 2
	one := 1
	three := 3
	zero := 0
	req := dto.ValidateRequest{
		Students: []dto.SolveStudent{
			{Name: "S1", Target: &two},
		},
		Interviewers: []dto.SolveInterviewer{
			{Name: "A"}, {Name: "B"},
		},
		NumSlots:             &three,
		BreaksMin:            &one,
		MinVirtualPerStudent: &zero,
		Schedule: map[string][]string{
			"S1": {"A", "B", ""},
		},
	}

	resp, err := svc.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Violations)

	req.Schedule["S1"] = []string{"A", "A", ""}
	resp, err = svc.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Violations, "S1: meets A 2 times")
}
