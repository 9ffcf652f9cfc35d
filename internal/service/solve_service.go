package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/internal/solver"
	"github.com/careerday/interview-scheduler-api/pkg/config"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
)

type rosterReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]models.Student, error)
	UpdateTargets(ctx context.Context, eventID string, targets map[string]int) error
}

type interviewerReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]models.Interviewer, error)
}

type scheduleWriter interface {
	Create(ctx context.Context, schedule *models.Schedule) error
}

type solveEngine interface {
	Solve(ctx context.Context, sc *solver.Scenario) *solver.Result
}

// SolveService orchestrates one scheduling run end to end: input
// resolution, auto-balance, feasibility prechecks, the search itself,
// extraction, independent validation, and persistence.
type SolveService struct {
	events       eventLookup
	students     rosterReader
	interviewers interviewerReader
	schedules    scheduleWriter
	cache        *CacheService
	metrics      *MetricsService
	engine       solveEngine
	cfg          config.SolverConfig
	validator    *validator.Validate
	logger       *zap.Logger

	// seedSource is swappable in tests; defaults to wall-clock nanos.
	seedSource func() int64
}

// NewSolveService constructs the solve service. A nil engine gets the
// in-process search engine with the configured budget.
func NewSolveService(events eventLookup, students rosterReader, interviewers interviewerReader, schedules scheduleWriter,
	cache *CacheService, metrics *MetricsService, engine solveEngine, cfg config.SolverConfig,
	validate *validator.Validate, logger *zap.Logger) *SolveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SolveService{
		events:       events,
		students:     students,
		interviewers: interviewers,
		schedules:    schedules,
		cache:        cache,
		metrics:      metrics,
		engine:       engine,
		cfg:          cfg,
		validator:    validate,
		logger:       logger,
		seedSource:   func() int64 { return time.Now().UnixNano() },
	}
	return svc
}

// Solve runs a complete scheduling attempt for an ad hoc scenario. When
// the request names an event, the result is persisted against it.
//
// A completed search always returns a response: INFEASIBLE and TIMEOUT
// outcomes are reported through the response status, with the capacity
// arithmetic filled in, so callers can decide how to surface them.
func (s *SolveService) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve payload")
	}

	var event *models.Event
	if req.EventID != "" {
		var err error
		event, err = s.lookupEvent(ctx, req.EventID)
		if err != nil {
			return nil, err
		}
	}
	return s.run(ctx, req, event)
}

// SolveEvent runs a scheduling attempt from an event's stored rosters.
func (s *SolveService) SolveEvent(ctx context.Context, eventID string, opts dto.SolveEventRequest) (*dto.SolveResponse, error) {
	event, err := s.lookupEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	roster, err := s.students.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student roster")
	}
	attending, err := s.interviewers.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load interviewer roster")
	}
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "event has no students")
	}
	if len(attending) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "event has no interviewers")
	}

	req := dto.SolveRequest{
		EventID:           eventID,
		Seed:              opts.Seed,
		AutoBalance:       opts.AutoBalance,
		TimeBudgetSeconds: opts.TimeBudgetSeconds,
	}
	for _, st := range roster {
		target := st.Target
		req.Students = append(req.Students, dto.SolveStudent{Name: st.Name, Target: &target})
	}
	for _, inv := range attending {
		req.Interviewers = append(req.Interviewers, dto.SolveInterviewer{Name: inv.Name, IsVirtual: inv.IsVirtual})
	}
	return s.run(ctx, req, event)
}

func (s *SolveService) run(ctx context.Context, req dto.SolveRequest, event *models.Event) (*dto.SolveResponse, error) {
	quotas, defaultTarget := s.resolveQuotas(req, event)

	students := make([]solver.Student, 0, len(req.Students))
	for _, entry := range req.Students {
		target := defaultTarget
		if entry.Target != nil {
			target = *entry.Target
		}
		students = append(students, solver.Student{Name: entry.Name, Target: target})
	}
	interviewers := make([]solver.Interviewer, 0, len(req.Interviewers))
	for _, entry := range req.Interviewers {
		interviewers = append(interviewers, solver.Interviewer{Name: entry.Name, Virtual: entry.IsVirtual})
	}

	sc, err := solver.NewScenario(students, interviewers, quotas)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if sc.VarCount() > s.cfg.MaxModelVars {
		return nil, appErrors.Clone(appErrors.ErrModelTooLarge, "")
	}

	seed := s.seedSource()
	if req.Seed != nil {
		seed = *req.Seed
	}

	resp := &dto.SolveResponse{SeedUsed: seed}

	if req.AutoBalance {
		reductions, _ := solver.AutoBalance(sc, seed)
		for _, r := range reductions {
			resp.Reductions = append(resp.Reductions, dto.BalanceReduction{Student: r.Student, From: r.From, To: r.To})
		}
	}
	for _, st := range sc.Students {
		resp.StudentsUsed = append(resp.StudentsUsed, dto.SolveStudentUsed{Name: st.Name, Target: st.Target})
	}

	stats, err := solver.Precheck(sc)
	resp.Stats = dto.SolveStats{
		Capacity:        stats.Capacity,
		Demand:          stats.Demand,
		VirtualCapacity: stats.VirtualCapacity,
		VirtualDemand:   stats.VirtualDemand,
	}
	if err != nil {
		switch err {
		case solver.ErrDemandExceedsCapacity:
			return resp, appErrors.Clone(appErrors.ErrInfeasibleDemand, "")
		case solver.ErrVirtualDemandExceedsCapacity:
			return resp, appErrors.Clone(appErrors.ErrInfeasibleVirtualDemand, "")
		default:
			return resp, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "precheck failed")
		}
	}

	engine := s.engine
	if engine == nil {
		budget := s.cfg.TimeBudget
		if req.TimeBudgetSeconds != nil {
			budget = time.Duration(*req.TimeBudgetSeconds) * time.Second
		}
		engine = &solver.Engine{Budget: budget, Seed: seed, Logger: s.logger}
	}

	result := engine.Solve(ctx, sc)
	resp.Status = result.Status.String()
	resp.Stats.Status = resp.Status
	resp.Stats.SolveTimeMs = result.Elapsed.Milliseconds()
	resp.Stats.Nodes = result.Nodes
	if s.metrics != nil {
		s.metrics.ObserveSolve(resp.Status, result.Elapsed)
	}

	s.logger.Info("solve finished",
		zap.String("status", resp.Status),
		zap.Int64("seed", seed),
		zap.Int("students", len(sc.Students)),
		zap.Int("interviewers", len(sc.Interviewers)),
		zap.Int64("nodes", result.Nodes),
		zap.Duration("elapsed", result.Elapsed),
	)

	if result.Status != solver.StatusFeasible {
		return resp, nil
	}

	schedule := solver.Extract(sc, result.Assignment)
	resp.Schedule = schedule.StudentRows
	resp.InterviewerSchedule = schedule.InterviewerRows
	resp.InterviewerAssignments = schedule.Summaries
	resp.Stats.TotalInterviews = stats.Demand
	resp.ValidationErrors = solver.Validate(solver.ValidationInput{
		StudentRows:     schedule.StudentRows,
		InterviewerRows: schedule.InterviewerRows,
		Students:        sc.Students,
		Interviewers:    sc.Interviewers,
		Quotas:          sc.Quotas,
	})

	if event != nil {
		s.persist(ctx, event, sc, resp, seed)
	}
	return resp, nil
}

// persist stores the solved schedule, writes back any auto-balanced
// targets, and refreshes the event's cache entry. Failures here are
// logged but do not fail the solve; the caller already has the result.
func (s *SolveService) persist(ctx context.Context, event *models.Event, sc *solver.Scenario, resp *dto.SolveResponse, seed int64) {
	scheduleJSON, err := json.Marshal(resp.Schedule)
	if err != nil {
		s.logger.Error("marshal schedule", zap.Error(err))
		return
	}
	interviewerJSON, err := json.Marshal(resp.InterviewerSchedule)
	if err != nil {
		s.logger.Error("marshal interviewer schedule", zap.Error(err))
		return
	}
	assignmentsJSON, err := json.Marshal(resp.InterviewerAssignments)
	if err != nil {
		s.logger.Error("marshal interviewer assignments", zap.Error(err))
		return
	}
	statsJSON, err := json.Marshal(resp.Stats)
	if err != nil {
		s.logger.Error("marshal stats", zap.Error(err))
		return
	}

	record := &models.Schedule{
		EventID:                event.ID,
		Status:                 models.ScheduleStatus(resp.Status),
		Seed:                   seed,
		ScheduleData:           types.JSONText(scheduleJSON),
		InterviewerSchedule:    types.JSONText(interviewerJSON),
		InterviewerAssignments: types.JSONText(assignmentsJSON),
		Stats:                  types.JSONText(statsJSON),
	}
	if err := s.schedules.Create(ctx, record); err != nil {
		s.logger.Error("persist schedule", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	resp.ScheduleID = record.ID

	if len(resp.Reductions) > 0 {
		targets := make(map[string]int, len(resp.Reductions))
		for _, st := range sc.Students {
			targets[st.Name] = st.Target
		}
		if err := s.students.UpdateTargets(ctx, event.ID, targets); err != nil {
			s.logger.Error("write back balanced targets", zap.String("event_id", event.ID), zap.Error(err))
		}
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, ScheduleCachePattern(event.ID)); err == nil {
			_ = s.cache.Set(ctx, ScheduleCacheKey(event.ID), record, 0)
		}
	}
}

// resolveQuotas layers request fields over event settings over configured
// defaults. Omitted maxima collapse onto their minima.
func (s *SolveService) resolveQuotas(req dto.SolveRequest, event *models.Event) (solver.Quotas, int) {
	quotas := solver.Quotas{
		NumSlots:             s.cfg.DefaultSlots,
		BreaksMin:            1,
		BreaksMax:            1,
		MinVirtualPerStudent: 1,
		MaxVirtualPerStudent: 1,
	}
	defaultTarget := s.cfg.DefaultTarget
	if event != nil {
		quotas.NumSlots = event.NumSlots
		quotas.BreaksMin = event.BreaksMin
		quotas.BreaksMax = event.BreaksMax
		quotas.MinVirtualPerStudent = event.MinVirtualPerStudent
		quotas.MaxVirtualPerStudent = event.MaxVirtualPerStudent
		defaultTarget = event.DefaultTarget
	}

	if req.NumSlots != nil {
		quotas.NumSlots = *req.NumSlots
	}
	if req.DefaultTarget != nil {
		defaultTarget = *req.DefaultTarget
	}
	if req.BreaksMin != nil {
		quotas.BreaksMin = *req.BreaksMin
		quotas.BreaksMax = *req.BreaksMin
	}
	if req.BreaksMax != nil {
		quotas.BreaksMax = *req.BreaksMax
	}
	if req.MinVirtualPerStudent != nil {
		quotas.MinVirtualPerStudent = *req.MinVirtualPerStudent
		quotas.MaxVirtualPerStudent = *req.MinVirtualPerStudent
	}
	if req.MaxVirtualPerStudent != nil {
		quotas.MaxVirtualPerStudent = *req.MaxVirtualPerStudent
	}
	return quotas, defaultTarget
}

// Validate re-checks a schedule against a scenario without solving.
func (s *SolveService) Validate(ctx context.Context, req dto.ValidateRequest) (*dto.ValidateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validate payload")
	}

	quotas, defaultTarget := s.resolveQuotas(dto.SolveRequest{
		NumSlots:             req.NumSlots,
		DefaultTarget:        req.DefaultTarget,
		BreaksMin:            req.BreaksMin,
		BreaksMax:            req.BreaksMax,
		MinVirtualPerStudent: req.MinVirtualPerStudent,
		MaxVirtualPerStudent: req.MaxVirtualPerStudent,
	}, nil)

	students := make([]solver.Student, 0, len(req.Students))
	for _, entry := range req.Students {
		target := defaultTarget
		if entry.Target != nil {
			target = *entry.Target
		}
		students = append(students, solver.Student{Name: entry.Name, Target: target})
	}
	interviewers := make([]solver.Interviewer, 0, len(req.Interviewers))
	for _, entry := range req.Interviewers {
		interviewers = append(interviewers, solver.Interviewer{Name: entry.Name, Virtual: entry.IsVirtual})
	}

	violations := solver.Validate(solver.ValidationInput{
		StudentRows:     req.Schedule,
		InterviewerRows: req.InterviewerSchedule,
		Students:        students,
		Interviewers:    interviewers,
		Quotas:          quotas,
	})
	if violations == nil {
		violations = []string{}
	}
	return &dto.ValidateResponse{Valid: len(violations) == 0, Violations: violations}, nil
}

func (s *SolveService) lookupEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}
