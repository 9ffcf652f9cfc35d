package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/internal/solver"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleMeta, int, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	FindLatestByEvent(ctx context.Context, eventID string) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
	DeleteByEvent(ctx context.Context, eventID string) (int64, error)
}

// ScheduleService handles stored schedule use-cases. Event and roster
// lookups back the external-save path, which re-checks the incoming
// payload against the event's rosters.
type ScheduleService struct {
	repo         scheduleRepository
	events       eventLookup
	students     rosterReader
	interviewers interviewerReader
	cache        *CacheService
	logger       *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo scheduleRepository, events eventLookup, students rosterReader,
	interviewers interviewerReader, cache *CacheService, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		repo:         repo,
		events:       events,
		students:     students,
		interviewers: interviewers,
		cache:        cache,
		logger:       logger,
	}
}

// List returns schedule metadata and pagination.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleMeta, *models.Pagination, error) {
	metas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return metas, pagination, nil
}

// Get returns a full schedule by ID.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// Latest returns the most recent schedule for an event, consulting the
// cache before the database.
func (s *ScheduleService) Latest(ctx context.Context, eventID string) (*models.Schedule, error) {
	var cached models.Schedule
	if hit, _ := s.cache.Get(ctx, ScheduleCacheKey(eventID), &cached); hit {
		return &cached, nil
	}

	schedule, err := s.repo.FindLatestByEvent(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no schedule for event")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest schedule")
	}
	_ = s.cache.Set(ctx, ScheduleCacheKey(eventID), schedule, 0)
	return schedule, nil
}

// Save stores an externally produced schedule against an event, for
// example a hand-edited grid. The payload is validated against the
// event's rosters and quotas; findings are advisory and do not block
// the save.
func (s *ScheduleService) Save(ctx context.Context, eventID string, req dto.SaveScheduleRequest) (*dto.SaveScheduleResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if len(req.Schedule) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule is required")
	}

	violations, err := s.checkAgainstRosters(ctx, event, req)
	if err != nil {
		return nil, err
	}

	scheduleJSON, err := json.Marshal(req.Schedule)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule")
	}
	interviewerJSON, err := json.Marshal(req.InterviewerSchedule)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode interviewer schedule")
	}
	assignmentsJSON, err := json.Marshal(req.InterviewerAssignments)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode interviewer assignments")
	}

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	}
	record := &models.Schedule{
		EventID:                event.ID,
		Status:                 models.ScheduleStatusFeasible,
		Seed:                   seed,
		ScheduleData:           types.JSONText(scheduleJSON),
		InterviewerSchedule:    types.JSONText(interviewerJSON),
		InterviewerAssignments: types.JSONText(assignmentsJSON),
		Stats:                  types.JSONText("{}"),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
	}

	if err := s.cache.Invalidate(ctx, ScheduleCachePattern(event.ID)); err != nil {
		s.logger.Warn("invalidate schedule cache", zap.String("event_id", event.ID), zap.Error(err))
	} else {
		_ = s.cache.Set(ctx, ScheduleCacheKey(event.ID), record, 0)
	}

	return &dto.SaveScheduleResponse{ScheduleID: record.ID, ValidationErrors: violations}, nil
}

// ClearForEvent removes every stored schedule for an event.
func (s *ScheduleService) ClearForEvent(ctx context.Context, eventID string) (*dto.ClearSchedulesResponse, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	deleted, err := s.repo.DeleteByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear schedules")
	}
	if err := s.cache.Invalidate(ctx, ScheduleCachePattern(eventID)); err != nil {
		s.logger.Warn("invalidate schedule cache", zap.String("event_id", eventID), zap.Error(err))
	}
	return &dto.ClearSchedulesResponse{Deleted: deleted}, nil
}

func (s *ScheduleService) checkAgainstRosters(ctx context.Context, event *models.Event, req dto.SaveScheduleRequest) ([]string, error) {
	roster, err := s.students.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student roster")
	}
	attending, err := s.interviewers.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load interviewer roster")
	}

	students := make([]solver.Student, 0, len(roster))
	for _, st := range roster {
		students = append(students, solver.Student{Name: st.Name, Target: st.Target})
	}
	interviewers := make([]solver.Interviewer, 0, len(attending))
	for _, inv := range attending {
		interviewers = append(interviewers, solver.Interviewer{Name: inv.Name, Virtual: inv.IsVirtual})
	}

	return solver.Validate(solver.ValidationInput{
		StudentRows:     req.Schedule,
		InterviewerRows: req.InterviewerSchedule,
		Students:        students,
		Interviewers:    interviewers,
		Quotas: solver.Quotas{
			NumSlots:             event.NumSlots,
			BreaksMin:            event.BreaksMin,
			BreaksMax:            event.BreaksMax,
			MinVirtualPerStudent: event.MinVirtualPerStudent,
			MaxVirtualPerStudent: event.MaxVirtualPerStudent,
		},
	}), nil
}

// Delete removes a stored schedule and drops the event's cache entries.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	schedule, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	if err := s.cache.Invalidate(ctx, ScheduleCachePattern(schedule.EventID)); err != nil {
		s.logger.Warn("invalidate schedule cache", zap.String("event_id", schedule.EventID), zap.Error(err))
	}
	return nil
}
