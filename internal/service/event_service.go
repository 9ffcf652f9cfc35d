package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/pkg/config"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.EventDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// EventService handles career day event use-cases.
type EventService struct {
	repo      eventRepository
	defaults  config.SolverConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the event service.
func NewEventService(repo eventRepository, defaults config.SolverConfig, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, defaults: defaults, validator: validate, logger: logger}
}

// List returns events and pagination metadata.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.EventDetail, *models.Pagination, error) {
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
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
	return events, pagination, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// Create registers a new event. Omitted quota fields fall back to the
// configured solver defaults.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	date, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD")
	}

	event := &models.Event{
		Name:                 req.Name,
		EventDate:            date,
		NumSlots:             s.defaults.DefaultSlots,
		DefaultTarget:        s.defaults.DefaultTarget,
		BreaksMin:            1,
		BreaksMax:            1,
		MinVirtualPerStudent: 1,
		MaxVirtualPerStudent: 1,
	}
	applyEventOverrides(event, req.NumSlots, req.DefaultTarget, req.BreaksMin, req.BreaksMax, req.MinVirtualPerStudent, req.MaxVirtualPerStudent)
	if err := validateEventQuotas(event); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.logger.Info("event created", zap.String("event_id", event.ID), zap.String("name", event.Name))
	return event, nil
}

// Update patches an existing event.
func (s *EventService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.EventDate != nil {
		date, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD")
		}
		event.EventDate = date
	}
	applyEventOverrides(event, req.NumSlots, req.DefaultTarget, req.BreaksMin, req.BreaksMax, req.MinVirtualPerStudent, req.MaxVirtualPerStudent)
	if err := validateEventQuotas(event); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	return event, nil
}

// Delete removes an event with its rosters and schedules.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.logger.Info("event deleted", zap.String("event_id", id))
	return nil
}

func applyEventOverrides(event *models.Event, numSlots, defaultTarget, breaksMin, breaksMax, minVirtual, maxVirtual *int) {
	if numSlots != nil {
		event.NumSlots = *numSlots
	}
	if defaultTarget != nil {
		event.DefaultTarget = *defaultTarget
	}
	if breaksMin != nil {
		event.BreaksMin = *breaksMin
	}
	if breaksMax != nil {
		event.BreaksMax = *breaksMax
	}
	if minVirtual != nil {
		event.MinVirtualPerStudent = *minVirtual
	}
	if maxVirtual != nil {
		event.MaxVirtualPerStudent = *maxVirtual
	}
}

func validateEventQuotas(event *models.Event) error {
	if event.BreaksMax < event.BreaksMin {
		return appErrors.Clone(appErrors.ErrValidation, "breaks_max must not be below breaks_min")
	}
	if event.BreaksMin > event.NumSlots {
		return appErrors.Clone(appErrors.ErrValidation, "breaks_min must not exceed num_slots")
	}
	if event.MaxVirtualPerStudent < event.MinVirtualPerStudent {
		return appErrors.Clone(appErrors.ErrValidation, "max_virtual_per_student must not be below min_virtual_per_student")
	}
	return nil
}
