package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
)

type interviewerRepository interface {
	List(ctx context.Context, filter models.InterviewerFilter) ([]models.Interviewer, int, error)
	FindByID(ctx context.Context, id string) (*models.Interviewer, error)
	ExistsByName(ctx context.Context, eventID, name, excludeID string) (bool, error)
	Create(ctx context.Context, interviewer *models.Interviewer) error
	Update(ctx context.Context, interviewer *models.Interviewer) error
	Delete(ctx context.Context, id string) error
	ReplaceForEvent(ctx context.Context, eventID string, interviewers []models.Interviewer) error
}

// InterviewerService handles interviewer roster use-cases.
type InterviewerService struct {
	repo      interviewerRepository
	events    eventLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInterviewerService constructs the interviewer service.
func NewInterviewerService(repo interviewerRepository, events eventLookup, validate *validator.Validate, logger *zap.Logger) *InterviewerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewerService{repo: repo, events: events, validator: validate, logger: logger}
}

// List returns interviewers and pagination metadata.
func (s *InterviewerService) List(ctx context.Context, filter models.InterviewerFilter) ([]models.Interviewer, *models.Pagination, error) {
	interviewers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list interviewers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return interviewers, pagination, nil
}

// Get returns a single interviewer.
func (s *InterviewerService) Get(ctx context.Context, id string) (*models.Interviewer, error) {
	interviewer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "interviewer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load interviewer")
	}
	return interviewer, nil
}

// Create adds an interviewer to an event roster.
func (s *InterviewerService) Create(ctx context.Context, eventID string, req dto.CreateInterviewerRequest) (*models.Interviewer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interviewer payload")
	}
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	exists, err := s.repo.ExistsByName(ctx, eventID, req.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate interviewer name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "interviewer name already on roster")
	}

	interviewer := &models.Interviewer{EventID: eventID, Name: req.Name, IsVirtual: req.IsVirtual}
	if err := s.repo.Create(ctx, interviewer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create interviewer")
	}
	return interviewer, nil
}

// Update modifies an existing interviewer.
func (s *InterviewerService) Update(ctx context.Context, id string, req dto.UpdateInterviewerRequest) (*models.Interviewer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interviewer payload")
	}
	interviewer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != interviewer.Name {
		exists, err := s.repo.ExistsByName(ctx, interviewer.EventID, *req.Name, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate interviewer name")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "interviewer name already on roster")
		}
		interviewer.Name = *req.Name
	}
	if req.IsVirtual != nil {
		interviewer.IsVirtual = *req.IsVirtual
	}
	if err := s.repo.Update(ctx, interviewer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update interviewer")
	}
	return interviewer, nil
}

// Delete removes an interviewer from the roster.
func (s *InterviewerService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete interviewer")
	}
	return nil
}

// ReplaceRoster swaps the event's interviewer roster at once.
func (s *InterviewerService) ReplaceRoster(ctx context.Context, eventID string, req dto.BulkInterviewersRequest) ([]models.Interviewer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	seen := make(map[string]bool, len(req.Interviewers))
	interviewers := make([]models.Interviewer, 0, len(req.Interviewers))
	for _, entry := range req.Interviewers {
		if seen[entry.Name] {
			return nil, appErrors.Clone(appErrors.ErrValidation, "duplicate interviewer name in roster: "+entry.Name)
		}
		seen[entry.Name] = true
		interviewers = append(interviewers, models.Interviewer{EventID: eventID, Name: entry.Name, IsVirtual: entry.IsVirtual})
	}

	if err := s.repo.ReplaceForEvent(ctx, eventID, interviewers); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace roster")
	}
	s.logger.Info("interviewer roster replaced", zap.String("event_id", eventID), zap.Int("count", len(interviewers)))
	return interviewers, nil
}
