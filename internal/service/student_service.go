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

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByName(ctx context.Context, eventID, name, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	ReplaceForEvent(ctx context.Context, eventID string, students []models.Student) error
}

type eventLookup interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

// StudentService handles candidate roster use-cases.
type StudentService struct {
	repo      studentRepository
	events    eventLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, events eventLookup, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, events: events, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
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
	return students, pagination, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create adds one candidate to an event roster. A nil target falls back
// to the event's default.
func (s *StudentService) Create(ctx context.Context, eventID string, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	event, err := s.lookupEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByName(ctx, eventID, req.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student name already on roster")
	}

	target := event.DefaultTarget
	if req.Target != nil {
		target = *req.Target
	}
	student := &models.Student{EventID: eventID, Name: req.Name, Target: target}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student.
func (s *StudentService) Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != student.Name {
		exists, err := s.repo.ExistsByName(ctx, student.EventID, *req.Name, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student name")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student name already on roster")
		}
		student.Name = *req.Name
	}
	if req.Target != nil {
		student.Target = *req.Target
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a candidate from the roster.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// ReplaceRoster swaps the event's whole candidate roster at once, the
// bulk path used by spreadsheet imports.
func (s *StudentService) ReplaceRoster(ctx context.Context, eventID string, req dto.BulkStudentsRequest) ([]models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	event, err := s.lookupEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.Students))
	students := make([]models.Student, 0, len(req.Students))
	for _, entry := range req.Students {
		if seen[entry.Name] {
			return nil, appErrors.Clone(appErrors.ErrValidation, "duplicate student name in roster: "+entry.Name)
		}
		seen[entry.Name] = true
		target := event.DefaultTarget
		if entry.Target != nil {
			target = *entry.Target
		}
		students = append(students, models.Student{EventID: eventID, Name: entry.Name, Target: target})
	}

	if err := s.repo.ReplaceForEvent(ctx, eventID, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace roster")
	}
	s.logger.Info("student roster replaced", zap.String("event_id", eventID), zap.Int("count", len(students)))
	return students, nil
}

func (s *StudentService) lookupEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}
