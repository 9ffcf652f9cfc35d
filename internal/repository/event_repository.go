package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/careerday/interview-scheduler-api/internal/models"
)

// EventRepository manages persistence for career day events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching the provided filters, with roster counts.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.EventDetail, int, error) {
	base := "FROM events ev"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(ev.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("ev.event_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("ev.event_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "ev.name",
		"event_date": "ev.event_date",
		"created_at": "ev.created_at",
	}
	if sortBy == "" {
		sortBy = "event_date"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "ev.event_date"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT ev.id, ev.name, ev.event_date, ev.num_slots, ev.default_target,
        ev.breaks_min, ev.breaks_max, ev.min_virtual_per_student, ev.max_virtual_per_student,
        ev.created_at, ev.updated_at,
        (SELECT COUNT(*) FROM students s WHERE s.event_id = ev.id) AS student_count,
        (SELECT COUNT(*) FROM interviewers i WHERE i.event_id = ev.id) AS interviewer_count
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var events []models.EventDetail
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// FindByID fetches a single event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	const query = `SELECT id, name, event_date, num_slots, default_target, breaks_min, breaks_max,
        min_virtual_per_student, max_virtual_per_student, created_at, updated_at
        FROM events WHERE id = $1`
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event record.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO events (id, name, event_date, num_slots, default_target, breaks_min, breaks_max,
        min_virtual_per_student, max_virtual_per_student, created_at, updated_at)
        VALUES (:id, :name, :event_date, :num_slots, :default_target, :breaks_min, :breaks_max,
        :min_virtual_per_student, :max_virtual_per_student, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an existing event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET name = :name, event_date = :event_date, num_slots = :num_slots,
        default_target = :default_target, breaks_min = :breaks_min, breaks_max = :breaks_max,
        min_virtual_per_student = :min_virtual_per_student, max_virtual_per_student = :max_virtual_per_student,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event together with its rosters and schedules.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete event: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"schedules", "students", "interviewers"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE event_id = $1", table), id); err != nil {
			return fmt.Errorf("delete event %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return tx.Commit()
}
