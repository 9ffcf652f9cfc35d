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

// ScheduleRepository manages persistence for solved schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedule metadata matching the provided filters. Payload
// columns are excluded on purpose; clients fetch them per schedule.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleMeta, int, error) {
	base := "FROM schedules sc"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.EventID != "" {
		conditions = append(conditions, fmt.Sprintf("sc.event_id = $%d", len(args)+1))
		args = append(args, filter.EventID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("sc.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

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

	query := fmt.Sprintf(`SELECT sc.id, sc.event_id, sc.status, sc.seed, sc.created_at
        %s ORDER BY sc.created_at %s LIMIT %d OFFSET %d`, base, order, size, offset)

	var metas []models.ScheduleMeta
	if err := r.db.SelectContext(ctx, &metas, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}
	return metas, total, nil
}

// FindByID fetches a full schedule, payloads included.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	const query = `SELECT id, event_id, status, seed, schedule_data, interviewer_schedule,
        interviewer_assignments, stats, created_at
        FROM schedules WHERE id = $1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindLatestByEvent fetches the most recent schedule for an event.
func (r *ScheduleRepository) FindLatestByEvent(ctx context.Context, eventID string) (*models.Schedule, error) {
	const query = `SELECT id, event_id, status, seed, schedule_data, interviewer_schedule,
        interviewer_assignments, stats, created_at
        FROM schedules WHERE event_id = $1 ORDER BY created_at DESC LIMIT 1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, eventID); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Create inserts a solved schedule.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedules (id, event_id, status, seed, schedule_data, interviewer_schedule,
        interviewer_assignments, stats, created_at)
        VALUES (:id, :event_id, :status, :seed, :schedule_data, :interviewer_schedule,
        :interviewer_assignments, :stats, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Delete removes a stored schedule.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// DeleteByEvent removes every stored schedule for an event and reports
// how many rows were cleared.
func (r *ScheduleRepository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM schedules WHERE event_id = $1", eventID)
	if err != nil {
		return 0, fmt.Errorf("delete schedules for event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete schedules for event: %w", err)
	}
	return affected, nil
}
