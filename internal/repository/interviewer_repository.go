package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/careerday/interview-scheduler-api/internal/models"
)

// InterviewerRepository manages persistence for interviewer records.
type InterviewerRepository struct {
	db *sqlx.DB
}

// NewInterviewerRepository constructs an InterviewerRepository.
func NewInterviewerRepository(db *sqlx.DB) *InterviewerRepository {
	return &InterviewerRepository{db: db}
}

// List returns interviewers matching the provided filters.
func (r *InterviewerRepository) List(ctx context.Context, filter models.InterviewerFilter) ([]models.Interviewer, int, error) {
	base := "FROM interviewers i"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.EventID != "" {
		conditions = append(conditions, fmt.Sprintf("i.event_id = $%d", len(args)+1))
		args = append(args, filter.EventID)
	}
	if filter.IsVirtual != nil {
		conditions = append(conditions, fmt.Sprintf("i.is_virtual = $%d", len(args)+1))
		args = append(args, *filter.IsVirtual)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(i.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "i.name",
		"created_at": "i.created_at",
	}
	if sortBy == "" {
		sortBy = "name"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "i.name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT i.id, i.event_id, i.name, i.is_virtual, i.created_at, i.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var interviewers []models.Interviewer
	if err := r.db.SelectContext(ctx, &interviewers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list interviewers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count interviewers: %w", err)
	}
	return interviewers, total, nil
}

// ListByEvent returns the full attending roster for one event. Physical
// interviewers come first so display IDs stay stable across reloads.
func (r *InterviewerRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Interviewer, error) {
	const query = `SELECT id, event_id, name, is_virtual, created_at, updated_at
        FROM interviewers WHERE event_id = $1 ORDER BY is_virtual ASC, created_at ASC`
	var interviewers []models.Interviewer
	if err := r.db.SelectContext(ctx, &interviewers, query, eventID); err != nil {
		return nil, fmt.Errorf("list event interviewers: %w", err)
	}
	return interviewers, nil
}

// FindByID fetches an interviewer by ID.
func (r *InterviewerRepository) FindByID(ctx context.Context, id string) (*models.Interviewer, error) {
	const query = `SELECT id, event_id, name, is_virtual, created_at, updated_at FROM interviewers WHERE id = $1`
	var interviewer models.Interviewer
	if err := r.db.GetContext(ctx, &interviewer, query, id); err != nil {
		return nil, err
	}
	return &interviewer, nil
}

// ExistsByName checks for a duplicate name inside the event roster.
func (r *InterviewerRepository) ExistsByName(ctx context.Context, eventID, name, excludeID string) (bool, error) {
	query := "SELECT 1 FROM interviewers WHERE event_id = $1 AND name = $2"
	args := []interface{}{eventID, name}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check interviewer name: %w", err)
	}
	return true, nil
}

// Create inserts a new interviewer record.
func (r *InterviewerRepository) Create(ctx context.Context, interviewer *models.Interviewer) error {
	if interviewer.ID == "" {
		interviewer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if interviewer.CreatedAt.IsZero() {
		interviewer.CreatedAt = now
	}
	interviewer.UpdatedAt = now
	const query = `INSERT INTO interviewers (id, event_id, name, is_virtual, created_at, updated_at)
        VALUES (:id, :event_id, :name, :is_virtual, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, interviewer); err != nil {
		return fmt.Errorf("create interviewer: %w", err)
	}
	return nil
}

// Update modifies an existing interviewer.
func (r *InterviewerRepository) Update(ctx context.Context, interviewer *models.Interviewer) error {
	interviewer.UpdatedAt = time.Now().UTC()
	const query = `UPDATE interviewers SET name = :name, is_virtual = :is_virtual, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, interviewer); err != nil {
		return fmt.Errorf("update interviewer: %w", err)
	}
	return nil
}

// Delete removes an interviewer from the roster.
func (r *InterviewerRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM interviewers WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete interviewer: %w", err)
	}
	return nil
}

// ReplaceForEvent swaps the event's interviewer roster in one transaction.
func (r *InterviewerRepository) ReplaceForEvent(ctx context.Context, eventID string, interviewers []models.Interviewer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM interviewers WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}

	const query = `INSERT INTO interviewers (id, event_id, name, is_virtual, created_at, updated_at)
        VALUES (:id, :event_id, :name, :is_virtual, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range interviewers {
		interviewers[i].EventID = eventID
		if interviewers[i].ID == "" {
			interviewers[i].ID = uuid.NewString()
		}
		interviewers[i].CreatedAt = now
		interviewers[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, &interviewers[i]); err != nil {
			return fmt.Errorf("insert roster interviewer %s: %w", interviewers[i].Name, err)
		}
	}
	return tx.Commit()
}
