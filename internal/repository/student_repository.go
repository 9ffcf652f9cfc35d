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

// StudentRepository manages persistence for candidate records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM students s"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.EventID != "" {
		conditions = append(conditions, fmt.Sprintf("s.event_id = $%d", len(args)+1))
		args = append(args, filter.EventID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(s.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "s.name",
		"target":     "s.target",
		"created_at": "s.created_at",
	}
	if sortBy == "" {
		sortBy = "name"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "s.name"
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

	query := fmt.Sprintf(`SELECT s.id, s.event_id, s.name, s.target, s.created_at, s.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListByEvent returns the full roster for one event in name order.
func (r *StudentRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Student, error) {
	const query = `SELECT id, event_id, name, target, created_at, updated_at
        FROM students WHERE event_id = $1 ORDER BY name ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, eventID); err != nil {
		return nil, fmt.Errorf("list event students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, event_id, name, target, created_at, updated_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByName checks if the event roster already carries the name,
// optionally excluding an ID.
func (r *StudentRepository) ExistsByName(ctx context.Context, eventID, name, excludeID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE event_id = $1 AND name = $2"
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
		return false, fmt.Errorf("check student name: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, event_id, name, target, created_at, updated_at)
        VALUES (:id, :event_id, :name, :target, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, target = :target, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// UpdateTargets writes back the effective targets after auto-balance in
// one transaction, keyed by name within the event.
func (r *StudentRepository) UpdateTargets(ctx context.Context, eventID string, targets map[string]int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin target update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `UPDATE students SET target = $1, updated_at = $2 WHERE event_id = $3 AND name = $4`
	now := time.Now().UTC()
	for name, target := range targets {
		if _, err := tx.ExecContext(ctx, query, target, now, eventID, name); err != nil {
			return fmt.Errorf("update target for %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// Delete removes a student from the roster.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

// ReplaceForEvent swaps the event's entire roster in one transaction.
func (r *StudentRepository) ReplaceForEvent(ctx context.Context, eventID string, students []models.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE event_id = $1", eventID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}

	const query = `INSERT INTO students (id, event_id, name, target, created_at, updated_at)
        VALUES (:id, :event_id, :name, :target, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range students {
		students[i].EventID = eventID
		if students[i].ID == "" {
			students[i].ID = uuid.NewString()
		}
		students[i].CreatedAt = now
		students[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, &students[i]); err != nil {
			return fmt.Errorf("insert roster student %s: %w", students[i].Name, err)
		}
	}
	return tx.Commit()
}
