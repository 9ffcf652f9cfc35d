package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerday/interview-scheduler-api/internal/models"
)

func TestScheduleRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.Schedule{
		EventID:                "ev-1",
		Status:                 models.ScheduleStatusFeasible,
		Seed:                   42,
		ScheduleData:           types.JSONText(`{"Dana":["A",""]}`),
		InterviewerSchedule:    types.JSONText(`{"A":["Dana","BREAK"]}`),
		InterviewerAssignments: types.JSONText(`[]`),
		Stats:                  types.JSONText(`{}`),
	}
	err := repo.Create(context.Background(), schedule)
	require.NoError(t, err)
	assert.NotEmpty(t, schedule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryFindLatestByEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "event_id", "status", "seed", "schedule_data", "interviewer_schedule", "interviewer_assignments", "stats", "created_at"}).
		AddRow("sch-1", "ev-1", "FEASIBLE", int64(42), []byte(`{}`), []byte(`{}`), []byte(`[]`), []byte(`{}`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM schedules WHERE event_id = $1 ORDER BY created_at DESC LIMIT 1")).
		WithArgs("ev-1").
		WillReturnRows(rows)

	schedule, err := repo.FindLatestByEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "sch-1", schedule.ID)
	assert.Equal(t, models.ScheduleStatusFeasible, schedule.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteByEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedules WHERE event_id = $1")).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteByEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "event_id", "status", "seed", "created_at"}).
		AddRow("sch-1", "ev-1", "FEASIBLE", int64(7), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT sc.id, sc.event_id, sc.status, sc.seed, sc.created_at\n        FROM schedules sc WHERE 1=1 AND sc.event_id = $1 ORDER BY sc.created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("ev-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schedules sc WHERE 1=1 AND sc.event_id = $1")).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	metas, total, err := repo.List(context.Background(), models.ScheduleFilter{EventID: "ev-1"})
	require.NoError(t, err)
	assert.Len(t, metas, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
