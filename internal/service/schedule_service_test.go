package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
)

type stubScheduleRepo struct {
	latest  *models.Schedule
	created *models.Schedule
	cleared int64
}

func (s *stubScheduleRepo) List(_ context.Context, _ models.ScheduleFilter) ([]models.ScheduleMeta, int, error) {
	return nil, 0, nil
}

func (s *stubScheduleRepo) FindByID(_ context.Context, _ string) (*models.Schedule, error) {
	return nil, sql.ErrNoRows
}

func (s *stubScheduleRepo) FindLatestByEvent(_ context.Context, _ string) (*models.Schedule, error) {
	if s.latest == nil {
		return nil, sql.ErrNoRows
	}
	return s.latest, nil
}

func (s *stubScheduleRepo) Create(_ context.Context, schedule *models.Schedule) error {
	schedule.ID = "sch-ext-1"
	s.created = schedule
	return nil
}

func (s *stubScheduleRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func (s *stubScheduleRepo) DeleteByEvent(_ context.Context, _ string) (int64, error) {
	return s.cleared, nil
}

func newScheduleFixture() (*ScheduleService, *stubScheduleRepo, *stubEventRepo, *stubRosterRepo, *stubInterviewerReader) {
	repo := &stubScheduleRepo{}
	events := &stubEventRepo{}
	roster := &stubRosterRepo{}
	interviewers := &stubInterviewerReader{}
	cache := NewCacheService(nil, nil, 0, nil, false)
	svc := NewScheduleService(repo, events, roster, interviewers, cache, nil)
	return svc, repo, events, roster, interviewers
}

func savedEvent() *models.Event {
	return &models.Event{
		ID: "ev-1", Name: "Career Day", NumSlots: 3, DefaultTarget: 2,
		BreaksMin: 0, BreaksMax: 3, MinVirtualPerStudent: 0, MaxVirtualPerStudent: 0,
	}
}

func TestScheduleServiceSaveStoresPayload(t *testing.T) {
	svc, repo, events, roster, interviewers := newScheduleFixture()
	events.event = savedEvent()
	roster.students = []models.Student{{EventID: "ev-1", Name: "S1", Target: 2}}
	interviewers.interviewers = []models.Interviewer{
		{EventID: "ev-1", Name: "A"},
		{EventID: "ev-1", Name: "B"},
	}

	resp, err := svc.Save(context.Background(), "ev-1", dto.SaveScheduleRequest{
		Schedule: map[string][]string{"S1": {"A", "B", ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sch-ext-1", resp.ScheduleID)
	assert.Empty(t, resp.ValidationErrors)

	require.NotNil(t, repo.created)
	assert.Equal(t, "ev-1", repo.created.EventID)
	assert.Equal(t, models.ScheduleStatusFeasible, repo.created.Status)
	assert.JSONEq(t, `{"S1":["A","B",""]}`, string(repo.created.ScheduleData))
}

func TestScheduleServiceSaveReportsViolations(t *testing.T) {
	svc, repo, events, roster, interviewers := newScheduleFixture()
	events.event = savedEvent()
	roster.students = []models.Student{{EventID: "ev-1", Name: "S1", Target: 2}}
	interviewers.interviewers = []models.Interviewer{
		{EventID: "ev-1", Name: "A"},
		{EventID: "ev-1", Name: "B"},
	}

	resp, err := svc.Save(context.Background(), "ev-1", dto.SaveScheduleRequest{
		Schedule: map[string][]string{"S1": {"A", "A", ""}},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.ValidationErrors, "S1: meets A 2 times")
	// findings are advisory, the row is still stored
	require.NotNil(t, repo.created)
}

func TestScheduleServiceSaveEventNotFound(t *testing.T) {
	svc, _, _, _, _ := newScheduleFixture()

	_, err := svc.Save(context.Background(), "missing", dto.SaveScheduleRequest{
		Schedule: map[string][]string{"S1": {"A"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceClearForEvent(t *testing.T) {
	svc, repo, events, _, _ := newScheduleFixture()
	events.event = savedEvent()
	repo.cleared = 2

	resp, err := svc.ClearForEvent(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)

	_, err = svc.ClearForEvent(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceLatestFallsBackToRepo(t *testing.T) {
	svc, repo, events, _, _ := newScheduleFixture()
	events.event = savedEvent()
	repo.latest = &models.Schedule{ID: "sch-9", EventID: "ev-1", Status: models.ScheduleStatusFeasible}

	schedule, err := svc.Latest(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "sch-9", schedule.ID)

	repo.latest = nil
	_, err = svc.Latest(context.Background(), "ev-2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
