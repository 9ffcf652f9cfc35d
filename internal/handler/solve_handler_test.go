package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerday/interview-scheduler-api/internal/service"
	"github.com/careerday/interview-scheduler-api/pkg/config"
)

func newSolveHandler() *SolveHandler {
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	cfg := config.SolverConfig{MaxModelVars: 250000, DefaultSlots: 13, DefaultTarget: 6}
	solve := service.NewSolveService(nil, nil, nil, nil, cache, nil, nil, cfg, nil, nil)
	return NewSolveHandler(solve)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler(c)
	return w
}

func TestSolveEndpointFeasible(t *testing.T) {
	h := newSolveHandler()
	payload := []byte(`{
		"students": [
			{"name": "S1", "target": 2},
			{"name": "S2", "target": 2},
			{"name": "S3", "target": 2}
		],
		"interviewers": [
			{"name": "P"},
			{"name": "V", "is_virtual": true}
		],
		"num_slots": 4,
		"breaks_min": 1,
		"min_virtual_per_student": 1,
		"seed": 7
	}`)

	w := postJSON(t, h.Solve, "/solve", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Status   string              `json:"status"`
			Schedule map[string][]string `json:"schedule"`
			SeedUsed int64               `json:"seed_used"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "FEASIBLE", envelope.Data.Status)
	assert.Equal(t, int64(7), envelope.Data.SeedUsed)
	assert.Len(t, envelope.Data.Schedule, 3)
}

func TestSolveEndpointInfeasibleDemand(t *testing.T) {
	h := newSolveHandler()
	payload := []byte(`{
		"students": [{"name": "S1", "target": 9}],
		"interviewers": [{"name": "P"}],
		"num_slots": 3,
		"breaks_min": 0,
		"min_virtual_per_student": 0
	}`)

	w := postJSON(t, h.Solve, "/solve", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var envelope struct {
		Data struct {
			Stats struct {
				Demand   int `json:"demand"`
				Capacity int `json:"capacity"`
			} `json:"stats"`
		} `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "INFEASIBLE_DEMAND", envelope.Error.Code)
	assert.Equal(t, 9, envelope.Data.Stats.Demand)
	assert.Equal(t, 3, envelope.Data.Stats.Capacity)
}

func TestSolveEndpointNoSolution(t *testing.T) {
	h := newSolveHandler()
	// capacity admits the demand but the no-repeat rule forbids it
	payload := []byte(`{
		"students": [{"name": "S1", "target": 2}],
		"interviewers": [{"name": "P"}],
		"num_slots": 3,
		"breaks_min": 0,
		"min_virtual_per_student": 0
	}`)

	w := postJSON(t, h.Solve, "/solve", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "NO_SOLUTION", envelope.Error.Code)
}

func TestSolveEndpointRejectsMalformedJSON(t *testing.T) {
	h := newSolveHandler()
	w := postJSON(t, h.Solve, "/solve", []byte(`{"students":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	h := newSolveHandler()
	payload := []byte(`{
		"students": [{"name": "S1", "target": 2}],
		"interviewers": [{"name": "A"}, {"name": "B"}],
		"num_slots": 3,
		"breaks_min": 1,
		"min_virtual_per_student": 0,
		"schedule": {"S1": ["A", "B", ""]}
	}`)

	w := postJSON(t, h.Validate, "/validate", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Valid      bool     `json:"valid"`
			Violations []string `json:"violations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Valid)
	assert.Empty(t, envelope.Data.Violations)
}
