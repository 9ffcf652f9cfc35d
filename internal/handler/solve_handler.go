package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/service"
	"github.com/careerday/interview-scheduler-api/internal/solver"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
	"github.com/careerday/interview-scheduler-api/pkg/response"
)

// SolveHandler exposes the scheduling endpoints.
type SolveHandler struct {
	solve *service.SolveService
}

// NewSolveHandler constructs SolveHandler.
func NewSolveHandler(solve *service.SolveService) *SolveHandler {
	return &SolveHandler{solve: solve}
}

// Solve godoc
// @Summary Solve an ad hoc scheduling scenario
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body dto.SolveRequest true "Scenario payload"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 504 {object} response.Envelope
// @Router /solve [post]
func (h *SolveHandler) Solve(c *gin.Context) {
	var req dto.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.solve.Solve(c.Request.Context(), req)
	h.respond(c, resp, err)
}

// SolveEvent godoc
// @Summary Solve from an event's stored rosters
// @Tags Solver
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.SolveEventRequest false "Run options"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 504 {object} response.Envelope
// @Router /events/{id}/solve [post]
func (h *SolveHandler) SolveEvent(c *gin.Context) {
	var opts dto.SolveEventRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	resp, err := h.solve.SolveEvent(c.Request.Context(), c.Param("id"), opts)
	h.respond(c, resp, err)
}

// Validate godoc
// @Summary Validate a schedule against a scenario
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body dto.ValidateRequest true "Schedule and scenario payload"
// @Success 200 {object} response.Envelope
// @Router /validate [post]
func (h *SolveHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.solve.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// respond maps solve outcomes onto the HTTP contract. Precheck failures
// arrive as typed errors with diagnostics attached; completed searches
// with a negative outcome surface through the response status.
func (h *SolveHandler) respond(c *gin.Context, resp *dto.SolveResponse, err error) {
	if err != nil {
		if resp != nil {
			response.ErrorWithData(c, err, resp)
			return
		}
		response.Error(c, err)
		return
	}

	switch resp.Status {
	case solver.StatusInfeasible.String():
		response.ErrorWithData(c, appErrors.Clone(appErrors.ErrNoSolution, ""), resp)
	case solver.StatusTimeout.String():
		response.ErrorWithData(c, appErrors.Clone(appErrors.ErrSolverTimeout, ""), resp)
	default:
		response.JSON(c, http.StatusOK, resp, nil)
	}
}
