package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/internal/service"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
	"github.com/careerday/interview-scheduler-api/pkg/response"
)

// InterviewerHandler exposes interviewer roster endpoints.
type InterviewerHandler struct {
	interviewers *service.InterviewerService
}

// NewInterviewerHandler constructs InterviewerHandler.
func NewInterviewerHandler(interviewers *service.InterviewerService) *InterviewerHandler {
	return &InterviewerHandler{interviewers: interviewers}
}

// List godoc
// @Summary List interviewers for an event
// @Tags Interviewers
// @Produce json
// @Param id path string true "Event ID"
// @Param search query string false "Search by name"
// @Param virtual query bool false "Filter by virtual flag"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/interviewers [get]
func (h *InterviewerHandler) List(c *gin.Context) {
	var filter models.InterviewerFilter
	filter.EventID = c.Param("id")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if virtual := c.Query("virtual"); virtual != "" {
		if v, err := strconv.ParseBool(virtual); err == nil {
			filter.IsVirtual = &v
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	interviewers, pagination, err := h.interviewers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interviewers, pagination)
}

// Create godoc
// @Summary Add interviewer to event roster
// @Tags Interviewers
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.CreateInterviewerRequest true "Interviewer payload"
// @Success 201 {object} response.Envelope
// @Router /events/{id}/interviewers [post]
func (h *InterviewerHandler) Create(c *gin.Context) {
	var req dto.CreateInterviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	interviewer, err := h.interviewers.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, interviewer)
}

// BulkReplace godoc
// @Summary Replace the event's interviewer roster
// @Tags Interviewers
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.BulkInterviewersRequest true "Roster payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/interviewers/bulk [put]
func (h *InterviewerHandler) BulkReplace(c *gin.Context) {
	var req dto.BulkInterviewersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	interviewers, err := h.interviewers.ReplaceRoster(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interviewers, nil)
}

// Update godoc
// @Summary Update interviewer
// @Tags Interviewers
// @Accept json
// @Produce json
// @Param id path string true "Interviewer ID"
// @Param payload body dto.UpdateInterviewerRequest true "Interviewer payload"
// @Success 200 {object} response.Envelope
// @Router /interviewers/{id} [put]
func (h *InterviewerHandler) Update(c *gin.Context) {
	var req dto.UpdateInterviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	interviewer, err := h.interviewers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interviewer, nil)
}

// Delete godoc
// @Summary Remove interviewer from roster
// @Tags Interviewers
// @Param id path string true "Interviewer ID"
// @Success 204
// @Router /interviewers/{id} [delete]
func (h *InterviewerHandler) Delete(c *gin.Context) {
	if err := h.interviewers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
