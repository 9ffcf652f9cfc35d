package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careerday/interview-scheduler-api/internal/dto"
	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/internal/service"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
	"github.com/careerday/interview-scheduler-api/pkg/response"
)

// ScheduleHandler exposes stored schedule endpoints.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	exports   *service.ExportService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService, exports *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, exports: exports}
}

// List godoc
// @Summary List stored schedules
// @Tags Schedules
// @Produce json
// @Param event query string false "Filter by event ID"
// @Param status query string false "Filter by terminal status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleFilter
	filter.EventID = c.Query("event")
	if status := c.Query("status"); status != "" {
		s := models.ScheduleStatus(status)
		filter.Status = &s
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortOrder = c.Query("order")

	metas, pagination, err := h.schedules.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metas, pagination)
}

// Get godoc
// @Summary Get a stored schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Latest godoc
// @Summary Get the latest schedule for an event
// @Tags Schedules
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/schedule [get]
func (h *ScheduleHandler) Latest(c *gin.Context) {
	schedule, err := h.schedules.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Save godoc
// @Summary Save an externally produced schedule for an event
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.SaveScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /events/{id}/schedule [post]
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.schedules.Save(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resp, nil)
}

// Clear godoc
// @Summary Delete every stored schedule for an event
// @Tags Schedules
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/schedule [delete]
func (h *ScheduleHandler) Clear(c *gin.Context) {
	resp, err := h.schedules.ClearForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Delete a stored schedule
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export a schedule view as CSV
// @Tags Schedules
// @Produce text/csv
// @Param id path string true "Schedule ID"
// @Param view query string false "students or interviewers"
// @Success 200 {file} file
// @Router /schedules/{id}/export/csv [get]
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	payload, filename, err := h.exports.CSV(c.Request.Context(), c.Param("id"), service.ExportView(c.Query("view")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Export a schedule view as PDF
// @Tags Schedules
// @Produce application/pdf
// @Param id path string true "Schedule ID"
// @Param view query string false "students or interviewers"
// @Success 200 {file} file
// @Router /schedules/{id}/export/pdf [get]
func (h *ScheduleHandler) ExportPDF(c *gin.Context) {
	payload, filename, err := h.exports.PDF(c.Request.Context(), c.Param("id"), service.ExportView(c.Query("view")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
