package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/awsugahm/acd2026-api/internal/middleware"
	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
	Get(ctx context.Context, id string) (*models.ScheduleEntry, error)
	TimeSlotFor(startRaw, endRaw string) (string, time.Time, error)
	AvailableTracks(ctx context.Context, timeSlot, excludeID string, current int) (*models.TrackAvailability, error)
	FormValues(ctx context.Context, id string) (*models.ScheduleFormValues, error)
	Create(ctx context.Context, input models.ScheduleInput) (*models.ScheduleEntry, error)
	Update(ctx context.Context, id string, input models.ScheduleInput) (*models.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
	Grid(ctx context.Context) (*models.ScheduleGrid, error)
	PublicGrid(ctx context.Context) (*models.ScheduleGrid, bool)
}

// ScheduleHandler manages agenda endpoints.
type ScheduleHandler struct {
	service  scheduleService
	cacheTTL time.Duration
}

// NewScheduleHandler constructs handler. cacheTTL sets the browser cache
// lifetime of the public grid.
func NewScheduleHandler(svc scheduleService, cacheTTL time.Duration) *ScheduleHandler {
	return &ScheduleHandler{service: svc, cacheTTL: cacheTTL}
}

// PublicGrid godoc
// @Summary Public agenda grid
// @Description Rows by time slot with one cell per track. Falls back to the placeholder agenda when no entries exist.
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) PublicGrid(c *gin.Context) {
	grid, cacheHit := h.service.PublicGrid(c.Request.Context())
	middleware.SetCacheHit(c, cacheHit)
	if grid.Fallback {
		middleware.SetFallback(c)
	}
	response.Public(c, grid, h.cacheTTL, middleware.ExtractMeta(c))
}

// List godoc
// @Summary List schedule entries
// @Tags Schedules
// @Produce json
// @Param search query string false "Match title, speaker or room"
// @Param time_slot query string false "Exact time slot"
// @Param track query int false "Track number"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	filter := models.ScheduleFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		TimeSlot:  c.Query("time_slot"),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if track, err := strconv.Atoi(c.Query("track")); err == nil {
		filter.Track = track
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Grid godoc
// @Summary Admin agenda grid
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules/grid [get]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	grid, err := h.service.Grid(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Get godoc
// @Summary Get schedule entry
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "schedule not found")
	if !ok {
		return
	}
	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// FormValues godoc
// @Summary Edit form values for an entry
// @Description Start and end as datetime-local strings in the event timezone.
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules/{id}/form [get]
func (h *ScheduleHandler) FormValues(c *gin.Context) {
	id, ok := pathID(c, "schedule not found")
	if !ok {
		return
	}
	values, err := h.service.FormValues(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, values, nil)
}

// AvailableTracks godoc
// @Summary Free tracks for a time slot
// @Description Pass either time_slot or start_time and end_time.
// @Tags Schedules
// @Produce json
// @Param time_slot query string false "Canonical time slot, matched exactly"
// @Param start_time query string false "Start, datetime-local"
// @Param end_time query string false "End, datetime-local"
// @Param exclude_id query string false "Entry being edited"
// @Param current query int false "Currently selected track"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules/available-tracks [get]
func (h *ScheduleHandler) AvailableTracks(c *gin.Context) {
	excludeID := c.Query("exclude_id")
	if excludeID != "" {
		if _, err := uuid.Parse(excludeID); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exclude_id must be a schedule id"))
			return
		}
	}
	slot := c.Query("time_slot")
	if slot == "" {
		start, end := c.Query("start_time"), c.Query("end_time")
		if start == "" || end == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "time_slot or start_time and end_time are required"))
			return
		}
		var err error
		slot, _, err = h.service.TimeSlotFor(start, end)
		if err != nil {
			response.Error(c, err)
			return
		}
	}
	current, _ := strconv.Atoi(c.Query("current"))

	availability, err := h.service.AvailableTracks(c.Request.Context(), slot, excludeID, current)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

// Create godoc
// @Summary Create schedule entry
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body models.ScheduleInput true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req models.ScheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update schedule entry
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body models.ScheduleInput true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "schedule not found")
	if !ok {
		return
	}
	var req models.ScheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete schedule entry
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "schedule not found")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
