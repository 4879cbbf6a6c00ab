package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awsugahm/acd2026-api/internal/models"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type eventService interface {
	Info() models.EventInfo
	Pages() []string
	SEO(page string) (*models.PageSEO, error)
}

// EventHandler serves event facts and page SEO data.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc eventService) *EventHandler {
	return &EventHandler{service: svc}
}

// Info godoc
// @Summary Event facts and countdown
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /event [get]
func (h *EventHandler) Info(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Info(), nil)
}

// Pages godoc
// @Summary Pages with SEO data
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /seo [get]
func (h *EventHandler) Pages(c *gin.Context) {
	response.Public(c, h.service.Pages(), time.Hour)
}

// SEO godoc
// @Summary Meta tags and structured data for a page
// @Tags Public
// @Produce json
// @Param page path string true "Page key, e.g. schedule"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /seo/{page} [get]
func (h *EventHandler) SEO(c *gin.Context) {
	seo, err := h.service.SEO(c.Param("page"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Public(c, seo, time.Hour)
}
