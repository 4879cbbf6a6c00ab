package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awsugahm/acd2026-api/internal/middleware"
	"github.com/awsugahm/acd2026-api/internal/models"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type contentService interface {
	Speakers(ctx context.Context, limit int) ([]models.Speaker, bool)
	Tickets(ctx context.Context) ([]models.TicketTierView, bool)
	FAQs(ctx context.Context) ([]models.FAQGroup, bool)
}

// ContentHandler serves the read-only public listings.
type ContentHandler struct {
	service  contentService
	cacheTTL time.Duration
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(svc contentService, cacheTTL time.Duration) *ContentHandler {
	return &ContentHandler{service: svc, cacheTTL: cacheTTL}
}

// Speakers godoc
// @Summary List speakers
// @Tags Public
// @Produce json
// @Param limit query int false "Maximum speakers, 0 for all"
// @Success 200 {object} response.Envelope
// @Router /speakers [get]
func (h *ContentHandler) Speakers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	speakers, cacheHit := h.service.Speakers(c.Request.Context(), limit)
	middleware.SetCacheHit(c, cacheHit)
	response.Public(c, speakers, h.cacheTTL, middleware.ExtractMeta(c))
}

// Tickets godoc
// @Summary List ticket tiers with remaining stock
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tickets [get]
func (h *ContentHandler) Tickets(c *gin.Context) {
	tiers, cacheHit := h.service.Tickets(c.Request.Context())
	middleware.SetCacheHit(c, cacheHit)
	response.Public(c, tiers, h.cacheTTL, middleware.ExtractMeta(c))
}

// FAQs godoc
// @Summary FAQs grouped by category
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faqs [get]
func (h *ContentHandler) FAQs(c *gin.Context) {
	groups, cacheHit := h.service.FAQs(c.Request.Context())
	middleware.SetCacheHit(c, cacheHit)
	response.Public(c, groups, h.cacheTTL, middleware.ExtractMeta(c))
}
