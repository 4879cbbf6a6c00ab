package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/awsugahm/acd2026-api/internal/middleware"
	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type sponsorService interface {
	List(ctx context.Context, search string, refresh bool) ([]models.Sponsor, error)
	TierOptions() []string
	Get(ctx context.Context, id string) (*models.Sponsor, error)
	Create(ctx context.Context, input models.SponsorInput) (*models.Sponsor, error)
	Update(ctx context.Context, id string, input models.SponsorInput) (*models.Sponsor, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req models.SponsorReorderRequest) ([]models.Sponsor, error)
	UploadLogo(ctx context.Context, ownerKey, filename, contentType string, size int64, r io.Reader) (string, error)
	PublicGroups(ctx context.Context) ([]models.SponsorGroup, bool)
}

// SponsorHandler exposes the sponsor board.
type SponsorHandler struct {
	service  sponsorService
	cacheTTL time.Duration
}

// NewSponsorHandler constructs a SponsorHandler.
func NewSponsorHandler(svc sponsorService, cacheTTL time.Duration) *SponsorHandler {
	return &SponsorHandler{service: svc, cacheTTL: cacheTTL}
}

// PublicGroups godoc
// @Summary Sponsors grouped by tier
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sponsors [get]
func (h *SponsorHandler) PublicGroups(c *gin.Context) {
	groups, cacheHit := h.service.PublicGroups(c.Request.Context())
	middleware.SetCacheHit(c, cacheHit)
	response.Public(c, groups, h.cacheTTL, middleware.ExtractMeta(c))
}

// List godoc
// @Summary List sponsors
// @Description Sponsors in display order, filtered by company name or tier.
// @Tags Sponsors
// @Produce json
// @Param search query string false "Search term"
// @Param refresh query bool false "Reload the board from the database"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/sponsors [get]
func (h *SponsorHandler) List(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	sponsors, err := h.service.List(c.Request.Context(), c.Query("search"), refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sponsors, nil)
}

// Tiers godoc
// @Summary Sponsor tier options
// @Tags Sponsors
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/sponsors/tiers [get]
func (h *SponsorHandler) Tiers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.TierOptions(), nil)
}

// Get godoc
// @Summary Get sponsor
// @Tags Sponsors
// @Produce json
// @Param id path string true "Sponsor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/sponsors/{id} [get]
func (h *SponsorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "sponsor not found")
	if !ok {
		return
	}
	sponsor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sponsor, nil)
}

// Create godoc
// @Summary Create sponsor
// @Description The sponsor is appended after the current last position.
// @Tags Sponsors
// @Accept json
// @Produce json
// @Param payload body models.SponsorInput true "Sponsor payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/sponsors [post]
func (h *SponsorHandler) Create(c *gin.Context) {
	var req models.SponsorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sponsor, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sponsor)
}

// Update godoc
// @Summary Update sponsor content
// @Tags Sponsors
// @Accept json
// @Produce json
// @Param id path string true "Sponsor ID"
// @Param payload body models.SponsorInput true "Sponsor payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/sponsors/{id} [put]
func (h *SponsorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "sponsor not found")
	if !ok {
		return
	}
	var req models.SponsorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sponsor, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sponsor, nil)
}

// Delete godoc
// @Summary Delete sponsor and its stored logo
// @Tags Sponsors
// @Param id path string true "Sponsor ID"
// @Success 204
// @Security BearerAuth
// @Router /admin/sponsors/{id} [delete]
func (h *SponsorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "sponsor not found")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reorder godoc
// @Summary Move a sponsor within the displayed list
// @Description The new order is applied immediately and reverted if any write fails.
// @Tags Sponsors
// @Accept json
// @Produce json
// @Param payload body models.SponsorReorderRequest true "Reorder payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope "Not saved; error.details.sponsors holds the restored list"
// @Security BearerAuth
// @Router /admin/sponsors/reorder [post]
func (h *SponsorHandler) Reorder(c *gin.Context) {
	var req models.SponsorReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sponsors, err := h.service.Reorder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sponsors, nil)
}

// UploadLogo godoc
// @Summary Upload a sponsor logo
// @Tags Sponsors
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Logo image"
// @Param company formData string false "Company name used in the object path"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/sponsors/logo [post]
func (h *SponsorHandler) UploadLogo(c *gin.Context) {
	upload, err := readUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer upload.Close() //nolint:errcheck

	url, err := h.service.UploadLogo(c.Request.Context(), c.PostForm("company"), upload.Filename, upload.ContentType, upload.Size, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"url": url})
}
