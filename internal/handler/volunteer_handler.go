package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type volunteerService interface {
	Options() map[string][]string
	Submit(ctx context.Context, app models.VolunteerApplication) (*models.Volunteer, error)
	UploadPhoto(ctx context.Context, ownerKey, filename, contentType string, size int64, r io.Reader) (string, error)
	List(ctx context.Context, filter models.VolunteerFilter) ([]models.Volunteer, *models.Pagination, error)
}

// VolunteerHandler handles the volunteer form and the organizer list.
type VolunteerHandler struct {
	service volunteerService
}

// NewVolunteerHandler constructs a VolunteerHandler.
func NewVolunteerHandler(svc volunteerService) *VolunteerHandler {
	return &VolunteerHandler{service: svc}
}

// Options godoc
// @Summary Volunteer form choices
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /volunteers/options [get]
func (h *VolunteerHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Options(), nil)
}

// Submit godoc
// @Summary Submit a volunteer application
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body models.VolunteerApplication true "Application"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /volunteers [post]
func (h *VolunteerHandler) Submit(c *gin.Context) {
	var req models.VolunteerApplication
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	volunteer, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": volunteer.ID, "role": volunteer.Role})
}

// UploadPhoto godoc
// @Summary Upload a volunteer photo
// @Tags Public
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo"
// @Param email formData string false "Applicant email used in the object path"
// @Success 201 {object} response.Envelope
// @Router /volunteers/photo [post]
func (h *VolunteerHandler) UploadPhoto(c *gin.Context) {
	upload, err := readUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer upload.Close() //nolint:errcheck

	owner := strings.SplitN(c.PostForm("email"), "@", 2)[0]
	url, err := h.service.UploadPhoto(c.Request.Context(), owner, upload.Filename, upload.ContentType, upload.Size, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"url": url})
}

// List godoc
// @Summary List volunteer applications
// @Tags Volunteers
// @Produce json
// @Param role query string false "Filter by role"
// @Param search query string false "Match name or email"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/volunteers [get]
func (h *VolunteerHandler) List(c *gin.Context) {
	filter := models.VolunteerFilter{
		Role:   c.Query("role"),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	volunteers, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, volunteers, pagination)
}
