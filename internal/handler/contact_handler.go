package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type contactService interface {
	Send(ctx context.Context, msg models.ContactMessage) error
}

// ContactHandler relays the public contact form.
type ContactHandler struct {
	service contactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(svc contactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// Send godoc
// @Summary Send a contact message
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body models.ContactMessage true "Message"
// @Success 202 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Send(c *gin.Context) {
	var req models.ContactMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Send(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"status": "sent"}, nil)
}
