package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/awsugahm/acd2026-api/internal/service"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/export"
	"github.com/awsugahm/acd2026-api/pkg/response"
)

type exportService interface {
	Generate(ctx context.Context, kind service.ExportKind, format export.Format) (*service.ExportResult, error)
	Resolve(token string) (string, error)
	Open(relPath string) (*os.File, error)
}

// ExportHandler issues and serves admin exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Export a dataset
// @Description Renders the agenda (csv or pdf) or the volunteer list and returns a signed download URL.
// @Tags Exports
// @Produce json
// @Param kind path string true "schedule or volunteers"
// @Param format query string false "csv or pdf"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/exports/{kind} [post]
func (h *ExportHandler) Create(c *gin.Context) {
	kind, err := service.ParseExportKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Generate(c.Request.Context(), kind, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an export via signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	relPath, err := h.service.Resolve(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.service.Open(relPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read export"))
		return
	}
	filename := path.Base(relPath)
	format := export.Format(strings.TrimPrefix(path.Ext(filename), "."))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), format.ContentType(), file, nil)
}
