package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

// uploadedFile is the "file" part of a multipart request.
type uploadedFile struct {
	multipart.File
	Filename    string
	ContentType string
	Size        int64
}

func readUpload(c *gin.Context) (*uploadedFile, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Internal(err, "failed to read upload")
	}
	return &uploadedFile{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}
