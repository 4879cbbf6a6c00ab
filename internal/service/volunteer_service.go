package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

// VolunteerPhotoBucket is the storage bucket holding volunteer photos.
const VolunteerPhotoBucket = "volunteers"

type volunteerRepository interface {
	Create(ctx context.Context, v *models.Volunteer) error
	List(ctx context.Context, filter models.VolunteerFilter) ([]models.Volunteer, int, error)
}

// VolunteerService accepts public volunteer applications and lists them for
// organizers.
type VolunteerService struct {
	repo      volunteerRepository
	storage   assetStorage
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	uploads   UploadConfig
}

// NewVolunteerService constructs a VolunteerService.
func NewVolunteerService(repo volunteerRepository, storage assetStorage, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, uploads UploadConfig) *VolunteerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VolunteerService{repo: repo, storage: storage, metrics: metrics, validator: validate, logger: logger, uploads: uploads}
}

// Options returns the fixed choices offered by the volunteer form.
func (s *VolunteerService) Options() map[string][]string {
	return map[string][]string{
		"roles":             append([]string(nil), models.VolunteerRoles...),
		"availability":      append([]string(nil), models.VolunteerAvailability...),
		"experience_levels": append([]string(nil), models.VolunteerExperienceLevels...),
	}
}

// Submit validates and stores an application.
func (s *VolunteerService) Submit(ctx context.Context, app models.VolunteerApplication) (*models.Volunteer, error) {
	volunteer, err := s.submit(ctx, app)
	s.metrics.RecordFormSubmission("volunteer", err)
	return volunteer, err
}

func (s *VolunteerService) submit(ctx context.Context, app models.VolunteerApplication) (*models.Volunteer, error) {
	if err := s.validator.Struct(app); err != nil {
		return nil, appErrors.Validation(err, "invalid volunteer application")
	}
	if !containsString(models.VolunteerRoles, app.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", app.Role))
	}
	availability := make(pq.StringArray, 0, len(app.Availability))
	for _, day := range app.Availability {
		if !containsString(models.VolunteerAvailability, day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown availability %q", day))
		}
		if !containsString(availability, day) {
			availability = append(availability, day)
		}
	}
	level := strings.ToLower(strings.TrimSpace(app.ExperienceLevel))
	if level != "" && !containsString(models.VolunteerExperienceLevels, level) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown experience level %q", app.ExperienceLevel))
	}

	volunteer := &models.Volunteer{
		Name:         strings.TrimSpace(app.Name),
		Email:        strings.ToLower(strings.TrimSpace(app.Email)),
		Phone:        optionalString(app.Phone),
		Role:         app.Role,
		Availability: availability,
		Motivation:   strings.TrimSpace(app.Motivation),
		PhotoURL:     strings.TrimSpace(app.PhotoURL),
	}
	if level != "" {
		volunteer.ExperienceLevel = &level
	}
	if err := s.repo.Create(ctx, volunteer); err != nil {
		return nil, appErrors.Internal(err, "failed to submit application")
	}
	s.logger.Info("volunteer application received", zap.String("volunteer_id", volunteer.ID), zap.String("role", volunteer.Role))
	return volunteer, nil
}

// UploadPhoto stores a volunteer photo and returns its public URL.
func (s *VolunteerService) UploadPhoto(ctx context.Context, ownerKey, filename, contentType string, size int64, r io.Reader) (string, error) {
	if s.storage == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "file storage not configured")
	}
	if err := checkUpload(s.uploads, contentType, size); err != nil {
		return "", err
	}
	url, err := s.storage.Upload(r, VolunteerPhotoBucket, ownerKey, filename)
	if err != nil {
		return "", appErrors.Internal(err, "failed to upload photo")
	}
	return url, nil
}

// List returns applications newest first with pagination metadata.
func (s *VolunteerService) List(ctx context.Context, filter models.VolunteerFilter) ([]models.Volunteer, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	volunteers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list volunteers")
	}
	return volunteers, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
