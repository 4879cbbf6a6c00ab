package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

type volunteerRepoStub struct {
	created    []models.Volunteer
	createErr  error
	lastFilter models.VolunteerFilter
}

func (s *volunteerRepoStub) Create(ctx context.Context, v *models.Volunteer) error {
	if s.createErr != nil {
		return s.createErr
	}
	v.ID = "vol-1"
	s.created = append(s.created, *v)
	return nil
}

func (s *volunteerRepoStub) List(ctx context.Context, filter models.VolunteerFilter) ([]models.Volunteer, int, error) {
	s.lastFilter = filter
	return s.created, 42, nil
}

func validApplication() models.VolunteerApplication {
	return models.VolunteerApplication{
		Name:            " Priya Shah ",
		Email:           "Priya@Example.com",
		Role:            "Speaker Support",
		Availability:    []string{"Event Day (Dec 13)", "Event Day (Dec 13)", "Day Before (Dec 12)"},
		ExperienceLevel: "Intermediate",
		Motivation:      "I want to help the community grow.",
	}
}

func TestVolunteerServiceSubmitNormalises(t *testing.T) {
	repo := &volunteerRepoStub{}
	svc := NewVolunteerService(repo, nil, nil, validator.New(), zap.NewNop(), UploadConfig{})

	v, err := svc.Submit(context.Background(), validApplication())
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", v.Name)
	assert.Equal(t, "priya@example.com", v.Email)
	assert.Nil(t, v.Phone)
	require.NotNil(t, v.ExperienceLevel)
	assert.Equal(t, "intermediate", *v.ExperienceLevel)
	assert.Equal(t, []string{"Event Day (Dec 13)", "Day Before (Dec 12)"}, []string(v.Availability))
	assert.Len(t, repo.created, 1)
}

func TestVolunteerServiceSubmitRejectsUnknownChoices(t *testing.T) {
	cases := map[string]func(*models.VolunteerApplication){
		"role":         func(a *models.VolunteerApplication) { a.Role = "Catering" },
		"availability": func(a *models.VolunteerApplication) { a.Availability = []string{"Next Week"} },
		"experience":   func(a *models.VolunteerApplication) { a.ExperienceLevel = "guru" },
		"empty days":   func(a *models.VolunteerApplication) { a.Availability = nil },
		"bad email":    func(a *models.VolunteerApplication) { a.Email = "nope" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &volunteerRepoStub{}
			svc := NewVolunteerService(repo, nil, nil, nil, nil, UploadConfig{})
			app := validApplication()
			mutate(&app)

			_, err := svc.Submit(context.Background(), app)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrValidation))
			assert.Empty(t, repo.created)
		})
	}
}

func TestVolunteerServiceSubmitStoreFailure(t *testing.T) {
	repo := &volunteerRepoStub{createErr: errors.New("insert failed")}
	svc := NewVolunteerService(repo, nil, NewMetricsService(), nil, nil, UploadConfig{})

	_, err := svc.Submit(context.Background(), validApplication())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestVolunteerServiceListClampsPaging(t *testing.T) {
	repo := &volunteerRepoStub{}
	svc := NewVolunteerService(repo, nil, nil, nil, nil, UploadConfig{})

	_, pagination, err := svc.List(context.Background(), models.VolunteerFilter{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 100, pagination.PageSize)
	assert.Equal(t, 42, pagination.TotalCount)
	assert.Equal(t, 100, repo.lastFilter.PageSize)
}

func TestVolunteerServiceUploadPhoto(t *testing.T) {
	store := &logoStorageStub{}
	svc := NewVolunteerService(&volunteerRepoStub{}, store, nil, nil, nil, UploadConfig{MaxFileSizeBytes: 100, AllowedMIMEs: []string{"image/jpeg"}})

	url, err := svc.UploadPhoto(context.Background(), "priya", "me.jpg", "image/jpeg", 50, strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/volunteers/priya/")

	_, err = svc.UploadPhoto(context.Background(), "priya", "me.bmp", "image/bmp", 50, strings.NewReader("bmp"))
	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedMedia))
}

func TestVolunteerServiceOptions(t *testing.T) {
	svc := NewVolunteerService(&volunteerRepoStub{}, nil, nil, nil, nil, UploadConfig{})
	opts := svc.Options()
	assert.Len(t, opts["roles"], 8)
	assert.Len(t, opts["availability"], 3)
	assert.Equal(t, []string{"beginner", "intermediate", "experienced"}, opts["experience_levels"])
}
