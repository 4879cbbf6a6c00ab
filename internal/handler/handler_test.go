package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsugahm/acd2026-api/internal/middleware"
	"github.com/awsugahm/acd2026-api/internal/models"
	"github.com/awsugahm/acd2026-api/internal/service"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/export"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, rec
}

type fakeScheduleSrv struct {
	createErr   error
	lastSlot    string
	lastExclude string
	lastFilter  models.ScheduleFilter
	lastInput   models.ScheduleInput
	grid        *models.ScheduleGrid
	calls       int
}

func (f *fakeScheduleSrv) List(_ context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	f.lastFilter = filter
	return []models.ScheduleEntry{}, nil
}
func (f *fakeScheduleSrv) Get(context.Context, string) (*models.ScheduleEntry, error) {
	f.calls++
	return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
}
func (f *fakeScheduleSrv) TimeSlotFor(start, end string) (string, time.Time, error) {
	return "09:00 AM - 09:45 AM", time.Time{}, nil
}
func (f *fakeScheduleSrv) AvailableTracks(_ context.Context, slot, excludeID string, current int) (*models.TrackAvailability, error) {
	f.lastSlot = slot
	f.lastExclude = excludeID
	return &models.TrackAvailability{TimeSlot: slot, Available: []int{2, 3}, Selected: 2}, nil
}
func (f *fakeScheduleSrv) FormValues(context.Context, string) (*models.ScheduleFormValues, error) {
	f.calls++
	return &models.ScheduleFormValues{}, nil
}
func (f *fakeScheduleSrv) Create(_ context.Context, input models.ScheduleInput) (*models.ScheduleEntry, error) {
	f.lastInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.ScheduleEntry{ID: "s1", Title: input.Title, TrackNumber: input.TrackNumber}, nil
}
func (f *fakeScheduleSrv) Update(context.Context, string, models.ScheduleInput) (*models.ScheduleEntry, error) {
	f.calls++
	return &models.ScheduleEntry{}, nil
}
func (f *fakeScheduleSrv) Delete(context.Context, string) error {
	f.calls++
	return nil
}
func (f *fakeScheduleSrv) Grid(context.Context) (*models.ScheduleGrid, error) {
	return f.grid, nil
}
func (f *fakeScheduleSrv) PublicGrid(context.Context) (*models.ScheduleGrid, bool) {
	return f.grid, false
}

func TestScheduleHandlerCreateConflict(t *testing.T) {
	conflict := appErrors.WithDetails(appErrors.Clone(appErrors.ErrConflict, "Track 2 is already occupied for this time slot"),
		models.ScheduleConflict{ScheduleID: "x", TimeSlot: "09:00 AM - 09:45 AM", TrackNumber: 2})
	h := NewScheduleHandler(&fakeScheduleSrv{createErr: conflict}, time.Minute)

	body := `{"start_time":"2026-02-28T09:00","end_time":"2026-02-28T09:45","track_number":2,"title":"Keynote"}`
	c, rec := newContext(http.MethodPost, "/admin/schedules", strings.NewReader(body))
	h.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	assert.Equal(t, "Track 2 is already occupied for this time slot", env.Error.Message)
}

func TestScheduleHandlerCreateBindsPayload(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv, time.Minute)

	c, rec := newContext(http.MethodPost, "/admin/schedules", strings.NewReader(`{"title":"Opening","track_number":1}`))
	h.Create(c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Opening", srv.lastInput.Title)

	c, rec = newContext(http.MethodPost, "/admin/schedules", strings.NewReader(`{bad json`))
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerAvailableTracks(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv, time.Minute)

	c, rec := newContext(http.MethodGet, "/admin/schedules/available-tracks", nil)
	h.AvailableTracks(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodGet, "/admin/schedules/available-tracks?start_time=2026-02-28T09:00&end_time=2026-02-28T09:45&current=1", nil)
	h.AvailableTracks(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "09:00 AM - 09:45 AM", srv.lastSlot)
}

func TestScheduleHandlerAvailableTracksBySlot(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv, time.Minute)

	target := "/admin/schedules/available-tracks?time_slot=" + url.QueryEscape("10:00 AM - 10:45 AM") + "&exclude_id=3f2c9a4e-6b1d-4c8e-9f7a-2d5b8e1c0a34"
	c, rec := newContext(http.MethodGet, target, nil)
	h.AvailableTracks(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10:00 AM - 10:45 AM", srv.lastSlot)
	assert.Equal(t, "3f2c9a4e-6b1d-4c8e-9f7a-2d5b8e1c0a34", srv.lastExclude)

	c, _ = newContext(http.MethodGet, "/admin/schedules/available-tracks?time_slot="+url.QueryEscape(" 10:00 AM - 10:45 AM "), nil)
	h.AvailableTracks(c)
	assert.Equal(t, " 10:00 AM - 10:45 AM ", srv.lastSlot)

	c, rec = newContext(http.MethodGet, "/admin/schedules/available-tracks?timeSlot="+url.QueryEscape("10:00 AM - 10:45 AM"), nil)
	h.AvailableTracks(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Message, "time_slot")

	c, rec = newContext(http.MethodGet, "/admin/schedules/available-tracks?time_slot="+url.QueryEscape("10:00 AM - 10:45 AM")+"&exclude_id=abc", nil)
	h.AvailableTracks(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandlerListSlotFilter(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv, time.Minute)

	c, rec := newContext(http.MethodGet, "/admin/schedules?time_slot="+url.QueryEscape("10:00 AM - 10:45 AM")+"&track=2", nil)
	h.List(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10:00 AM - 10:45 AM", srv.lastFilter.TimeSlot)
	assert.Equal(t, 2, srv.lastFilter.Track)
}

func TestScheduleHandlerRejectsMalformedID(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv, time.Minute)

	calls := []struct {
		name   string
		method string
		body   string
		run    func(*gin.Context)
	}{
		{"get", http.MethodGet, "", h.Get},
		{"form", http.MethodGet, "", h.FormValues},
		{"update", http.MethodPut, `{"title":"Opening","track_number":1}`, h.Update},
		{"delete", http.MethodDelete, "", h.Delete},
	}
	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			c, rec := newContext(tc.method, "/admin/schedules/not-a-uuid", body)
			c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
			tc.run(c)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "schedule not found", decode(t, rec).Error.Message)
		})
	}
	assert.Zero(t, srv.calls)
}

func TestScheduleHandlerPublicGridFallbackMeta(t *testing.T) {
	srv := &fakeScheduleSrv{grid: &models.ScheduleGrid{Rows: []models.ScheduleRow{{Time: "09:00 AM - 09:30 AM"}}, Fallback: true}}
	h := NewScheduleHandler(srv, 5*time.Minute)

	c, rec := newContext(http.MethodGet, "/schedule", nil)
	middleware.WithResponseMeta()(c)
	h.PublicGrid(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	env := decode(t, rec)
	assert.Equal(t, true, env.Meta["fallback"])
	assert.Equal(t, false, env.Meta["cache_hit"])
}

type fakeSponsorSrv struct {
	reorderErr  error
	uploaded    string
	uploadType  string
	lastRefresh bool
	lastID      string
}

func (f *fakeSponsorSrv) List(_ context.Context, _ string, refresh bool) ([]models.Sponsor, error) {
	f.lastRefresh = refresh
	return []models.Sponsor{{ID: "a"}}, nil
}
func (f *fakeSponsorSrv) TierOptions() []string { return models.SponsorTierOptions }
func (f *fakeSponsorSrv) Get(_ context.Context, id string) (*models.Sponsor, error) {
	f.lastID = id
	return &models.Sponsor{ID: id}, nil
}
func (f *fakeSponsorSrv) Create(context.Context, models.SponsorInput) (*models.Sponsor, error) {
	return &models.Sponsor{ID: "new"}, nil
}
func (f *fakeSponsorSrv) Update(context.Context, string, models.SponsorInput) (*models.Sponsor, error) {
	return &models.Sponsor{}, nil
}
func (f *fakeSponsorSrv) Delete(context.Context, string) error { return nil }
func (f *fakeSponsorSrv) Reorder(context.Context, models.SponsorReorderRequest) ([]models.Sponsor, error) {
	if f.reorderErr != nil {
		return nil, f.reorderErr
	}
	return []models.Sponsor{}, nil
}
func (f *fakeSponsorSrv) UploadLogo(_ context.Context, owner, filename, contentType string, size int64, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	f.uploaded = string(data)
	f.uploadType = contentType
	return "http://localhost:8080/uploads/sponsors/" + owner + "/" + filename, nil
}
func (f *fakeSponsorSrv) PublicGroups(context.Context) ([]models.SponsorGroup, bool) {
	return []models.SponsorGroup{{Tier: "Gold"}}, true
}

func TestSponsorHandlerReorderFailure(t *testing.T) {
	h := NewSponsorHandler(&fakeSponsorSrv{reorderErr: appErrors.Internal(errors.New("timeout"), "failed to update order")}, time.Minute)

	c, rec := newContext(http.MethodPost, "/admin/sponsors/reorder", strings.NewReader(`{"displayed_ids":["a","b"],"sponsor_id":"a","target_index":1}`))
	h.Reorder(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "failed to update order", env.Error.Message)
}

func TestSponsorHandlerReorderFailureReturnsRestoredList(t *testing.T) {
	restored := []models.Sponsor{{ID: "a", SortOrder: 1}, {ID: "b", SortOrder: 2}}
	failure := appErrors.WithDetails(appErrors.Internal(errors.New("timeout"), "failed to update order"),
		models.SponsorReorderFailure{Sponsors: restored})
	h := NewSponsorHandler(&fakeSponsorSrv{reorderErr: failure}, time.Minute)

	c, rec := newContext(http.MethodPost, "/admin/sponsors/reorder", strings.NewReader(`{"displayed_ids":["a","b"],"sponsor_id":"a","target_index":1}`))
	h.Reorder(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error struct {
			Details models.SponsorReorderFailure `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Error.Details.Sponsors, 2)
	assert.Equal(t, "a", body.Error.Details.Sponsors[0].ID)
	assert.Equal(t, "b", body.Error.Details.Sponsors[1].ID)
}

func TestSponsorHandlerGetValidatesID(t *testing.T) {
	srv := &fakeSponsorSrv{}
	h := NewSponsorHandler(srv, time.Minute)

	c, rec := newContext(http.MethodGet, "/admin/sponsors/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
	assert.Empty(t, srv.lastID)

	c, rec = newContext(http.MethodDelete, "/admin/sponsors/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodPut, "/admin/sponsors/42", strings.NewReader(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	h.Update(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	id := "8d0f6a52-1c3e-4b7a-a9d2-5e4f3c2b1a09"
	c, rec = newContext(http.MethodGet, "/admin/sponsors/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	h.Get(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, srv.lastID)
}

func TestSponsorHandlerListRefreshFlag(t *testing.T) {
	srv := &fakeSponsorSrv{}
	h := NewSponsorHandler(srv, time.Minute)

	c, rec := newContext(http.MethodGet, "/admin/sponsors", nil)
	h.List(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, srv.lastRefresh)

	c, rec = newContext(http.MethodGet, "/admin/sponsors?refresh=true", nil)
	h.List(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.lastRefresh)
}

func TestSponsorHandlerUploadLogo(t *testing.T) {
	srv := &fakeSponsorSrv{}
	h := NewSponsorHandler(srv, time.Minute)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("company", "acme"))
	part, err := writer.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, writer.Close())

	c, rec := newContext(http.MethodPost, "/admin/sponsors/logo", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/sponsors/logo", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	h.UploadLogo(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "png-bytes", srv.uploaded)
	assert.Contains(t, rec.Body.String(), "/uploads/sponsors/acme/logo.png")
}

func TestSponsorHandlerUploadRequiresFile(t *testing.T) {
	h := NewSponsorHandler(&fakeSponsorSrv{}, time.Minute)
	c, rec := newContext(http.MethodPost, "/admin/sponsors/logo", strings.NewReader("{}"))
	h.UploadLogo(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSponsorHandlerPublicGroupsCacheHit(t *testing.T) {
	h := NewSponsorHandler(&fakeSponsorSrv{}, time.Minute)
	c, rec := newContext(http.MethodGet, "/sponsors", nil)
	h.PublicGroups(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, true, env.Meta["cache_hit"])
}

type fakeContactSrv struct{ err error }

func (f fakeContactSrv) Send(context.Context, models.ContactMessage) error { return f.err }

func TestContactHandler(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/contact", strings.NewReader(`{"name":"A","email":"a@b.co","subject":"Hi","message":"Hello"}`))
	NewContactHandler(fakeContactSrv{}).Send(c)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	c, rec = newContext(http.MethodPost, "/contact", strings.NewReader(`{"name":"A"}`))
	NewContactHandler(fakeContactSrv{err: appErrors.Clone(appErrors.ErrUpstream, "failed to send message")}).Send(c)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

type fakeExportSrv struct {
	dir string
}

func (f fakeExportSrv) Generate(_ context.Context, kind service.ExportKind, format export.Format) (*service.ExportResult, error) {
	return &service.ExportResult{Kind: kind, Format: format, URL: "/api/v1/exports/tok"}, nil
}
func (f fakeExportSrv) Resolve(token string) (string, error) {
	if token != "tok" {
		return "", appErrors.Clone(appErrors.ErrNotFound, "export link invalid or expired")
	}
	return "exports/schedule.csv", nil
}
func (f fakeExportSrv) Open(relPath string) (*os.File, error) {
	return os.Open(filepath.Join(f.dir, filepath.FromSlash(relPath)))
}

func TestExportHandlerCreateValidates(t *testing.T) {
	h := NewExportHandler(fakeExportSrv{})

	c, rec := newContext(http.MethodPost, "/admin/exports/grades", nil)
	c.Params = gin.Params{{Key: "kind", Value: "grades"}}
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodPost, "/admin/exports/schedule?format=pdf", nil)
	c.Params = gin.Params{{Key: "kind", Value: "schedule"}}
	h.Create(c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"format":"pdf"`)
}

func TestExportHandlerDownload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "exports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "schedule.csv"), []byte("Time Slot\n"), 0o644))
	h := NewExportHandler(fakeExportSrv{dir: dir})

	c, rec := newContext(http.MethodGet, "/exports/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}
	h.Download(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schedule.csv")
	assert.Equal(t, "Time Slot\n", rec.Body.String())

	c, rec = newContext(http.MethodGet, "/exports/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	h.Download(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeAuthSrv struct{}

func (fakeAuthSrv) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Password != "secret" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &models.LoginResponse{AccessToken: "token"}, nil
}

func TestAuthHandlerLogin(t *testing.T) {
	h := NewAuthHandler(fakeAuthSrv{})

	c, rec := newContext(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.co","password":"secret"}`))
	h.Login(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	c, rec = newContext(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.co","password":"nope"}`))
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	h := NewAuthHandler(fakeAuthSrv{})
	c, rec := newContext(http.MethodGet, "/admin/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newContext(http.MethodGet, "/admin/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin})
	h.Me(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
}

func TestMetricsHandlerReady(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService(), map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	c, rec := newContext(http.MethodGet, "/readyz", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")

	c, rec = newContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, rec.Code)
}
