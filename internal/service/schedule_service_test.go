package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type mockScheduleRepo struct {
	items   map[string]models.ScheduleEntry
	nextID  int
	listErr error
	saveErr error
	creates int
	updates int
}

func newMockScheduleRepo(entries ...models.ScheduleEntry) *mockScheduleRepo {
	repo := &mockScheduleRepo{items: map[string]models.ScheduleEntry{}}
	for _, e := range entries {
		repo.items[e.ID] = e
	}
	return repo
}

func (m *mockScheduleRepo) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	return m.ListAll(ctx)
}

func (m *mockScheduleRepo) ListAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.ScheduleEntry, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].TrackNumber < out[j].TrackNumber
	})
	return out, nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	if e, ok := m.items[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScheduleRepo) Create(ctx context.Context, entry *models.ScheduleEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.nextID++
	m.creates++
	entry.ID = fmt.Sprintf("new-%d", m.nextID)
	m.items[entry.ID] = *entry
	return nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, entry *models.ScheduleEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.items[entry.ID]; !ok {
		return sql.ErrNoRows
	}
	m.updates++
	m.items[entry.ID] = *entry
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type stubAgenda struct{ rows []models.ScheduleRow }

func (s stubAgenda) AgendaGrid() []models.ScheduleRow { return s.rows }

func newScheduleService(repo *mockScheduleRepo) *ScheduleService {
	return NewScheduleService(repo, stubAgenda{rows: []models.ScheduleRow{{Time: "09:00 AM - 10:00 AM"}}}, nil, NewMetricsService(), validator.New(), zap.NewNop(), ScheduleServiceConfig{Location: ist})
}

func at10(track int, id string) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:          id,
		TimeSlot:    "10:00 AM - 10:45 AM",
		StartTime:   time.Date(2026, 2, 28, 10, 0, 0, 0, ist),
		TrackNumber: track,
		Title:       "Session " + id,
	}
}

func inputAt10(track int) models.ScheduleInput {
	return models.ScheduleInput{StartTime: "2026-02-28T10:00", EndTime: "2026-02-28T10:45", TrackNumber: track, Title: "New talk"}
}

func TestScheduleServiceEndToEndTrackScenario(t *testing.T) {
	repo := newMockScheduleRepo(at10(1, "1"), at10(2, "2"))
	svc := newScheduleService(repo)
	ctx := context.Background()

	availability, err := svc.AvailableTracks(ctx, "10:00 AM - 10:45 AM", "", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, availability.Available)
	assert.Equal(t, 3, availability.Selected)

	_, err = svc.Create(ctx, inputAt10(2))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "Track 2 is already occupied for this time slot", appErr.Message)
	var conflict *models.ScheduleConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "2", conflict.Conflict.ScheduleID)
	assert.Equal(t, 0, repo.creates, "no write on conflict")

	created, err := svc.Create(ctx, inputAt10(3))
	require.NoError(t, err)
	assert.Equal(t, "10:00 AM - 10:45 AM", created.TimeSlot)
	assert.Equal(t, 3, created.TrackNumber)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, uint64(1), svc.metrics.Snapshot().ScheduleConflicts)
}

func TestScheduleServiceUpdateExcludesItself(t *testing.T) {
	repo := newMockScheduleRepo(at10(1, "1"), at10(2, "2"))
	svc := newScheduleService(repo)
	ctx := context.Background()

	input := inputAt10(1)
	input.Title = "Renamed"
	updated, err := svc.Update(ctx, "1", input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = svc.Update(ctx, "1", inputAt10(2))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "Renamed", repo.items["1"].Title, "rejected update leaves entry intact")
}

func TestScheduleServiceOverlappingSlotsDoNotConflict(t *testing.T) {
	repo := newMockScheduleRepo(at10(1, "1"))
	svc := newScheduleService(repo)

	input := models.ScheduleInput{StartTime: "2026-02-28T10:15", EndTime: "2026-02-28T11:00", TrackNumber: 1, Title: "Overlap"}
	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "10:15 AM - 11:00 AM", created.TimeSlot)
}

func TestScheduleServiceCreateValidation(t *testing.T) {
	svc := newScheduleService(newMockScheduleRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, models.ScheduleInput{StartTime: "2026-02-28T10:00", EndTime: "2026-02-28T10:45", TrackNumber: 4, Title: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, models.ScheduleInput{StartTime: "2026-02-28T11:00", EndTime: "2026-02-28T10:45", TrackNumber: 1, Title: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, models.ScheduleInput{StartTime: "soon", EndTime: "2026-02-28T10:45", TrackNumber: 1, Title: "x"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceStoreFailures(t *testing.T) {
	repo := newMockScheduleRepo()
	repo.saveErr = errors.New("db down")
	svc := newScheduleService(repo)

	_, err := svc.Create(context.Background(), inputAt10(1))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.Equal(t, "failed to create schedule", appErr.Message)

	repo.saveErr = nil
	repo.listErr = errors.New("db down")
	_, err = svc.Create(context.Background(), inputAt10(1))
	assert.Equal(t, "failed to check schedule conflicts", appErrors.FromError(err).Message)
}

func TestScheduleServiceFormValuesReverseMapsEnd(t *testing.T) {
	entry := models.ScheduleEntry{
		ID:          "s1",
		TimeSlot:    "02:00 PM - 02:45 PM",
		StartTime:   time.Date(2026, 2, 28, 8, 30, 0, 0, time.UTC),
		TrackNumber: 2,
		Title:       "Cost Optimization",
	}
	svc := newScheduleService(newMockScheduleRepo(entry))

	values, err := svc.FormValues(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28T14:00", values.StartTime)
	assert.Equal(t, "2026-02-28T14:45", values.EndTime)
	assert.Equal(t, 2, values.TrackNumber)

	_, err = svc.FormValues(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceAvailableTracksKeepsCurrentWhenFull(t *testing.T) {
	repo := newMockScheduleRepo(at10(1, "1"), at10(2, "2"), at10(3, "3"))
	svc := newScheduleService(repo)

	availability, err := svc.AvailableTracks(context.Background(), "10:00 AM - 10:45 AM", "", 2)
	require.NoError(t, err)
	assert.Empty(t, availability.Available)
	assert.Equal(t, 2, availability.Selected)

	availability, err = svc.AvailableTracks(context.Background(), "10:00 AM - 10:45 AM", "2", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, availability.Available)

	_, err = svc.AvailableTracks(context.Background(), "lunch", "", 1)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServicePublicGrid(t *testing.T) {
	early := at10(2, "b")
	late := models.ScheduleEntry{ID: "c", TimeSlot: "11:00 AM - 11:45 AM", StartTime: time.Date(2026, 2, 28, 11, 0, 0, 0, ist), TrackNumber: 1, Title: "Later"}
	repo := newMockScheduleRepo(late, early)
	svc := newScheduleService(repo)

	grid, cached := svc.PublicGrid(context.Background())
	assert.False(t, cached)
	assert.False(t, grid.Fallback)
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "10:00 AM - 10:45 AM", grid.Rows[0].Time)
	assert.Equal(t, "", grid.Rows[0].Tracks[0].Title)
	assert.Equal(t, "Session b", grid.Rows[0].Tracks[1].Title)
	assert.Equal(t, "Later", grid.Rows[1].Tracks[0].Title)
}

func TestScheduleServicePublicGridFallsBack(t *testing.T) {
	repo := newMockScheduleRepo()
	svc := newScheduleService(repo)

	grid, _ := svc.PublicGrid(context.Background())
	assert.True(t, grid.Fallback)
	require.Len(t, grid.Rows, 1)

	repo.listErr = errors.New("db down")
	grid, _ = svc.PublicGrid(context.Background())
	assert.True(t, grid.Fallback)
}

func TestScheduleServiceDeleteMissing(t *testing.T) {
	svc := newScheduleService(newMockScheduleRepo())
	err := svc.Delete(context.Background(), "nope")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
