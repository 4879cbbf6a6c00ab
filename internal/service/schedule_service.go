package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
	ListAll(ctx context.Context) ([]models.ScheduleEntry, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error)
	Create(ctx context.Context, entry *models.ScheduleEntry) error
	Update(ctx context.Context, entry *models.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
}

// fallbackAgenda supplies the placeholder rows shown while no entries exist.
type fallbackAgenda interface {
	AgendaGrid() []models.ScheduleRow
}

// ScheduleServiceConfig carries the event timezone used to render slots.
type ScheduleServiceConfig struct {
	Location *time.Location
	CacheTTL time.Duration
}

// ScheduleService manages agenda entries and guards the one-entry-per-track
// rule of every time slot.
type ScheduleService struct {
	repo      scheduleRepository
	fallback  fallbackAgenda
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ScheduleServiceConfig
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleRepository, fallback fallbackAgenda, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg ScheduleServiceConfig) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ScheduleService{repo: repo, fallback: fallback, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// Location returns the timezone slots are rendered in.
func (s *ScheduleService) Location() *time.Location {
	return s.cfg.Location
}

// List returns entries sorted by start time, optionally filtered by search.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list schedules")
	}
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return entries, nil
}

// Get loads a single entry.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Internal(err, "failed to load schedule")
	}
	return entry, nil
}

// TimeSlotFor canonicalizes a start/end pair given as form values.
func (s *ScheduleService) TimeSlotFor(startRaw, endRaw string) (string, time.Time, error) {
	start, err := models.ParseLocalDateTime(startRaw, s.cfg.Location)
	if err != nil {
		return "", time.Time{}, appErrors.Validation(err, "invalid start_time")
	}
	end, err := models.ParseLocalDateTime(endRaw, s.cfg.Location)
	if err != nil {
		return "", time.Time{}, appErrors.Validation(err, "invalid end_time")
	}
	if !end.After(start) {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	return models.CanonicalTimeSlot(start, end, s.cfg.Location), start, nil
}

// AvailableTracks reports which tracks of timeSlot are free, ignoring
// excludeID, and which one the form should select given current.
func (s *ScheduleService) AvailableTracks(ctx context.Context, timeSlot, excludeID string, current int) (*models.TrackAvailability, error) {
	if _, _, ok := models.ParseTimeSlot(timeSlot); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid time_slot")
	}
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load schedules")
	}
	available := AvailableTracks(entries, timeSlot, excludeID)
	if current < 1 || current > models.TrackCount {
		current = 1
	}
	selected, _ := ResolveTrackSelection(available, current)
	return &models.TrackAvailability{
		TimeSlot:  timeSlot,
		Available: available,
		Selected:  selected,
		Options:   TrackOptions(available, selected),
	}, nil
}

// FormValues prefills the edit form of an entry. The end time is recovered
// from the stored slot on the start date.
func (s *ScheduleService) FormValues(ctx context.Context, id string) (*models.ScheduleFormValues, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	start := entry.StartTime.In(s.cfg.Location)
	values := &models.ScheduleFormValues{
		StartTime:   start.Format(models.LocalDateTimeLayout),
		TrackNumber: entry.TrackNumber,
		Title:       entry.Title,
		Speaker:     entry.Speaker,
		Room:        entry.Room,
	}
	end, err := models.SlotEndTime(entry.TimeSlot, entry.StartTime, s.cfg.Location)
	if err != nil {
		s.logger.Warn("schedule time slot not parseable", zap.String("schedule_id", id), zap.String("time_slot", entry.TimeSlot), zap.Error(err))
	} else {
		values.EndTime = end.Format(models.LocalDateTimeLayout)
	}
	return values, nil
}

// Create inserts a new entry after checking the track is free.
func (s *ScheduleService) Create(ctx context.Context, input models.ScheduleInput) (*models.ScheduleEntry, error) {
	entry, err := s.entryFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoConflict(ctx, *entry, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Internal(err, "failed to create schedule")
	}
	s.cache.Invalidate(ctx, CacheScopeSchedule)
	s.logger.Info("schedule created", zap.String("schedule_id", entry.ID), zap.String("time_slot", entry.TimeSlot), zap.Int("track", entry.TrackNumber))
	return entry, nil
}

// Update rewrites an entry, re-running the track check without counting the
// entry itself.
func (s *ScheduleService) Update(ctx context.Context, id string, input models.ScheduleInput) (*models.ScheduleEntry, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry, err := s.entryFromInput(input)
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := s.ensureNoConflict(ctx, *entry, existing.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Internal(err, "failed to update schedule")
	}
	s.cache.Invalidate(ctx, CacheScopeSchedule)
	return entry, nil
}

// Delete removes an entry.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Internal(err, "failed to delete schedule")
	}
	s.cache.Invalidate(ctx, CacheScopeSchedule)
	return nil
}

// Grid builds the admin grid view: one row per time slot, three cells each.
func (s *ScheduleService) Grid(ctx context.Context) (*models.ScheduleGrid, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load schedules")
	}
	return &models.ScheduleGrid{Rows: BuildScheduleGrid(entries)}, nil
}

// PublicGrid builds the agenda shown to attendees. Load failures and an empty
// table both fall back to the placeholder agenda.
func (s *ScheduleService) PublicGrid(ctx context.Context) (*models.ScheduleGrid, bool) {
	key := PublicKey(CacheScopeSchedule, "grid")
	var cached models.ScheduleGrid
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true
	}

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load schedules for public grid", zap.Error(err))
		return s.fallbackGrid(), false
	}
	if len(entries) == 0 {
		return s.fallbackGrid(), false
	}
	grid := &models.ScheduleGrid{Rows: BuildScheduleGrid(entries)}
	s.cache.Set(ctx, key, grid, s.cfg.CacheTTL)
	return grid, false
}

func (s *ScheduleService) fallbackGrid() *models.ScheduleGrid {
	grid := &models.ScheduleGrid{Rows: []models.ScheduleRow{}, Fallback: true}
	if s.fallback != nil {
		grid.Rows = s.fallback.AgendaGrid()
	}
	return grid
}

// BuildScheduleGrid groups entries by time slot. Rows keep the order in which
// each slot first appears, so entries sorted by start time yield a
// chronological grid.
func BuildScheduleGrid(entries []models.ScheduleEntry) []models.ScheduleRow {
	rows := make([]models.ScheduleRow, 0)
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.TimeSlot]
		if !ok {
			cells := make([]models.ScheduleCell, models.TrackCount)
			for t := range cells {
				cells[t] = models.ScheduleCell{Track: t + 1}
			}
			rows = append(rows, models.ScheduleRow{Time: e.TimeSlot, Tracks: cells})
			i = len(rows) - 1
			index[e.TimeSlot] = i
		}
		if e.TrackNumber < 1 || e.TrackNumber > models.TrackCount {
			continue
		}
		rows[i].Tracks[e.TrackNumber-1] = models.ScheduleCell{
			Track:   e.TrackNumber,
			ID:      e.ID,
			Title:   e.Title,
			Speaker: e.Speaker,
			Room:    e.Room,
		}
	}
	return rows
}

func (s *ScheduleService) entryFromInput(input models.ScheduleInput) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Validation(err, "invalid schedule payload")
	}
	slot, start, err := s.TimeSlotFor(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	return &models.ScheduleEntry{
		TimeSlot:    slot,
		StartTime:   start.UTC(),
		TrackNumber: input.TrackNumber,
		Title:       input.Title,
		Speaker:     input.Speaker,
		Room:        input.Room,
	}, nil
}

func (s *ScheduleService) ensureNoConflict(ctx context.Context, entry models.ScheduleEntry, ignoreID string) error {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return appErrors.Internal(err, "failed to check schedule conflicts")
	}
	if TrackIsAvailable(existing, entry.TimeSlot, entry.TrackNumber, ignoreID) {
		return nil
	}
	for _, item := range existing {
		if item.ID != ignoreID && item.TimeSlot == entry.TimeSlot && item.TrackNumber == entry.TrackNumber {
			s.metrics.RecordScheduleConflict()
			return s.wrapConflict(item)
		}
	}
	return nil
}

func (s *ScheduleService) wrapConflict(existing models.ScheduleEntry) error {
	message := fmt.Sprintf("Track %d is already occupied for this time slot", existing.TrackNumber)
	domainErr := &models.ScheduleConflictError{
		Type:    "TRACK",
		Message: message,
		Conflict: models.ScheduleConflict{
			ScheduleID:  existing.ID,
			TimeSlot:    existing.TimeSlot,
			TrackNumber: existing.TrackNumber,
			Title:       existing.Title,
		},
	}
	appErr := appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, message)
	appErr.Details = domainErr.Conflict
	return appErr
}
