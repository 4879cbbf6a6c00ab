package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/awsugahm/acd2026-api/internal/models"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
	"github.com/awsugahm/acd2026-api/pkg/optimistic"
)

// SponsorLogoBucket is the storage bucket holding uploaded sponsor logos.
const SponsorLogoBucket = "sponsors"

// publicTierOrder is the section order of the public sponsors page.
var publicTierOrder = []string{"Platinum", "Gold", "Silver", "Bronze"}

type sponsorRepository interface {
	ListAll(ctx context.Context) ([]models.Sponsor, error)
	FindByID(ctx context.Context, id string) (*models.Sponsor, error)
	MaxSortOrder(ctx context.Context) (int, error)
	Create(ctx context.Context, sponsor *models.Sponsor) error
	UpdateContent(ctx context.Context, sponsor *models.Sponsor) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int) error
	Delete(ctx context.Context, id string) error
}

type assetStorage interface {
	Upload(r io.Reader, bucket, ownerKey, filename string) (string, error)
	DeleteURL(rawURL, bucket string) error
	Owns(rawURL string) bool
}

// UploadConfig limits accepted image uploads.
type UploadConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// SponsorServiceConfig tunes SponsorService.
type SponsorServiceConfig struct {
	Uploads  UploadConfig
	CacheTTL time.Duration
}

// SponsorService owns the sponsor board: the locally held sponsor list the
// admin console reorders optimistically. Content writes go to the store first
// and only then update the board.
type SponsorService struct {
	repo      sponsorRepository
	storage   assetStorage
	board     *optimistic.Store[[]models.Sponsor]
	loaded    atomic.Bool
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SponsorServiceConfig
}

// NewSponsorService constructs a SponsorService with an empty board.
func NewSponsorService(repo sponsorRepository, storage assetStorage, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg SponsorServiceConfig) *SponsorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SponsorService{
		repo:      repo,
		storage:   storage,
		board:     optimistic.NewStore[[]models.Sponsor](nil, cloneSponsors),
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Load fetches every sponsor from the store and replaces the board.
func (s *SponsorService) Load(ctx context.Context) ([]models.Sponsor, error) {
	sponsors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load sponsors")
	}
	SortSponsors(sponsors)
	s.board.Set(sponsors)
	s.loaded.Store(true)
	return s.board.Get(), nil
}

// Refresh is Load under the name the admin console uses after navigation.
func (s *SponsorService) Refresh(ctx context.Context) ([]models.Sponsor, error) {
	return s.Load(ctx)
}

// Snapshot returns the board as currently held, loading it on first use.
func (s *SponsorService) Snapshot(ctx context.Context) ([]models.Sponsor, error) {
	if !s.loaded.Load() {
		return s.Load(ctx)
	}
	return s.board.Get(), nil
}

// List returns the displayed list for search, read from the board. The board
// is reloaded from the store on first use or when refresh is set; otherwise a
// reverted reorder stays visible until the admin asks for a reload.
func (s *SponsorService) List(ctx context.Context, search string, refresh bool) ([]models.Sponsor, error) {
	var (
		full []models.Sponsor
		err  error
	)
	if refresh {
		full, err = s.Refresh(ctx)
	} else {
		full, err = s.Snapshot(ctx)
	}
	if err != nil {
		return nil, err
	}
	return FilterSponsors(full, search), nil
}

// TierOptions returns the tiers offered by the sponsor form.
func (s *SponsorService) TierOptions() []string {
	return append([]string(nil), models.SponsorTierOptions...)
}

// Get loads a single sponsor from the store.
func (s *SponsorService) Get(ctx context.Context, id string) (*models.Sponsor, error) {
	sponsor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "sponsor not found")
		}
		return nil, appErrors.Internal(err, "failed to load sponsor")
	}
	return sponsor, nil
}

// Create appends a sponsor after the current last position.
func (s *SponsorService) Create(ctx context.Context, input models.SponsorInput) (*models.Sponsor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Validation(err, "invalid sponsor payload")
	}
	max, err := s.repo.MaxSortOrder(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to create sponsor")
	}
	sponsor := sponsorFromInput(input)
	sponsor.SortOrder = max + 1
	if err := s.repo.Create(ctx, &sponsor); err != nil {
		return nil, appErrors.Internal(err, "failed to create sponsor")
	}

	if s.loaded.Load() {
		board := append(s.board.Get(), sponsor)
		SortSponsors(board)
		s.board.Set(board)
	}
	s.cache.Invalidate(ctx, CacheScopeSponsors)
	s.logger.Info("sponsor created", zap.String("sponsor_id", sponsor.ID), zap.Int("sort_order", sponsor.SortOrder))
	return &sponsor, nil
}

// Update rewrites the content of a sponsor. Its position is left unchanged.
func (s *SponsorService) Update(ctx context.Context, id string, input models.SponsorInput) (*models.Sponsor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Validation(err, "invalid sponsor payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := sponsorFromInput(input)
	updated.ID = existing.ID
	updated.SortOrder = existing.SortOrder
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateContent(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "sponsor not found")
		}
		return nil, appErrors.Internal(err, "failed to update sponsor")
	}

	if s.loaded.Load() {
		board := s.board.Get()
		for i := range board {
			if board[i].ID == updated.ID {
				updated.SortOrder = board[i].SortOrder
				board[i] = cloneSponsor(updated)
			}
		}
		s.board.Set(board)
	}
	s.cache.Invalidate(ctx, CacheScopeSponsors)
	return &updated, nil
}

// Delete removes the sponsor's stored logo and then the sponsor itself.
func (s *SponsorService) Delete(ctx context.Context, id string) error {
	sponsor, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sponsor.LogoURL != "" && s.storage != nil && s.storage.Owns(sponsor.LogoURL) {
		if err := s.storage.DeleteURL(sponsor.LogoURL, SponsorLogoBucket); err != nil {
			return appErrors.Internal(err, "failed to delete sponsor logo")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "sponsor not found")
		}
		return appErrors.Internal(err, "failed to delete sponsor")
	}

	if s.loaded.Load() {
		board := s.board.Get()
		kept := board[:0]
		for _, item := range board {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		s.board.Set(kept)
	}
	s.cache.Invalidate(ctx, CacheScopeSponsors)
	return nil
}

// Reorder moves one sponsor within the displayed list. The new order is
// published on the board before the store confirms it; one sort_order write
// per displayed sponsor is then issued in parallel. If any write fails the
// board is restored to its state before the reorder and the restored list is
// returned as the error details. There is no retry.
func (s *SponsorService) Reorder(ctx context.Context, req models.SponsorReorderRequest) ([]models.Sponsor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid reorder payload")
	}
	if _, err := s.Snapshot(ctx); err != nil {
		return nil, err
	}

	var reordered []models.Sponsor
	mutate := func(full []models.Sponsor) ([]models.Sponsor, error) {
		displayed, err := pickDisplayed(full, req.DisplayedIDs)
		if err != nil {
			return nil, err
		}
		reordered, err = ReorderSponsors(displayed, req.SponsorID, req.TargetIndex)
		if err != nil {
			return nil, appErrors.Validation(err, "invalid reorder target")
		}
		return MergeSortOrders(full, reordered), nil
	}
	persist := func(ctx context.Context, _ []models.Sponsor) error {
		g, gctx := errgroup.WithContext(ctx)
		for _, item := range reordered {
			item := item
			g.Go(func() error {
				return s.repo.UpdateSortOrder(gctx, item.ID, item.SortOrder)
			})
		}
		return g.Wait()
	}

	result, err := s.board.Apply(ctx, mutate, persist)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		s.metrics.RecordSponsorReorder(true)
		s.logger.Error("sponsor reorder reverted", zap.String("sponsor_id", req.SponsorID), zap.Int("target_index", req.TargetIndex), zap.Error(err))
		return nil, appErrors.WithDetails(appErrors.Internal(err, "failed to update order"), models.SponsorReorderFailure{
			Sponsors: s.board.Get(),
		})
	}
	s.metrics.RecordSponsorReorder(false)
	s.cache.Invalidate(ctx, CacheScopeSponsors)
	return result, nil
}

// UploadLogo stores a logo image and returns its public URL.
func (s *SponsorService) UploadLogo(ctx context.Context, ownerKey, filename, contentType string, size int64, r io.Reader) (string, error) {
	if s.storage == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "file storage not configured")
	}
	if err := checkUpload(s.cfg.Uploads, contentType, size); err != nil {
		return "", err
	}
	url, err := s.storage.Upload(r, SponsorLogoBucket, ownerKey, filename)
	if err != nil {
		return "", appErrors.Internal(err, "failed to upload logo")
	}
	s.logger.Info("sponsor logo uploaded", zap.String("url", url), zap.Int64("size", size))
	return url, nil
}

// PublicGroups returns sponsors grouped into the public page sections.
// Load failures are logged and yield no groups.
func (s *SponsorService) PublicGroups(ctx context.Context) ([]models.SponsorGroup, bool) {
	key := PublicKey(CacheScopeSponsors, "groups")
	var cached []models.SponsorGroup
	if s.cache.Get(ctx, key, &cached) {
		return cached, true
	}
	sponsors, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load sponsors for public page", zap.Error(err))
		return []models.SponsorGroup{}, false
	}
	groups := GroupSponsors(sponsors)
	s.cache.Set(ctx, key, groups, s.cfg.CacheTTL)
	return groups, false
}

// GroupSponsors buckets sponsors by tier label. The Platinum, Gold, Silver
// and Bronze sections come first; other tiers follow in order of appearance.
func GroupSponsors(sponsors []models.Sponsor) []models.SponsorGroup {
	sorted := cloneSponsors(sponsors)
	SortSponsors(sorted)

	index := map[string]int{}
	groups := make([]models.SponsorGroup, 0, len(publicTierOrder))
	for _, tier := range publicTierOrder {
		index[strings.ToLower(tier)] = len(groups)
		groups = append(groups, models.SponsorGroup{Tier: tier, Sponsors: []models.Sponsor{}})
	}
	for _, sp := range sorted {
		label := models.SponsorTierLabel(sp.Tier)
		key := strings.ToLower(label)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.SponsorGroup{Tier: label, Sponsors: []models.Sponsor{}})
		}
		groups[i].Sponsors = append(groups[i].Sponsors, sp)
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Sponsors) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func pickDisplayed(full []models.Sponsor, ids []string) ([]models.Sponsor, error) {
	byID := make(map[string]models.Sponsor, len(full))
	for _, s := range full {
		byID[s.ID] = s
	}
	seen := make(map[string]bool, len(ids))
	displayed := make([]models.Sponsor, 0, len(ids))
	for _, id := range ids {
		sponsor, ok := byID[id]
		if !ok || seen[id] {
			return nil, appErrors.Clone(appErrors.ErrConflict, "sponsor list changed, reload and try again")
		}
		seen[id] = true
		displayed = append(displayed, sponsor)
	}
	return displayed, nil
}

func sponsorFromInput(input models.SponsorInput) models.Sponsor {
	benefits := make(pq.StringArray, 0, len(input.Benefits))
	for _, b := range input.Benefits {
		if b = strings.TrimSpace(b); b != "" {
			benefits = append(benefits, b)
		}
	}
	return models.Sponsor{
		CompanyName:  strings.TrimSpace(input.CompanyName),
		Tier:         strings.TrimSpace(input.Tier),
		LogoURL:      strings.TrimSpace(input.LogoURL),
		WebsiteURL:   strings.TrimSpace(input.WebsiteURL),
		Description:  input.Description,
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		Benefits:     benefits,
	}
}

func checkUpload(cfg UploadConfig, contentType string, size int64) error {
	if cfg.MaxFileSizeBytes > 0 && size > cfg.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", cfg.MaxFileSizeBytes))
	}
	if len(cfg.AllowedMIMEs) == 0 {
		return nil
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, allowed := range cfg.AllowedMIMEs {
		if mediaType == strings.ToLower(allowed) {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("content type %q is not allowed", mediaType))
}
