package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
)

type speakerRepository interface {
	List(ctx context.Context, limit int) ([]models.Speaker, error)
}

type ticketRepository interface {
	List(ctx context.Context) ([]models.TicketTier, error)
}

type faqRepository interface {
	List(ctx context.Context) ([]models.FAQ, error)
}

// ContentService serves the read-only public listings: speakers, ticket
// tiers and FAQs. Load failures are logged and produce empty collections.
type ContentService struct {
	speakers speakerRepository
	tickets  ticketRepository
	faqs     faqRepository
	cache    *CacheService
	logger   *zap.Logger
	ttl      time.Duration
}

// NewContentService constructs a ContentService.
func NewContentService(speakers speakerRepository, tickets ticketRepository, faqs faqRepository, cache *CacheService, logger *zap.Logger, ttl time.Duration) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{speakers: speakers, tickets: tickets, faqs: faqs, cache: cache, logger: logger, ttl: ttl}
}

// Speakers returns up to limit speakers by sort_order; limit <= 0 means all.
func (s *ContentService) Speakers(ctx context.Context, limit int) ([]models.Speaker, bool) {
	if limit < 0 {
		limit = 0
	}
	key := PublicKey(CacheScopeSpeakers, "limit", strconv.Itoa(limit))
	var cached []models.Speaker
	if s.cache.Get(ctx, key, &cached) {
		return cached, true
	}
	speakers, err := s.speakers.List(ctx, limit)
	if err != nil {
		s.logger.Error("failed to load speakers", zap.Error(err))
		return []models.Speaker{}, false
	}
	s.cache.Set(ctx, key, speakers, s.ttl)
	return speakers, false
}

// Tickets returns the ticket tiers with their remaining stock.
func (s *ContentService) Tickets(ctx context.Context) ([]models.TicketTierView, bool) {
	key := PublicKey(CacheScopeTickets, "all")
	var cached []models.TicketTierView
	if s.cache.Get(ctx, key, &cached) {
		return cached, true
	}
	tiers, err := s.tickets.List(ctx)
	if err != nil {
		s.logger.Error("failed to load ticket tiers", zap.Error(err))
		return []models.TicketTierView{}, false
	}
	views := make([]models.TicketTierView, 0, len(tiers))
	for _, t := range tiers {
		remaining := t.Remaining()
		views = append(views, models.TicketTierView{TicketTier: t, Remaining: remaining, SoldOut: remaining == 0})
	}
	s.cache.Set(ctx, key, views, s.ttl)
	return views, false
}

// FAQs returns the questions grouped by category. Categories keep the order
// of their first question; an empty category is reported as "General".
func (s *ContentService) FAQs(ctx context.Context) ([]models.FAQGroup, bool) {
	key := PublicKey(CacheScopeFAQs, "grouped")
	var cached []models.FAQGroup
	if s.cache.Get(ctx, key, &cached) {
		return cached, true
	}
	faqs, err := s.faqs.List(ctx)
	if err != nil {
		s.logger.Error("failed to load faqs", zap.Error(err))
		return []models.FAQGroup{}, false
	}
	groups := GroupFAQs(faqs)
	s.cache.Set(ctx, key, groups, s.ttl)
	return groups, false
}

// GroupFAQs buckets FAQs by category preserving input order.
func GroupFAQs(faqs []models.FAQ) []models.FAQGroup {
	index := map[string]int{}
	groups := []models.FAQGroup{}
	for _, f := range faqs {
		category := strings.TrimSpace(f.Category)
		if category == "" {
			category = "General"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, models.FAQGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, f)
	}
	return groups
}
