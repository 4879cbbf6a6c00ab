package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/models"
)

type speakerStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, speaker *models.Speaker) error
}

type sponsorStore interface {
	ListAll(ctx context.Context) ([]models.Sponsor, error)
	Create(ctx context.Context, sponsor *models.Sponsor) error
}

type ticketStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, tier *models.TicketTier) error
}

type faqStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, faq *models.FAQ) error
}

// Stores groups the tables the seeder writes to.
type Stores struct {
	Speakers speakerStore
	Sponsors sponsorStore
	Tickets  ticketStore
	FAQs     faqStore
}

// Report counts inserted rows per table. Tables that already held rows are
// listed in Skipped.
type Report struct {
	Inserted map[string]int
	Skipped  []string
}

// Seeder copies the sample content into empty tables.
type Seeder struct {
	stores Stores
	logger *zap.Logger
}

// NewSeeder constructs a Seeder.
func NewSeeder(stores Stores, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{stores: stores, logger: logger}
}

// Run inserts data into every table that is still empty. Non-empty tables are
// left alone so running it twice is harmless.
func (s *Seeder) Run(ctx context.Context, data *Data) (*Report, error) {
	report := &Report{Inserted: map[string]int{}}

	steps := []struct {
		table string
		count func(context.Context) (int, error)
		fill  func(context.Context) (int, error)
	}{
		{"speakers", s.stores.Speakers.Count, func(ctx context.Context) (int, error) {
			for i := range data.Speakers {
				item := data.Speakers[i]
				if err := s.stores.Speakers.Create(ctx, &item); err != nil {
					return i, err
				}
			}
			return len(data.Speakers), nil
		}},
		{"sponsors", s.countSponsors, func(ctx context.Context) (int, error) {
			for i := range data.Sponsors {
				item := data.Sponsors[i]
				if item.SortOrder == 0 {
					item.SortOrder = i + 1
				}
				if err := s.stores.Sponsors.Create(ctx, &item); err != nil {
					return i, err
				}
			}
			return len(data.Sponsors), nil
		}},
		{"ticket_tiers", s.stores.Tickets.Count, func(ctx context.Context) (int, error) {
			for i := range data.Tickets {
				item := data.Tickets[i]
				if err := s.stores.Tickets.Create(ctx, &item); err != nil {
					return i, err
				}
			}
			return len(data.Tickets), nil
		}},
		{"faqs", s.stores.FAQs.Count, func(ctx context.Context) (int, error) {
			for i := range data.FAQs {
				item := data.FAQs[i]
				if err := s.stores.FAQs.Create(ctx, &item); err != nil {
					return i, err
				}
			}
			return len(data.FAQs), nil
		}},
	}

	for _, step := range steps {
		existing, err := step.count(ctx)
		if err != nil {
			return report, fmt.Errorf("count %s: %w", step.table, err)
		}
		if existing > 0 {
			report.Skipped = append(report.Skipped, step.table)
			s.logger.Info("table already seeded", zap.String("table", step.table), zap.Int("rows", existing))
			continue
		}
		inserted, err := step.fill(ctx)
		report.Inserted[step.table] = inserted
		if err != nil {
			return report, fmt.Errorf("seed %s: %w", step.table, err)
		}
		s.logger.Info("table seeded", zap.String("table", step.table), zap.Int("rows", inserted))
	}
	return report, nil
}

func (s *Seeder) countSponsors(ctx context.Context) (int, error) {
	sponsors, err := s.stores.Sponsors.ListAll(ctx)
	return len(sponsors), err
}
