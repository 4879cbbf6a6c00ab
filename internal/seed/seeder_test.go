package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsugahm/acd2026-api/internal/models"
)

type countingStore[T any] struct {
	existing int
	created  []T
	failAt   int
}

func (s *countingStore[T]) Count(context.Context) (int, error) { return s.existing, nil }

func (s *countingStore[T]) Create(_ context.Context, item *T) error {
	if s.failAt > 0 && len(s.created)+1 == s.failAt {
		return errors.New("insert failed")
	}
	s.created = append(s.created, *item)
	return nil
}

type sponsorList struct {
	countingStore[models.Sponsor]
}

func (s *sponsorList) ListAll(context.Context) ([]models.Sponsor, error) {
	return make([]models.Sponsor, s.existing), nil
}

func TestSeederFillsEmptyTables(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	speakers := &countingStore[models.Speaker]{}
	sponsors := &sponsorList{}
	tickets := &countingStore[models.TicketTier]{existing: 3}
	faqs := &countingStore[models.FAQ]{}

	report, err := NewSeeder(Stores{Speakers: speakers, Sponsors: sponsors, Tickets: tickets, FAQs: faqs}, nil).Run(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, len(data.Speakers), report.Inserted["speakers"])
	assert.Equal(t, len(data.Sponsors), len(sponsors.created))
	assert.Equal(t, []string{"ticket_tiers"}, report.Skipped)
	assert.Empty(t, tickets.created)
	for i, sponsor := range sponsors.created {
		assert.Positive(t, sponsor.SortOrder, "sponsor %d", i)
	}
	assert.Empty(t, data.Speakers[0].ID, "embedded data must not be mutated")
}

func TestSeederStopsOnInsertError(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data.Speakers), 2)

	speakers := &countingStore[models.Speaker]{failAt: 2}
	_, err = NewSeeder(Stores{
		Speakers: speakers,
		Sponsors: &sponsorList{},
		Tickets:  &countingStore[models.TicketTier]{},
		FAQs:     &countingStore[models.FAQ]{},
	}, nil).Run(context.Background(), data)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed speakers")
	assert.Len(t, speakers.created, 1)
}
