package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/awsugahm/acd2026-api/internal/models"
)

// TicketRepository provides access to ticket tiers.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a ticket repository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// List returns ticket tiers ordered by sort_order.
func (r *TicketRepository) List(ctx context.Context) ([]models.TicketTier, error) {
	const query = `SELECT id, name, price, currency, description, quantity_limit, sold_count, includes, sort_order FROM ticket_tiers ORDER BY sort_order ASC`
	var tiers []models.TicketTier
	if err := r.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, fmt.Errorf("list ticket tiers: %w", err)
	}
	return tiers, nil
}

// Count returns the number of stored ticket tiers.
func (r *TicketRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ticket_tiers`); err != nil {
		return 0, fmt.Errorf("count ticket tiers: %w", err)
	}
	return total, nil
}

// Create inserts a ticket tier.
func (r *TicketRepository) Create(ctx context.Context, tier *models.TicketTier) error {
	if tier.ID == "" {
		tier.ID = uuid.NewString()
	}
	if tier.Includes == nil {
		tier.Includes = pq.StringArray{}
	}
	const query = `INSERT INTO ticket_tiers (id, name, price, currency, description, quantity_limit, sold_count, includes, sort_order) VALUES (:id, :name, :price, :currency, :description, :quantity_limit, :sold_count, :includes, :sort_order)`
	if _, err := r.db.NamedExecContext(ctx, query, tier); err != nil {
		return fmt.Errorf("create ticket tier: %w", err)
	}
	return nil
}
