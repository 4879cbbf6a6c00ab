package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/awsugahm/acd2026-api/internal/models"
)

const sponsorColumns = "id, company_name, tier, logo_url, website_url, description, contact_email, benefits, sort_order, created_at"

// SponsorRepository provides persistence for sponsors.
type SponsorRepository struct {
	db *sqlx.DB
}

// NewSponsorRepository creates a sponsor repository.
func NewSponsorRepository(db *sqlx.DB) *SponsorRepository {
	return &SponsorRepository{db: db}
}

// ListAll returns every sponsor ordered by sort_order.
func (r *SponsorRepository) ListAll(ctx context.Context) ([]models.Sponsor, error) {
	query := fmt.Sprintf("SELECT %s FROM sponsors ORDER BY sort_order ASC, created_at ASC", sponsorColumns)
	var sponsors []models.Sponsor
	if err := r.db.SelectContext(ctx, &sponsors, query); err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	return sponsors, nil
}

// FindByID loads a sponsor by id.
func (r *SponsorRepository) FindByID(ctx context.Context, id string) (*models.Sponsor, error) {
	query := fmt.Sprintf("SELECT %s FROM sponsors WHERE id = $1", sponsorColumns)
	var sponsor models.Sponsor
	if err := r.db.GetContext(ctx, &sponsor, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find sponsor: %w", err)
	}
	return &sponsor, nil
}

// MaxSortOrder returns the highest sort_order in use, or 0 when empty.
func (r *SponsorRepository) MaxSortOrder(ctx context.Context) (int, error) {
	var max int
	if err := r.db.GetContext(ctx, &max, `SELECT COALESCE(MAX(sort_order), 0) FROM sponsors`); err != nil {
		return 0, fmt.Errorf("max sponsor sort order: %w", err)
	}
	return max, nil
}

// Create stores a new sponsor, assigning its id.
func (r *SponsorRepository) Create(ctx context.Context, sponsor *models.Sponsor) error {
	if sponsor.ID == "" {
		sponsor.ID = uuid.NewString()
	}
	if sponsor.CreatedAt.IsZero() {
		sponsor.CreatedAt = time.Now().UTC()
	}
	if sponsor.Benefits == nil {
		sponsor.Benefits = pq.StringArray{}
	}
	const query = `INSERT INTO sponsors (id, company_name, tier, logo_url, website_url, description, contact_email, benefits, sort_order, created_at) VALUES (:id, :company_name, :tier, :logo_url, :website_url, :description, :contact_email, :benefits, :sort_order, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sponsor); err != nil {
		return fmt.Errorf("create sponsor: %w", err)
	}
	return nil
}

// UpdateContent writes the content fields of a sponsor. sort_order is left
// untouched.
func (r *SponsorRepository) UpdateContent(ctx context.Context, sponsor *models.Sponsor) error {
	if sponsor.Benefits == nil {
		sponsor.Benefits = pq.StringArray{}
	}
	const query = `UPDATE sponsors SET company_name = :company_name, tier = :tier, logo_url = :logo_url, website_url = :website_url, description = :description, contact_email = :contact_email, benefits = :benefits WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, sponsor)
	if err != nil {
		return fmt.Errorf("update sponsor: %w", err)
	}
	return expectAffected(res)
}

// UpdateSortOrder sets the sort_order of a single sponsor.
func (r *SponsorRepository) UpdateSortOrder(ctx context.Context, id string, sortOrder int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sponsors SET sort_order = $2 WHERE id = $1`, id, sortOrder)
	if err != nil {
		return fmt.Errorf("update sponsor sort order: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a sponsor by id.
func (r *SponsorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sponsor: %w", err)
	}
	return expectAffected(res)
}
