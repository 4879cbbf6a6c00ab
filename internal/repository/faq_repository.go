package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/awsugahm/acd2026-api/internal/models"
)

// FAQRepository provides access to frequently asked questions.
type FAQRepository struct {
	db *sqlx.DB
}

// NewFAQRepository creates a FAQ repository.
func NewFAQRepository(db *sqlx.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// List returns FAQs ordered by sort_order.
func (r *FAQRepository) List(ctx context.Context) ([]models.FAQ, error) {
	const query = `SELECT id, question, answer, category, sort_order FROM faqs ORDER BY sort_order ASC`
	var faqs []models.FAQ
	if err := r.db.SelectContext(ctx, &faqs, query); err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return faqs, nil
}

// Count returns the number of stored FAQs.
func (r *FAQRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM faqs`); err != nil {
		return 0, fmt.Errorf("count faqs: %w", err)
	}
	return total, nil
}

// Create inserts a FAQ.
func (r *FAQRepository) Create(ctx context.Context, faq *models.FAQ) error {
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}
	const query = `INSERT INTO faqs (id, question, answer, category, sort_order) VALUES (:id, :question, :answer, :category, :sort_order)`
	if _, err := r.db.NamedExecContext(ctx, query, faq); err != nil {
		return fmt.Errorf("create faq: %w", err)
	}
	return nil
}
