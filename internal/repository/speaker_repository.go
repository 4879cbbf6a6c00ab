package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/awsugahm/acd2026-api/internal/models"
)

// SpeakerRepository provides read access to speakers plus inserts for seeding.
type SpeakerRepository struct {
	db *sqlx.DB
}

// NewSpeakerRepository creates a speaker repository.
func NewSpeakerRepository(db *sqlx.DB) *SpeakerRepository {
	return &SpeakerRepository{db: db}
}

// List returns speakers ordered by sort_order. A positive limit caps the result.
func (r *SpeakerRepository) List(ctx context.Context, limit int) ([]models.Speaker, error) {
	query := `SELECT id, name, title, organization, talk_title, abstract, track, bio, photo_url, linkedin_url, twitter_url, github_url, talk_length_minutes, sort_order FROM speakers ORDER BY sort_order ASC, name ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	var speakers []models.Speaker
	if err := r.db.SelectContext(ctx, &speakers, query); err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	return speakers, nil
}

// Count returns the number of stored speakers.
func (r *SpeakerRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM speakers`); err != nil {
		return 0, fmt.Errorf("count speakers: %w", err)
	}
	return total, nil
}

// Create inserts a speaker.
func (r *SpeakerRepository) Create(ctx context.Context, speaker *models.Speaker) error {
	if speaker.ID == "" {
		speaker.ID = uuid.NewString()
	}
	const query = `INSERT INTO speakers (id, name, title, organization, talk_title, abstract, track, bio, photo_url, linkedin_url, twitter_url, github_url, talk_length_minutes, sort_order) VALUES (:id, :name, :title, :organization, :talk_title, :abstract, :track, :bio, :photo_url, :linkedin_url, :twitter_url, :github_url, :talk_length_minutes, :sort_order)`
	if _, err := r.db.NamedExecContext(ctx, query, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}
