package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// SponsorTierOptions are the tiers offered by the admin sponsor form, in
// display order.
var SponsorTierOptions = []string{
	"Platinum Sponsors",
	"Gold Sponsors",
	"Silver Sponsors",
	"Booth Sponsors",
	"Community Partners",
	"Ticketing Partners",
	"Venue Partners",
}

// Sponsor is an organization shown on the sponsors page.
type Sponsor struct {
	ID           string         `db:"id" json:"id" yaml:"-"`
	CompanyName  string         `db:"company_name" json:"company_name" yaml:"company_name"`
	Tier         string         `db:"tier" json:"tier" yaml:"tier"`
	LogoURL      string         `db:"logo_url" json:"logo_url" yaml:"logo_url"`
	WebsiteURL   string         `db:"website_url" json:"website_url,omitempty" yaml:"website_url"`
	Description  string         `db:"description" json:"description,omitempty" yaml:"description"`
	ContactEmail string         `db:"contact_email" json:"contact_email,omitempty" yaml:"contact_email"`
	Benefits     pq.StringArray `db:"benefits" json:"benefits" yaml:"benefits"`
	SortOrder    int            `db:"sort_order" json:"sort_order" yaml:"sort_order"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at" yaml:"-"`
}

// SponsorInput is the editable content of a sponsor. Ordering is managed
// separately through reorder requests.
type SponsorInput struct {
	CompanyName  string   `json:"company_name" validate:"required,max=200"`
	Tier         string   `json:"tier" validate:"required,max=100"`
	LogoURL      string   `json:"logo_url" validate:"omitempty,url"`
	WebsiteURL   string   `json:"website_url" validate:"omitempty,url"`
	Description  string   `json:"description" validate:"max=2000"`
	ContactEmail string   `json:"contact_email" validate:"omitempty,email"`
	Benefits     []string `json:"benefits" validate:"dive,required,max=200"`
}

// SponsorReorderRequest moves one sponsor of the displayed list to a new index.
type SponsorReorderRequest struct {
	DisplayedIDs []string `json:"displayed_ids" validate:"required,min=1,dive,required"`
	SponsorID    string   `json:"sponsor_id" validate:"required"`
	TargetIndex  int      `json:"target_index" validate:"gte=0"`
}

// SponsorGroup is one tier section of the public sponsors page.
type SponsorGroup struct {
	Tier     string    `json:"tier"`
	Sponsors []Sponsor `json:"sponsors"`
}

// SponsorTierLabel strips the "Sponsors" suffix used by the admin tier names
// so "Gold Sponsors" and "Gold" group together.
func SponsorTierLabel(tier string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(tier), " Sponsors"))
}

// SponsorReorderFailure is attached to a failed reorder. Sponsors is the
// board as restored to its state before the reorder.
type SponsorReorderFailure struct {
	Sponsors []Sponsor `json:"sponsors"`
}
