package models

import (
	"github.com/lib/pq"
)

// Speaker is a person presenting at the event.
type Speaker struct {
	ID                string `db:"id" json:"id" yaml:"-"`
	Name              string `db:"name" json:"name" yaml:"name"`
	Title             string `db:"title" json:"title" yaml:"title"`
	Organization      string `db:"organization" json:"organization" yaml:"organization"`
	TalkTitle         string `db:"talk_title" json:"talk_title" yaml:"talk_title"`
	Abstract          string `db:"abstract" json:"abstract" yaml:"abstract"`
	Track             string `db:"track" json:"track" yaml:"track"`
	Bio               string `db:"bio" json:"bio" yaml:"bio"`
	PhotoURL          string `db:"photo_url" json:"photo_url" yaml:"photo_url"`
	LinkedInURL       string `db:"linkedin_url" json:"linkedin_url,omitempty" yaml:"linkedin_url"`
	TwitterURL        string `db:"twitter_url" json:"twitter_url,omitempty" yaml:"twitter_url"`
	GithubURL         string `db:"github_url" json:"github_url,omitempty" yaml:"github_url"`
	TalkLengthMinutes int    `db:"talk_length_minutes" json:"talk_length_minutes" yaml:"talk_length_minutes"`
	SortOrder         int    `db:"sort_order" json:"sort_order" yaml:"sort_order"`
}

// TicketTier is a purchasable ticket type.
type TicketTier struct {
	ID            string         `db:"id" json:"id" yaml:"-"`
	Name          string         `db:"name" json:"name" yaml:"name"`
	Price         float64        `db:"price" json:"price" yaml:"price"`
	Currency      string         `db:"currency" json:"currency" yaml:"currency"`
	Description   string         `db:"description" json:"description" yaml:"description"`
	QuantityLimit int            `db:"quantity_limit" json:"quantity_limit" yaml:"quantity_limit"`
	SoldCount     int            `db:"sold_count" json:"sold_count" yaml:"sold_count"`
	Includes      pq.StringArray `db:"includes" json:"includes" yaml:"includes"`
	SortOrder     int            `db:"sort_order" json:"sort_order" yaml:"sort_order"`
}

// Remaining returns how many tickets are left. Zero limit means unlimited
// and reports -1.
func (t TicketTier) Remaining() int {
	if t.QuantityLimit <= 0 {
		return -1
	}
	if left := t.QuantityLimit - t.SoldCount; left > 0 {
		return left
	}
	return 0
}

// TicketTierView is a ticket tier as shown on the tickets page.
type TicketTierView struct {
	TicketTier
	Remaining int  `json:"remaining"`
	SoldOut   bool `json:"sold_out"`
}

// FAQ is a question and answer shown on the FAQ page.
type FAQ struct {
	ID        string `db:"id" json:"id" yaml:"-"`
	Question  string `db:"question" json:"question" yaml:"question"`
	Answer    string `db:"answer" json:"answer" yaml:"answer"`
	Category  string `db:"category" json:"category" yaml:"category"`
	SortOrder int    `db:"sort_order" json:"sort_order" yaml:"sort_order"`
}

// FAQGroup is one category section of the FAQ page.
type FAQGroup struct {
	Category string `json:"category"`
	Items    []FAQ  `json:"items"`
}
