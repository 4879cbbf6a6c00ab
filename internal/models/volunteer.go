package models

import (
	"time"

	"github.com/lib/pq"
)

// VolunteerRoles are the roles offered on the volunteer form.
var VolunteerRoles = []string{
	"Event Day Support",
	"Registration Desk",
	"Speaker Support",
	"Venue Setup",
	"Photography/Video",
	"Social Media",
	"Logistics",
	"Accessibility Support",
}

// VolunteerAvailability are the days a volunteer may sign up for.
var VolunteerAvailability = []string{
	"Event Day (Dec 13)",
	"Day Before (Dec 12)",
	"Day After (Dec 14)",
}

// VolunteerExperienceLevels are the accepted self-assessed experience levels.
var VolunteerExperienceLevels = []string{"beginner", "intermediate", "experienced"}

// Volunteer is a submitted volunteer application.
type Volunteer struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Email           string         `db:"email" json:"email"`
	Phone           *string        `db:"phone" json:"phone,omitempty"`
	Role            string         `db:"role" json:"role"`
	Availability    pq.StringArray `db:"availability" json:"availability"`
	ExperienceLevel *string        `db:"experience_level" json:"experience_level,omitempty"`
	Motivation      string         `db:"motivation" json:"motivation"`
	PhotoURL        string         `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// VolunteerApplication is the public sign-up payload.
type VolunteerApplication struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"omitempty,max=32"`
	Role            string   `json:"role" validate:"required"`
	Availability    []string `json:"availability" validate:"required,min=1,dive,required"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty"`
	Motivation      string   `json:"motivation" validate:"required,max=2000"`
	PhotoURL        string   `json:"photo_url" validate:"omitempty,url"`
}

// VolunteerFilter describes query params for the admin volunteer list.
type VolunteerFilter struct {
	Role     string
	Search   string
	Page     int
	PageSize int
}

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
