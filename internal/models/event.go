package models

import "time"

// EventInfo describes the conference itself.
type EventInfo struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Timezone  string    `json:"timezone"`
	Venue     string    `json:"venue"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Website   string    `json:"website"`
	Email     string    `json:"email"`
	Countdown Countdown `json:"countdown"`
}

// Countdown is the remaining time until the event starts.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Started bool `json:"started"`
}

// MetaTags are the head tags for one page.
type MetaTags struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords,omitempty"`
	Canonical          string `json:"canonical"`
	OGTitle            string `json:"og:title"`
	OGDescription      string `json:"og:description"`
	OGType             string `json:"og:type"`
	OGURL              string `json:"og:url"`
	OGImage            string `json:"og:image,omitempty"`
	TwitterCard        string `json:"twitter:card"`
	TwitterTitle       string `json:"twitter:title"`
	TwitterDescription string `json:"twitter:description"`
	TwitterImage       string `json:"twitter:image,omitempty"`
}

// PageSEO bundles the meta tags and structured data for a page.
type PageSEO struct {
	Page       string                   `json:"page"`
	Meta       MetaTags                 `json:"meta"`
	StructData []map[string]interface{} `json:"structured_data"`
}
