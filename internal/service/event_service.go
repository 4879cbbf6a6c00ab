package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/awsugahm/acd2026-api/internal/models"
	"github.com/awsugahm/acd2026-api/internal/seed"
	"github.com/awsugahm/acd2026-api/pkg/config"
	appErrors "github.com/awsugahm/acd2026-api/pkg/errors"
)

const (
	ogImagePath      = "/og-image.webp"
	organizationLogo = "/logo.png"
	eventDescription = "A full-day event for cloud enthusiasts, students, and professionals to learn about AWS and connect with the community."
)

var organizationProfiles = []string{
	"https://www.linkedin.com/company/aws-user-group-ahmedabad",
	"https://twitter.com/awsuserahmedabad",
}

// EventService exposes the event facts, the countdown and per-page SEO data.
type EventService struct {
	event    config.EventConfig
	pages    map[string]seed.Page
	keywords string
	now      func() time.Time
}

// NewEventService constructs an EventService. now defaults to time.Now.
func NewEventService(event config.EventConfig, content *seed.Data, now func() time.Time) *EventService {
	if now == nil {
		now = time.Now
	}
	svc := &EventService{event: event, pages: map[string]seed.Page{}, now: now}
	if content != nil {
		svc.pages = content.Pages
		svc.keywords = strings.Join(content.Keywords, ", ")
	}
	return svc
}

// Info returns the event facts with the countdown to its start.
func (s *EventService) Info() models.EventInfo {
	return models.EventInfo{
		Name:      s.event.Name,
		StartTime: s.event.Start,
		EndTime:   s.event.End,
		Timezone:  s.event.Timezone,
		Venue:     s.event.Venue,
		Address:   s.event.Address,
		City:      s.event.City,
		Website:   s.event.Website,
		Email:     s.event.Email,
		Countdown: CountdownTo(s.event.Start, s.now()),
	}
}

// CountdownTo splits the time left until target into whole units. Once
// target has passed every unit is zero and Started is set.
func CountdownTo(target, now time.Time) models.Countdown {
	left := target.Sub(now)
	if left <= 0 {
		return models.Countdown{Started: true}
	}
	secs := int64(left / time.Second)
	return models.Countdown{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}

// Pages lists the page keys with SEO data.
func (s *EventService) Pages() []string {
	keys := make([]string, 0, len(s.pages))
	for k := range s.pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SEO returns the meta tags and structured data for page.
func (s *EventService) SEO(page string) (*models.PageSEO, error) {
	p, ok := s.pages[page]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no seo data for page %q", page))
	}
	url := s.event.Website + p.Path
	if p.Path == "/" {
		url = s.event.Website
	}

	structured := []map[string]interface{}{s.eventSchema(), s.organizationSchema()}
	if p.Path != "/" {
		structured = append(structured, breadcrumbSchema([]breadcrumb{
			{Name: "Home", URL: s.event.Website},
			{Name: p.Title, URL: url},
		}))
	}

	return &models.PageSEO{
		Page:       page,
		Meta:       s.metaTags(p.Title, p.Description, url),
		StructData: structured,
	}, nil
}

func (s *EventService) metaTags(title, description, url string) models.MetaTags {
	fullTitle := title + " | " + s.event.Name
	image := s.event.Website + ogImagePath
	return models.MetaTags{
		Title:              fullTitle,
		Description:        description,
		Keywords:           s.keywords,
		Canonical:          url,
		OGTitle:            fullTitle,
		OGDescription:      description,
		OGType:             "website",
		OGURL:              url,
		OGImage:            image,
		TwitterCard:        "summary_large_image",
		TwitterTitle:       fullTitle,
		TwitterDescription: description,
		TwitterImage:       image,
	}
}

func (s *EventService) eventSchema() map[string]interface{} {
	return map[string]interface{}{
		"@context":            "https://schema.org",
		"@type":               "Event",
		"name":                s.event.Name,
		"startDate":           s.event.Start.Format(time.RFC3339),
		"endDate":             s.event.End.Format(time.RFC3339),
		"eventStatus":         "https://schema.org/EventScheduled",
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
		"location": map[string]interface{}{
			"@type": "Place",
			"name":  s.event.Venue,
			"address": map[string]interface{}{
				"@type":           "PostalAddress",
				"streetAddress":   "Limda",
				"addressLocality": s.event.City,
				"addressRegion":   s.event.Region,
				"postalCode":      s.event.Postal,
				"addressCountry":  s.event.Country,
			},
		},
		"image":       s.event.Website + ogImagePath,
		"description": s.event.Name + " - " + eventDescription,
		"organizer": map[string]interface{}{
			"@type": "Organization",
			"name":  s.event.Organizer,
			"url":   s.event.Website,
		},
		"offers": map[string]interface{}{
			"@type":         "Offer",
			"url":           s.event.Website + "/tickets",
			"priceCurrency": "INR",
			"availability":  "https://schema.org/InStock",
		},
	}
}

func (s *EventService) organizationSchema() map[string]interface{} {
	return map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     s.event.Organizer,
		"url":      s.event.Website,
		"logo":     s.event.Website + organizationLogo,
		"sameAs":   append([]string(nil), organizationProfiles...),
	}
}

type breadcrumb struct {
	Name string
	URL  string
}

func breadcrumbSchema(items []breadcrumb) map[string]interface{} {
	elements := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		elements = append(elements, map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
			"item":     item.URL,
		})
	}
	return map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": elements,
	}
}
