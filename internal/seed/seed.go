// Package seed holds the built-in sample content: speakers, sponsors, ticket
// tiers, FAQs, the placeholder agenda and per-page SEO copy.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/awsugahm/acd2026-api/internal/models"
)

//go:embed data.yaml
var raw []byte

// AgendaSession is one session of a placeholder agenda row.
type AgendaSession struct {
	Title   string `yaml:"title"`
	Speaker string `yaml:"speaker"`
	Room    string `yaml:"room"`
}

// AgendaRow is one time slot of the placeholder agenda. A single session
// spans every track.
type AgendaRow struct {
	Time     string          `yaml:"time"`
	Sessions []AgendaSession `yaml:"sessions"`
}

// Page is the SEO copy of one website page.
type Page struct {
	Title       string `yaml:"title"`
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// Data is the decoded sample content.
type Data struct {
	Speakers []models.Speaker    `yaml:"speakers"`
	Sponsors []models.Sponsor    `yaml:"sponsors"`
	Tickets  []models.TicketTier `yaml:"tickets"`
	FAQs     []models.FAQ        `yaml:"faqs"`
	Agenda   []AgendaRow         `yaml:"agenda"`
	Pages    map[string]Page     `yaml:"pages"`
	Keywords []string            `yaml:"keywords"`
}

var (
	loadOnce sync.Once
	loaded   *Data
	loadErr  error
)

// Load decodes the embedded content once and returns it. Callers must not
// mutate the result.
func Load() (*Data, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(raw)
	})
	return loaded, loadErr
}

// Parse decodes a content document and validates the agenda.
func Parse(doc []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(doc, &data); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	for _, row := range data.Agenda {
		if _, _, ok := models.ParseTimeSlot(row.Time); !ok {
			return nil, fmt.Errorf("agenda row %q is not a time slot", row.Time)
		}
		if n := len(row.Sessions); n != 1 && n != models.TrackCount {
			return nil, fmt.Errorf("agenda row %q has %d sessions, want 1 or %d", row.Time, n, models.TrackCount)
		}
	}
	return &data, nil
}

// AgendaGrid expands the placeholder agenda into schedule rows with one cell
// per track.
func (d *Data) AgendaGrid() []models.ScheduleRow {
	rows := make([]models.ScheduleRow, 0, len(d.Agenda))
	for _, row := range d.Agenda {
		cells := make([]models.ScheduleCell, models.TrackCount)
		for i := range cells {
			session := row.Sessions[0]
			if len(row.Sessions) == models.TrackCount {
				session = row.Sessions[i]
			}
			cells[i] = models.ScheduleCell{Track: i + 1, Title: session.Title, Speaker: session.Speaker, Room: session.Room}
		}
		rows = append(rows, models.ScheduleRow{Time: row.Time, Tracks: cells})
	}
	return rows
}
