package models

import "time"

// TrackCount is the number of parallel session tracks. It is fixed for the event.
const TrackCount = 3

// Tracks returns every track number in ascending order.
func Tracks() []int {
	tracks := make([]int, TrackCount)
	for i := range tracks {
		tracks[i] = i + 1
	}
	return tracks
}

// ScheduleEntry is one session in one track of the agenda.
type ScheduleEntry struct {
	ID          string    `db:"id" json:"id"`
	TimeSlot    string    `db:"time_slot" json:"time_slot"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	TrackNumber int       `db:"track_number" json:"track_number"`
	Title       string    `db:"title" json:"title"`
	Speaker     string    `db:"speaker" json:"speaker,omitempty"`
	Room        string    `db:"room" json:"room,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ScheduleFilter describes query params for listing schedule entries.
type ScheduleFilter struct {
	Search    string
	TimeSlot  string
	Track     int
	SortBy    string
	SortOrder string
	Limit     int
}

// ScheduleConflict describes the existing entry that already holds a track.
type ScheduleConflict struct {
	ScheduleID  string `json:"schedule_id"`
	TimeSlot    string `json:"time_slot"`
	TrackNumber int    `json:"track_number"`
	Title       string `json:"title"`
}

// ScheduleConflictError is returned when an entry would double-book a track.
type ScheduleConflictError struct {
	Type     string           `json:"type"`
	Message  string           `json:"message"`
	Conflict ScheduleConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// ScheduleCell is one track column of a grid row. Empty cells have no ID.
type ScheduleCell struct {
	Track   int    `json:"track"`
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Speaker string `json:"speaker"`
	Room    string `json:"room"`
}

// ScheduleRow groups the entries of one time slot across all tracks.
type ScheduleRow struct {
	Time   string         `json:"time"`
	Tracks []ScheduleCell `json:"tracks"`
}

// ScheduleGrid is the agenda as displayed on the public schedule page.
type ScheduleGrid struct {
	Rows     []ScheduleRow `json:"rows"`
	Fallback bool          `json:"fallback"`
}

// TrackOption is a selectable track for a time slot in the admin form.
type TrackOption struct {
	Track     int  `json:"track"`
	Available bool `json:"available"`
	Selected  bool `json:"selected"`
}

// TrackAvailability answers which tracks are free for a slot.
type TrackAvailability struct {
	TimeSlot  string        `json:"time_slot"`
	Available []int         `json:"available"`
	Selected  int           `json:"selected"`
	Options   []TrackOption `json:"options"`
}

// ScheduleFormValues prefill the admin edit form with local datetime strings.
type ScheduleFormValues struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TrackNumber int    `json:"track_number"`
	Title       string `json:"title"`
	Speaker     string `json:"speaker"`
	Room        string `json:"room"`
}

// ScheduleInput is the admin payload for creating or editing an entry. Times
// are datetime-local values in the event timezone or RFC 3339 timestamps.
type ScheduleInput struct {
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	TrackNumber int    `json:"track_number" validate:"required,min=1,max=3"`
	Title       string `json:"title" validate:"required,max=300"`
	Speaker     string `json:"speaker" validate:"max=200"`
	Room        string `json:"room" validate:"max=100"`
}
