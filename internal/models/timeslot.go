package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LocalDateTimeLayout matches the value of an HTML datetime-local input.
const LocalDateTimeLayout = "2006-01-02T15:04"

var timeSlotPattern = regexp.MustCompile(`^(\d{2}:\d{2} [AP]M) - (\d{2}:\d{2} [AP]M)$`)

// FormatClock renders t as a zero padded 12-hour clock, e.g. "01:05 PM".
// Midnight is "12:00 AM" and noon is "12:00 PM".
func FormatClock(t time.Time) string {
	h := t.Hour()
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute(), period)
}

// CanonicalTimeSlot renders a start/end pair as "hh:mm AM - hh:mm PM" in loc.
// The result is the only key used to decide whether two entries share a slot.
func CanonicalTimeSlot(start, end time.Time, loc *time.Location) string {
	if loc != nil {
		start = start.In(loc)
		end = end.In(loc)
	}
	return FormatClock(start) + " - " + FormatClock(end)
}

// ParseTimeSlot extracts the start and end clock tokens from a stored slot.
func ParseTimeSlot(slot string) (start, end string, ok bool) {
	m := timeSlotPattern.FindStringSubmatch(slot)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ParseClock converts "hh:mm AM|PM" into a 24-hour hour and minute.
func ParseClock(token string) (hour, minute int, err error) {
	clock, period, found := strings.Cut(strings.TrimSpace(token), " ")
	if !found {
		return 0, 0, fmt.Errorf("invalid clock %q", token)
	}
	hh, mm, found := strings.Cut(clock, ":")
	if !found {
		return 0, 0, fmt.Errorf("invalid clock %q", token)
	}
	if hour, err = strconv.Atoi(hh); err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("invalid hour in %q", token)
	}
	if minute, err = strconv.Atoi(mm); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", token)
	}
	switch period {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, 0, fmt.Errorf("invalid period in %q", token)
	}
	return hour, minute, nil
}

// SlotEndTime recovers the end timestamp of a stored slot by placing its end
// clock on the local date of start.
func SlotEndTime(slot string, start time.Time, loc *time.Location) (time.Time, error) {
	_, endToken, ok := ParseTimeSlot(slot)
	if !ok {
		return time.Time{}, fmt.Errorf("time slot %q has no end time", slot)
	}
	hour, minute, err := ParseClock(endToken)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = start.Location()
	}
	y, m, d := start.In(loc).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), nil
}

// ParseLocalDateTime reads a datetime-local value in loc. RFC 3339 values
// with an explicit offset are accepted as well.
func ParseLocalDateTime(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(LocalDateTimeLayout, raw, loc)
}
