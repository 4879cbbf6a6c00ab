package service

import "github.com/awsugahm/acd2026-api/internal/models"

// TrackIsAvailable reports whether no entry other than excludeID already
// holds track in timeSlot. Slots are compared by exact string equality.
func TrackIsAvailable(entries []models.ScheduleEntry, timeSlot string, track int, excludeID string) bool {
	for _, e := range entries {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if e.TimeSlot == timeSlot && e.TrackNumber == track {
			return false
		}
	}
	return true
}

// AvailableTracks returns the free tracks of timeSlot in ascending order.
func AvailableTracks(entries []models.ScheduleEntry, timeSlot string, excludeID string) []int {
	used := make(map[int]bool, models.TrackCount)
	for _, e := range entries {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if e.TimeSlot == timeSlot {
			used[e.TrackNumber] = true
		}
	}
	available := make([]int, 0, models.TrackCount)
	for _, track := range models.Tracks() {
		if !used[track] {
			available = append(available, track)
		}
	}
	return available
}

// ResolveTrackSelection picks the track the edit form should show. The
// current track is kept while it is free, otherwise the first free track is
// chosen. With nothing free the current track is kept and reported
// unavailable.
func ResolveTrackSelection(available []int, current int) (track int, ok bool) {
	for _, t := range available {
		if t == current {
			return current, true
		}
	}
	if len(available) > 0 {
		return available[0], true
	}
	return current, false
}

// TrackOptions renders every track with its availability and selection.
func TrackOptions(available []int, selected int) []models.TrackOption {
	free := make(map[int]bool, len(available))
	for _, t := range available {
		free[t] = true
	}
	options := make([]models.TrackOption, 0, models.TrackCount)
	for _, t := range models.Tracks() {
		options = append(options, models.TrackOption{Track: t, Available: free[t], Selected: t == selected})
	}
	return options
}
