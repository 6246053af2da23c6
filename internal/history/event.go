// Package history loads Spotify extended streaming history exports into a
// canonical in-memory event log.
package history

import (
	"sort"
	"time"
)

// Event is one playback record in the canonical log.
type Event struct {
	// TrackID is the canonical identity of the logical track. All events
	// sharing a (Track, Artist) pair carry the same TrackID, regardless of
	// what the raw export said.
	TrackID string
	Track   string
	Artist  string
	Album   string
	Time    time.Time
	// MsPlayed is the playback duration in milliseconds. Never negative.
	MsPlayed int64
	Skipped  bool
}

// SortByTime orders events ascending by timestamp, stably.
func SortByTime(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
}

// FilterRange returns the events in the half-open range [start, end). A
// zero start or end leaves that side unbounded.
func FilterRange(events []Event, start, end time.Time) []Event {
	var out []Event
	for _, e := range events {
		if !start.IsZero() && e.Time.Before(start) {
			continue
		}
		if !end.IsZero() && !e.Time.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}
