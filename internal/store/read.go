package store

import (
	"fmt"
	"time"

	"github.com/ajmok/streamstats/internal/history"
)

// LoadEvents returns every snapshotted event, ascending by timestamp.
func (s *Store) LoadEvents() ([]history.Event, error) {
	return s.queryEvents(`
		SELECT track_id, track, artist, album, ts, ms_played, skipped
		FROM Event
		ORDER BY ts ASC, id ASC
	`)
}

// LoadEventsInRange returns snapshotted events in the half-open range
// [start, end), ascending by timestamp.
func (s *Store) LoadEventsInRange(start, end time.Time) ([]history.Event, error) {
	return s.queryEvents(`
		SELECT track_id, track, artist, album, ts, ms_played, skipped
		FROM Event
		WHERE ts >= ? AND ts < ?
		ORDER BY ts ASC, id ASC
	`, start.Unix(), end.Unix())
}

func (s *Store) queryEvents(query string, args ...interface{}) ([]history.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []history.Event
	for rows.Next() {
		var e history.Event
		var ts int64
		var skipped int
		if err := rows.Scan(&e.TrackID, &e.Track, &e.Artist, &e.Album, &ts, &e.MsPlayed, &skipped); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Time = time.Unix(ts, 0).UTC()
		e.Skipped = skipped != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the number of snapshotted events.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM Event").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}
