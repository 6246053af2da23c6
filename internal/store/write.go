package store

import (
	"fmt"

	"github.com/ajmok/streamstats/internal/history"
)

// SaveEvents inserts a batch of events transactionally. Rows already in the
// snapshot (same identity, timestamp, and duration) are skipped, so
// re-importing an export is idempotent and never corrupts existing data.
// Returns the number of rows actually inserted.
func (s *Store) SaveEvents(events []history.Event) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO Event (track_id, track, artist, album, ts, ms_played, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range events {
		skipped := 0
		if e.Skipped {
			skipped = 1
		}
		res, err := stmt.Exec(e.TrackID, e.Track, e.Artist, e.Album, e.Time.Unix(), e.MsPlayed, skipped)
		if err != nil {
			return 0, fmt.Errorf("inserting event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("checking insert: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, nil
}
