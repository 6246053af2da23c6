package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/pgzip"
)

// rawRecord mirrors one object in a Spotify extended streaming history file.
// Episode and audiobook fields are ignored; their rows have a null track name.
type rawRecord struct {
	Timestamp string  `json:"ts"`
	MsPlayed  int64   `json:"ms_played"`
	Track     *string `json:"master_metadata_track_name"`
	Artist    *string `json:"master_metadata_album_artist_name"`
	Album     *string `json:"master_metadata_album_album_name"`
	TrackURI  *string `json:"spotify_track_uri"`
	Skipped   *bool   `json:"skipped"`
}

// LoadFiles reads one or more export files (.json or .json.gz), merges their
// records, and returns the canonical event log sorted by timestamp. A file
// that cannot be parsed fails the whole load; no partial log is returned.
func LoadFiles(paths []string) ([]Event, error) {
	var events []Event
	for _, path := range paths {
		fileEvents, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		events = append(events, fileEvents...)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no playback events found in %d file(s)", len(paths))
	}
	SortByTime(events)
	Canonicalize(events)
	return events, nil
}

func loadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var records []rawRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	events := make([]Event, 0, len(records))
	for i, rec := range records {
		// Podcast and audiobook rows carry no track metadata.
		if rec.Track == nil || rec.Artist == nil {
			continue
		}
		if rec.Timestamp == "" {
			return nil, fmt.Errorf("record %d: missing ts", i)
		}
		ts, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("record %d: parsing ts %q: %w", i, rec.Timestamp, err)
		}
		if rec.MsPlayed < 0 {
			return nil, fmt.Errorf("record %d: negative ms_played %d", i, rec.MsPlayed)
		}
		e := Event{
			Track:    *rec.Track,
			Artist:   *rec.Artist,
			Time:     ts.UTC(),
			MsPlayed: rec.MsPlayed,
		}
		if rec.Album != nil {
			e.Album = *rec.Album
		}
		if rec.TrackURI != nil {
			e.TrackID = *rec.TrackURI
		}
		if rec.Skipped != nil {
			e.Skipped = *rec.Skipped
		}
		events = append(events, e)
	}
	return events, nil
}

// Canonicalize rewrites TrackID so that every event of the same
// (track, artist) pair shares one identity: the first-seen URI for that
// pair. The raw export may assign several URIs to the same logical track
// across re-releases. Events with no URI at all get a derived key.
func Canonicalize(events []Event) {
	ids := make(map[string]string)
	for i := range events {
		key := pairKey(events[i].Track, events[i].Artist)
		id, ok := ids[key]
		if !ok {
			id = events[i].TrackID
			if id == "" {
				id = key
			}
			ids[key] = id
		}
		events[i].TrackID = id
	}
}

func pairKey(track, artist string) string {
	return track + "\x00" + artist
}
