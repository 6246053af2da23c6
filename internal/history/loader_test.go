package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/pgzip"
)

const exportFixture = `[
  {
    "ts": "2024-01-02T10:00:00Z",
    "ms_played": 50000,
    "master_metadata_track_name": "A",
    "master_metadata_album_artist_name": "Artist1",
    "master_metadata_album_album_name": "Alb1",
    "spotify_track_uri": "spotify:track:second",
    "skipped": true
  },
  {
    "ts": "2024-01-01T10:00:00Z",
    "ms_played": 200000,
    "master_metadata_track_name": "A",
    "master_metadata_album_artist_name": "Artist1",
    "master_metadata_album_album_name": "Alb1",
    "spotify_track_uri": "spotify:track:first",
    "skipped": false
  },
  {
    "ts": "2024-01-03T10:00:00Z",
    "ms_played": 90000,
    "master_metadata_track_name": null,
    "master_metadata_album_artist_name": null,
    "master_metadata_album_album_name": null,
    "spotify_track_uri": null,
    "skipped": false
  }
]`

func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFiles(t *testing.T) {
	path := writeExport(t, "endsong_0.json", exportFixture)

	events, err := LoadFiles([]string{path})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}

	// The podcast row (null track name) is dropped.
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	// Sorted ascending by timestamp.
	if !events[0].Time.Before(events[1].Time) {
		t.Errorf("Events not sorted: %v then %v", events[0].Time, events[1].Time)
	}

	// The first-seen URI (chronologically) wins for the shared identity.
	for _, e := range events {
		if e.TrackID != "spotify:track:first" {
			t.Errorf("TrackID = %q, want spotify:track:first", e.TrackID)
		}
	}

	if events[0].MsPlayed != 200000 || events[0].Skipped {
		t.Errorf("First event = %+v, want 200000ms not skipped", events[0])
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !events[0].Time.Equal(want) {
		t.Errorf("First event time = %v, want %v", events[0].Time, want)
	}
}

func TestLoadFilesGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "endsong_0.json.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	zw := pgzip.NewWriter(f)
	if _, err := zw.Write([]byte(exportFixture)); err != nil {
		t.Fatalf("writing gzip fixture: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	f.Close()

	events, err := LoadFiles([]string{path})
	if err != nil {
		t.Fatalf("LoadFiles (gzip): %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(events))
	}
}

func TestLoadFilesMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated JSON", `[{"ts": "2024-01-01T10:00:00Z"`},
		{"bad timestamp", `[{"ts": "yesterday", "ms_played": 1, "master_metadata_track_name": "A", "master_metadata_album_artist_name": "B"}]`},
		{"missing timestamp", `[{"ms_played": 1, "master_metadata_track_name": "A", "master_metadata_album_artist_name": "B"}]`},
		{"negative duration", `[{"ts": "2024-01-01T10:00:00Z", "ms_played": -5, "master_metadata_track_name": "A", "master_metadata_album_artist_name": "B"}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeExport(t, "bad.json", tc.content)
			if _, err := LoadFiles([]string{path}); err == nil {
				t.Errorf("LoadFiles succeeded, want error")
			}
		})
	}
}

func TestLoadFilesEmpty(t *testing.T) {
	path := writeExport(t, "empty.json", `[]`)
	_, err := LoadFiles([]string{path})
	if err == nil || !strings.Contains(err.Error(), "no playback events") {
		t.Errorf("LoadFiles on empty export: err = %v, want 'no playback events'", err)
	}
}

func TestCanonicalizeMissingURI(t *testing.T) {
	events := []Event{
		{Track: "A", Artist: "Artist1", Time: time.Now()},
		{Track: "A", Artist: "Artist1", Time: time.Now()},
		{Track: "B", Artist: "Artist1", Time: time.Now()},
	}
	Canonicalize(events)

	if events[0].TrackID == "" {
		t.Fatal("TrackID not derived for URI-less event")
	}
	if events[0].TrackID != events[1].TrackID {
		t.Errorf("Same pair got different IDs: %q vs %q", events[0].TrackID, events[1].TrackID)
	}
	if events[0].TrackID == events[2].TrackID {
		t.Errorf("Different tracks share ID %q", events[0].TrackID)
	}
}

func TestFilterRange(t *testing.T) {
	mk := func(day int) Event {
		return Event{Time: time.Date(2024, 1, day, 10, 0, 0, 0, time.UTC)}
	}
	events := []Event{mk(1), mk(5), mk(10)}

	got := FilterRange(events,
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))
	if len(got) != 1 || got[0].Time.Day() != 5 {
		t.Errorf("FilterRange returned %d events, want just day 5", len(got))
	}

	if got := FilterRange(events, time.Time{}, time.Time{}); len(got) != 3 {
		t.Errorf("Unbounded FilterRange returned %d events, want 3", len(got))
	}
}
