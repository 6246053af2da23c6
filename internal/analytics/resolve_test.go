package analytics

import (
	"testing"

	"github.com/ajmok/streamstats/internal/history"
)

func TestResolveNotFound(t *testing.T) {
	events := []history.Event{
		testEvent(t, "Song", "Artist1", "Alb1", "2024-01-01T10:00", 1000, false),
	}

	res := Resolve(events, KindTrack, Query{Text: "does not exist"})
	if res.State != NotFound {
		t.Errorf("State = %v, want NotFound", res.State)
	}
}

func TestResolveAmbiguousArtists(t *testing.T) {
	// Three distinct artists all matching a case-insensitive substring.
	events := []history.Event{
		testEvent(t, "S1", "The Knife", "A1", "2024-01-01T10:00", 1000, false),
		testEvent(t, "S2", "The Knife", "A1", "2024-01-02T10:00", 1000, false),
		testEvent(t, "S3", "The Knife", "A1", "2024-01-03T10:00", 1000, false),
		testEvent(t, "S4", "Knifeplay", "A2", "2024-01-04T10:00", 1000, false),
		testEvent(t, "S5", "Knifeplay", "A2", "2024-01-05T10:00", 1000, false),
		testEvent(t, "S6", "Mack Knife", "A3", "2024-01-06T10:00", 1000, false),
	}

	res := Resolve(events, KindArtist, Query{Text: "knife"})
	if res.State != Ambiguous {
		t.Fatalf("State = %v, want Ambiguous", res.State)
	}
	if res.Distinct != 3 {
		t.Errorf("Distinct = %d, want 3", res.Distinct)
	}
	if len(res.Candidates) != 3 {
		t.Fatalf("Candidates = %d, want 3", len(res.Candidates))
	}
	// Ranked by play count descending.
	wantOrder := []string{"The Knife", "Knifeplay", "Mack Knife"}
	wantPlays := []int{3, 2, 1}
	for i, c := range res.Candidates {
		if c.Artist != wantOrder[i] || c.Plays != wantPlays[i] {
			t.Errorf("Candidate %d = %q (%d plays), want %q (%d)",
				i, c.Artist, c.Plays, wantOrder[i], wantPlays[i])
		}
	}
}

func TestResolveTwoIdentitiesStillResolves(t *testing.T) {
	// Two near-duplicate track identities: tolerated, not ambiguous.
	events := []history.Event{
		testEvent(t, "Halo", "Artist1", "A1", "2024-01-01T10:00", 1000, false),
		testEvent(t, "Halo - Remastered", "Artist1", "A1", "2024-01-02T10:00", 1000, false),
	}

	res := Resolve(events, KindTrack, Query{Text: "halo"})
	if res.State != Resolved {
		t.Fatalf("State = %v, want Resolved", res.State)
	}
	if res.Distinct != 2 {
		t.Errorf("Distinct = %d, want 2", res.Distinct)
	}
	if len(res.Events) != 2 {
		t.Errorf("Events = %d, want 2 (both identities pooled)", len(res.Events))
	}
}

func TestResolveExactMatching(t *testing.T) {
	events := []history.Event{
		testEvent(t, "Run", "Artist1", "A1", "2024-01-01T10:00", 1000, false),
		testEvent(t, "Runaway", "Artist2", "A2", "2024-01-02T10:00", 1000, false),
		testEvent(t, "run", "Artist3", "A3", "2024-01-03T10:00", 1000, false),
	}

	res := Resolve(events, KindTrack, Query{Text: "Run", Exact: true})
	if res.State != Resolved {
		t.Fatalf("State = %v, want Resolved", res.State)
	}
	if len(res.Events) != 1 || res.Events[0].Artist != "Artist1" {
		t.Errorf("Exact match returned %d events, want only Artist1's", len(res.Events))
	}
}

func TestResolveDisambiguators(t *testing.T) {
	events := []history.Event{
		testEvent(t, "Intro", "Artist1", "A1", "2024-01-01T10:00", 1000, false),
		testEvent(t, "Intro", "Artist2", "A2", "2024-01-02T10:00", 1000, false),
		testEvent(t, "Intro", "Artist3", "A3", "2024-01-03T10:00", 1000, false),
	}

	// Without a disambiguator: three identities, ambiguous.
	res := Resolve(events, KindTrack, Query{Text: "intro"})
	if res.State != Ambiguous {
		t.Fatalf("State = %v, want Ambiguous", res.State)
	}

	// The artist constraint narrows to one.
	res = Resolve(events, KindTrack, Query{Text: "intro", Artist: "artist2"})
	if res.State != Resolved {
		t.Fatalf("State with artist filter = %v, want Resolved", res.State)
	}
	if len(res.Events) != 1 || res.Events[0].Artist != "Artist2" {
		t.Errorf("Filtered events = %+v, want only Artist2's", res.Events)
	}

	// Album constraint works the same way.
	res = Resolve(events, KindTrack, Query{Text: "intro", Album: "A3"})
	if res.State != Resolved || len(res.Events) != 1 || res.Events[0].Album != "A3" {
		t.Errorf("Album filter gave state %v with %d events, want Resolved/1", res.State, len(res.Events))
	}
}

func TestResolveAlbumKind(t *testing.T) {
	events := []history.Event{
		testEvent(t, "S1", "Artist1", "In Rainbows", "2024-01-01T10:00", 1000, false),
		testEvent(t, "S2", "Artist1", "In Rainbows", "2024-01-02T10:00", 1000, false),
	}

	res := Resolve(events, KindAlbum, Query{Text: "rainbows"})
	if res.State != Resolved {
		t.Fatalf("State = %v, want Resolved", res.State)
	}
	if res.Distinct != 1 {
		t.Errorf("Distinct = %d, want 1", res.Distinct)
	}
}
