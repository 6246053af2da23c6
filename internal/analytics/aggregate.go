package analytics

import (
	"time"

	"github.com/ajmok/streamstats/internal/history"
)

// GroupKey selects the grouping level for Aggregate.
type GroupKey int

const (
	GroupByTrack GroupKey = iota
	GroupByArtist
	GroupByAlbum
)

// Summary is one row of a grouped aggregation: the play statistics for a
// single track identity, artist, or album. Name columns not applicable to
// the grouping level are left zero (e.g. UniqueAlbums for a track row).
type Summary struct {
	// Key is the group key: track identity, artist name, or album name.
	Key    string `yaml:"key"`
	Track  string `yaml:"track,omitempty"`
	Artist string `yaml:"artist,omitempty"`
	Album  string `yaml:"album,omitempty"`

	UniqueTracks int `yaml:"unique_tracks,omitempty"`
	UniqueAlbums int `yaml:"unique_albums,omitempty"`

	TotalPlays        int     `yaml:"total_plays"`
	PlaysNoSkips      int     `yaml:"plays_no_skips"`
	TotalMinutes      float64 `yaml:"total_minutes"`
	MeanListenMinutes float64 `yaml:"mean_listen_minutes"`
	SkipPercentage    float64 `yaml:"skip_percentage"`
}

type group struct {
	summary Summary
	totalMs int64
	tracks  map[string]struct{}
	albums  map[string]struct{}
}

// Aggregate produces one Summary per distinct group key present in the
// events. Rows appear in first-seen order of their key, which keeps repeat
// runs over the same log bit-for-bit identical and gives the ranking
// engine a deterministic tie-break order. Returns ErrNoData for an empty
// input; a group can therefore never have zero plays.
func Aggregate(events []history.Event, by GroupKey) ([]Summary, error) {
	if len(events) == 0 {
		return nil, ErrNoData
	}

	groups := make(map[string]*group)
	var order []string

	for _, e := range events {
		key := groupKeyOf(e, by)
		g, ok := groups[key]
		if !ok {
			g = &group{
				summary: Summary{Key: key},
				tracks:  make(map[string]struct{}),
				albums:  make(map[string]struct{}),
			}
			// Representative names come from the first event seen for the key.
			switch by {
			case GroupByTrack:
				g.summary.Track = e.Track
				g.summary.Artist = e.Artist
				g.summary.Album = e.Album
			case GroupByAlbum:
				g.summary.Album = e.Album
				g.summary.Artist = e.Artist
			case GroupByArtist:
				g.summary.Artist = e.Artist
			}
			groups[key] = g
			order = append(order, key)
		}

		g.summary.TotalPlays++
		if !e.Skipped {
			g.summary.PlaysNoSkips++
		}
		g.totalMs += e.MsPlayed
		g.tracks[e.Track] = struct{}{}
		g.albums[e.Album] = struct{}{}
	}

	summaries := make([]Summary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		s := g.summary
		s.TotalMinutes = float64(g.totalMs) / msPerMinute
		s.MeanListenMinutes = float64(g.totalMs) / float64(s.TotalPlays) / msPerMinute
		s.SkipPercentage = skipPercentage(s.TotalPlays, s.PlaysNoSkips)
		switch by {
		case GroupByArtist:
			s.UniqueTracks = len(g.tracks)
			s.UniqueAlbums = len(g.albums)
		case GroupByAlbum:
			s.UniqueTracks = len(g.tracks)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func groupKeyOf(e history.Event, by GroupKey) string {
	switch by {
	case GroupByArtist:
		return e.Artist
	case GroupByAlbum:
		return e.Album
	default:
		return e.TrackID
	}
}

// skipPercentage guards the zero-plays case so no caller ever divides by
// zero, even on filtered inputs.
func skipPercentage(totalPlays, playsNoSkips int) float64 {
	if totalPlays == 0 {
		return 0
	}
	return (1 - float64(playsNoSkips)/float64(totalPlays)) * 100
}

// BasicStats summarizes a whole log (or a date-filtered slice of it).
type BasicStats struct {
	TotalPlays     int     `yaml:"total_plays"`
	PlaysNoSkips   int     `yaml:"plays_no_skips"`
	SkipPercentage float64 `yaml:"skip_percentage"`
	TotalMinutes   float64 `yaml:"total_minutes"`
	UniqueTracks   int     `yaml:"unique_tracks"`
	UniqueArtists  int     `yaml:"unique_artists"`
	UniqueAlbums   int     `yaml:"unique_albums"`
}

// Overview computes the headline numbers for an event set.
func Overview(events []history.Event) (BasicStats, error) {
	if len(events) == 0 {
		return BasicStats{}, ErrNoData
	}

	var stats BasicStats
	var totalMs int64
	tracks := make(map[string]struct{})
	artists := make(map[string]struct{})
	albums := make(map[string]struct{})

	for _, e := range events {
		stats.TotalPlays++
		if !e.Skipped {
			stats.PlaysNoSkips++
		}
		totalMs += e.MsPlayed
		tracks[e.TrackID] = struct{}{}
		artists[e.Artist] = struct{}{}
		albums[e.Album] = struct{}{}
	}

	stats.SkipPercentage = skipPercentage(stats.TotalPlays, stats.PlaysNoSkips)
	stats.TotalMinutes = float64(totalMs) / msPerMinute
	stats.UniqueTracks = len(tracks)
	stats.UniqueArtists = len(artists)
	stats.UniqueAlbums = len(albums)
	return stats, nil
}

// FirstLastPlay holds the chronological extremes of an event set.
type FirstLastPlay struct {
	First        history.Event
	Last         history.Event
	TimespanDays int
}

// FirstLast returns the earliest and latest events and the days between
// them. Events must be sorted ascending by time, as the loader guarantees.
func FirstLast(events []history.Event) (FirstLastPlay, error) {
	if len(events) == 0 {
		return FirstLastPlay{}, ErrNoData
	}
	first := events[0]
	last := events[len(events)-1]
	return FirstLastPlay{
		First:        first,
		Last:         last,
		TimespanDays: int(last.Time.Sub(first.Time) / (24 * time.Hour)),
	}, nil
}
