package analytics

import (
	"sort"
	"time"

	"github.com/ajmok/streamstats/internal/history"
)

// ProfileSummary is the statistical core shared by track, artist, and album
// profiles, computed from one resolved entity's full event subset.
type ProfileSummary struct {
	// FirstEvent and LastEvent are full rows, not just timestamps, so a
	// caller can show what was playing at each extreme.
	FirstEvent   history.Event `yaml:"-"`
	LastEvent    history.Event `yaml:"-"`
	TimespanDays int           `yaml:"timespan_days"`

	TotalPlays int     `yaml:"total_plays"`
	TotalHours float64 `yaml:"total_hours"`

	// PeakMonth is the calendar month with the most plays. On a tie the
	// earliest month wins.
	PeakMonth      time.Time `yaml:"peak_month"`
	PeakMonthPlays int       `yaml:"peak_month_plays"`

	// MostActiveDay is the single calendar day with the most plays, same
	// tie rule.
	MostActiveDay      time.Time `yaml:"most_active_day"`
	MostActiveDayPlays int       `yaml:"most_active_day_plays"`

	AvgPlaysPerMonth float64 `yaml:"avg_plays_per_month"`
	YearsActive      int     `yaml:"years_active"`
}

// TrackProfile is the detailed report for one resolved track.
type TrackProfile struct {
	Track  string `yaml:"track"`
	Artist string `yaml:"artist"`
	Album  string `yaml:"album"`

	ProfileSummary `yaml:",inline"`

	TotalSkips int `yaml:"total_skips"`
	FullPlays  int `yaml:"full_plays"`
	// ListenRate is the share of plays not skipped, 0-100.
	ListenRate float64 `yaml:"listen_rate"`
}

// TrackBreakdown is one row of a profile's per-track table.
type TrackBreakdown struct {
	Track        string  `yaml:"track"`
	Album        string  `yaml:"album,omitempty"`
	Plays        int     `yaml:"plays"`
	FullPlays    int     `yaml:"full_plays"`
	TotalMinutes float64 `yaml:"total_minutes"`
}

// EntityProfile is the detailed report for one resolved artist or album.
// Album is set only for album-scoped profiles; the two scopes share every
// other field.
type EntityProfile struct {
	Artist string `yaml:"artist"`
	Album  string `yaml:"album,omitempty"`

	ProfileSummary `yaml:",inline"`

	UniqueTracks int `yaml:"unique_tracks"`
	UniqueAlbums int `yaml:"unique_albums"`

	// Tracks is the full per-track breakdown, play count descending.
	// TopTracks is its Top-N cut.
	Tracks    []TrackBreakdown `yaml:"tracks"`
	TopTracks []TrackBreakdown `yaml:"-"`

	// Albums is the full per-album breakdown, play count descending.
	// Empty for album-scoped profiles, where it would repeat the profile.
	Albums []Summary `yaml:"albums,omitempty"`
}

// TrackStats computes the profile for one resolved track's events.
// Events must be sorted ascending by time.
func TrackStats(events []history.Event) (TrackProfile, error) {
	if len(events) == 0 {
		return TrackProfile{}, ErrNoData
	}

	summary := summarize(events)
	profile := TrackProfile{
		Track:          events[0].Track,
		Artist:         events[0].Artist,
		Album:          events[0].Album,
		ProfileSummary: summary,
	}
	for _, e := range events {
		if e.Skipped {
			profile.TotalSkips++
		}
	}
	profile.FullPlays = profile.TotalPlays - profile.TotalSkips
	profile.ListenRate = float64(profile.FullPlays) / float64(profile.TotalPlays) * 100
	return profile, nil
}

// ArtistStats computes the profile for one resolved artist's events.
func ArtistStats(events []history.Event, cfg Config) (EntityProfile, error) {
	return entityStats(events, cfg, false)
}

// AlbumStats computes the profile for one resolved album's events.
func AlbumStats(events []history.Event, cfg Config) (EntityProfile, error) {
	return entityStats(events, cfg, true)
}

func entityStats(events []history.Event, cfg Config, albumScope bool) (EntityProfile, error) {
	if len(events) == 0 {
		return EntityProfile{}, ErrNoData
	}

	profile := EntityProfile{
		Artist:         events[0].Artist,
		ProfileSummary: summarize(events),
	}
	if albumScope {
		profile.Album = events[0].Album
	}

	tracks := make(map[string]struct{})
	albums := make(map[string]struct{})
	for _, e := range events {
		tracks[e.Track] = struct{}{}
		albums[e.Album] = struct{}{}
	}
	profile.UniqueTracks = len(tracks)
	profile.UniqueAlbums = len(albums)

	profile.Tracks = trackBreakdown(events, albumScope)
	profile.TopTracks = profile.Tracks
	if cfg.TopN > 0 && len(profile.TopTracks) > cfg.TopN {
		profile.TopTracks = profile.TopTracks[:cfg.TopN]
	}

	if !albumScope {
		albumSums, err := Aggregate(events, GroupByAlbum)
		if err != nil {
			return EntityProfile{}, err
		}
		profile.Albums = Rank(albumSums,
			RankSpec{Keys: []SortKey{{Metric: MetricPlays, Descending: true}}}, 0)
	}
	return profile, nil
}

func summarize(events []history.Event) ProfileSummary {
	first := events[0]
	last := events[len(events)-1]

	s := ProfileSummary{
		FirstEvent:   first,
		LastEvent:    last,
		TimespanDays: int(last.Time.Sub(first.Time) / (24 * time.Hour)),
		TotalPlays:   len(events),
	}

	var totalMs int64
	months := make(map[time.Time]int)
	days := make(map[time.Time]int)
	years := make(map[int]struct{})
	for _, e := range events {
		totalMs += e.MsPlayed
		months[monthOf(e.Time)]++
		days[dayOf(e.Time)]++
		years[e.Time.Year()] = struct{}{}
	}
	s.TotalHours = float64(totalMs) / msPerHour
	s.PeakMonth, s.PeakMonthPlays = peakBucket(months)
	s.MostActiveDay, s.MostActiveDayPlays = peakBucket(days)
	s.YearsActive = len(years)

	timespan := s.TimespanDays
	if timespan < 1 {
		timespan = 1
	}
	s.AvgPlaysPerMonth = float64(s.TotalPlays) / (float64(timespan) / daysPerMonth)
	return s
}

// peakBucket returns the calendar bucket with the highest count; the
// earliest bucket wins a tie.
func peakBucket(counts map[time.Time]int) (time.Time, int) {
	buckets := make([]time.Time, 0, len(counts))
	for b := range counts {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	var peak time.Time
	best := 0
	for _, b := range buckets {
		if counts[b] > best {
			peak = b
			best = counts[b]
		}
	}
	return peak, best
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// trackBreakdown groups an entity's events by track name, play count
// descending. Ties keep first-seen order. Album-scoped profiles leave the
// redundant album column empty.
func trackBreakdown(events []history.Event, albumScope bool) []TrackBreakdown {
	type entry struct {
		row     TrackBreakdown
		totalMs int64
	}
	byTrack := make(map[string]*entry)
	var order []string

	for _, e := range events {
		en, ok := byTrack[e.Track]
		if !ok {
			en = &entry{row: TrackBreakdown{Track: e.Track}}
			if !albumScope {
				en.row.Album = e.Album
			}
			byTrack[e.Track] = en
			order = append(order, e.Track)
		}
		en.row.Plays++
		if !e.Skipped {
			en.row.FullPlays++
		}
		en.totalMs += e.MsPlayed
	}

	rows := make([]TrackBreakdown, 0, len(order))
	for _, name := range order {
		en := byTrack[name]
		en.row.TotalMinutes = float64(en.totalMs) / msPerMinute
		rows = append(rows, en.row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Plays > rows[j].Plays })
	return rows
}
