package analytics

import "sort"

// Metric names a sortable Summary column.
type Metric int

const (
	MetricPlays Metric = iota
	MetricNoSkips
	MetricMinutes
	MetricMeanMinutes
	MetricSkipPercentage
	MetricUniqueTracks
)

// SortKey is one column of a ranking order.
type SortKey struct {
	Metric     Metric
	Descending bool
}

// RankSpec is a named ranking: the sort order plus an optional minimum
// sample size. Rows with fewer than MinPlays total plays are excluded
// before sorting, not merely downweighted.
type RankSpec struct {
	Keys     []SortKey
	MinPlays int
}

// Rank sorts summaries by the spec and returns at most n rows. The sort is
// stable, so ties keep the input (first-seen group) order. n <= 0 returns
// the full filtered ordering.
func Rank(summaries []Summary, spec RankSpec, n int) []Summary {
	rows := make([]Summary, 0, len(summaries))
	for _, s := range summaries {
		if spec.MinPlays > 0 && s.TotalPlays < spec.MinPlays {
			continue
		}
		rows = append(rows, s)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range spec.Keys {
			a := metricValue(rows[i], key.Metric)
			b := metricValue(rows[j], key.Metric)
			if a == b {
				continue
			}
			if key.Descending {
				return a > b
			}
			return a < b
		}
		return false
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func metricValue(s Summary, m Metric) float64 {
	switch m {
	case MetricNoSkips:
		return float64(s.PlaysNoSkips)
	case MetricMinutes:
		return s.TotalMinutes
	case MetricMeanMinutes:
		return s.MeanListenMinutes
	case MetricSkipPercentage:
		return s.SkipPercentage
	case MetricUniqueTracks:
		return float64(s.UniqueTracks)
	default:
		return float64(s.TotalPlays)
	}
}

// TrackRankings holds the Top-N views over the per-track aggregate table.
type TrackRankings struct {
	All           []Summary
	ByPlays       []Summary
	ByNoSkips     []Summary
	ByMinutes     []Summary
	ByMeanMinutes []Summary
	LowestSkip    []Summary
	HighestSkip   []Summary
}

// EntityRankings holds the Top-N views over a per-artist or per-album
// aggregate table.
type EntityRankings struct {
	All         []Summary
	ByPlays     []Summary
	ByNoSkips   []Summary
	ByTime      []Summary
	ByDiversity []Summary
	LowestSkip  []Summary
	HighestSkip []Summary
}

// RankTracks computes the standard ranking suite over a per-track
// aggregate table. The lowest-skip view breaks ties on total plays
// descending, preferring the better-sampled track when several sit at the
// same skip percentage.
func RankTracks(summaries []Summary, cfg Config) TrackRankings {
	descPlays := []SortKey{{Metric: MetricPlays, Descending: true}}
	return TrackRankings{
		All:           summaries,
		ByPlays:       Rank(summaries, RankSpec{Keys: descPlays}, cfg.TopN),
		ByNoSkips:     Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricNoSkips, Descending: true}}}, cfg.TopN),
		ByMinutes:     Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricMinutes, Descending: true}}}, cfg.TopN),
		ByMeanMinutes: Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricMeanMinutes, Descending: true}}}, cfg.TopN),
		LowestSkip: Rank(summaries, RankSpec{
			Keys: []SortKey{
				{Metric: MetricSkipPercentage},
				{Metric: MetricPlays, Descending: true},
			},
			MinPlays: cfg.MinPlaysTrackSkip,
		}, cfg.TopN),
		HighestSkip: Rank(summaries, RankSpec{
			Keys:     []SortKey{{Metric: MetricSkipPercentage, Descending: true}},
			MinPlays: cfg.MinPlaysTrackSkip,
		}, cfg.TopN),
	}
}

// RankArtists computes the ranking suite over a per-artist aggregate
// table. The highest-skip view sorts by skip percentage alone; ties keep
// first-seen order.
func RankArtists(summaries []Summary, cfg Config) EntityRankings {
	highestSkip := []SortKey{{Metric: MetricSkipPercentage, Descending: true}}
	return rankEntities(summaries, cfg, highestSkip)
}

// RankAlbums computes the ranking suite over a per-album aggregate table.
// Unlike the artist suite, the highest-skip view breaks ties on total
// plays descending.
func RankAlbums(summaries []Summary, cfg Config) EntityRankings {
	highestSkip := []SortKey{
		{Metric: MetricSkipPercentage, Descending: true},
		{Metric: MetricPlays, Descending: true},
	}
	return rankEntities(summaries, cfg, highestSkip)
}

func rankEntities(summaries []Summary, cfg Config, highestSkip []SortKey) EntityRankings {
	return EntityRankings{
		All:         summaries,
		ByPlays:     Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricPlays, Descending: true}}}, cfg.TopN),
		ByNoSkips:   Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricNoSkips, Descending: true}}}, cfg.TopN),
		ByTime:      Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricMinutes, Descending: true}}}, cfg.TopN),
		ByDiversity: Rank(summaries, RankSpec{Keys: []SortKey{{Metric: MetricUniqueTracks, Descending: true}}}, cfg.TopN),
		LowestSkip: Rank(summaries, RankSpec{
			Keys: []SortKey{
				{Metric: MetricSkipPercentage},
				{Metric: MetricPlays, Descending: true},
			},
			MinPlays: cfg.MinPlaysArtistAlbumSkip,
		}, cfg.TopN),
		HighestSkip: Rank(summaries, RankSpec{
			Keys:     highestSkip,
			MinPlays: cfg.MinPlaysArtistAlbumSkip,
		}, cfg.TopN),
	}
}
