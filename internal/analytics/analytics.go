// Package analytics computes descriptive statistics over a canonical
// playback event log: grouped aggregates, Top-N rankings, per-entity
// profiles, and time-of-day/week/month distributions. All functions treat
// the log as immutable input and return derived records.
package analytics

import "errors"

// ErrNoData signals that a computation was invoked on zero events, e.g.
// after a filter or disambiguation narrowed the log to nothing. Callers
// report it as "no data" rather than failing.
var ErrNoData = errors.New("no playback events to analyze")

const (
	msPerMinute = 60000
	msPerHour   = 3600000

	// daysPerMonth is the fixed average month length used for the
	// plays-per-month rate. A documented approximation, not calendar math.
	daysPerMonth = 30.44
)

// Config is the tuning surface consumed by the rankings and profiles.
type Config struct {
	// TopN is the cut size for Top-N views.
	TopN int
	// MinPlaysTrackSkip is the minimum sample size for track-level skip
	// rankings. Tracks with fewer total plays are excluded outright.
	MinPlaysTrackSkip int
	// MinPlaysArtistAlbumSkip is the equivalent floor for artist and album
	// skip rankings. Higher because those aggregates pool far more plays.
	MinPlaysArtistAlbumSkip int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		TopN:                    5,
		MinPlaysTrackSkip:       20,
		MinPlaysArtistAlbumSkip: 100,
	}
}
