package analytics

import (
	"math"
	"time"

	"github.com/ajmok/streamstats/internal/history"
)

// Grain selects the calendar resolution of a listening trend.
type Grain int

const (
	GrainDay Grain = iota
	GrainMonth
	GrainYear
)

// TrendPoint is one calendar period of listening volume.
type TrendPoint struct {
	Period  time.Time `yaml:"-"`
	Label   string    `yaml:"period"`
	Plays   int       `yaml:"plays"`
	Minutes float64   `yaml:"minutes"`
}

// Trend is the listening-volume-over-time series for an event set, plus
// its headline statistics.
type Trend struct {
	Points []TrendPoint `yaml:"points"`

	// PeakPlays and PeakMinutes are the busiest periods by each measure.
	// On a tie the earliest period wins.
	PeakPlays   TrendPoint `yaml:"peak_plays"`
	PeakMinutes TrendPoint `yaml:"peak_minutes"`

	// Correlation is the Pearson correlation between per-period minutes
	// and play counts. Zero when either series is constant.
	Correlation float64 `yaml:"correlation"`
}

// TrendOver buckets events into calendar periods at the given grain.
// Periods between the first and last play with no activity are present
// with zero counts, so the series has no gaps. Events must be sorted
// ascending by time.
func TrendOver(events []history.Event, g Grain) (Trend, error) {
	if len(events) == 0 {
		return Trend{}, ErrNoData
	}

	plays := make(map[time.Time]int)
	msByPeriod := make(map[time.Time]int64)
	for _, e := range events {
		p := periodOf(e.Time, g)
		plays[p]++
		msByPeriod[p] += e.MsPlayed
	}

	var trend Trend
	first := periodOf(events[0].Time, g)
	last := periodOf(events[len(events)-1].Time, g)
	for p := first; !p.After(last); p = nextPeriod(p, g) {
		trend.Points = append(trend.Points, TrendPoint{
			Period:  p,
			Label:   periodLabel(p, g),
			Plays:   plays[p],
			Minutes: float64(msByPeriod[p]) / msPerMinute,
		})
	}

	playSeries := make([]float64, len(trend.Points))
	minuteSeries := make([]float64, len(trend.Points))
	for i, pt := range trend.Points {
		playSeries[i] = float64(pt.Plays)
		minuteSeries[i] = pt.Minutes
		if pt.Plays > trend.PeakPlays.Plays {
			trend.PeakPlays = pt
		}
		if pt.Minutes > trend.PeakMinutes.Minutes {
			trend.PeakMinutes = pt
		}
	}
	trend.Correlation = pearson(minuteSeries, playSeries)
	return trend, nil
}

func periodOf(t time.Time, g Grain) time.Time {
	switch g {
	case GrainYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	case GrainMonth:
		return monthOf(t)
	default:
		return dayOf(t)
	}
}

func nextPeriod(p time.Time, g Grain) time.Time {
	switch g {
	case GrainYear:
		return p.AddDate(1, 0, 0)
	case GrainMonth:
		return p.AddDate(0, 1, 0)
	default:
		return p.AddDate(0, 0, 1)
	}
}

func periodLabel(p time.Time, g Grain) string {
	switch g {
	case GrainYear:
		return p.Format("2006")
	case GrainMonth:
		return p.Format("January 2006")
	default:
		return p.Format("2006-01-02")
	}
}

// pearson computes the Pearson correlation coefficient of two equal-length
// series. A constant series has no defined correlation; return 0 rather
// than NaN so callers can print it unconditionally.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
