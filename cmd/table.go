package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ajmok/streamstats/internal/analytics"
)

// Analysis is a rendered result set: a header row, data rows, and a
// one-line summary printed underneath the table.
type Analysis struct {
	results [][]string
	summary string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	return out.String()
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64)
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// summaryTable renders ranked aggregate rows. The columns vary by grouping
// level, matching what each Summary carries.
func summaryTable(rows []analytics.Summary, by analytics.GroupKey, summary string) Analysis {
	a := Analysis{summary: summary}
	switch by {
	case analytics.GroupByTrack:
		a.results = [][]string{{"Track", "Artist", "Album", "Plays", "No Skips", "Minutes", "Mean Mins", "Skip %"}}
		for _, s := range rows {
			a.results = append(a.results, []string{
				s.Track, s.Artist, s.Album,
				strconv.Itoa(s.TotalPlays), strconv.Itoa(s.PlaysNoSkips),
				formatMinutes(s.TotalMinutes), formatMinutes(s.MeanListenMinutes),
				formatPercent(s.SkipPercentage),
			})
		}
	case analytics.GroupByArtist:
		a.results = [][]string{{"Artist", "Tracks", "Albums", "Plays", "No Skips", "Minutes", "Skip %"}}
		for _, s := range rows {
			a.results = append(a.results, []string{
				s.Artist, strconv.Itoa(s.UniqueTracks), strconv.Itoa(s.UniqueAlbums),
				strconv.Itoa(s.TotalPlays), strconv.Itoa(s.PlaysNoSkips),
				formatMinutes(s.TotalMinutes), formatPercent(s.SkipPercentage),
			})
		}
	case analytics.GroupByAlbum:
		a.results = [][]string{{"Album", "Artist", "Tracks", "Plays", "No Skips", "Minutes", "Skip %"}}
		for _, s := range rows {
			a.results = append(a.results, []string{
				s.Album, s.Artist, strconv.Itoa(s.UniqueTracks),
				strconv.Itoa(s.TotalPlays), strconv.Itoa(s.PlaysNoSkips),
				formatMinutes(s.TotalMinutes), formatPercent(s.SkipPercentage),
			})
		}
	}
	return a
}

// candidateTable renders the disambiguation list for an ambiguous search.
func candidateTable(candidates []analytics.Candidate, kind analytics.EntityKind) Analysis {
	var a Analysis
	switch kind {
	case analytics.KindTrack:
		a.results = [][]string{{"Track", "Artist", "Album", "Listens"}}
		for _, c := range candidates {
			a.results = append(a.results, []string{c.Track, c.Artist, c.Album, strconv.Itoa(c.Plays)})
		}
	case analytics.KindArtist:
		a.results = [][]string{{"Artist", "Listens"}}
		for _, c := range candidates {
			a.results = append(a.results, []string{c.Artist, strconv.Itoa(c.Plays)})
		}
	case analytics.KindAlbum:
		a.results = [][]string{{"Album", "Listens"}}
		for _, c := range candidates {
			a.results = append(a.results, []string{c.Album, strconv.Itoa(c.Plays)})
		}
	}
	return a
}

// breakdownTable renders a profile's per-track rows. Album-scoped profiles
// have no album column.
func breakdownTable(rows []analytics.TrackBreakdown, albumScope bool, summary string) Analysis {
	a := Analysis{summary: summary}
	if albumScope {
		a.results = [][]string{{"Song", "Listens", "Full Listens", "Total Minutes"}}
	} else {
		a.results = [][]string{{"Song", "Album", "Listens", "Full Listens", "Total Minutes"}}
	}
	for _, r := range rows {
		row := []string{r.Track}
		if !albumScope {
			row = append(row, r.Album)
		}
		row = append(row, strconv.Itoa(r.Plays), strconv.Itoa(r.FullPlays), formatMinutes(r.TotalMinutes))
		a.results = append(a.results, row)
	}
	return a
}

func bucketTable(title string, buckets []analytics.Bucket) Analysis {
	a := Analysis{results: [][]string{{title, "Listens"}}}
	for _, b := range buckets {
		a.results = append(a.results, []string{b.Label, strconv.Itoa(b.Count)})
	}
	return a
}
