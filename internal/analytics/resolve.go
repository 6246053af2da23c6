package analytics

import (
	"sort"
	"strings"

	"github.com/ajmok/streamstats/internal/history"
)

// EntityKind selects which name field a Resolve query searches.
type EntityKind int

const (
	KindTrack EntityKind = iota
	KindArtist
	KindAlbum
)

// Query is a name search over the event log.
type Query struct {
	Text string
	// Exact switches from case-insensitive substring containment to
	// case-sensitive equality.
	Exact bool
	// Artist and Album narrow the match set with the same exact/substring
	// rule applied to the co-occurring fields. Empty means no constraint.
	Artist string
	Album  string
}

// ResolveState tags the outcome of a Resolve call.
type ResolveState int

const (
	NotFound ResolveState = iota
	Ambiguous
	Resolved
)

// Candidate is one distinct identity behind an ambiguous match, shown so
// the caller can prompt for refinement.
type Candidate struct {
	Track  string
	Artist string
	Album  string
	Plays  int
}

// Resolution is the result of a name search: the matching event subset when
// the query resolved, or the ranked candidate list when it did not.
type Resolution struct {
	State ResolveState
	// Distinct is the number of underlying identities in the match set.
	Distinct int
	// Events is the matching subset, time-sorted. Set only when Resolved.
	Events []history.Event
	// Candidates is ranked by play count descending. Set only when Ambiguous.
	Candidates []Candidate
}

// Resolve filters the log by a name query and decides whether the result
// identifies one entity. Up to two distinct identities still count as
// resolved: near-duplicate names for the same logical entity are common in
// export data, and forcing disambiguation on every near-match would be
// worse than occasionally pooling two variants. More than two distinct
// identities is ambiguous.
func Resolve(events []history.Event, kind EntityKind, q Query) Resolution {
	var matched []history.Event
	for _, e := range events {
		if !matches(nameOf(e, kind), q.Text, q.Exact) {
			continue
		}
		if q.Artist != "" && !matches(e.Artist, q.Artist, q.Exact) {
			continue
		}
		if q.Album != "" && !matches(e.Album, q.Album, q.Exact) {
			continue
		}
		matched = append(matched, e)
	}

	if len(matched) == 0 {
		return Resolution{State: NotFound}
	}

	distinct := distinctIdentities(matched, kind)
	if len(distinct) > 2 {
		return Resolution{
			State:      Ambiguous,
			Distinct:   len(distinct),
			Candidates: rankCandidates(distinct),
		}
	}
	return Resolution{
		State:    Resolved,
		Distinct: len(distinct),
		Events:   matched,
	}
}

func matches(value, query string, exact bool) bool {
	if exact {
		return value == query
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

func nameOf(e history.Event, kind EntityKind) string {
	switch kind {
	case KindArtist:
		return e.Artist
	case KindAlbum:
		return e.Album
	default:
		return e.Track
	}
}

// distinctIdentities counts the entities in a match set: (track, artist)
// pairs for track search, artist names for artist search, album names for
// album search.
func distinctIdentities(events []history.Event, kind EntityKind) map[string]*Candidate {
	identities := make(map[string]*Candidate)
	for _, e := range events {
		var key string
		switch kind {
		case KindArtist:
			key = e.Artist
		case KindAlbum:
			key = e.Album
		default:
			key = e.Track + "\x00" + e.Artist
		}
		c, ok := identities[key]
		if !ok {
			c = &Candidate{Track: e.Track, Artist: e.Artist, Album: e.Album}
			identities[key] = c
		}
		c.Plays++
	}
	return identities
}

func rankCandidates(identities map[string]*Candidate) []Candidate {
	candidates := make([]Candidate, 0, len(identities))
	for _, c := range identities {
		candidates = append(candidates, *c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Plays != candidates[j].Plays {
			return candidates[i].Plays > candidates[j].Plays
		}
		// Equal play counts fall back to name order so output is stable
		// across runs regardless of map iteration.
		if candidates[i].Artist != candidates[j].Artist {
			return candidates[i].Artist < candidates[j].Artist
		}
		if candidates[i].Track != candidates[j].Track {
			return candidates[i].Track < candidates[j].Track
		}
		return candidates[i].Album < candidates[j].Album
	})
	return candidates
}
