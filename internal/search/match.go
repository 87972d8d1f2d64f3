// Package search matches typed queries against movie titles: a folded
// substring test first, then fuzzy scoring for "did you mean" suggestions.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/filmshelf/filmshelf/internal/normalize"
)

const (
	// DefaultLimit is how many fuzzy candidates are considered.
	DefaultLimit = 5
	// DefaultThreshold is the score a candidate must exceed to be suggested.
	DefaultThreshold = 70
)

// Match is a scored candidate. Index is the candidate's position in the
// input slice.
type Match struct {
	Choice string
	Score  int
	Index  int
}

// Contains reports whether title contains query, ignoring case.
// An empty query matches every title.
func Contains(title, query string) bool {
	return strings.Contains(normalize.Fold(title), normalize.Fold(query))
}

// Extract scores every choice against query and returns the best limit
// matches, highest score first. Equal scores keep input order.
// A limit <= 0 returns all matches.
func Extract(query string, choices []string, limit int) []Match {
	matches := make([]Match, 0, len(choices))
	for i, c := range choices {
		matches = append(matches, Match{Choice: c, Score: Score(query, c), Index: i})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Suggest returns up to DefaultLimit choices scoring above DefaultThreshold.
func Suggest(query string, choices []string) []Match {
	top := Extract(query, choices, DefaultLimit)
	out := top[:0]
	for _, m := range top {
		if m.Score > DefaultThreshold {
			out = append(out, m)
		}
	}
	return out
}
