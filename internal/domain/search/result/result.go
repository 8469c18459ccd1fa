package result

import "github.com/kailas-cloud/scandex/internal/domain/search/match"

// Result is a single search hit. It carries the index of the matched
// record in the scanned collection rather than the record itself.
type Result struct {
	index      int
	score      float64
	matches    []match.Match
	matchedLen int
}

// New creates a search result. The total matched length is computed
// once here so ranking ties resolve without rescanning match values.
func New(index int, score float64, matches []match.Match) Result {
	matchedLen := 0
	for i := range matches {
		matchedLen += matches[i].Length()
	}
	return Result{
		index:      index,
		score:      score,
		matches:    matches,
		matchedLen: matchedLen,
	}
}

// Index returns the record's position in the scanned collection.
func (r *Result) Index() int { return r.index }

// Score returns the summed relevance score.
func (r *Result) Score() float64 { return r.score }

// Matches returns the per-field matches behind the score.
func (r *Result) Matches() []match.Match { return r.matches }

// MatchedLength returns the total rune length of all matched field
// values. Shorter totals rank higher between equal scores.
func (r *Result) MatchedLength() int { return r.matchedLen }
