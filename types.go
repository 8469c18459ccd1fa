package scandex

import (
	"github.com/kailas-cloud/scandex/internal/domain/search/match"
	"github.com/kailas-cloud/scandex/internal/domain/search/request"
)

// MatchKind identifies how a field matched the query.
type MatchKind string

// Match kinds, strongest first. A field reports only its best kind.
const (
	MatchPrefix    = MatchKind(match.Prefix)
	MatchSubstring = MatchKind(match.Substring)
	MatchFuzzy     = MatchKind(match.Fuzzy)
)

// NoPosition marks a match without a meaningful offset (fuzzy matches).
const NoPosition = match.NoPosition

// NoLimit disables the result cap.
const NoLimit = request.NoLimit

// Defaults applied when the corresponding SearchOptions field is zero.
const (
	DefaultFuzzyThreshold = request.DefaultFuzzyThreshold
	DefaultMinFuzzyLength = request.DefaultMinFuzzyLength
	DefaultLimit          = request.DefaultLimit
)

// SearchOptions configures a search. The zero value scans every
// detected field with estimated weights and default fuzzy settings.
type SearchOptions struct {
	// Fields restricts the scan to these dotted paths. Empty means
	// auto-detect from the first record.
	Fields []string

	// FieldWeights sets explicit per-field weights. Unlisted fields
	// keep their estimated weight.
	FieldWeights map[string]float64

	// FuzzyThreshold is the minimum similarity in [0, 1] for a fuzzy
	// match. Zero means DefaultFuzzyThreshold.
	FuzzyThreshold float64

	// MinFuzzyLength is the minimum query length in runes before fuzzy
	// matching applies. Zero means DefaultMinFuzzyLength.
	MinFuzzyLength int

	// Limit caps ranked results. Zero means DefaultLimit; NoLimit
	// disables the cap. Pass-through searches ignore it.
	Limit int

	// CaseSensitive compares raw strings without case folding.
	CaseSensitive bool

	// CollectionKey names the collection for memoized field detection
	// and statistics. Empty skips memoization for this search. Callers
	// own the key: reuse it only while the collection is unchanged.
	CollectionKey string

	// Concurrency sets the worker count for scanning large
	// collections. Zero and one scan sequentially.
	Concurrency int
}

// Match describes one matched field of a result.
type Match struct {
	// Field is the dotted path of the matched field.
	Field string
	// Value is the field's original text, not case-folded.
	Value string
	// Kind is the match tier that fired.
	Kind MatchKind
	// Score is this field's contribution to the result score.
	Score float64
	// Position is the match offset in runes, NoPosition for fuzzy.
	Position int
}

// Result is one ranked record.
type Result struct {
	// Record is the original collection element.
	Record any
	// Index is the record's position in the scanned collection.
	Index int
	// Score sums the per-field match scores.
	Score float64
	// Matches lists the fields behind the score, nil on pass-through.
	Matches []Match
}

// Hit is a typed search result.
type Hit[T any] struct {
	Item    T
	Index   int
	Score   float64
	Matches []Match
}

// CacheStats reports memo cache occupancy.
type CacheStats struct {
	LowercaseEntries int
	FieldSetEntries  int
	StatsEntries     int
}
