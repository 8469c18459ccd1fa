package request

import (
	"strings"

	"github.com/kailas-cloud/scandex/internal/domain"
	"github.com/kailas-cloud/scandex/internal/domain/field"
)

// Search parameter defaults.
const (
	DefaultFuzzyThreshold = 0.7
	DefaultMinFuzzyLength = 3
	DefaultLimit          = 100
	// NoLimit disables result truncation.
	NoLimit = -1
)

// Options carries the tunable knobs for one search call. The zero
// value selects all defaults.
type Options struct {
	// Fields restricts matching to these paths; empty means auto-detect
	// from the first record.
	Fields []field.Path
	// Weights overrides inferred field weights. Values must be positive.
	Weights map[field.Path]float64
	// FuzzyThreshold is the minimum similarity for fuzzy matches, in
	// [0,1]. Zero selects the default.
	FuzzyThreshold float64
	// MinFuzzyLength is the minimum query length before fuzzy matching
	// is attempted. Zero selects the default.
	MinFuzzyLength int
	// Limit caps returned results. Zero selects the default, negative
	// disables truncation.
	Limit int
	// CaseSensitive compares strings without case folding.
	CaseSensitive bool
	// CollectionKey identifies the collection for cross-call
	// memoization. Empty disables memoization for the call.
	CollectionKey string
	// Concurrency is the requested number of scan workers.
	Concurrency int
}

// Request is a validated search invocation.
type Request struct {
	query          string
	fields         []field.Path
	weights        map[field.Path]float64
	fuzzyThreshold float64
	minFuzzyLength int
	limit          int
	caseSensitive  bool
	collectionKey  string
	concurrency    int
}

// New validates and normalizes search parameters. An empty query is
// valid and selects pass-through mode.
func New(query string, o Options) (Request, error) {
	threshold := o.FuzzyThreshold
	if threshold == 0 {
		threshold = DefaultFuzzyThreshold
	}
	if threshold < 0 || threshold > 1 {
		return Request{}, domain.NewInvalidInput(
			"fuzzy threshold must be between 0 and 1, got %v", o.FuzzyThreshold,
		)
	}

	minLen := o.MinFuzzyLength
	if minLen == 0 {
		minLen = DefaultMinFuzzyLength
	}
	if minLen < 1 {
		return Request{}, domain.NewInvalidInput(
			"min fuzzy length must be at least 1, got %d", o.MinFuzzyLength,
		)
	}

	limit := o.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		limit = NoLimit
	}

	for _, p := range o.Fields {
		if p == "" {
			return Request{}, domain.NewInvalidInput("field paths must not be empty")
		}
	}
	for p, w := range o.Weights {
		if w <= 0 {
			return Request{}, domain.NewInvalidInput(
				"weight for field %q must be positive, got %v", p, w,
			)
		}
	}

	if o.Concurrency < 0 {
		return Request{}, domain.NewInvalidInput(
			"concurrency must not be negative, got %d", o.Concurrency,
		)
	}

	return Request{
		query:          query,
		fields:         o.Fields,
		weights:        o.Weights,
		fuzzyThreshold: threshold,
		minFuzzyLength: minLen,
		limit:          limit,
		caseSensitive:  o.CaseSensitive,
		collectionKey:  o.CollectionKey,
		concurrency:    o.Concurrency,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// IsPassThrough reports whether the query is empty or whitespace-only,
// which returns every record unscored.
func (r *Request) IsPassThrough() bool { return strings.TrimSpace(r.query) == "" }

// Fields returns the explicit field paths, nil when auto-detection
// applies.
func (r *Request) Fields() []field.Path { return r.fields }

// Weights returns the explicit field weight overrides.
func (r *Request) Weights() map[field.Path]float64 { return r.weights }

// FuzzyThreshold returns the minimum fuzzy similarity.
func (r *Request) FuzzyThreshold() float64 { return r.fuzzyThreshold }

// MinFuzzyLength returns the minimum query length for fuzzy matching.
func (r *Request) MinFuzzyLength() int { return r.minFuzzyLength }

// Limit returns the result cap, or NoLimit.
func (r *Request) Limit() int { return r.limit }

// CaseSensitive reports whether matching skips case folding.
func (r *Request) CaseSensitive() bool { return r.caseSensitive }

// CollectionKey returns the cache identity of the collection, "" when
// memoization is off for this call.
func (r *Request) CollectionKey() string { return r.collectionKey }

// Concurrency returns the requested number of scan workers.
func (r *Request) Concurrency() int { return r.concurrency }
