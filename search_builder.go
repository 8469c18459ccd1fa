package scandex

import (
	"context"
)

// SearchBuilder accumulates query parameters for a TypedSearcher via
// chained calls and executes with Do.
type SearchBuilder[T any] struct {
	searcher *TypedSearcher[T]
	query    string
	opts     SearchOptions
}

// Query sets the search text.
func (b *SearchBuilder[T]) Query(q string) *SearchBuilder[T] {
	b.query = q
	return b
}

// Fields restricts scanning to the given dotted paths instead of
// auto-detection.
func (b *SearchBuilder[T]) Fields(fields ...string) *SearchBuilder[T] {
	b.opts.Fields = fields
	return b
}

// Weight pins an explicit weight for one field, overriding estimation.
func (b *SearchBuilder[T]) Weight(field string, weight float64) *SearchBuilder[T] {
	if b.opts.FieldWeights == nil {
		b.opts.FieldWeights = make(map[string]float64)
	}
	b.opts.FieldWeights[field] = weight
	return b
}

// FuzzyThreshold sets the minimum similarity for fuzzy matches.
func (b *SearchBuilder[T]) FuzzyThreshold(t float64) *SearchBuilder[T] {
	b.opts.FuzzyThreshold = t
	return b
}

// MinFuzzyLength sets the minimum query length for the fuzzy tier.
func (b *SearchBuilder[T]) MinFuzzyLength(n int) *SearchBuilder[T] {
	b.opts.MinFuzzyLength = n
	return b
}

// CaseSensitive disables the default case folding.
func (b *SearchBuilder[T]) CaseSensitive() *SearchBuilder[T] {
	b.opts.CaseSensitive = true
	return b
}

// Limit caps the number of hits. Pass NoLimit for all of them.
func (b *SearchBuilder[T]) Limit(n int) *SearchBuilder[T] {
	b.opts.Limit = n
	return b
}

// Concurrency sets the number of scan workers for this query.
func (b *SearchBuilder[T]) Concurrency(n int) *SearchBuilder[T] {
	b.opts.Concurrency = n
	return b
}

// Do runs the search and returns ranked hits carrying the original
// items.
func (b *SearchBuilder[T]) Do(ctx context.Context) ([]Hit[T], error) {
	ts := b.searcher
	results, err := ts.engine.searchValues(ctx, ts.values, b.query, &b.opts)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit[T], len(results))
	for i, r := range results {
		hits[i] = Hit[T]{
			Item:    ts.items[r.Index()],
			Index:   r.Index(),
			Score:   r.Score(),
			Matches: fromMatches(r.Matches()),
		}
	}
	return hits, nil
}
