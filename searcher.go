package scandex

import "context"

// Searcher binds an Engine to a base set of options so call sites
// don't repeat them.
type Searcher struct {
	engine *Engine
	base   SearchOptions
}

// Searcher creates a bound searcher. The base options apply to every
// search made through it.
func (e *Engine) Searcher(base SearchOptions) *Searcher {
	return &Searcher{engine: e, base: base}
}

// Search ranks records with per-call options laid over the base.
func (s *Searcher) Search(
	ctx context.Context, records any, query string, opts *SearchOptions,
) ([]Result, error) {
	merged := mergeOptions(s.base, opts)
	return s.engine.Search(ctx, records, query, &merged)
}

// SearchRecords is Search returning just the ranked records.
func (s *Searcher) SearchRecords(
	ctx context.Context, records any, query string, opts *SearchOptions,
) ([]any, error) {
	results, err := s.Search(ctx, records, query, opts)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(results))
	for i := range results {
		out[i] = results[i].Record
	}
	return out, nil
}

// mergeOptions lays an overlay over base options. Zero-valued overlay
// fields keep the base value; a zero base stays zero, so engine-level
// defaults still apply downstream.
func mergeOptions(base SearchOptions, overlay *SearchOptions) SearchOptions {
	if overlay == nil {
		return base
	}

	merged := base
	if len(overlay.Fields) > 0 {
		merged.Fields = overlay.Fields
	}
	if len(overlay.FieldWeights) > 0 {
		merged.FieldWeights = overlay.FieldWeights
	}
	if overlay.FuzzyThreshold != 0 {
		merged.FuzzyThreshold = overlay.FuzzyThreshold
	}
	if overlay.MinFuzzyLength != 0 {
		merged.MinFuzzyLength = overlay.MinFuzzyLength
	}
	if overlay.Limit != 0 {
		merged.Limit = overlay.Limit
	}
	if overlay.CaseSensitive {
		merged.CaseSensitive = true
	}
	if overlay.CollectionKey != "" {
		merged.CollectionKey = overlay.CollectionKey
	}
	if overlay.Concurrency != 0 {
		merged.Concurrency = overlay.Concurrency
	}
	return merged
}
