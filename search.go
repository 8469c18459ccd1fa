package scandex

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/scandex/internal/domain"
	"github.com/kailas-cloud/scandex/internal/domain/field"
	"github.com/kailas-cloud/scandex/internal/domain/record"
	"github.com/kailas-cloud/scandex/internal/domain/search/match"
	"github.com/kailas-cloud/scandex/internal/domain/search/request"
	"github.com/kailas-cloud/scandex/internal/domain/search/result"
	"github.com/kailas-cloud/scandex/internal/logger"
	"github.com/kailas-cloud/scandex/internal/metrics"
)

// Search ranks records against a query. records must be a slice or an
// array; elements can be maps, structs, or any JSON-like value. A
// blank query returns every record with score zero in collection
// order; otherwise only records with at least one matching field come
// back, best first.
func (e *Engine) Search(
	ctx context.Context, records any, query string, opts *SearchOptions,
) ([]Result, error) {
	coll, err := toCollection(records)
	if err != nil {
		e.metrics.ObserveSearch(metrics.StatusInvalid, 0, 0, 0)
		return nil, err
	}

	internal, err := e.searchValues(ctx, coll.values, query, opts)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(internal))
	for i := range internal {
		r := &internal[i]
		results[i] = Result{
			Record:  coll.recordAt(r.Index()),
			Index:   r.Index(),
			Score:   r.Score(),
			Matches: fromMatches(r.Matches()),
		}
	}
	return results, nil
}

// SearchRecords is Search returning just the ranked records.
func (e *Engine) SearchRecords(
	ctx context.Context, records any, query string, opts *SearchOptions,
) ([]any, error) {
	results, err := e.Search(ctx, records, query, opts)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(results))
	for i := range results {
		out[i] = results[i].Record
	}
	return out, nil
}

// Search ranks records with a default throwaway engine. Construct an
// Engine for repeated searches, caching, or observability.
func Search(records any, query string) ([]Result, error) {
	e, err := New()
	if err != nil {
		return nil, err
	}
	return e.Search(context.Background(), records, query, nil)
}

// searchValues runs the scan over pre-converted records. Both the
// reflective and the typed entry points funnel through here, so this
// is where observation happens.
func (e *Engine) searchValues(
	ctx context.Context, values []record.Value, query string, opts *SearchOptions,
) ([]result.Result, error) {
	start := time.Now()

	req, err := e.buildRequest(query, opts)
	if err != nil {
		e.observe(start, metrics.StatusInvalid, 0, 0)
		return nil, err
	}

	ctx = logger.ContextWithLogger(ctx, e.logger)
	results, err := e.svc.Search(ctx, values, req)
	if err != nil {
		e.observe(start, statusFor(err), len(values), 0)
		return nil, err
	}

	e.observe(start, metrics.StatusOK, len(values), len(results))
	return results, nil
}

func (e *Engine) buildRequest(query string, opts *SearchOptions) (*request.Request, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = e.concurrency
	}

	req, err := request.New(query, request.Options{
		Fields:         toPaths(opts.Fields),
		Weights:        toWeights(opts.FieldWeights),
		FuzzyThreshold: opts.FuzzyThreshold,
		MinFuzzyLength: opts.MinFuzzyLength,
		Limit:          opts.Limit,
		CaseSensitive:  opts.CaseSensitive,
		CollectionKey:  opts.CollectionKey,
		Concurrency:    concurrency,
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// observe records one search outcome and refreshes cache gauges.
func (e *Engine) observe(start time.Time, status string, scanned, returned int) {
	e.metrics.ObserveSearch(status, time.Since(start), scanned, returned)

	if e.cache != nil && e.metrics != nil {
		occ := e.cache.Occupancy()
		e.metrics.SetCacheEntries("lowercase", occ.Lower)
		e.metrics.SetCacheEntries("fields", occ.Fields)
		e.metrics.SetCacheEntries("stats", occ.Stats)
	}
}

func statusFor(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return metrics.StatusInvalid
	}
	return metrics.StatusError
}

func toPaths(fields []string) []field.Path {
	if len(fields) == 0 {
		return nil
	}
	out := make([]field.Path, len(fields))
	for i, f := range fields {
		out[i] = field.Path(f)
	}
	return out
}

func toWeights(weights map[string]float64) map[field.Path]float64 {
	if len(weights) == 0 {
		return nil
	}
	out := make(map[field.Path]float64, len(weights))
	for k, v := range weights {
		out[field.Path(k)] = v
	}
	return out
}

func fromMatches(in []match.Match) []Match {
	if len(in) == 0 {
		return nil
	}
	out := make([]Match, len(in))
	for i := range in {
		m := &in[i]
		out[i] = Match{
			Field:    string(m.Field()),
			Value:    m.Value(),
			Kind:     MatchKind(m.Kind()),
			Score:    m.Score(),
			Position: m.Position(),
		}
	}
	return out
}
