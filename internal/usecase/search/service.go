package search

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/scandex/internal/domain/field"
	"github.com/kailas-cloud/scandex/internal/domain/record"
	"github.com/kailas-cloud/scandex/internal/domain/search/match"
	"github.com/kailas-cloud/scandex/internal/domain/search/request"
	"github.com/kailas-cloud/scandex/internal/domain/search/result"
	"github.com/kailas-cloud/scandex/internal/logger"
)

// parallelThreshold is the collection size below which a scan stays
// sequential regardless of requested concurrency. Splitting small
// collections costs more than it saves.
const parallelThreshold = 2048

// checkEvery is how often a parallel worker polls for cancellation.
const checkEvery = 4096

// Service ranks records against a query by scanning them in place.
// No index is built; every search reads the full collection.
type Service struct {
	memo Memo
}

// New creates a search service.
func New(memo Memo) *Service {
	return &Service{memo: memo}
}

// Search scans records and returns ranked results. A blank query is a
// pass-through: every record comes back with score zero in collection
// order, exempt from the limit. Otherwise a record appears in the
// results only when at least one field matches.
func (s *Service) Search(
	ctx context.Context, records []record.Value, req *request.Request,
) ([]result.Result, error) {
	log := logger.FromContext(ctx)

	if req.IsPassThrough() {
		results := make([]result.Result, len(records))
		for i := range records {
			results[i] = result.New(i, 0, nil)
		}
		log.Debug("Pass-through scan", zap.Int("records", len(records)))
		return results, nil
	}

	if len(records) == 0 {
		return nil, nil
	}

	paths := s.resolveFields(records, req)
	if len(paths) == 0 {
		log.Debug("No searchable fields resolved", zap.Int("records", len(records)))
		return nil, nil
	}

	weights := s.resolveWeights(records, paths, req)

	opts := match.Options{
		FuzzyThreshold: req.FuzzyThreshold(),
		MinFuzzyLength: req.MinFuzzyLength(),
		CaseSensitive:  req.CaseSensitive(),
		Fold:           s.memo.Lower,
	}

	var (
		results []result.Result
		err     error
	)
	if workers := scanWorkers(req.Concurrency(), len(records)); workers > 1 {
		results, err = s.scanParallel(ctx, records, req.Query(), paths, weights, opts, workers)
		if err != nil {
			return nil, err
		}
	} else {
		for i, rec := range records {
			if r, ok := scoreRecord(i, rec, req.Query(), paths, weights, opts); ok {
				results = append(results, r)
			}
		}
	}

	sortResults(results)

	if limit := req.Limit(); limit != request.NoLimit && len(results) > limit {
		results = results[:limit]
	}

	log.Debug("Scan complete",
		zap.Int("records", len(records)),
		zap.Int("fields", len(paths)),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// resolveFields returns the explicit field list or detects one from
// the first record, memoized under the collection key when present.
func (s *Service) resolveFields(records []record.Value, req *request.Request) []field.Path {
	if fields := req.Fields(); len(fields) > 0 {
		return fields
	}

	detect := func() []field.Path {
		return field.Detect(records[0], field.DefaultMaxDepth)
	}
	if key := req.CollectionKey(); key != "" {
		return s.memo.Fields(key, detect)
	}
	return detect()
}

// resolveWeights maps every scanned path to a weight. Explicit weights
// win; the rest come from sampled field statistics. Estimation is
// skipped entirely when the caller weighted every path.
func (s *Service) resolveWeights(
	records []record.Value, paths []field.Path, req *request.Request,
) map[field.Path]float64 {
	explicit := req.Weights()

	needEstimate := false
	for _, p := range paths {
		if _, ok := explicit[p]; !ok {
			needEstimate = true
			break
		}
	}

	weights := make(map[field.Path]float64, len(paths))
	if needEstimate {
		build := func() []field.Stats {
			return field.EstimateAll(records, paths)
		}
		var stats []field.Stats
		if key := req.CollectionKey(); key != "" {
			stats = s.memo.Stats(statsKey(key, paths), build)
		} else {
			stats = build()
		}
		for i := range stats {
			weights[stats[i].Path()] = stats[i].Weight()
		}
	}
	for p, w := range explicit {
		weights[p] = w
	}
	return weights
}

// scoreRecord classifies the query against every scanned field of one
// record. Null records never match.
func scoreRecord(
	index int, rec record.Value, query string,
	paths []field.Path, weights map[field.Path]float64, opts match.Options,
) (result.Result, bool) {
	if rec.IsNull() {
		return result.Result{}, false
	}

	var (
		matches []match.Match
		total   float64
	)
	for _, p := range paths {
		text := field.Extract(rec, p)
		if text == "" {
			continue
		}
		weight, ok := weights[p]
		if !ok {
			weight = 1
		}
		if m, ok := match.Classify(p, text, query, weight, opts); ok {
			matches = append(matches, m)
			total += m.Score()
		}
	}
	if len(matches) == 0 {
		return result.Result{}, false
	}
	return result.New(index, total, matches), true
}

// scanWorkers decides the worker count for a scan.
func scanWorkers(requested, records int) int {
	if requested <= 1 || records < parallelThreshold {
		return 1
	}
	if requested > records {
		return records
	}
	return requested
}

// scanParallel splits the collection into contiguous chunks, one per
// worker, and scores them concurrently. Each record keeps its slot so
// the merged output is identical to a sequential scan.
func (s *Service) scanParallel(
	ctx context.Context, records []record.Value, query string,
	paths []field.Path, weights map[field.Path]float64, opts match.Options,
	workers int,
) ([]result.Result, error) {
	slots := make([]result.Result, len(records))
	hits := make([]bool, len(records))

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(records) + workers - 1) / workers
	for start := 0; start < len(records); start += chunk {
		start := start
		end := min(start+chunk, len(records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%checkEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if r, ok := scoreRecord(i, records[i], query, paths, weights, opts); ok {
					slots[i] = r
					hits[i] = true
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []result.Result
	for i := range slots {
		if hits[i] {
			results = append(results, slots[i])
		}
	}
	return results, nil
}

// statsKey names the statistics memo entry for a collection and field
// set. Different field lists for the same collection memoize apart.
func statsKey(key string, paths []field.Path) string {
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = string(p)
	}
	return key + "|" + strings.Join(parts, ",")
}
