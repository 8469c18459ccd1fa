package scandex

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/scandex/internal/domain"
	"github.com/kailas-cloud/scandex/internal/metrics"
	"github.com/kailas-cloud/scandex/internal/repository/memo"
	searchuc "github.com/kailas-cloud/scandex/internal/usecase/search"
)

// Engine ranks in-memory collections against text queries. It holds no
// references to scanned data and is safe for concurrent use.
type Engine struct {
	svc         *searchuc.Service
	cache       *memo.Cache // nil when memoization is off
	logger      *zap.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.concurrency < 0 {
		return nil, domain.NewInvalidInput("concurrency must not be negative, got %d", cfg.concurrency)
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	var m *metrics.Metrics
	if cfg.registerer != nil {
		m = metrics.New(cfg.registerer)
	}

	var (
		cache *memo.Cache
		mm    searchuc.Memo = memo.Disabled{}
	)
	if cfg.cacheEnabled {
		cache = memo.New(memo.Config{LowerCapacity: cfg.cacheCapacity}, m.CacheTotal(), log)
		mm = cache
	}

	return &Engine{
		svc:         searchuc.New(mm),
		cache:       cache,
		logger:      log,
		metrics:     m,
		concurrency: cfg.concurrency,
	}, nil
}

// CacheStats returns current memo occupancy. All zeroes when the
// engine runs without a cache.
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	occ := e.cache.Occupancy()
	return CacheStats{
		LowercaseEntries: occ.Lower,
		FieldSetEntries:  occ.Fields,
		StatsEntries:     occ.Stats,
	}
}

// ClearCaches drops every memoized entry.
func (e *Engine) ClearCaches() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// InvalidateCollection drops memoized field lists and statistics for
// one collection key. Call it after the keyed collection changes.
func (e *Engine) InvalidateCollection(key string) {
	if e.cache != nil {
		e.cache.Invalidate(key)
	}
}
