package scandex

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	cacheEnabled  bool
	cacheCapacity int
	logger        *zap.Logger
	registerer    prometheus.Registerer
	concurrency   int
}

// WithCache enables memoization of case folding, detected field lists,
// and field statistics. Off by default.
func WithCache() Option {
	return func(c *engineConfig) { c.cacheEnabled = true }
}

// WithCacheCapacity enables memoization and caps the case-fold memo at
// n entries.
func WithCacheCapacity(n int) Option {
	return func(c *engineConfig) {
		c.cacheEnabled = true
		c.cacheCapacity = n
	}
}

// WithLogger sets the engine logger. Searches log at debug level; the
// default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) { c.logger = l }
}

// WithPrometheus registers the engine's metrics on reg.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(c *engineConfig) { c.registerer = reg }
}

// WithConcurrency sets the default worker count for scanning large
// collections. Per-search options override it.
func WithConcurrency(n int) Option {
	return func(c *engineConfig) { c.concurrency = n }
}
