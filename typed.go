package scandex

import (
	"fmt"
	"sync/atomic"

	"github.com/kailas-cloud/scandex/internal/domain"
	"github.com/kailas-cloud/scandex/internal/domain/record"
)

// typedSearcherID keeps collection keys distinct across searchers.
var typedSearcherID atomic.Uint64

// TypedSearcher binds an Engine to a typed collection, converting the
// items once so repeated searches skip per-call reflection. With a
// caching engine, field detection and statistics memoize under a key
// the searcher manages itself.
//
// The searcher is safe for concurrent searches; Refresh must not race
// with them.
type TypedSearcher[T any] struct {
	engine     *Engine
	items      []T
	values     []record.Value
	key        string
	id         uint64
	generation int
}

// NewTypedSearcher converts items once and returns a searcher bound to
// them.
func NewTypedSearcher[T any](engine *Engine, items []T) (*TypedSearcher[T], error) {
	if engine == nil {
		return nil, domain.NewInvalidInput("engine must not be nil")
	}
	ts := &TypedSearcher[T]{
		engine: engine,
		id:     typedSearcherID.Add(1),
	}
	ts.bind(items)
	return ts, nil
}

// bind converts items and rotates the collection key so stale memoized
// state can never serve the new binding.
func (ts *TypedSearcher[T]) bind(items []T) {
	ts.items = items
	ts.values = make([]record.Value, len(items))
	for i := range items {
		ts.values[i] = record.FromAny(items[i])
	}
	ts.generation++
	ts.key = fmt.Sprintf("typed:%d:%d", ts.id, ts.generation)
}

// Refresh rebinds the searcher to items, dropping memoized state for
// the previous binding.
func (ts *TypedSearcher[T]) Refresh(items []T) {
	ts.engine.InvalidateCollection(ts.key)
	ts.bind(items)
}

// Len returns the number of bound items.
func (ts *TypedSearcher[T]) Len() int { return len(ts.items) }

// Search starts a fluent query over the bound items.
func (ts *TypedSearcher[T]) Search() *SearchBuilder[T] {
	return &SearchBuilder[T]{
		searcher: ts,
		opts:     SearchOptions{CollectionKey: ts.key},
	}
}
