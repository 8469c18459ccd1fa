package scandex

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTypedBooks(t *testing.T, e *Engine) *TypedSearcher[book] {
	t.Helper()
	ts, err := NewTypedSearcher(e, testBooks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ts
}

func TestNewTypedSearcher_NilEngine(t *testing.T) {
	_, err := NewTypedSearcher[book](nil, testBooks())
	if err == nil {
		t.Fatal("expected error for nil engine")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTypedSearcher_Search(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))

	hits, err := ts.Search().Query("go").Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Index != 2 || hits[1].Index != 0 {
		t.Errorf("indices = [%d %d], want [2 0]", hits[0].Index, hits[1].Index)
	}
	if hits[0].Item.Title != "Go in Action" {
		t.Errorf("title = %q, want Go in Action", hits[0].Item.Title)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("scores not descending: %v then %v", hits[0].Score, hits[1].Score)
	}
}

func TestTypedSearcher_FuzzyHit(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))

	hits, err := ts.Search().Query("pyton").Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Item.Title != "Learning Python" {
		t.Errorf("title = %q, want Learning Python", hits[0].Item.Title)
	}
	m := hits[0].Matches[0]
	if m.Kind != MatchFuzzy {
		t.Errorf("kind = %q, want %q", m.Kind, MatchFuzzy)
	}
	if m.Position != NoPosition {
		t.Errorf("position = %d, want %d", m.Position, NoPosition)
	}
}

func TestTypedSearcher_BuilderChain(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))

	b := ts.Search().
		Query("go").
		Fields("title", "author").
		Weight("title", 2.5).
		FuzzyThreshold(0.6).
		MinFuzzyLength(4).
		Limit(7).
		Concurrency(2)

	if b.query != "go" {
		t.Errorf("query = %q, want go", b.query)
	}
	if len(b.opts.Fields) != 2 {
		t.Errorf("fields = %v, want 2 entries", b.opts.Fields)
	}
	if b.opts.FieldWeights["title"] != 2.5 {
		t.Errorf("title weight = %v, want 2.5", b.opts.FieldWeights["title"])
	}
	if b.opts.FuzzyThreshold != 0.6 {
		t.Errorf("threshold = %v, want 0.6", b.opts.FuzzyThreshold)
	}
	if b.opts.MinFuzzyLength != 4 {
		t.Errorf("min fuzzy length = %d, want 4", b.opts.MinFuzzyLength)
	}
	if b.opts.Limit != 7 {
		t.Errorf("limit = %d, want 7", b.opts.Limit)
	}
	if b.opts.Concurrency != 2 {
		t.Errorf("concurrency = %d, want 2", b.opts.Concurrency)
	}
	if !strings.HasPrefix(b.opts.CollectionKey, "typed:") {
		t.Errorf("collection key = %q, want typed:* prefix", b.opts.CollectionKey)
	}
}

func TestTypedSearcher_BuilderFields(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))

	hits, err := ts.Search().Query("kennedy").Fields("author").Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != 2 {
		t.Fatalf("expected the single author hit, got %d hits", len(hits))
	}
}

func TestTypedSearcher_CaseSensitive(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))

	hits, err := ts.Search().Query("go").CaseSensitive().Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no case-sensitive hits for lowercase query, got %d", len(hits))
	}

	hits, err = ts.Search().Query("Go").CaseSensitive().Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 hits for exact-case query, got %d", len(hits))
	}
}

func TestTypedSearcher_Limit(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))

	hits, err := ts.Search().Query("go").Limit(1).Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Index != 2 {
		t.Errorf("index = %d, want 2", hits[0].Index)
	}
}

func TestTypedSearcher_Len(t *testing.T) {
	ts := newTypedBooks(t, newTestEngine(t))
	if ts.Len() != 3 {
		t.Errorf("len = %d, want 3", ts.Len())
	}
}

func TestTypedSearcher_Refresh(t *testing.T) {
	e := newTestEngine(t, WithCache())
	ts := newTypedBooks(t, e)
	firstKey := ts.key

	if _, err := ts.Search().Query("go").Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats := e.CacheStats()
	if stats.FieldSetEntries != 1 || stats.StatsEntries != 1 {
		t.Fatalf("expected memoized detection and stats, got %+v", stats)
	}

	ts.Refresh([]book{
		{Title: "The Rust Programming Language", Author: "Steve Klabnik"},
	})
	if ts.Len() != 1 {
		t.Errorf("len after refresh = %d, want 1", ts.Len())
	}
	if ts.key == firstKey {
		t.Error("collection key did not rotate on refresh")
	}

	// The old binding's memoized state is gone until the next search
	// rebuilds it under the new key.
	stats = e.CacheStats()
	if stats.FieldSetEntries != 0 || stats.StatsEntries != 0 {
		t.Errorf("stale entries survived refresh: %+v", stats)
	}

	hits, err := ts.Search().Query("rust").Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit after refresh, got %d", len(hits))
	}
	stats = e.CacheStats()
	if stats.FieldSetEntries != 1 || stats.StatsEntries != 1 {
		t.Errorf("expected fresh memoization after refresh, got %+v", stats)
	}
}

func TestTypedSearcher_KeysDistinctAcrossSearchers(t *testing.T) {
	e := newTestEngine(t)
	a := newTypedBooks(t, e)
	b := newTypedBooks(t, e)
	if a.key == b.key {
		t.Errorf("two searchers share collection key %q", a.key)
	}
}
