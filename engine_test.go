package scandex

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e == nil {
		t.Fatal("expected engine")
	}
	if stats := e.CacheStats(); stats != (CacheStats{}) {
		t.Errorf("cacheless engine reports occupancy: %+v", stats)
	}
}

func TestNew_NegativeConcurrency(t *testing.T) {
	_, err := New(WithConcurrency(-2))
	if err == nil {
		t.Fatal("expected error for negative concurrency")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := &engineConfig{}

	WithCache()(cfg)
	if !cfg.cacheEnabled {
		t.Error("WithCache did not enable the cache")
	}

	cfg2 := &engineConfig{}
	WithCacheCapacity(512)(cfg2)
	if !cfg2.cacheEnabled {
		t.Error("WithCacheCapacity did not enable the cache")
	}
	if cfg2.cacheCapacity != 512 {
		t.Errorf("cacheCapacity = %d, want 512", cfg2.cacheCapacity)
	}

	WithConcurrency(8)(cfg)
	if cfg.concurrency != 8 {
		t.Errorf("concurrency = %d, want 8", cfg.concurrency)
	}

	l := zap.NewNop()
	WithLogger(l)(cfg)
	if cfg.logger != l {
		t.Error("WithLogger did not set the logger")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg)(cfg)
	if cfg.registerer == nil {
		t.Error("WithPrometheus did not set the registerer")
	}
}

func TestEngine_CacheLifecycle(t *testing.T) {
	e := newTestEngine(t, WithCache())

	_, err := e.Search(context.Background(), testBooks(), "go", &SearchOptions{
		CollectionKey: "books",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := e.CacheStats()
	if stats.FieldSetEntries != 1 {
		t.Errorf("field set entries = %d, want 1", stats.FieldSetEntries)
	}
	if stats.StatsEntries != 1 {
		t.Errorf("stats entries = %d, want 1", stats.StatsEntries)
	}
	if stats.LowercaseEntries == 0 {
		t.Error("expected lowercase entries after a scan")
	}

	// Invalidation drops the collection's memoized state but keeps the
	// shared lowercase memo.
	e.InvalidateCollection("books")
	stats = e.CacheStats()
	if stats.FieldSetEntries != 0 || stats.StatsEntries != 0 {
		t.Errorf("collection entries survived invalidation: %+v", stats)
	}
	if stats.LowercaseEntries == 0 {
		t.Error("lowercase entries should survive invalidation")
	}

	e.ClearCaches()
	if stats := e.CacheStats(); stats != (CacheStats{}) {
		t.Errorf("entries survived clear: %+v", stats)
	}
}

func TestEngine_NoCacheLifecycleNoops(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Search(context.Background(), testBooks(), "go", &SearchOptions{
		CollectionKey: "books",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Без кэша ключ коллекции ни на что не влияет.
	if stats := e.CacheStats(); stats != (CacheStats{}) {
		t.Errorf("cacheless engine reports occupancy: %+v", stats)
	}
	e.InvalidateCollection("books")
	e.ClearCaches()
}

func TestEngine_PrometheusFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newTestEngine(t, WithCache(), WithPrometheus(reg))

	_, err := e.Search(context.Background(), testBooks(), "go", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	got := make(map[string]bool, len(families))
	for _, f := range families {
		got[f.GetName()] = true
	}
	for _, name := range []string{
		"scandex_searches_total",
		"scandex_records_scanned_total",
		"scandex_cache_entries",
	} {
		if !got[name] {
			t.Errorf("metric family %s not registered", name)
		}
	}
}

func TestEngine_InvalidInputCountsAsInvalid(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := newTestEngine(t, WithPrometheus(reg))

	if _, err := e.Search(context.Background(), 42, "go", nil); err == nil {
		t.Fatal("expected error for non-slice input")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "scandex_searches_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" && l.GetValue() == "invalid" {
					return
				}
			}
		}
	}
	t.Error("no searches_total sample with status=invalid")
}
