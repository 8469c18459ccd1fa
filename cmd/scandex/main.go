// scandex — ранжирующий поиск по коллекциям без построения индекса.
// Загружает записи из JSON/JSONC/JSONL/YAML файла и ранжирует их по
// текстовому запросу: prefix, substring и fuzzy совпадения с
// автоопределением полей и весов.
//
// Использование:
//
//	scandex -file users.json -query "john smith"
//	scandex -file places.jsonc -i          # интерактивный режим
//
// Env vars:
//
//	ENV — режим логгера: local | dev | prod (default: local)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scandex"
	"github.com/kailas-cloud/scandex/internal/config"
	logpkg "github.com/kailas-cloud/scandex/internal/logger"
	"github.com/kailas-cloud/scandex/internal/version"
)

func main() {
	fl := parseFlags()

	if fl.version {
		fmt.Printf("scandex %s (%s) built %s\n", version.Version, version.Commit, version.Date)
		return
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, fl); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type flags struct {
	file          string
	query         string
	interactive   bool
	configPath    string
	fields        string
	weights       string
	limit         int
	threshold     float64
	minFuzzy      int
	caseSensitive bool
	concurrency   int
	cache         bool
	jsonOut       bool
	metricsAddr   string
	version       bool
}

func parseFlags() flags {
	fl := flags{}
	flag.StringVar(&fl.file, "file", "", "records file (.json, .jsonc, .jsonl, .yaml)")
	flag.StringVar(&fl.query, "query", "", "one-shot query text")
	flag.BoolVar(&fl.interactive, "i", false, "interactive mode, read queries from stdin")
	flag.StringVar(&fl.configPath, "config", "", "YAML config path")
	flag.StringVar(&fl.fields, "fields", "", "comma-separated field paths (default: auto-detect)")
	flag.StringVar(&fl.weights, "weights", "", "comma-separated field=weight pairs")
	flag.IntVar(&fl.limit, "limit", 0, "max results (0=config default, negative=all)")
	flag.Float64Var(&fl.threshold, "threshold", 0, "fuzzy similarity threshold 0..1 (0=config default)")
	flag.IntVar(&fl.minFuzzy, "min-fuzzy", 0, "min query length for fuzzy matching (0=config default)")
	flag.BoolVar(&fl.caseSensitive, "case-sensitive", false, "match without case folding")
	flag.IntVar(&fl.concurrency, "concurrency", 0, "scan workers for large collections (0=sequential)")
	flag.BoolVar(&fl.cache, "cache", false, "enable memoization across queries")
	flag.BoolVar(&fl.jsonOut, "json", false, "print results as JSON")
	flag.StringVar(&fl.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this addr, e.g. :9090")
	flag.BoolVar(&fl.version, "version", false, "print version and exit")
	flag.Parse()
	return fl
}

func run(ctx context.Context, fl flags) error {
	cfg, err := config.Load(fl.configPath)
	if err != nil {
		return err
	}
	if err := overlayFlags(&cfg, fl); err != nil {
		return err
	}

	logger, err := logpkg.NewLogger(config.GetEnv(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if fl.file == "" {
		return errors.New("no records file, use -file")
	}
	if fl.query == "" && !fl.interactive {
		return errors.New("nothing to do, use -query or -i")
	}

	engineOpts := []scandex.Option{scandex.WithLogger(logger)}
	if cfg.Cache.Enabled {
		engineOpts = append(engineOpts, scandex.WithCacheCapacity(cfg.Cache.LowercaseCapacity))
	}
	if cfg.Search.Concurrency > 0 {
		engineOpts = append(engineOpts, scandex.WithConcurrency(cfg.Search.Concurrency))
	}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		engineOpts = append(engineOpts, scandex.WithPrometheus(reg))
		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	engine, err := scandex.New(engineOpts...)
	if err != nil {
		return err
	}

	records, err := loadRecords(fl.file)
	if err != nil {
		return err
	}
	logger.Info("Records loaded",
		zap.String("file", fl.file),
		zap.Int("count", len(records)),
	)

	opts := searchOptions(cfg, fl.file)

	if fl.query != "" {
		start := time.Now()
		results, err := engine.Search(ctx, records, fl.query, opts)
		if err != nil {
			return err
		}
		return printResults(os.Stdout, results, time.Since(start), fl.jsonOut)
	}

	return repl(ctx, engine, records, opts, fl.jsonOut)
}

// overlayFlags lays explicitly set flag values over the file config.
// Zero-valued flags keep the config value.
func overlayFlags(cfg *config.Config, fl flags) error {
	if fl.fields != "" {
		cfg.Search.Fields = splitFields(fl.fields)
	}
	if fl.weights != "" {
		w, err := parseWeights(fl.weights)
		if err != nil {
			return err
		}
		cfg.Search.FieldWeights = w
	}
	if fl.limit != 0 {
		cfg.Search.Limit = fl.limit
	}
	if fl.threshold != 0 {
		cfg.Search.FuzzyThreshold = fl.threshold
	}
	if fl.minFuzzy != 0 {
		cfg.Search.MinFuzzyLength = fl.minFuzzy
	}
	if fl.caseSensitive {
		cfg.Search.CaseSensitive = true
	}
	if fl.concurrency != 0 {
		cfg.Search.Concurrency = fl.concurrency
	}
	if fl.cache {
		cfg.Cache.Enabled = true
	}
	if fl.metricsAddr != "" {
		cfg.Metrics.Addr = fl.metricsAddr
	}
	return nil
}

func splitFields(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseWeights parses "title=5,author=2.5" pairs.
func parseWeights(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("weight %q is not a field=value pair", pair)
		}
		w, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", pair, err)
		}
		out[name] = w
	}
	return out, nil
}

// searchOptions maps the resolved config to engine options. The file
// path doubles as the collection key, so repeated queries over the
// same file hit the memo layer.
func searchOptions(cfg config.Config, file string) *scandex.SearchOptions {
	return &scandex.SearchOptions{
		Fields:         cfg.Search.Fields,
		FieldWeights:   cfg.Search.FieldWeights,
		FuzzyThreshold: cfg.Search.FuzzyThreshold,
		MinFuzzyLength: cfg.Search.MinFuzzyLength,
		Limit:          cfg.Search.Limit,
		CaseSensitive:  cfg.Search.CaseSensitive,
		CollectionKey:  file,
		Concurrency:    cfg.Search.Concurrency,
	}
}

// serveMetrics запускает HTTP сервер для Prometheus scrape.
func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Metrics server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	return srv
}
