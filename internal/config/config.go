package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the scandex CLI configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig holds default search parameters. Flags override these
// per invocation.
type SearchConfig struct {
	Fields         []string           `yaml:"fields"`
	FieldWeights   map[string]float64 `yaml:"field_weights"`
	FuzzyThreshold float64            `yaml:"fuzzy_threshold"`  // 0..1 (default: 0.7)
	MinFuzzyLength int                `yaml:"min_fuzzy_length"` // default: 3
	Limit          int                `yaml:"limit"`            // default: 100, negative = unlimited
	CaseSensitive  bool               `yaml:"case_sensitive"`
	Concurrency    int                `yaml:"concurrency"` // workers for large scans (default: 0, sequential)
}

// CacheConfig holds memoization settings.
type CacheConfig struct {
	Enabled           bool `yaml:"enabled"`
	LowercaseCapacity int  `yaml:"lowercase_capacity"` // default: 4096
}

// MetricsConfig holds the Prometheus exposition settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // e.g. ":9090", empty disables the endpoint
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file. An empty path yields the
// defaults without touching the filesystem.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Search.FuzzyThreshold <= 0 {
		c.Search.FuzzyThreshold = 0.7
	}
	if c.Search.MinFuzzyLength <= 0 {
		c.Search.MinFuzzyLength = 3
	}
	if c.Search.Limit == 0 {
		c.Search.Limit = 100
	}
	if c.Cache.LowercaseCapacity <= 0 {
		c.Cache.LowercaseCapacity = 4096
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Search.FuzzyThreshold > 1 {
		return fmt.Errorf("search.fuzzy_threshold must be between 0 and 1, got %v", c.Search.FuzzyThreshold)
	}
	if c.Search.Concurrency < 0 {
		return fmt.Errorf("search.concurrency must not be negative, got %d", c.Search.Concurrency)
	}
	for i, f := range c.Search.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("search.fields[%d] is empty", i)
		}
	}
	for path, w := range c.Search.FieldWeights {
		if w <= 0 {
			return fmt.Errorf("search.field_weights.%s must be positive, got %v", path, w)
		}
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
