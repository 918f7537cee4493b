// Package config loads aval's configuration from TOML, YAML or JSON files,
// falling back to built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tlemarchand/aval/pkg/smartscore"
)

// Config holds all configuration options for aval.
type Config struct {
	// Scoring settings shared by every scorer
	Scoring ScoringConfig `koanf:"scoring" toml:"scoring"`

	// Committee aggregation settings
	Committee CommitteeConfig `koanf:"committee" toml:"committee"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ScoringConfig controls the verdict ladder and loan assumptions.
type ScoringConfig struct {
	Thresholds    smartscore.VerdictThresholds `koanf:"thresholds" toml:"thresholds"`
	AnnualRatePct float64                      `koanf:"annual_rate_pct" toml:"annual_rate_pct"`
}

// CommitteeConfig carries the committee blend weights. They renormalize
// over the scores actually present, so they need not sum to 1.
type CommitteeConfig struct {
	MarketWeight float64 `koanf:"market_weight" toml:"market_weight"`
	RiskWeight   float64 `koanf:"risk_weight" toml:"risk_weight"`
}

// CacheConfig controls result memoization.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Thresholds:    smartscore.DefaultThresholds(),
			AnnualRatePct: 3.5,
		},
		Committee: CommitteeConfig{
			MarketWeight: 0.6,
			RiskWeight:   0.4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".aval/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// An invalid ladder from a config file silently reverts to the default:
	// the scorers do the same at computation time.
	if !cfg.Scoring.Thresholds.Valid() {
		cfg.Scoring.Thresholds = smartscore.DefaultThresholds()
	}
	return cfg, nil
}

// LoadOrDefault tries the standard locations and falls back to defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"aval.toml", "aval.yaml", "aval.yml", "aval.json",
		".aval.toml", ".aval.yaml", ".aval.yml", ".aval.json",
	}
	searchDirs := []string{".", ".aval"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}
	return DefaultConfig()
}
