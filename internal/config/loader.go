// Package config loads scoring configuration files. Parsed configs are
// cached by absolute path so repeated sessions against the same file
// skip the disk read and YAML parse.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/PulkiD/rel-scoring/internal/model"
)

const (
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Loader reads and validates scoring configuration from YAML files
type Loader struct {
	cache *gocache.Cache
}

// NewLoader creates a loader with an empty parse cache
func NewLoader() *Loader {
	return &Loader{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// cacheKey derives the cache key for a resolved config path
func cacheKey(path string) string {
	hash := sha256.Sum256([]byte(path))
	return "relscore:config:v1:" + hex.EncodeToString(hash[:])
}

// Load reads the configuration at path. An empty path returns the
// built-in defaults. The parsed config is cached; callers must treat
// the returned value as read-only.
func (l *Loader) Load(path string) (*model.Config, error) {
	if path == "" {
		return model.DefaultConfig(), nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %q: %w", path, err)
	}

	key := cacheKey(abs)
	if cached, found := l.cache.Get(key); found {
		return cached.(*model.Config), nil
	}

	cfg, err := parseFile(abs)
	if err != nil {
		return nil, err
	}

	l.cache.Set(key, cfg, gocache.DefaultExpiration)
	return cfg, nil
}

// Invalidate drops a cached config so the next Load re-reads the file
func (l *Loader) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		l.cache.Delete(cacheKey(abs))
	}
}

func parseFile(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills selector strings and logging settings a partial
// file may omit. Trend parameters are deliberately not defaulted: the
// engine requires them explicitly.
func applyDefaults(cfg *model.Config) {
	def := model.DefaultConfig()
	if cfg.EvidenceStrength.FrequencyAggregation == "" {
		cfg.EvidenceStrength.FrequencyAggregation = def.EvidenceStrength.FrequencyAggregation
	}
	if cfg.EvidenceStrength.NormalizationMethod == "" {
		cfg.EvidenceStrength.NormalizationMethod = def.EvidenceStrength.NormalizationMethod
	}
	if cfg.Sentiment.AggregationMethod == "" {
		cfg.Sentiment.AggregationMethod = def.Sentiment.AggregationMethod
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}
