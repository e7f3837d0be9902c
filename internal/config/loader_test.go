package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
source_weights:
  Guideline: 10
  PubMed: 3
evidence_strength:
  frequency_aggregation: SimpleSum
  normalization_method: RelativeFrequency
sentiment:
  aggregation_method: NetScoreDetailed
trend:
  recency_weighted:
    decay_rate: 0.3
  rate_of_change:
    window_years: 5
  evidence_progression:
    recent_years_threshold: 2
    progression_points:
      Guideline: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoader_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := NewLoader().Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cfg.SourceWeights) == 0 {
		t.Error("Expected default source weights")
	}
	if cfg.EvidenceStrength.FrequencyAggregation != "Logarithmic" {
		t.Errorf("Expected default Logarithmic, got %s", cfg.EvidenceStrength.FrequencyAggregation)
	}
}

func TestLoader_LoadValidFile(t *testing.T) {
	path := writeConfig(t, validYAML)

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.SourceWeights["Guideline"] != 10 {
		t.Errorf("Expected Guideline weight 10, got %v", cfg.SourceWeights["Guideline"])
	}
	if cfg.EvidenceStrength.NormalizationMethod != "RelativeFrequency" {
		t.Errorf("Expected RelativeFrequency, got %s", cfg.EvidenceStrength.NormalizationMethod)
	}
	if cfg.Trend.RateOfChange.WindowYears == nil || *cfg.Trend.RateOfChange.WindowYears != 5 {
		t.Errorf("Expected window_years 5, got %v", cfg.Trend.RateOfChange.WindowYears)
	}
	// Omitted logging section falls back to defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestLoader_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "source_weights: [not: a: mapping")
	_, err := NewLoader().Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse configuration") {
		t.Fatalf("Expected parse error, got %v", err)
	}
}

func TestLoader_InvalidValuesRejected(t *testing.T) {
	path := writeConfig(t, strings.Replace(validYAML, "PubMed: 3", "PubMed: -3", 1))
	_, err := NewLoader().Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestLoader_MissingTrendKeyRejected(t *testing.T) {
	path := writeConfig(t, strings.Replace(validYAML, "decay_rate: 0.3", "", 1))
	_, err := NewLoader().Load(path)
	if err == nil || !strings.Contains(err.Error(), "decay_rate") {
		t.Fatalf("Expected decay_rate error, got %v", err)
	}
}

func TestLoader_CachesParsedConfig(t *testing.T) {
	path := writeConfig(t, validYAML)
	loader := NewLoader()

	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Rewrite the file; the cached parse must still be served.
	if err := os.WriteFile(path, []byte(strings.Replace(validYAML, "Guideline: 10", "Guideline: 99", 1)), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	cached, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cached != first {
		t.Error("Expected the cached config instance")
	}

	// Invalidation forces a re-read.
	loader.Invalidate(path)
	fresh, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fresh.SourceWeights["Guideline"] != 99 {
		t.Errorf("Expected re-read weight 99, got %v", fresh.SourceWeights["Guideline"])
	}
}
