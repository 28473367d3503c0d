package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "ai-news-api/core/errors"
)

var configKeys = []string{
	"PORT", "RATE_LIMIT", "RATE_BURST", "REFRESH_INTERVAL", "WARMUP_DELAY", "SOURCE_TIMEOUT",
	"SUMMARY_TIMEOUT", "CACHE_TYPE", "REDIS_ADDRESS", "SQLITE_PATH", "PEBBLE_DIR",
	"WATERMARK_STORE", "WATERMARK_FILE", "SUMMARIZER", "OPENAI_API_KEY", "OPENAI_MODEL",
	"SUMMARY_RATE", "SUMMARY_CACHE_SIZE", "WS_QUEUE_SIZE", "KAFKA_BROKERS", "KAFKA_TOPIC",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "SOURCES_FILE", "NEWS_RSS_URL", "FEED_MAX_ITEMS",
}

// clearEnv blanks every key LoadFromEnv reads; empty values count as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "3001" {
		t.Errorf("Port = %v, want 3001", cfg.Server.Port)
	}
	if cfg.Pipeline.RefreshInterval != 30*time.Minute {
		t.Errorf("RefreshInterval = %v, want 30m", cfg.Pipeline.RefreshInterval)
	}
	if cfg.Pipeline.WarmupDelay != 5*time.Second {
		t.Errorf("WarmupDelay = %v, want 5s", cfg.Pipeline.WarmupDelay)
	}
	if cfg.Summarizer.Provider != "mock" {
		t.Errorf("Provider = %v, want mock without an API key", cfg.Summarizer.Provider)
	}
	if len(cfg.Sources) != 1 {
		t.Fatalf("Sources = %d, want 1 default source", len(cfg.Sources))
	}
	src := cfg.Sources[0]
	if src.Name != "TechCrunch" || src.URL != DefaultFeedURL || src.MaxItems != 10 {
		t.Errorf("default source = %+v", src)
	}
	if len(src.Keywords) != len(DefaultKeywords) {
		t.Errorf("default source keywords = %d, want %d", len(src.Keywords), len(DefaultKeywords))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("REFRESH_INTERVAL", "120")
	t.Setenv("SOURCE_TIMEOUT", "15s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NEWS_RSS_URL", "https://example.com/rss")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %v, want 8080", cfg.Server.Port)
	}
	if cfg.Pipeline.RefreshInterval != 2*time.Minute {
		t.Errorf("RefreshInterval = %v, want plain seconds to parse", cfg.Pipeline.RefreshInterval)
	}
	if cfg.Pipeline.SourceTimeout != 15*time.Second {
		t.Errorf("SourceTimeout = %v, want 15s", cfg.Pipeline.SourceTimeout)
	}
	if cfg.Summarizer.Provider != "openai" {
		t.Errorf("Provider = %v, want openai when a key is set", cfg.Summarizer.Provider)
	}
	if cfg.Sources[0].URL != "https://example.com/rss" {
		t.Errorf("source URL = %v", cfg.Sources[0].URL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestLoadFromEnv_InvalidDurationUsesDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Pipeline.RefreshInterval != 30*time.Minute {
		t.Errorf("RefreshInterval = %v, want default", cfg.Pipeline.RefreshInterval)
	}
}

func TestLoadFromEnv_SourcesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: Feed-X
    url: https://x.example.com/feed
    keywords: [robotics]
    max_items: 5
  - name: Feed-Y
    url: https://y.example.com/atom
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SOURCES_FILE", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if len(cfg.Sources) != 2 {
		t.Fatalf("Sources = %d, want 2", len(cfg.Sources))
	}
	if cfg.Sources[0].Keywords[0] != "robotics" || cfg.Sources[0].MaxItems != 5 {
		t.Errorf("Feed-X = %+v", cfg.Sources[0])
	}
	if len(cfg.Sources[1].Keywords) != len(DefaultKeywords) {
		t.Errorf("Feed-Y should inherit default keywords")
	}
	if cfg.Sources[1].MaxItems != 10 {
		t.Errorf("Feed-Y MaxItems = %d, want default 10", cfg.Sources[1].MaxItems)
	}
}

func TestLoadFromEnv_SourcesFileInheritsFeedMaxItems(t *testing.T) {
	clearEnv(t)
	t.Setenv("FEED_MAX_ITEMS", "3")

	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: Feed-Y
    url: https://y.example.com/atom
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SOURCES_FILE", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Sources[0].MaxItems != 3 {
		t.Errorf("MaxItems = %d, want 3", cfg.Sources[0].MaxItems)
	}
}

func TestLoadFromEnv_BadSourcesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOURCES_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := LoadFromEnv(); err == nil {
		t.Error("LoadFromEnv() should fail when SOURCES_FILE cannot be read")
	}
}

func TestLoadFromEnv_InvalidSourcesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("sources: [name: {"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SOURCES_FILE", path)

	_, err := LoadFromEnv()
	if !apperrors.IsValidation(err) {
		t.Errorf("LoadFromEnv() error = %v, want a validation error", err)
	}
}

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: "3001", RateLimit: 5},
		Pipeline: PipelineConfig{RefreshInterval: time.Minute, SourceTimeout: time.Second, SummaryTimeout: time.Second},
		Sources:  []SourceConfig{{Name: "TechCrunch", URL: DefaultFeedURL}},
		Cache:    CacheConfig{Type: "memory"},
		State:    StateConfig{WatermarkStore: "file", WatermarkFile: "wm.json"},
		Summarizer: SummarizerConfig{
			Provider: "mock",
			Rate:     1,
		},
		Hub: HubConfig{QueueSize: 16},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "port cannot be empty"},
		{"short interval", func(c *Config) { c.Pipeline.RefreshInterval = 0 }, "refresh interval must be at least 1 second"},
		{"no sources", func(c *Config) { c.Sources = nil }, "at least one source must be configured"},
		{"duplicate source", func(c *Config) {
			c.Sources = append(c.Sources, SourceConfig{Name: "TechCrunch", URL: "https://other"})
		}, `duplicate source name "TechCrunch"`},
		{"invalid cache type", func(c *Config) { c.Cache.Type = "invalid" }, "cache type must be 'memory', 'redis', 'sqlite' or 'pebble'"},
		{"redis without address", func(c *Config) { c.Cache.Type = "redis" }, "redis address cannot be empty when using redis cache"},
		{"bad watermark store", func(c *Config) { c.State.WatermarkStore = "s3" }, "watermark store must be 'file' or 'cache'"},
		{"openai without key", func(c *Config) { c.Summarizer.Provider = "openai" }, "OPENAI_API_KEY is required for the openai summarizer"},
		{"zero queue", func(c *Config) { c.Hub.QueueSize = 0 }, "websocket queue size must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err, tt.errMsg)
			}
		})
	}
}
