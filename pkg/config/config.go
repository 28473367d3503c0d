// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Loads .env files, an optional YAML source list, and validates the result

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "ai-news-api/core/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFeedURL is the feed polled when neither NEWS_RSS_URL nor SOURCES_FILE is set
const DefaultFeedURL = "https://techcrunch.com/feed/"

// DefaultKeywords is the topical filter applied to sources that don't declare their own
var DefaultKeywords = []string{
	"artificial intelligence", "AI", "machine learning", "ML", "deep learning",
	"neural network", "GPT", "ChatGPT", "OpenAI", "Google AI", "Microsoft AI",
	"Meta AI", "Apple AI", "automation", "robotics", "computer vision", "NLP",
	"natural language processing", "transformer", "LLM", "GenAI", "generative AI",
}

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Pipeline contains scheduling and timeout settings
	Pipeline PipelineConfig

	// Sources lists the feeds to poll
	Sources []SourceConfig

	// Cache contains cache backend configuration
	Cache CacheConfig

	// State selects where watermarks are persisted
	State StateConfig

	// Summarizer contains summarization settings
	Summarizer SummarizerConfig

	// Hub contains WebSocket fan-out settings
	Hub HubConfig

	// Kafka configures the optional batch mirror
	Kafka KafkaConfig

	// Log contains logging settings
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the allowed requests per second per client IP; 0 disables limiting
	RateLimit float64

	// RateBurst is the burst size for the per-IP limiter
	RateBurst int
}

// PipelineConfig holds scheduler and per-call timeout settings
type PipelineConfig struct {
	RefreshInterval time.Duration
	WarmupDelay     time.Duration
	SourceTimeout   time.Duration
	SummaryTimeout  time.Duration
}

// SourceConfig describes one feed
type SourceConfig struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Keywords []string `yaml:"keywords"`
	MaxItems int      `yaml:"max_items"`
}

// sourcesFile is the layout of SOURCES_FILE
type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/pebble)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string

	// PebbleDir is the data directory for the pebble backend
	PebbleDir string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// StateConfig selects the watermark store
type StateConfig struct {
	// WatermarkStore is "file" or "cache"
	WatermarkStore string

	// WatermarkFile is the JSON file used by the file store
	WatermarkFile string
}

// SummarizerConfig holds summarization settings
type SummarizerConfig struct {
	// Provider is "mock" or "openai"
	Provider string
	APIKey   string
	Model    string
	Endpoint string

	// Rate is the number of provider calls allowed per second
	Rate float64

	// CacheSize bounds the summary LRU
	CacheSize int
}

// HubConfig holds fan-out settings
type HubConfig struct {
	// QueueSize is the per-client outbound queue length
	QueueSize int
}

// KafkaConfig configures the batch mirror; empty Brokers disables it
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LoadFromEnv loads configuration from environment variables, reading a .env file first if present
func LoadFromEnv() (*Config, error) {
	// A missing .env file is normal in production.
	_ = godotenv.Load()

	apiKey := getEnvOrDefault("OPENAI_API_KEY", "")
	provider := getEnvOrDefault("SUMMARIZER", "")
	if provider == "" {
		provider = "mock"
		if apiKey != "" {
			provider = "openai"
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "3001"),
			RateLimit: getEnvAsFloatOrDefault("RATE_LIMIT", 5),
			RateBurst: getEnvAsIntOrDefault("RATE_BURST", 10),
		},
		Pipeline: PipelineConfig{
			RefreshInterval: getEnvAsDurationOrDefault("REFRESH_INTERVAL", 30*time.Minute),
			WarmupDelay:     getEnvAsDurationOrDefault("WARMUP_DELAY", 5*time.Second),
			SourceTimeout:   getEnvAsDurationOrDefault("SOURCE_TIMEOUT", 60*time.Second),
			SummaryTimeout:  getEnvAsDurationOrDefault("SUMMARY_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "data/cache.db"),
			PebbleDir:  getEnvOrDefault("PEBBLE_DIR", "data/pebble"),
		},
		State: StateConfig{
			WatermarkStore: getEnvOrDefault("WATERMARK_STORE", "file"),
			WatermarkFile:  getEnvOrDefault("WATERMARK_FILE", "data/watermarks.json"),
		},
		Summarizer: SummarizerConfig{
			Provider:  provider,
			APIKey:    apiKey,
			Model:     getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
			Endpoint:  getEnvOrDefault("OPENAI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			Rate:      getEnvAsFloatOrDefault("SUMMARY_RATE", 1),
			CacheSize: getEnvAsIntOrDefault("SUMMARY_CACHE_SIZE", 512),
		},
		Hub: HubConfig{
			QueueSize: getEnvAsIntOrDefault("WS_QUEUE_SIZE", 16),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsListOrDefault("KAFKA_BROKERS", nil),
			Topic:   getEnvOrDefault("KAFKA_TOPIC", "ai-news"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	sources, err := loadSources(os.Getenv("SOURCES_FILE"))
	if err != nil {
		return nil, err
	}
	maxItems := getEnvAsIntOrDefault("FEED_MAX_ITEMS", 10)
	if len(sources) == 0 {
		sources = []SourceConfig{{
			Name:     "TechCrunch",
			URL:      getEnvOrDefault("NEWS_RSS_URL", DefaultFeedURL),
			MaxItems: maxItems,
		}}
	}
	for i := range sources {
		if len(sources[i].Keywords) == 0 {
			sources[i].Keywords = DefaultKeywords
		}
		if sources[i].MaxItems <= 0 {
			sources[i].MaxItems = maxItems
		}
	}
	cfg.Sources = sources

	return cfg, nil
}

// loadSources reads the YAML source list; an empty path yields no sources
func loadSources(path string) ([]SourceConfig, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file %s: %w", path, err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, &apperrors.ValidationError{
			Field:   "SOURCES_FILE",
			Message: fmt.Sprintf("cannot parse %s: %v", path, err),
		}
	}
	return file.Sources, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or plain seconds ("90")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	if c.Pipeline.RefreshInterval < time.Second {
		return errors.New("refresh interval must be at least 1 second")
	}

	if c.Pipeline.SourceTimeout <= 0 || c.Pipeline.SummaryTimeout <= 0 {
		return errors.New("source and summary timeouts must be positive")
	}

	if len(c.Sources) == 0 {
		return errors.New("at least one source must be configured")
	}

	seen := make(map[string]bool, len(c.Sources))
	for _, src := range c.Sources {
		if src.Name == "" || src.URL == "" {
			return errors.New("every source needs a name and a url")
		}
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name %q", src.Name)
		}
		seen[src.Name] = true
		if src.MaxItems < 0 {
			return fmt.Errorf("source %q: max_items cannot be negative", src.Name)
		}
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite", "pebble":
	default:
		return errors.New("cache type must be 'memory', 'redis', 'sqlite' or 'pebble'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	switch c.State.WatermarkStore {
	case "file":
		if c.State.WatermarkFile == "" {
			return errors.New("watermark file cannot be empty when using the file store")
		}
	case "cache":
	default:
		return errors.New("watermark store must be 'file' or 'cache'")
	}

	switch c.Summarizer.Provider {
	case "mock":
	case "openai":
		if c.Summarizer.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai summarizer")
		}
	default:
		return errors.New("summarizer must be 'mock' or 'openai'")
	}

	if c.Summarizer.Rate <= 0 {
		return errors.New("summary rate must be positive")
	}

	if c.Hub.QueueSize < 1 {
		return errors.New("websocket queue size must be at least 1")
	}

	return nil
}
