// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, persistence, messaging and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache on patrickmn/go-cache
// - cache/redis: Redis-based cache on go-redis
// - cache/sqlite: SQLite-backed cache with background expiry cleanup
// - cache/pebble: Durable embedded key-value cache on Pebble
// - state: Watermark and latest-batch stores (JSON file or any cache backend)
// - http/standard: Standard library HTTP client with retry logic
// - llm: OpenAI-compatible chat summarizer and a deterministic mock
// - websocket: gorilla/websocket transport feeding the broadcast hub
// - publish/kafka: Kafka mirror for broadcast batches
// - logger/structured: logrus logger with optional rotated file output
//
// # Cache Implementations
//
// Every backend implements interfaces.Cache; a zero TTL means no expiry and
// a miss is reported as interfaces.ErrCacheMiss.
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
// The HTTP client retries transient failures on GET:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Fetched source", map[string]interface{}{
//	    "source":   "TechCrunch",
//	    "articles": 4,
//	})
package infrastructure
