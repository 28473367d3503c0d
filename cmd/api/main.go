// ABOUTME: Main entry point for the AI News API server
// ABOUTME: Wires together all components, restores state and starts the scheduler and HTTP server

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-news-api/api"
	"ai-news-api/api/handlers"
	"ai-news-api/api/middleware"
	"ai-news-api/core/hub"
	"ai-news-api/core/interfaces"
	"ai-news-api/core/pipeline"
	"ai-news-api/core/reader"
	"ai-news-api/core/scheduler"
	"ai-news-api/core/source"
	"ai-news-api/core/summary"
	"ai-news-api/infrastructure/cache/memory"
	"ai-news-api/infrastructure/cache/pebble"
	"ai-news-api/infrastructure/cache/redis"
	"ai-news-api/infrastructure/cache/sqlite"
	stdhttp "ai-news-api/infrastructure/http/standard"
	"ai-news-api/infrastructure/llm"
	"ai-news-api/infrastructure/logger/structured"
	"ai-news-api/infrastructure/publish/kafka"
	"ai-news-api/infrastructure/state"
	"ai-news-api/infrastructure/websocket"
	"ai-news-api/pkg/config"
)

const shutdownNotice = "Server is shutting down"

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	logger.Info("Starting AI News API", map[string]interface{}{
		"port":             cfg.Server.Port,
		"cache_type":       cfg.Cache.Type,
		"refresh_interval": cfg.Pipeline.RefreshInterval.String(),
		"sources":          len(cfg.Sources),
		"summarizer":       cfg.Summarizer.Provider,
	})

	// Create cache
	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClientWithTransport(30*time.Second, &middleware.LoggingRoundTripper{
		Transport: http.DefaultTransport,
		Logger:    logger,
	})

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	resolver := reader.NewService(deps)
	sources := source.NewFromConfig(cfg.Sources, resolver, deps)

	summarizer, err := summary.NewService(newSummaryProvider(cfg, httpClient, logger), summary.Options{
		Rate:      cfg.Summarizer.Rate,
		CacheSize: cfg.Summarizer.CacheSize,
		Timeout:   cfg.Pipeline.SummaryTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create summarizer: %v", err)
	}

	// Restore state
	var marks interfaces.WatermarkStore
	if cfg.State.WatermarkStore == "cache" {
		marks = state.NewCacheStore(cache)
	} else {
		marks = state.NewFileStore(cfg.State.WatermarkFile)
	}
	batches := state.NewCacheBatchStore(cache)

	newsHub := hub.New(hub.Options{QueueSize: cfg.Hub.QueueSize, Logger: logger})
	restoreLatest(batches, newsHub, logger)

	var publishers []interfaces.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		publishers = append(publishers, publisher)
		logger.Info("Mirroring batches to Kafka", map[string]interface{}{
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.Topic,
		})
	}

	orchestrator := pipeline.New(pipeline.Config{
		Sources:       sources,
		Summarizer:    summarizer,
		Store:         marks,
		Broadcaster:   newsHub,
		BatchStore:    batches,
		Publishers:    publishers,
		SourceTimeout: cfg.Pipeline.SourceTimeout,
		Logger:        logger,
	})

	sched, err := scheduler.New(orchestrator, scheduler.Config{
		Interval:    cfg.Pipeline.RefreshInterval,
		WarmupDelay: cfg.Pipeline.WarmupDelay,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Create API with middleware
	server := api.NewServer(api.APIConfig{
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
		WebSocket: websocket.NewHandler(newsHub, websocket.Options{Logger: logger}),
		IsUpgrade: websocket.IsUpgrade,
	})
	defer server.Close()

	handlers.NewStatusHandler(newsHub, api.Version).RegisterRoutes(server.API)
	handlers.NewNewsHandler(newsHub, orchestrator).RegisterRoutes(server.API)

	// WriteTimeout stays unset: upgraded sockets are long-lived
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.Router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	sched.Start(context.Background())

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", map[string]interface{}{
		"clients": newsHub.ClientCount(),
	})

	drainPipeline(sched, newsHub)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// drainPipeline stops scheduling before the shutdown notice so no batch can follow it
func drainPipeline(sched interface{ Stop() }, h interface {
	BroadcastSystem(message string) int
	Close()
}) {
	sched.Stop()
	h.BroadcastSystem(shutdownNotice)
	h.Close()
}

// newCache builds the configured backend, falling back to memory when it cannot be opened
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}

	var (
		backend interfaces.Cache
		closer  io.Closer
		err     error
	)

	switch cfg.Cache.Type {
	case "redis":
		var c *redis.RedisCache
		if c, err = redis.NewRedisCache(cfg.Cache.Redis); err == nil {
			backend, closer = c, c
		}
	case "sqlite":
		var c *sqlite.Client
		if c, err = sqlite.NewSQLiteCache(cfg.Cache.SQLitePath); err == nil {
			backend, closer = c, c
		}
	case "pebble":
		var c *pebble.Client
		if c, err = pebble.Open(cfg.Cache.PebbleDir); err == nil {
			backend, closer = c, c
		}
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), noop
	}

	if err != nil {
		logger.Error(fmt.Sprintf("Failed to create %s cache, falling back to memory", cfg.Cache.Type), map[string]interface{}{
			"error": err.Error(),
		})
		return memory.NewMemoryCache(), noop
	}

	logger.Info("Using cache backend", map[string]interface{}{
		"type": cfg.Cache.Type,
	})
	return backend, func() {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func newSummaryProvider(cfg *config.Config, httpClient interfaces.HTTPClient, logger interfaces.Logger) interfaces.SummaryProvider {
	if cfg.Summarizer.Provider == "openai" {
		return llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:   cfg.Summarizer.APIKey,
			Model:    cfg.Summarizer.Model,
			Endpoint: cfg.Summarizer.Endpoint,
		}, httpClient, logger)
	}
	logger.Info("No OpenAI API key configured, using mock summaries", nil)
	return llm.NewMock()
}

// restoreLatest seeds the hub so clients connecting before the first run get the last batch
func restoreLatest(store interfaces.BatchStore, h *hub.Hub, logger interfaces.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := store.LoadLatest(ctx)
	if err != nil {
		logger.Warn("Failed to restore latest batch", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if len(items) > 0 {
		h.Seed(items)
		logger.Info("Restored latest batch", map[string]interface{}{
			"items": len(items),
		})
	}
}

func init() {
	fmt.Println(`
    _   ___   _  __
   /_\ |_ _| | \| |_____ __ _____
  / _ \ | |  | .' / -_) V  V (_-<
 /_/ \_\___| |_|\_\___|\_/\_//__/
	`)
}
