// Package core contains the business logic of the AI news service.
// It is framework-agnostic: transports, storage and LLM providers are
// injected through the interfaces sub-package.
//
// The core package is organized into several sub-packages:
//
// - domain: Article, Summary, NewsItem, socket messages and Watermarks
// - source: RSS/Atom source adapter with keyword filtering and enrichment
// - reader: article content resolver (readability with selector fallback)
// - summary: rate-limited, cached batch summarizer over a provider
// - pipeline: one fetch → dedup → summarize → persist → deliver cycle
// - hub: real-time fan-out with late-joiner replay
// - scheduler: warm-up run followed by a fixed interval
// - errors: typed errors for each failure class
// - interfaces: contracts for external dependencies (cache, HTTP, logger, stores)
//
// # Design Principles
//
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Failures of one source, article or client never abort a run
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	resolver := reader.NewService(deps)
//	sources := source.NewFromConfig(cfg.Sources, resolver, deps)
//	newsHub := hub.New(hub.Options{Logger: myLogger})
//
//	orch := pipeline.New(pipeline.Config{
//	    Sources:     sources,
//	    Summarizer:  summarizer,
//	    Store:       state.NewFileStore("data/watermarks.json"),
//	    Broadcaster: newsHub,
//	    Logger:      myLogger,
//	})
//	result, err := orch.Run(ctx)
package core
