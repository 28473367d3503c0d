// ABOUTME: Huma API server configuration and setup on a chi router
// ABOUTME: Mounts the WebSocket endpoint next to the documented JSON operations

package api

import (
	"encoding/json"
	"net/http"

	"ai-news-api/api/middleware"
	"ai-news-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	// Title is the OpenAPI document title
	Title = "AI News API"

	// Version is reported by the API and the root endpoint
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimit is requests per second per client IP; 0 disables limiting
	RateLimit float64
	RateBurst int

	// WebSocket serves /ws and upgrade requests on /
	WebSocket http.Handler

	// IsUpgrade reports whether a request asks for a protocol upgrade
	IsUpgrade func(r *http.Request) bool
}

// Server bundles the documented API with its router
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// NewAPI creates and configures a new Huma API instance without middleware
func NewAPI() (huma.API, chi.Router) {
	s := NewServer(APIConfig{})
	return s.API, s.Router
}

// NewServer creates the router, applies middleware and mounts the WebSocket endpoint
func NewServer(cfg APIConfig) *Server {
	router := chi.NewRouter()

	// Configure CORS (should be first middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Sec-WebSocket-Protocol"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	s := &Server{Router: router}

	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		router.Use(middleware.RateLimitMiddleware(s.limiter))
	}

	if cfg.WebSocket != nil {
		isUpgrade := cfg.IsUpgrade
		if isUpgrade == nil {
			isUpgrade = func(*http.Request) bool { return false }
		}
		router.Use(upgradeOnRoot(cfg.WebSocket, isUpgrade))
		router.Handle("/ws", cfg.WebSocket)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Route not found",
			"path":  r.URL.Path,
		})
	})

	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Real-time AI news digest: topical articles summarized and pushed to WebSocket clients"
	// Response bodies keep the exact wire shape without a $schema link
	config.CreateHooks = nil

	s.API = humachi.New(router, config)
	return s
}

// Close releases middleware resources
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}

// upgradeOnRoot sends WebSocket upgrades on / to ws; everything else reaches the router
func upgradeOnRoot(ws http.Handler, isUpgrade func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" && isUpgrade(r) {
				ws.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
