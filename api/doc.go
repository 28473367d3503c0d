// Package api provides the HTTP surface of the AI news service.
// It uses the Huma framework on a chi router for the documented JSON
// operations and mounts the WebSocket transport beside them.
//
// # Routes
//
//   - GET / returns service information; the same path accepts WebSocket upgrades
//   - GET /ws is the dedicated WebSocket endpoint
//   - GET /health reports liveness, uptime and connected clients
//   - GET /news/latest returns the most recently broadcast batch
//   - GET /watermarks returns the per-source watermarks
//   - GET /openapi.json and /docs serve the generated OpenAPI document
//
// # Middleware
//
// Requests pass through CORS, request logging with unique request IDs and a
// per-IP token bucket limiter, in that order. The logging wrapper supports
// hijacking so upgrades work behind it.
//
// # Usage Example
//
//	srv := api.NewServer(api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 5,
//	    RateBurst: 10,
//	    WebSocket: wsHandler,
//	    IsUpgrade: websocket.IsUpgrade,
//	})
//	handlers.NewStatusHandler(hub, api.Version).RegisterRoutes(srv.API)
//	http.ListenAndServe(":3001", srv.Router)
package api
