// ABOUTME: Service information and health endpoints for the Huma API
// ABOUTME: Reports version, uptime and the number of connected real-time clients

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// ServiceName is reported by the root endpoint
const ServiceName = "AI News App Backend"

// ClientCounter reports live real-time connections
type ClientCounter interface {
	ClientCount() int
}

// StatusHandler serves / and /health
type StatusHandler struct {
	clients ClientCounter
	version string
	started time.Time
	now     func() time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(clients ClientCounter, version string) *StatusHandler {
	return &StatusHandler{
		clients: clients,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
}

// RegisterRoutes registers the status routes
func (h *StatusHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getServiceInfo",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service information",
		Description: "Returns the service name, version and connected client count. WebSocket clients connect to the same path with an upgrade request.",
		Tags:        []string{"Status"},
	}, h.Info)

	huma.Register(api, huma.Operation{
		OperationID: "getHealth",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Status"},
	}, h.Health)
}

// InfoOutput is the body of GET /
type InfoOutput struct {
	Body struct {
		Message string `json:"message"`
		Version string `json:"version"`
		Status  string `json:"status"`
		Clients int    `json:"clients"`
	}
}

// Info handles GET /
func (h *StatusHandler) Info(ctx context.Context, _ *struct{}) (*InfoOutput, error) {
	out := &InfoOutput{}
	out.Body.Message = ServiceName
	out.Body.Version = h.version
	out.Body.Status = "running"
	out.Body.Clients = h.clients.ClientCount()
	return out, nil
}

// HealthOutput is the body of GET /health
type HealthOutput struct {
	Body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Uptime    float64   `json:"uptime" doc:"Seconds since the process started"`
		Clients   int       `json:"clients"`
	}
}

// Health handles GET /health
func (h *StatusHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	now := h.now()
	out := &HealthOutput{}
	out.Body.Status = "OK"
	out.Body.Timestamp = now.UTC()
	out.Body.Uptime = now.Sub(h.started).Seconds()
	out.Body.Clients = h.clients.ClientCount()
	return out, nil
}
