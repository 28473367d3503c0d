// ABOUTME: gorilla/websocket transport that registers upgraded connections with the hub
// ABOUTME: Runs the read side of each socket to detect closes and keep the peer alive with pings

package websocket

import (
	"net/http"
	"time"

	apperrors "ai-news-api/core/errors"
	"ai-news-api/core/hub"
	"ai-news-api/core/interfaces"

	"github.com/gorilla/websocket"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultPongWait     = 60 * time.Second
	maxInboundBytes     = 4096
)

// Options tunes socket timeouts
type Options struct {
	WriteTimeout time.Duration

	// PongWait is how long a silent peer is tolerated; pings go out at 9/10 of it
	PongWait time.Duration

	// CheckOrigin overrides the upgrader's origin check; nil accepts every origin
	CheckOrigin func(r *http.Request) bool

	Logger interfaces.Logger
}

// Handler upgrades HTTP requests and hands the sockets to the hub
type Handler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	opts     Options
	logger   interfaces.Logger
}

// NewHandler creates a websocket handler for h
func NewHandler(h *hub.Hub, opts Options) *Handler {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.PongWait <= 0 {
		opts.PongWait = defaultPongWait
	}
	if opts.CheckOrigin == nil {
		opts.CheckOrigin = func(*http.Request) bool { return true }
	}
	logger := opts.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
		opts:   opts,
		logger: logger,
	}
}

// IsUpgrade reports whether r asks for a websocket upgrade
func IsUpgrade(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

// ServeHTTP upgrades the request and blocks until the socket is gone
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		h.logger.Warn("WebSocket upgrade failed", map[string]interface{}{
			"remote": r.RemoteAddr,
			"error":  err.Error(),
		})
		return
	}

	conn := newConn(ws, h.opts.WriteTimeout)
	client := h.hub.Connect(conn)

	go h.keepAlive(conn, client)
	h.readLoop(ws, client)
}

// readLoop discards inbound frames and reports how the socket ended
func (h *Handler) readLoop(ws *websocket.Conn, client *hub.Client) {
	ws.SetReadLimit(maxInboundBytes)
	_ = ws.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				h.hub.Disconnect(client, nil)
			} else {
				h.hub.Disconnect(client, &apperrors.TransportError{ClientID: client.ID, Err: err})
			}
			return
		}
	}
}

// keepAlive pings the peer until the client finishes
func (h *Handler) keepAlive(conn *Conn, client *hub.Client) {
	ticker := time.NewTicker(h.opts.PongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-client.Done():
			return
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				h.hub.Disconnect(client, &apperrors.TransportError{ClientID: client.ID, Err: err})
				return
			}
		}
	}
}
