// ABOUTME: Broadcast hub tracking live clients and the latest delivered batch
// ABOUTME: Fans batches out through bounded per-client queues with late-joiner replay

package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"ai-news-api/core/domain"
	apperrors "ai-news-api/core/errors"
	"ai-news-api/core/interfaces"

	"github.com/google/uuid"
)

// DefaultQueueSize is the per-client outbound queue length
const DefaultQueueSize = 16

// DefaultWelcome is the text of the connection acknowledgement
const DefaultWelcome = "Connected to AI News WebSocket"

var (
	// ErrEmptyBatch is returned by Broadcast for an empty item list
	ErrEmptyBatch = errors.New("hub: empty batch")

	// ErrSlowConsumer marks clients dropped because their queue was full
	ErrSlowConsumer = errors.New("hub: client queue full")

	// ErrClosed is returned once the hub has shut down
	ErrClosed = errors.New("hub: closed")
)

// Options configures a Hub
type Options struct {
	QueueSize int
	Welcome   string
	Logger    interfaces.Logger
	Now       func() time.Time
}

// Hub fans batches out to connected clients. It is safe for concurrent use.
type Hub struct {
	queueSize int
	welcome   string
	logger    interfaces.Logger
	now       func() time.Time

	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  []domain.NewsItem
	closed  bool
}

// New creates a hub
func New(opts Options) *Hub {
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Welcome == "" {
		opts.Welcome = DefaultWelcome
	}
	if opts.Logger == nil {
		opts.Logger = interfaces.NopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Hub{
		queueSize: opts.QueueSize,
		welcome:   opts.Welcome,
		logger:    opts.Logger,
		now:       opts.Now,
		clients:   make(map[*Client]struct{}),
	}
}

// Connect registers conn, queues the acknowledgement and the latest-batch
// replay, and starts the client's writer
func (h *Hub) Connect(conn Conn) *Client {
	// room for the acknowledgement and the replay on top of the regular queue
	c := newClient(uuid.NewString(), conn, h.queueSize+2)

	ack, _ := json.Marshal(domain.NewConnectionMessage(h.welcome, h.now()))

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.state.Store(int32(StateClosed))
		c.setErr(ErrClosed)
		c.finish()
		go h.writeLoop(c)
		return c
	}

	c.tryEnqueue(ack)
	replayed := len(h.latest)
	if replayed > 0 {
		replay, err := json.Marshal(domain.NewNewsUpdateMessage(h.latest, h.now()))
		if err == nil {
			c.tryEnqueue(replay)
		}
	}
	c.state.Store(int32(StateOpen))
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	go h.writeLoop(c)

	h.logger.Info("Client connected", map[string]interface{}{
		"client":   c.ID,
		"clients":  total,
		"replayed": replayed,
	})
	return c
}

// Broadcast replaces the latest batch with items and queues it for every open
// client. It returns the number of clients the batch was queued for.
func (h *Hub) Broadcast(items []domain.NewsItem) (int, error) {
	if len(items) == 0 {
		return 0, ErrEmptyBatch
	}

	batch := make([]domain.NewsItem, len(items))
	copy(batch, items)

	payload, err := json.Marshal(domain.NewNewsUpdateMessage(batch, h.now()))
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0, ErrClosed
	}
	h.latest = batch
	sent, dropped := h.fanOutLocked(payload)
	total := len(h.clients)
	h.mu.Unlock()

	h.release(dropped)

	h.logger.Info("Broadcast batch", map[string]interface{}{
		"items":   len(batch),
		"sent":    sent,
		"dropped": len(dropped),
		"clients": total,
	})
	return sent, nil
}

// BroadcastSystem queues a system notice for every open client without
// touching the latest batch
func (h *Hub) BroadcastSystem(message string) int {
	payload, err := json.Marshal(domain.NewSystemMessage(message, h.now()))
	if err != nil {
		return 0
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0
	}
	sent, dropped := h.fanOutLocked(payload)
	h.mu.Unlock()

	h.release(dropped)
	return sent
}

// fanOutLocked queues payload for open clients and unregisters those whose queue is full
func (h *Hub) fanOutLocked(payload []byte) (int, []*Client) {
	sent := 0
	var dropped []*Client
	for c := range h.clients {
		if c.State() != StateOpen {
			continue
		}
		if c.tryEnqueue(payload) {
			sent++
			continue
		}
		h.removeLocked(c, ErrSlowConsumer)
		dropped = append(dropped, c)
	}
	return sent, dropped
}

// Seed sets the latest batch without sending it, e.g. when restoring after a restart
func (h *Hub) Seed(items []domain.NewsItem) {
	if len(items) == 0 {
		return
	}
	batch := make([]domain.NewsItem, len(items))
	copy(batch, items)

	h.mu.Lock()
	h.latest = batch
	h.mu.Unlock()
}

// Latest returns a copy of the most recently broadcast batch
func (h *Hub) Latest() []domain.NewsItem {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.latest) == 0 {
		return nil
	}
	out := make([]domain.NewsItem, len(h.latest))
	copy(out, h.latest)
	return out
}

// ClientCount returns the number of live clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Disconnect removes c. A nil err is a graceful close; anything else marks the client errored.
func (h *Hub) Disconnect(c *Client, err error) {
	h.mu.Lock()
	removed := h.removeLocked(c, err)
	total := len(h.clients)
	h.mu.Unlock()

	if !removed {
		return
	}

	fields := map[string]interface{}{
		"client":  c.ID,
		"state":   c.State().String(),
		"clients": total,
	}
	if err != nil {
		fields["error"] = err.Error()
		c.closeTransport()
	}
	h.logger.Info("Client disconnected", fields)
}

// removeLocked unregisters c and stops its queue. Returns false if c was not registered.
func (h *Hub) removeLocked(c *Client, err error) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)

	if err != nil {
		c.setErr(err)
		c.state.Store(int32(StateErrored))
	} else {
		c.state.Store(int32(StateClosed))
	}
	c.finish()
	return true
}

// release closes transports of clients dropped for falling behind
func (h *Hub) release(dropped []*Client) {
	for _, c := range dropped {
		c.closeTransport()
		h.logger.Warn("Dropped slow client", map[string]interface{}{
			"client": c.ID,
		})
	}
}

// Close disconnects every client gracefully. Messages already queued are
// still written before each connection closes.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		h.removeLocked(c, nil)
		clients = append(clients, c)
	}
	h.mu.Unlock()

	h.logger.Info("Hub closed", map[string]interface{}{
		"clients": len(clients),
	})
}

// writeLoop drains the client's queue onto the transport
func (h *Hub) writeLoop(c *Client) {
	defer close(c.done)
	defer c.closeTransport()

	for msg := range c.queue {
		if err := c.conn.WriteMessage(msg); err != nil {
			h.Disconnect(c, &apperrors.TransportError{ClientID: c.ID, Err: err})
			for range c.queue {
			}
			return
		}
	}
}
