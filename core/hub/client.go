package hub

import (
	"sync"
	"sync/atomic"
)

// State is the lifecycle position of a client connection
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Conn is the transport side of a client. WriteMessage sends one complete
// JSON message; it is only ever called from the client's writer goroutine.
type Conn interface {
	WriteMessage(data []byte) error
	Close() error
}

// Client is one registered connection
type Client struct {
	ID string

	conn  Conn
	queue chan []byte
	state atomic.Int32
	done  chan struct{}

	closeQueue sync.Once
	closeConn  sync.Once

	errMu sync.Mutex
	err   error
}

func newClient(id string, conn Conn, queueSize int) *Client {
	c := &Client{
		ID:    id,
		conn:  conn,
		queue: make(chan []byte, queueSize),
		done:  make(chan struct{}),
	}
	c.state.Store(int32(StateConnecting))
	return c
}

// State returns the current lifecycle state
func (c *Client) State() State {
	return State(c.state.Load())
}

// Done is closed once the writer has stopped and the connection is closed
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the client was disconnected, if it errored
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	c.err = err
	c.errMu.Unlock()
}

// tryEnqueue queues msg without blocking; false means the queue is full
func (c *Client) tryEnqueue(msg []byte) bool {
	select {
	case c.queue <- msg:
		return true
	default:
		return false
	}
}

// finish stops accepting messages. Only call after removal from the hub set.
func (c *Client) finish() {
	c.closeQueue.Do(func() { close(c.queue) })
}

func (c *Client) closeTransport() {
	c.closeConn.Do(func() { _ = c.conn.Close() })
}
