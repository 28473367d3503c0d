package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-news-api/core/domain"
)

// fakeConn records written messages. When block is set, writes wait until
// the channel is closed or the connection itself is closed.
type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	writeErr error
	block    chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (f *fakeConn) WriteMessage(data []byte) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-f.closed:
			return errors.New("use of closed connection")
		}
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func (f *fakeConn) decoded(t *testing.T) []domain.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Message, 0, len(f.messages))
	for _, raw := range f.messages {
		var msg domain.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("invalid message %q: %v", raw, err)
		}
		out = append(out, msg)
	}
	return out
}

func waitDone(t *testing.T, c *Client) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("client %s did not finish", c.ID)
	}
}

func batch(ids ...string) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.NewsItem{ID: id, Type: domain.NewsItemType, Link: id, Content: "summary of " + id})
	}
	return items
}
