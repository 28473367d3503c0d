// ABOUTME: Pebble-backed cache implementation for durable local state
// ABOUTME: Values carry an 8-byte expiry header so TTL semantics match the other backends

package pebble

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"ai-news-api/core/interfaces"

	"github.com/cockroachdb/pebble"
)

const headerLen = 8

// Client implements the Cache interface on a pebble database
type Client struct {
	db *pebble.DB
}

// Open opens (or creates) a pebble database in dir
func Open(dir string) (*Client, error) {
	if dir == "" {
		return nil, errors.New("pebble directory cannot be empty")
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble %s: %w", dir, err)
	}
	return &Client{db: db}, nil
}

// binary encoding: [expiryUnixNano:8][value...], expiry 0 = never
func encodeValue(value []byte, ttl time.Duration) []byte {
	buf := make([]byte, headerLen+len(value))
	if ttl > 0 {
		binary.BigEndian.PutUint64(buf[:headerLen], uint64(time.Now().Add(ttl).UnixNano()))
	}
	copy(buf[headerLen:], value)
	return buf
}

func decodeValue(raw []byte, now time.Time) ([]byte, bool, error) {
	if len(raw) < headerLen {
		return nil, false, errors.New("invalid cache record length")
	}
	expiry := int64(binary.BigEndian.Uint64(raw[:headerLen]))
	if expiry != 0 && now.UnixNano() >= expiry {
		return nil, false, nil
	}
	value := make([]byte, len(raw)-headerLen)
	copy(value, raw[headerLen:])
	return value, true, nil
}

// Get retrieves a live value; expired records are removed lazily
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, closer, err := c.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, interfaces.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	value, live, err := decodeValue(raw, time.Now())
	closer.Close()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	if !live {
		_ = c.db.Delete([]byte(key), pebble.NoSync)
		return nil, interfaces.ErrCacheMiss
	}
	return value, nil
}

// Set stores a value durably; a zero TTL never expires
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.db.Set([]byte(key), encodeValue(value, ttl), pebble.Sync)
}

// Delete removes a key; deleting a missing key is not an error
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.db.Delete([]byte(key), pebble.Sync)
}

// Close flushes and closes the database
func (c *Client) Close() error {
	return c.db.Close()
}
