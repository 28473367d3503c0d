// ABOUTME: Cache-backed stores for watermarks and the latest broadcast batch
// ABOUTME: Works with any interfaces.Cache backend (memory, redis, sqlite, pebble)

package state

import (
	"context"
	"encoding/json"
	"errors"

	"ai-news-api/core/domain"
	apperrors "ai-news-api/core/errors"
	"ai-news-api/core/interfaces"
)

const (
	// WatermarksKey holds the JSON watermark map
	WatermarksKey = "state:watermarks"

	// LatestBatchKey holds the JSON array of the last broadcast batch
	LatestBatchKey = "state:latest_batch"
)

// CacheStore persists watermarks under a single cache key without expiry
type CacheStore struct {
	cache interfaces.Cache
	key   string
}

// NewCacheStore creates a watermark store on cache
func NewCacheStore(cache interfaces.Cache) *CacheStore {
	return &CacheStore{cache: cache, key: WatermarksKey}
}

// Load returns the stored map, an empty map on a miss, or an empty map plus error when corrupt
func (s *CacheStore) Load(ctx context.Context) (domain.Watermarks, error) {
	data, err := s.cache.Get(ctx, s.key)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return domain.Watermarks{}, nil
	}
	if err != nil {
		return domain.Watermarks{}, &apperrors.PersistenceError{Resource: s.key, Err: err}
	}
	return decodeWatermarks(s.key, data)
}

// Save overwrites the stored map
func (s *CacheStore) Save(ctx context.Context, marks domain.Watermarks) error {
	data, err := json.Marshal(marks)
	if err != nil {
		return &apperrors.PersistenceError{Resource: s.key, Err: err}
	}
	if err := s.cache.Set(ctx, s.key, data, 0); err != nil {
		return &apperrors.PersistenceError{Resource: s.key, Err: err}
	}
	return nil
}

// CacheBatchStore keeps the latest broadcast batch so it can be replayed after a restart
type CacheBatchStore struct {
	cache interfaces.Cache
}

// NewCacheBatchStore creates a batch store on cache
func NewCacheBatchStore(cache interfaces.Cache) *CacheBatchStore {
	return &CacheBatchStore{cache: cache}
}

// LoadLatest returns the stored batch, or nil when none was saved
func (s *CacheBatchStore) LoadLatest(ctx context.Context) ([]domain.NewsItem, error) {
	data, err := s.cache.Get(ctx, LatestBatchKey)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, &apperrors.PersistenceError{Resource: LatestBatchKey, Err: err}
	}

	var items []domain.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &apperrors.PersistenceError{Resource: LatestBatchKey, Err: err}
	}
	return items, nil
}

// SaveLatest overwrites the stored batch
func (s *CacheBatchStore) SaveLatest(ctx context.Context, items []domain.NewsItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &apperrors.PersistenceError{Resource: LatestBatchKey, Err: err}
	}
	if err := s.cache.Set(ctx, LatestBatchKey, data, 0); err != nil {
		return &apperrors.PersistenceError{Resource: LatestBatchKey, Err: err}
	}
	return nil
}
