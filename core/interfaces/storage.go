// ABOUTME: Storage interfaces for the small amount of durable pipeline state
// ABOUTME: Watermarks and the latest broadcast batch are the only things persisted

package interfaces

import (
	"context"

	"ai-news-api/core/domain"
)

// WatermarkStore persists the per-source watermark map.
// Load returns an empty map when nothing was stored yet. A corrupt resource
// yields an empty map together with the decode error.
// Save always overwrites the whole map.
type WatermarkStore interface {
	Load(ctx context.Context) (domain.Watermarks, error)
	Save(ctx context.Context, marks domain.Watermarks) error
}

// BatchStore keeps the latest broadcast batch across restarts
type BatchStore interface {
	LoadLatest(ctx context.Context) ([]domain.NewsItem, error)
	SaveLatest(ctx context.Context, items []domain.NewsItem) error
}
