// ABOUTME: Service interfaces for the news pipeline collaborators
// ABOUTME: Sources, content resolution, summarization and batch delivery are all swappable

package interfaces

import (
	"context"
	"time"

	"ai-news-api/core/domain"
)

// Source fetches topical articles from one external feed.
// FetchSince returns only articles published strictly after cursor,
// or every matching article when cursor is nil.
type Source interface {
	Name() string
	FetchSince(ctx context.Context, cursor *time.Time) ([]domain.Article, error)
}

// ContentResolver turns an article URL into readable text.
// An error or an empty string means the caller keeps the feed snippet.
type ContentResolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// SummaryProvider summarizes a single article
type SummaryProvider interface {
	Summarize(ctx context.Context, article domain.Article) (string, error)
}

// Summarizer summarizes a batch. Articles that fail are omitted from the
// result; the result never grows longer than the input.
type Summarizer interface {
	SummarizeMany(ctx context.Context, articles []domain.Article) []domain.Summary
}

// Broadcaster fans a non-empty batch out to live clients and returns how
// many clients it was delivered to
type Broadcaster interface {
	Broadcast(items []domain.NewsItem) (int, error)
}

// Publisher mirrors broadcast batches to an external system
type Publisher interface {
	Publish(ctx context.Context, items []domain.NewsItem) error
}
