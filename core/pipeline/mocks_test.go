package pipeline

import (
	"context"
	"sync"
	"time"

	"ai-news-api/core/domain"
)

// mockSource is a mock implementation of the Source interface
type mockSource struct {
	name      string
	fetchFunc func(ctx context.Context, cursor *time.Time) ([]domain.Article, error)

	mu      sync.Mutex
	cursors []*time.Time
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) FetchSince(ctx context.Context, cursor *time.Time) ([]domain.Article, error) {
	m.mu.Lock()
	m.cursors = append(m.cursors, cursor)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, cursor)
	}
	return nil, nil
}

// feedSource serves a fixed article list, honouring the cursor like a real adapter
func feedSource(name string, articles ...domain.Article) *mockSource {
	return &mockSource{
		name: name,
		fetchFunc: func(ctx context.Context, cursor *time.Time) ([]domain.Article, error) {
			var out []domain.Article
			for _, a := range articles {
				if cursor == nil || a.PublishedAt.After(*cursor) {
					out = append(out, a)
				}
			}
			return out, nil
		},
	}
}

// mockSummarizer is a mock implementation of the Summarizer interface
type mockSummarizer struct {
	summarizeFunc func(ctx context.Context, articles []domain.Article) []domain.Summary
	calls         int
}

func (m *mockSummarizer) SummarizeMany(ctx context.Context, articles []domain.Article) []domain.Summary {
	m.calls++
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, articles)
	}
	out := make([]domain.Summary, 0, len(articles))
	for _, a := range articles {
		out = append(out, domain.NewSummary(a, "summary: "+a.Title))
	}
	return out
}

// mockStore is a mock implementation of the WatermarkStore interface
type mockStore struct {
	loadFunc func(ctx context.Context) (domain.Watermarks, error)
	saveFunc func(ctx context.Context, marks domain.Watermarks) error

	saved []domain.Watermarks
}

func (m *mockStore) Load(ctx context.Context) (domain.Watermarks, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	if len(m.saved) > 0 {
		return m.saved[len(m.saved)-1].Clone(), nil
	}
	return domain.Watermarks{}, nil
}

func (m *mockStore) Save(ctx context.Context, marks domain.Watermarks) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, marks); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, marks.Clone())
	return nil
}

// mockBroadcaster records every batch it receives
type mockBroadcaster struct {
	batches [][]domain.NewsItem
	clients int
	err     error
}

func (m *mockBroadcaster) Broadcast(items []domain.NewsItem) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.batches = append(m.batches, items)
	return m.clients, nil
}

// mockBatchStore records the latest saved batch
type mockBatchStore struct {
	latest []domain.NewsItem
}

func (m *mockBatchStore) LoadLatest(ctx context.Context) ([]domain.NewsItem, error) {
	return m.latest, nil
}

func (m *mockBatchStore) SaveLatest(ctx context.Context, items []domain.NewsItem) error {
	m.latest = items
	return nil
}

// mockPublisher is a mock implementation of the Publisher interface
type mockPublisher struct {
	publishFunc func(ctx context.Context, items []domain.NewsItem) error
	published   int
}

func (m *mockPublisher) Publish(ctx context.Context, items []domain.NewsItem) error {
	m.published++
	if m.publishFunc != nil {
		return m.publishFunc(ctx, items)
	}
	return nil
}
