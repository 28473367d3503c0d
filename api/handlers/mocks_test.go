package handlers

import "ai-news-api/core/domain"

// mockClients is a mock implementation of ClientCounter
type mockClients struct {
	count int
}

func (m *mockClients) ClientCount() int { return m.count }

// mockLatest is a mock implementation of LatestProvider
type mockLatest struct {
	items []domain.NewsItem
}

func (m *mockLatest) Latest() []domain.NewsItem { return m.items }

// mockMarks is a mock implementation of WatermarkProvider
type mockMarks struct {
	marks domain.Watermarks
}

func (m *mockMarks) Watermarks() domain.Watermarks { return m.marks }
