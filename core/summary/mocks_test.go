package summary

import (
	"context"
	"sync"

	"ai-news-api/core/domain"
)

// mockProvider is a mock implementation of the SummaryProvider interface
type mockProvider struct {
	mu            sync.Mutex
	calls         []string
	summarizeFunc func(ctx context.Context, article domain.Article) (string, error)
}

func (m *mockProvider) Summarize(ctx context.Context, article domain.Article) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, article.Link)
	m.mu.Unlock()
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, article)
	}
	return "summary of " + article.Title, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.warnFunc != nil {
		m.warnFunc(msg, fields)
	}
}
