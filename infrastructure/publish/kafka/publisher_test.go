package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ai-news-api/core/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWriter is a mock implementation of messageWriter
type mockWriter struct {
	writeFunc func(ctx context.Context, msgs ...kafka.Message) error
	written   []kafka.Message
	closed    bool
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, msgs...)
	}
	m.written = append(m.written, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func sampleItems() []domain.NewsItem {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []domain.NewsItem{
		{ID: "https://example.com/a", Type: domain.NewsItemType, Content: "A", Timestamp: ts, Link: "https://example.com/a", Source: "TechCrunch"},
		{ID: "https://example.com/b", Type: domain.NewsItemType, Content: "B", Timestamp: ts, Link: "https://example.com/b", Source: "Wired"},
	}
}

func TestPublisher_Publish(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w, topic: "ai-news"}

	require.NoError(t, p.Publish(context.Background(), sampleItems()))
	require.Len(t, w.written, 2)

	assert.Equal(t, "https://example.com/a", string(w.written[0].Key))
	var item domain.NewsItem
	require.NoError(t, json.Unmarshal(w.written[0].Value, &item))
	assert.Equal(t, sampleItems()[0], item)

	assert.Equal(t, "source", w.written[1].Headers[1].Key)
	assert.Equal(t, "Wired", string(w.written[1].Headers[1].Value))
}

func TestPublisher_EmptyBatchIsNoop(t *testing.T) {
	w := &mockWriter{writeFunc: func(ctx context.Context, msgs ...kafka.Message) error {
		t.Fatal("WriteMessages should not be called")
		return nil
	}}
	p := &Publisher{writer: w, topic: "ai-news"}

	assert.NoError(t, p.Publish(context.Background(), nil))
}

func TestPublisher_WriteError(t *testing.T) {
	cause := errors.New("leader not available")
	w := &mockWriter{writeFunc: func(ctx context.Context, msgs ...kafka.Message) error { return cause }}
	p := &Publisher{writer: w, topic: "ai-news"}

	err := p.Publish(context.Background(), sampleItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ai-news")
}

func TestPublisher_Close(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w}
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "ai-news")
	writer, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "ai-news", writer.Topic)
	assert.Equal(t, kafka.RequireAll, writer.RequiredAcks)
	require.NoError(t, p.Close())
}
