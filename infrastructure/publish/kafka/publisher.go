// ABOUTME: Kafka mirror for broadcast batches built on segmentio/kafka-go
// ABOUTME: Writes one keyed message per news item so downstream consumers can compact by link

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-news-api/core/domain"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher mirrors news batches to a Kafka topic
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher creates a synchronous producer for topic
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
		topic: topic,
	}
}

// Publish writes every item of the batch in one call
func (p *Publisher) Publish(ctx context.Context, items []domain.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	msgs, err := encodeBatch(items, time.Now())
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the producer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encodeBatch(items []domain.NewsItem, now time.Time) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(items))
	for _, item := range items {
		value, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode item %s: %w", item.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(item.Link),
			Value: value,
			Time:  now,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(domain.MessageTypeNewsUpdate)},
				{Key: "source", Value: []byte(item.Source)},
			},
		})
	}
	return msgs, nil
}
