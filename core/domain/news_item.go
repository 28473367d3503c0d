// ABOUTME: NewsItem is the delivery form of a summarized article sent to real-time clients
// ABOUTME: Message wraps news items and notices in the JSON envelope used on the socket

package domain

import "time"

// NewsItemType is the only item type produced by the pipeline
const NewsItemType = "ai"

// Message types on the real-time channel
const (
	MessageTypeConnection = "connection"
	MessageTypeNewsUpdate = "news_update"
	MessageTypeSystem     = "system"
)

// NewsItem is a formatted summary ready for broadcast
type NewsItem struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	OriginalTitle string    `json:"originalTitle"`
	Link          string    `json:"link"`
	Source        string    `json:"source"`
}

// NewNewsItem formats a summary into its wire form
func NewNewsItem(s Summary) NewsItem {
	return NewsItem{
		ID:            s.Link,
		Type:          NewsItemType,
		Content:       s.Summary,
		Timestamp:     s.PublishedAt.UTC(),
		OriginalTitle: s.OriginalTitle,
		Link:          s.Link,
		Source:        s.Source,
	}
}

// Message is one JSON object sent to a connected client
type Message struct {
	Type      string     `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Message   string     `json:"message,omitempty"`
	Data      []NewsItem `json:"data,omitempty"`
}

// NewConnectionMessage builds the acknowledgement sent right after a client connects
func NewConnectionMessage(text string, now time.Time) Message {
	return Message{Type: MessageTypeConnection, Timestamp: now.UTC(), Message: text}
}

// NewNewsUpdateMessage builds a batch message
func NewNewsUpdateMessage(items []NewsItem, now time.Time) Message {
	return Message{Type: MessageTypeNewsUpdate, Timestamp: now.UTC(), Data: items}
}

// NewSystemMessage builds a notice addressed to every client
func NewSystemMessage(text string, now time.Time) Message {
	return Message{Type: MessageTypeSystem, Timestamp: now.UTC(), Message: text}
}
