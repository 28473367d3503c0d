// ABOUTME: Article domain model represents a single feed entry selected for summarization
// ABOUTME: Summary is the per-article result handed back by the summarization collaborator

package domain

import "time"

// Article represents a topical feed entry fetched by a source adapter.
// Link is the identity key used for deduplication across sources.
type Article struct {
	// ID is the feed GUID, or the link when the feed provides none
	ID string

	// Title is the entry headline
	Title string

	// Content is the resolved article text, or the feed snippet when resolution failed
	Content string

	// Link is the canonical URL of the article
	Link string

	// PublishedAt is when the entry was published upstream
	PublishedAt time.Time

	// SourceName identifies the adapter that produced the article
	SourceName string
}

// IsValid checks if the article carries the fields the pipeline relies on
func (a *Article) IsValid() bool {
	if a.Link == "" {
		return false
	}

	if a.PublishedAt.IsZero() {
		return false
	}

	return true
}

// Summary is the summarizer output for one article
type Summary struct {
	OriginalTitle string
	Summary       string
	Link          string
	PublishedAt   time.Time
	Source        string
}

// NewSummary builds a summary for the given article
func NewSummary(article Article, text string) Summary {
	return Summary{
		OriginalTitle: article.Title,
		Summary:       text,
		Link:          article.Link,
		PublishedAt:   article.PublishedAt,
		Source:        article.SourceName,
	}
}
