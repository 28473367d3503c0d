// ABOUTME: Feed source adapter that fetches an RSS/Atom feed and yields topical articles
// ABOUTME: Applies the item limit, keyword filter, cursor and content enrichment

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"ai-news-api/core/domain"
	"ai-news-api/core/errors"
	"ai-news-api/core/interfaces"
	"ai-news-api/core/reader"
	"ai-news-api/pkg/config"
	feedtime "ai-news-api/pkg/utils/time"

	"github.com/mmcdole/gofeed"
)

// DefaultMaxItems is the number of newest feed entries considered per fetch
const DefaultMaxItems = 10

// FeedSource implements interfaces.Source for one RSS or Atom feed
type FeedSource struct {
	name     string
	url      string
	maxItems int
	filter   *KeywordFilter
	resolver interfaces.ContentResolver
	deps     interfaces.Dependencies
}

// NewFeedSource creates an adapter for cfg. resolver may be nil, in which
// case articles carry the feed snippet as content.
func NewFeedSource(cfg config.SourceConfig, resolver interfaces.ContentResolver, deps interfaces.Dependencies) *FeedSource {
	maxItems := cfg.MaxItems
	if maxItems < 0 {
		maxItems = DefaultMaxItems
	}
	return &FeedSource{
		name:     cfg.Name,
		url:      cfg.URL,
		maxItems: maxItems,
		filter:   NewKeywordFilter(cfg.Keywords),
		resolver: resolver,
		deps:     deps,
	}
}

// NewFromConfig builds one adapter per configured source, in configuration order
func NewFromConfig(sources []config.SourceConfig, resolver interfaces.ContentResolver, deps interfaces.Dependencies) []interfaces.Source {
	out := make([]interfaces.Source, 0, len(sources))
	for _, cfg := range sources {
		out = append(out, NewFeedSource(cfg, resolver, deps))
	}
	return out
}

// Name returns the configured source name
func (s *FeedSource) Name() string {
	return s.name
}

// FetchSince returns matching articles published strictly after cursor, oldest first
func (s *FeedSource) FetchSince(ctx context.Context, cursor *time.Time) ([]domain.Article, error) {
	feed, err := s.fetch(ctx)
	if err != nil {
		return nil, &errors.SourceUnavailableError{Source: s.name, Err: err}
	}

	candidates := s.collect(feed, cursor)

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, &errors.SourceUnavailableError{Source: s.name, Err: err}
		}
		s.enrich(ctx, &candidates[i])
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PublishedAt.Before(candidates[j].PublishedAt)
	})
	return candidates, nil
}

func (s *FeedSource) fetch(ctx context.Context) (*gofeed.Feed, error) {
	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, s.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode())
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty feed content")
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// collect converts dated feed entries, newest first, applying the item
// limit, the keyword filter and the cursor
func (s *FeedSource) collect(feed *gofeed.Feed, cursor *time.Time) []domain.Article {
	dated := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		article, ok := s.convert(item)
		if !ok {
			continue
		}
		dated = append(dated, article)
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].PublishedAt.After(dated[j].PublishedAt)
	})
	if s.maxItems > 0 && len(dated) > s.maxItems {
		dated = dated[:s.maxItems]
	}

	kept := make([]domain.Article, 0, len(dated))
	skipped := 0
	for _, article := range dated {
		if !s.filter.Match(article.Title, article.Content) {
			continue
		}
		if cursor != nil && !article.PublishedAt.After(*cursor) {
			skipped++
			continue
		}
		kept = append(kept, article)
	}

	s.debug("Collected feed entries", map[string]interface{}{
		"source":     s.name,
		"entries":    len(feed.Items),
		"considered": len(dated),
		"matched":    len(kept),
		"seen":       skipped,
	})
	return kept
}

func (s *FeedSource) convert(item *gofeed.Item) (domain.Article, bool) {
	if item == nil || item.Link == "" {
		return domain.Article{}, false
	}

	var published time.Time
	switch {
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	default:
		t, ok := feedtime.First(item.Published, item.Updated)
		if !ok {
			return domain.Article{}, false
		}
		published = t
	}

	snippet := item.Description
	if snippet == "" {
		snippet = item.Content
	}

	article := domain.Article{
		ID:          item.GUID,
		Title:       item.Title,
		Content:     reader.HTMLToText(snippet),
		Link:        item.Link,
		PublishedAt: published.UTC(),
		SourceName:  s.name,
	}
	if article.ID == "" {
		article.ID = item.Link
	}
	return article, article.IsValid()
}

// enrich replaces the snippet with resolved full text when available
func (s *FeedSource) enrich(ctx context.Context, article *domain.Article) {
	if s.resolver == nil {
		return
	}

	text, err := s.resolver.Resolve(ctx, article.Link)
	if err != nil || text == "" {
		fields := map[string]interface{}{"source": s.name, "link": article.Link}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.debug("Using feed snippet as content", fields)
		return
	}
	article.Content = text
}

func (s *FeedSource) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}
