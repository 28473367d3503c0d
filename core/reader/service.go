// ABOUTME: Content resolver that turns an article URL into readable plain text
// ABOUTME: Uses go-readability first and falls back to CSS selectors with goquery

package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ai-news-api/core/errors"
	"ai-news-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	// MinContentLength is the shortest text accepted as article content
	MinContentLength = 100

	// MaxContentLength caps the text handed to the summarizer
	MaxContentLength = 2000

	maxPageBytes = 5 << 20
	cacheTTL     = 6 * time.Hour
)

// Selector groups tried in order when readability yields too little text
var fallbackSelectors = []string{
	".article-content, .article-body, .entry-content, .post-content",
	"article p, .article-content p, .entry-content p",
	`div[class*="content"]`,
}

// Site chrome that survives extraction on some publishers
var boilerplate = []string{
	"Subscribe to TechCrunch",
	"Follow us on Twitter",
	"Sign up for TechCrunch",
}

var whitespace = regexp.MustCompile(`\s+`)

// Service resolves article content over HTTP, caching successful results per URL
type Service struct {
	httpClient interfaces.HTTPClient
	cache      interfaces.Cache
	logger     interfaces.Logger
}

// NewService creates a resolver. cache may be nil.
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		httpClient: deps.HTTPClient,
		cache:      deps.Cache,
		logger:     deps.Logger,
	}
}

// Resolve downloads pageURL and returns its cleaned article text
func (s *Service) Resolve(ctx context.Context, pageURL string) (string, error) {
	cacheKey := "reader:" + pageURL
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			return string(data), nil
		}
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return "", &errors.ExtractionError{URL: pageURL, Reason: "invalid url", Err: err}
	}

	resp, err := s.httpClient.Get(ctx, pageURL)
	if err != nil {
		return "", &errors.ExtractionError{URL: pageURL, Reason: "fetch failed", Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &errors.ExtractionError{URL: pageURL, Reason: fmt.Sprintf("status %d", resp.StatusCode())}
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body(), maxPageBytes))
	if err != nil {
		return "", &errors.ExtractionError{URL: pageURL, Reason: "read failed", Err: err}
	}

	text := s.extract(page, parsed)
	if len([]rune(text)) < MinContentLength {
		return "", &errors.ExtractionError{URL: pageURL, Reason: "content too short"}
	}

	text = Truncate(text, MaxContentLength)

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, []byte(text), cacheTTL)
	}
	return text, nil
}

func (s *Service) extract(page []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(page), pageURL)
	if err == nil {
		if text := Clean(article.TextContent); len([]rune(text)) >= MinContentLength {
			return text
		}
	} else if s.logger != nil {
		s.logger.Debug("Readability extraction failed, trying selectors", map[string]interface{}{
			"url":   pageURL.String(),
			"error": err.Error(),
		})
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	return extractWithSelectors(doc)
}

// extractWithSelectors returns the first selector group that yields enough text
func extractWithSelectors(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, aside").Remove()

	for _, selector := range fallbackSelectors {
		var parts []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if t := strings.TrimSpace(sel.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if text := Clean(strings.Join(parts, " ")); len([]rune(text)) >= MinContentLength {
			return text
		}
	}
	return ""
}

// Clean strips publisher boilerplate and collapses whitespace
func Clean(text string) string {
	for _, phrase := range boilerplate {
		text = strings.ReplaceAll(text, phrase, "")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// Truncate shortens text to max runes, marking the cut with "..."
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// HTMLToText converts a feed snippet to plain text
func HTMLToText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return Clean(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Clean(fragment)
	}
	return Clean(doc.Text())
}
