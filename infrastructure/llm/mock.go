// ABOUTME: Deterministic offline summary provider used when no API key is configured
// ABOUTME: Picks one canned summary per title so repeated runs produce identical output

package llm

import (
	"context"
	"unicode/utf16"

	"ai-news-api/core/domain"
)

var cannedSummaries = []string{
	"AI breakthrough: New development in artificial intelligence technology",
	"Tech innovation: Latest advancement in machine learning systems",
	"AI update: Significant progress in neural network research",
	"Tech news: Important development in AI and automation",
	"AI advancement: New capabilities in artificial intelligence",
	"Tech breakthrough: Latest innovation in AI technology",
	"AI development: Progress in machine learning applications",
	"Tech update: New features in AI-powered systems",
}

// Mock implements interfaces.SummaryProvider without network access
type Mock struct{}

// NewMock creates the offline provider
func NewMock() *Mock {
	return &Mock{}
}

// Summarize returns the canned summary selected by the article title
func (m *Mock) Summarize(ctx context.Context, article domain.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return cannedSummaries[titleIndex(article.Title)], nil
}

// titleIndex hashes the UTF-16 code units of title with 32-bit wraparound (h*31 + c)
func titleIndex(title string) int {
	var h int32
	for _, unit := range utf16.Encode([]rune(title)) {
		h = (h << 5) - h + int32(unit)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return int(n % int64(len(cannedSummaries)))
}
