// ABOUTME: Batch summarizer that paces provider calls and caches results per link
// ABOUTME: Failed articles are logged and left out of the result

package summary

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-news-api/core/domain"
	apperrors "ai-news-api/core/errors"
	"ai-news-api/core/interfaces"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

var errEmptySummary = errors.New("provider returned an empty summary")

// Options tunes the summarizer
type Options struct {
	// Rate is provider calls per second; 0 disables pacing
	Rate float64

	// CacheSize bounds the link -> summary cache; 0 disables it
	CacheSize int

	// Timeout bounds each provider call
	Timeout time.Duration
}

// Service implements interfaces.Summarizer over a SummaryProvider
type Service struct {
	provider interfaces.SummaryProvider
	limiter  *rate.Limiter
	cache    *lru.Cache[string, string]
	timeout  time.Duration
	logger   interfaces.Logger
}

// NewService wraps provider with pacing, caching and a per-call timeout
func NewService(provider interfaces.SummaryProvider, opts Options, logger interfaces.Logger) (*Service, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	s := &Service{
		provider: provider,
		timeout:  opts.Timeout,
		logger:   logger,
	}

	if opts.Rate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New[string, string](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	return s, nil
}

// SummarizeMany summarizes articles in order. The result holds one summary per
// article that succeeded; a cancelled context ends the batch early.
func (s *Service) SummarizeMany(ctx context.Context, articles []domain.Article) []domain.Summary {
	summaries := make([]domain.Summary, 0, len(articles))

	for _, article := range articles {
		if ctx.Err() != nil {
			break
		}

		if text, ok := s.cached(article.Link); ok {
			summaries = append(summaries, domain.NewSummary(article, text))
			continue
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				break
			}
		}

		text, err := s.summarizeOne(ctx, article)
		if err != nil {
			s.logger.Warn("Skipping article", map[string]interface{}{
				"link":  article.Link,
				"title": article.Title,
				"error": err.Error(),
			})
			continue
		}

		if s.cache != nil {
			s.cache.Add(article.Link, text)
		}
		summaries = append(summaries, domain.NewSummary(article, text))
	}

	s.logger.Info("Summarized batch", map[string]interface{}{
		"requested":  len(articles),
		"summarized": len(summaries),
	})
	return summaries
}

func (s *Service) summarizeOne(ctx context.Context, article domain.Article) (string, error) {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.provider.Summarize(callCtx, article)
	if err != nil {
		return "", &apperrors.SummarizationError{Link: article.Link, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &apperrors.SummarizationError{Link: article.Link, Err: errEmptySummary}
	}
	return text, nil
}

func (s *Service) cached(link string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	return s.cache.Get(link)
}

// Len reports the number of cached summaries
func (s *Service) Len() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}
