package pipeline

import "ai-news-api/core/domain"

// Deduplicate keeps the first article seen for each link, preserving input order
func Deduplicate(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]domain.Article, 0, len(articles))

	for _, article := range articles {
		if _, dup := seen[article.Link]; dup {
			continue
		}
		seen[article.Link] = struct{}{}
		out = append(out, article)
	}
	return out
}
