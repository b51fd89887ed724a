// Package news retrieves recent headlines for a company.
package news

import (
	"context"

	"StockPulse/internal/model"
)

// MaxArticles is the most headlines a run will relay.
const MaxArticles = 3

// Fetcher returns up to limit articles matching query, most recent first.
type Fetcher interface {
	Fetch(ctx context.Context, query string, limit int) ([]model.NewsArticle, error)
	Name() string
}

// StaticFetcher returns a fixed article list for tests.
type StaticFetcher struct {
	Articles []model.NewsArticle
	Err      error
	Calls    int
}

func (s *StaticFetcher) Name() string { return "static" }

func (s *StaticFetcher) Fetch(_ context.Context, _ string, limit int) ([]model.NewsArticle, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return truncate(s.Articles, limit), nil
}

func truncate(articles []model.NewsArticle, limit int) []model.NewsArticle {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
