package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"StockPulse/internal/model"

	"github.com/mmcdole/gofeed"
)

// DefaultSearchFeed is a keyless news search feed. %s receives the escaped query.
const DefaultSearchFeed = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

// RSSFetcher searches headlines through an RSS/Atom search feed.
type RSSFetcher struct {
	URLTemplate string
	parser      *gofeed.Parser
}

func NewRSSFetcher(urlTemplate string, client *http.Client) *RSSFetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultSearchFeed
	}
	p := gofeed.NewParser()
	p.Client = client
	return &RSSFetcher{URLTemplate: urlTemplate, parser: p}
}

func (f *RSSFetcher) Name() string { return "rss" }

func (f *RSSFetcher) Fetch(ctx context.Context, query string, limit int) ([]model.NewsArticle, error) {
	feedURL := fmt.Sprintf(f.URLTemplate, url.QueryEscape(`"`+query+`"`))
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}

	articles := make([]model.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		art := model.NewsArticle{
			Title:       strings.TrimSpace(item.Title),
			Description: stripHTML(item.Description),
			URL:         item.Link,
		}
		if item.PublishedParsed != nil {
			art.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			art.PublishedAt = *item.UpdatedParsed
		}
		articles = append(articles, art)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return truncate(articles, limit), nil
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
