package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"StockPulse/internal/model"
)

const newsAPIURL = "https://newsapi.org/v2/everything"

// NewsAPIFetcher searches headlines via the NewsAPI "everything" endpoint.
type NewsAPIFetcher struct {
	BaseURL  string
	APIKey   string
	Language string
	Client   *http.Client
}

func NewNewsAPIFetcher(apiKey string, client *http.Client) *NewsAPIFetcher {
	return &NewsAPIFetcher{
		BaseURL:  newsAPIURL,
		APIKey:   apiKey,
		Language: "en",
		Client:   client,
	}
}

func (f *NewsAPIFetcher) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		URL         string  `json:"url"`
		PublishedAt string  `json:"publishedAt"`
	} `json:"articles"`
}

func (f *NewsAPIFetcher) Fetch(ctx context.Context, query string, limit int) ([]model.NewsArticle, error) {
	params := url.Values{}
	params.Set("apiKey", f.APIKey)
	params.Set("qInTitle", query)
	params.Set("language", f.Language)
	params.Set("sortBy", "publishedAt")
	if limit > 0 {
		params.Set("pageSize", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", f.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}

	var result newsAPIResponse
	decodeErr := json.Unmarshal(body, &result)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && result.Message != "" {
			return nil, fmt.Errorf("newsapi: status %d, %s: %s", resp.StatusCode, result.Code, result.Message)
		}
		return nil, fmt.Errorf("newsapi: status %d, body: %s", resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("newsapi decode: %w", decodeErr)
	}
	if result.Status == "error" {
		return nil, fmt.Errorf("newsapi api error: %s: %s", result.Code, result.Message)
	}
	if result.Articles == nil {
		return nil, fmt.Errorf("newsapi: response missing \"articles\"")
	}

	raw := result.Articles
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	articles := make([]model.NewsArticle, 0, len(raw))
	for i, a := range raw {
		if a.Title == nil {
			return nil, fmt.Errorf("newsapi: article %d missing \"title\"", i)
		}
		art := model.NewsArticle{
			Title:  *a.Title,
			URL:    a.URL,
			Source: a.Source.Name,
		}
		if a.Description != nil {
			art.Description = *a.Description
		}
		if ts, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			art.PublishedAt = ts
		}
		articles = append(articles, art)
	}
	return articles, nil
}
