package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockPulse/internal/model"

	"github.com/shopspring/decimal"
)

// MockFetcher returns fixed closes for development and testing.
type MockFetcher struct {
	Closes []decimal.Decimal // newest-first
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string) (*model.PriceSeries, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now()
	points := make([]model.PricePoint, len(m.Closes))
	for i, c := range m.Closes {
		points[i] = model.PricePoint{Date: now.AddDate(0, 0, -(i + 1)), Close: c}
	}
	return &model.PriceSeries{Symbol: symbol, Points: points, FetchedAt: now}, nil
}

// Collector fetches the daily series for one symbol.
type Collector struct {
	Fetcher PriceFetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher PriceFetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// Collect fetches the daily series. Provider ordering is kept as-is.
func (c *Collector) Collect(ctx context.Context) (*model.PriceSeries, error) {
	series, err := c.Fetcher.FetchDaily(ctx, c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch daily prices from %s: %w", c.Fetcher.Name(), err)
	}
	log.Printf("[INFO] fetched %d daily points for %s from %s", len(series.Points), c.Symbol, c.Fetcher.Name())
	return series, nil
}
