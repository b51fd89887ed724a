package collector

import (
	"context"

	"StockPulse/internal/model"
)

// PriceFetcher defines the interface for fetching daily closes.
// Implementations return points newest-first.
type PriceFetcher interface {
	FetchDaily(ctx context.Context, symbol string) (*model.PriceSeries, error)
	Name() string
}
