package calculator

import (
	"errors"

	"StockPulse/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientData is returned when fewer than two closes are available.
	ErrInsufficientData = errors.New("not enough data for change calculation: need at least 2 price points")
	// ErrZeroPrice is returned when the previous close is zero.
	ErrZeroPrice = errors.New("previous close is zero")
)

var hundred = decimal.NewFromInt(100)

// CalculateChange computes the percentage move between the two newest closes.
// Points are expected newest-first. Equal closes report DirectionDown.
func CalculateChange(series *model.PriceSeries) (model.ChangeResult, error) {
	if series == nil || len(series.Points) < 2 {
		return model.ChangeResult{}, ErrInsufficientData
	}
	latest := series.Points[0].Close
	previous := series.Points[1].Close
	if previous.IsZero() {
		return model.ChangeResult{}, ErrZeroPrice
	}

	percent := latest.Sub(previous).Abs().Div(previous).Mul(hundred)

	dir := model.DirectionDown
	if latest.GreaterThan(previous) {
		dir = model.DirectionUp
	}

	return model.ChangeResult{
		Latest:    latest,
		Previous:  previous,
		Percent:   percent,
		Direction: dir,
	}, nil
}

// ExceedsThreshold reports whether percent is strictly greater than threshold.
func ExceedsThreshold(percent, threshold decimal.Decimal) bool {
	return percent.GreaterThan(threshold)
}
