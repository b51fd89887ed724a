package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single trading day's record. Only the close is used.
type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// PriceSeries holds daily points newest-first, in the order the provider delivered them.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Direction is the sign of an overnight move.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// Glyph returns the marker embedded in outbound messages.
func (d Direction) Glyph() string {
	if d == DirectionUp {
		return "🔺"
	}
	return "🔻"
}

// ChangeResult is the move between the two newest closes.
type ChangeResult struct {
	Latest    decimal.Decimal
	Previous  decimal.Decimal
	Percent   decimal.Decimal // always >= 0
	Direction Direction
}
