package calculator

import (
	"errors"
	"testing"

	"StockPulse/internal/model"

	"github.com/shopspring/decimal"
)

func series(closes ...string) *model.PriceSeries {
	s := &model.PriceSeries{Symbol: "TSLA"}
	for _, c := range closes {
		s.Points = append(s.Points, model.PricePoint{Close: decimal.RequireFromString(c)})
	}
	return s
}

func TestCalculateChange(t *testing.T) {
	tests := []struct {
		name    string
		closes  []string
		percent string
		dir     model.Direction
	}{
		{"rise", []string{"110", "100"}, "10", model.DirectionUp},
		{"small rise", []string{"100.4", "100"}, "0.4", model.DirectionUp},
		{"fall", []string{"90", "100"}, "10", model.DirectionDown},
		{"flat reports down", []string{"100", "100"}, "0", model.DirectionDown},
		{"only newest two used", []string{"105", "100", "1", "5000"}, "5", model.DirectionUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateChange(series(tt.closes...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := decimal.RequireFromString(tt.percent)
			if !got.Percent.Equal(want) {
				t.Errorf("percent = %s, want %s", got.Percent, want)
			}
			if got.Direction != tt.dir {
				t.Errorf("direction = %s, want %s", got.Direction, tt.dir)
			}
			if got.Percent.IsNegative() {
				t.Errorf("percent must be non-negative, got %s", got.Percent)
			}
		})
	}
}

func TestCalculateChange_Errors(t *testing.T) {
	tests := []struct {
		name   string
		series *model.PriceSeries
		want   error
	}{
		{"nil series", nil, ErrInsufficientData},
		{"empty", series(), ErrInsufficientData},
		{"single point", series("100"), ErrInsufficientData},
		{"zero previous", series("100", "0"), ErrZeroPrice},
	}
	for _, tt := range tests {
		_, err := CalculateChange(tt.series)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestExceedsThreshold_Strict(t *testing.T) {
	one := decimal.NewFromInt(1)
	tests := []struct {
		percent string
		want    bool
	}{
		{"0.4", false},
		{"1", false},
		{"1.0000001", true},
		{"10", true},
	}
	for _, tt := range tests {
		if got := ExceedsThreshold(decimal.RequireFromString(tt.percent), one); got != tt.want {
			t.Errorf("ExceedsThreshold(%s, 1) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}
