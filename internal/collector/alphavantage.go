package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockPulse/internal/model"

	"github.com/shopspring/decimal"
)

const (
	alphaVantageURL = "https://www.alphavantage.co/query"
	dailySeriesKey  = "Time Series (Daily)"
)

// AlphaVantageFetcher implements PriceFetcher using the Alpha Vantage TIME_SERIES_DAILY endpoint.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a fetcher using the given client.
func NewAlphaVantageFetcher(apiKey string, client *http.Client) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{
		BaseURL: alphaVantageURL,
		APIKey:  apiKey,
		Client:  client,
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avBar is one dated entry of the daily series. Other fields are ignored.
type avBar struct {
	Close string `json:"4. close"`
}

func (f *AlphaVantageFetcher) FetchDaily(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("apikey", f.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", f.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	points, err := decodeDailySeries(resp.Body)
	if err != nil {
		return nil, err
	}
	return &model.PriceSeries{Symbol: symbol, Points: points, FetchedAt: time.Now()}, nil
}

// decodeDailySeries walks the response with a token decoder so the date keys keep
// the order the provider sent them in (newest-first).
func decodeDailySeries(r io.Reader) ([]model.PricePoint, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}

	var (
		points  []model.PricePoint
		found   bool
		message string
	)
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("alphavantage decode: %w", err)
		}
		switch key {
		case dailySeriesKey:
			found = true
			points, err = decodeSeriesObject(dec)
			if err != nil {
				return nil, err
			}
		case "Error Message", "Note", "Information":
			if err := dec.Decode(&message); err != nil {
				return nil, fmt.Errorf("alphavantage decode %q: %w", key, err)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("alphavantage decode %q: %w", key, err)
			}
		}
	}

	if !found {
		if message != "" {
			return nil, fmt.Errorf("alphavantage api error: %s", message)
		}
		return nil, fmt.Errorf("alphavantage: response missing %q", dailySeriesKey)
	}
	return points, nil
}

func decodeSeriesObject(dec *json.Decoder) ([]model.PricePoint, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("alphavantage decode series: %w", err)
	}
	var points []model.PricePoint
	for dec.More() {
		day, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("alphavantage decode series: %w", err)
		}
		var bar avBar
		if err := dec.Decode(&bar); err != nil {
			return nil, fmt.Errorf("alphavantage decode bar %s: %w", day, err)
		}
		if bar.Close == "" {
			return nil, fmt.Errorf("alphavantage: bar %s missing \"4. close\"", day)
		}
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad date %q: %w", day, err)
		}
		closePrice, err := decimal.NewFromString(bar.Close)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: bad close %q on %s: %w", bar.Close, day, err)
		}
		points = append(points, model.PricePoint{Date: date, Close: closePrice})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("alphavantage decode series: %w", err)
	}
	return points, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
