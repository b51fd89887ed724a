// Package pipeline runs one price check and, when the move is large enough,
// relays related headlines to the recipient.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"StockPulse/internal/calculator"
	"StockPulse/internal/collector"
	"StockPulse/internal/model"
	"StockPulse/internal/news"
	"StockPulse/internal/notifier"

	"github.com/shopspring/decimal"
)

// Pipeline wires the steps of a single run.
type Pipeline struct {
	Collector   *collector.Collector
	News        news.Fetcher
	Transport   notifier.Transport
	Company     string
	Threshold   decimal.Decimal
	MaxArticles int
}

// Report describes what a run did. On error it holds whatever completed first.
type Report struct {
	Change    model.ChangeResult
	Triggered bool
	Articles  int
	Receipts  []notifier.Receipt
}

// New creates a Pipeline.
func New(col *collector.Collector, nf news.Fetcher, tr notifier.Transport, company string, threshold decimal.Decimal, maxArticles int) *Pipeline {
	return &Pipeline{
		Collector:   col,
		News:        nf,
		Transport:   tr,
		Company:     company,
		Threshold:   threshold,
		MaxArticles: maxArticles,
	}
}

// Run executes fetch prices, compute change, fetch news, format and send, in
// that order. Any error aborts the rest of the run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	symbol := p.Collector.Symbol

	series, err := p.Collector.Collect(ctx)
	if err != nil {
		return report, err
	}

	change, err := calculator.CalculateChange(series)
	if err != nil {
		return report, fmt.Errorf("compute change for %s: %w", symbol, err)
	}
	report.Change = change
	log.Printf("[INFO] %s", notifier.FormatChange(symbol, change))

	if !calculator.ExceedsThreshold(change.Percent, p.Threshold) {
		log.Printf("[INFO] no major change (threshold %s%%), no SMS sent", p.Threshold.String())
		return report, nil
	}
	report.Triggered = true
	log.Printf("[INFO] significant change detected, fetching news for %q from %s", p.Company, p.News.Name())

	limit := p.MaxArticles
	if limit <= 0 || limit > news.MaxArticles {
		limit = news.MaxArticles
	}
	articles, err := p.News.Fetch(ctx, p.Company, limit)
	if err != nil {
		return report, fmt.Errorf("fetch news for %q: %w", p.Company, err)
	}
	report.Articles = len(articles)
	if len(articles) == 0 {
		log.Printf("[INFO] no articles found for %q, nothing to send", p.Company)
		return report, nil
	}

	messages := notifier.FormatArticles(articles, symbol, change)
	receipts, err := notifier.SendAll(ctx, p.Transport, messages)
	report.Receipts = receipts
	if err != nil {
		return report, err
	}
	log.Printf("[INFO] %d message(s) sent via %s", len(receipts), p.Transport.Name())
	return report, nil
}
