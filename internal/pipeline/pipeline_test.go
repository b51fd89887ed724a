package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"StockPulse/internal/collector"
	"StockPulse/internal/model"
	"StockPulse/internal/news"
	"StockPulse/internal/notifier"

	"github.com/shopspring/decimal"
)

type fakeTransport struct {
	sent   []string
	failAt int
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Send(_ context.Context, body string) (string, error) {
	if f.failAt == len(f.sent)+1 {
		return "", errors.New("message rejected")
	}
	f.sent = append(f.sent, body)
	return "queued", nil
}

func closes(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

var threeArticles = []model.NewsArticle{
	{Title: "One", Description: "first"},
	{Title: "Two", Description: "second"},
	{Title: "Three", Description: "third"},
	{Title: "Four", Description: "fourth"},
}

type fixture struct {
	prices *collector.MockFetcher
	news   *news.StaticFetcher
	tr     *fakeTransport
	p      *Pipeline
}

func newFixture(prices []decimal.Decimal, articles []model.NewsArticle) *fixture {
	f := &fixture{
		prices: &collector.MockFetcher{Closes: prices},
		news:   &news.StaticFetcher{Articles: articles},
		tr:     &fakeTransport{},
	}
	f.p = New(collector.NewCollector(f.prices, "TSLA"), f.news, f.tr, "Tesla Inc", decimal.NewFromInt(1), news.MaxArticles)
	return f
}

func TestRun_ScenarioA_RiseTriggers(t *testing.T) {
	f := newFixture(closes("110", "100"), threeArticles)
	report, err := f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Change.Percent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected 10%%, got %s", report.Change.Percent)
	}
	if report.Change.Direction != model.DirectionUp {
		t.Errorf("expected up, got %s", report.Change.Direction)
	}
	if !report.Triggered || f.news.Calls != 1 {
		t.Errorf("expected news path triggered once, triggered=%v calls=%d", report.Triggered, f.news.Calls)
	}
	if len(f.tr.sent) != 3 || len(report.Receipts) != 3 {
		t.Fatalf("expected 3 sends, got %d (receipts %d)", len(f.tr.sent), len(report.Receipts))
	}
	for i, title := range []string{"One", "Two", "Three"} {
		if !strings.Contains(f.tr.sent[i], "Headline: "+title) {
			t.Errorf("send %d out of order: %q", i, f.tr.sent[i])
		}
		if !strings.HasPrefix(f.tr.sent[i], "TSLA: 🔺10.00%") {
			t.Errorf("send %d has wrong header: %q", i, f.tr.sent[i])
		}
	}
}

func TestRun_ScenarioB_BelowThreshold(t *testing.T) {
	f := newFixture(closes("100.4", "100"), threeArticles)
	report, err := f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Change.Percent.Equal(decimal.RequireFromString("0.4")) {
		t.Errorf("expected 0.4%%, got %s", report.Change.Percent)
	}
	if report.Change.Direction != model.DirectionUp {
		t.Errorf("expected up, got %s", report.Change.Direction)
	}
	if report.Triggered || f.news.Calls != 0 || len(f.tr.sent) != 0 {
		t.Errorf("news path must not run: triggered=%v calls=%d sent=%d", report.Triggered, f.news.Calls, len(f.tr.sent))
	}
}

func TestRun_ExactlyAtThresholdDoesNotTrigger(t *testing.T) {
	f := newFixture(closes("101", "100"), threeArticles)
	report, err := f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Triggered || f.news.Calls != 0 {
		t.Errorf("1%% move at 1%% threshold must not trigger")
	}

	f = newFixture(closes("101.0001", "100"), threeArticles)
	report, err = f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Triggered {
		t.Errorf("move just above threshold must trigger")
	}
}

func TestRun_ScenarioC_FallUsesDownGlyph(t *testing.T) {
	f := newFixture(closes("90", "100"), threeArticles)
	report, err := f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Change.Direction != model.DirectionDown || !report.Change.Percent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected change %+v", report.Change)
	}
	if len(f.tr.sent) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(f.tr.sent))
	}
	for i, msg := range f.tr.sent {
		if !strings.Contains(msg, "🔻") || strings.Contains(msg, "🔺") {
			t.Errorf("send %d should carry only the down glyph: %q", i, msg)
		}
	}
}

func TestRun_ScenarioD_NoArticles(t *testing.T) {
	f := newFixture(closes("110", "100"), nil)
	report, err := f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Triggered || report.Articles != 0 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(f.tr.sent) != 0 {
		t.Errorf("expected no sends, got %d", len(f.tr.sent))
	}
}

func TestRun_ScenarioE_PriceFetchFails(t *testing.T) {
	f := newFixture(nil, threeArticles)
	f.prices.Err = errors.New("status 503")
	_, err := f.p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if f.news.Calls != 0 || len(f.tr.sent) != 0 {
		t.Errorf("later steps must not run: news calls=%d sent=%d", f.news.Calls, len(f.tr.sent))
	}
}

func TestRun_ScenarioF_MissingDescription(t *testing.T) {
	f := newFixture(closes("110", "100"), []model.NewsArticle{{Title: "Bare headline"}})
	if _, err := f.p.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.tr.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(f.tr.sent))
	}
	if !strings.HasSuffix(f.tr.sent[0], "📄 Brief: "+notifier.NoDescription) {
		t.Errorf("expected placeholder description, got %q", f.tr.sent[0])
	}
}

func TestRun_InsufficientPrices(t *testing.T) {
	f := newFixture(closes("110"), threeArticles)
	if _, err := f.p.Run(context.Background()); err == nil {
		t.Fatal("expected error for single price point")
	}
	if f.news.Calls != 0 {
		t.Error("news must not be fetched")
	}
}

func TestRun_NewsFailureAborts(t *testing.T) {
	f := newFixture(closes("110", "100"), nil)
	f.news.Err = errors.New("status 429")
	_, err := f.p.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Tesla Inc") {
		t.Errorf("expected wrapped news error, got %v", err)
	}
	if len(f.tr.sent) != 0 {
		t.Errorf("expected no sends, got %d", len(f.tr.sent))
	}
}

func TestRun_SendFailureStopsRemaining(t *testing.T) {
	f := newFixture(closes("110", "100"), threeArticles)
	f.tr.failAt = 2
	report, err := f.p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(f.tr.sent) != 1 || len(report.Receipts) != 1 {
		t.Errorf("expected exactly one message delivered before abort, sent=%d receipts=%d", len(f.tr.sent), len(report.Receipts))
	}
}

func TestRun_ArticleLimitCapped(t *testing.T) {
	f := newFixture(closes("110", "100"), threeArticles)
	f.p.MaxArticles = 10
	report, err := f.p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Articles != news.MaxArticles || len(f.tr.sent) != news.MaxArticles {
		t.Errorf("expected at most %d articles and sends, got %d and %d", news.MaxArticles, report.Articles, len(f.tr.sent))
	}
}
