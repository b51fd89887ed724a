package notifier

import (
	"fmt"
	"strings"

	"StockPulse/internal/model"
)

// NoDescription replaces an absent or empty article description.
const NoDescription = "No description available."

// FormatArticles builds one message per article, in article order.
func FormatArticles(articles []model.NewsArticle, symbol string, change model.ChangeResult) []model.OutboundMessage {
	messages := make([]model.OutboundMessage, 0, len(articles))
	for _, a := range articles {
		messages = append(messages, FormatArticle(a, symbol, change))
	}
	return messages
}

// FormatArticle formats a single headline alert.
func FormatArticle(a model.NewsArticle, symbol string, change model.ChangeResult) model.OutboundMessage {
	desc := a.Description
	if strings.TrimSpace(desc) == "" {
		desc = NoDescription
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s%s%%\n", symbol, change.Direction.Glyph(), change.Percent.StringFixed(2)))
	b.WriteString(fmt.Sprintf("📰 Headline: %s\n", a.Title))
	b.WriteString(fmt.Sprintf("📄 Brief: %s", desc))
	return model.OutboundMessage(b.String())
}

// FormatChange formats the console line for the computed move.
func FormatChange(symbol string, change model.ChangeResult) string {
	return fmt.Sprintf("%s price change: %s%% %s (%s -> %s)",
		symbol, change.Percent.StringFixed(2), change.Direction.Glyph(),
		change.Previous.String(), change.Latest.String())
}
