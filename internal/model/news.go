package model

import "time"

// NewsArticle is a headline returned by a news provider.
type NewsArticle struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
}

// OutboundMessage is the text body of one SMS.
type OutboundMessage string
