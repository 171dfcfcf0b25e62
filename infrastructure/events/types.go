// Package events provides the event types the scraper publishes to Redis Streams.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStreamName is the Redis stream scrape events go to unless configured otherwise.
const DefaultStreamName = "news:events"

// EventType represents the type of news event.
type EventType string

const (
	// ArticlesScraped indicates a scrape stored one or more articles.
	ArticlesScraped EventType = "ARTICLES_SCRAPED"
)

// NewsEvent is the envelope for all news events.
type NewsEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// ArticlesScrapedPayload contains data for ARTICLES_SCRAPED events.
type ArticlesScrapedPayload struct {
	SourceURL  string  `json:"source_url"`
	Count      int     `json:"count"`
	ArticleIDs []int64 `json:"article_ids"`
}
