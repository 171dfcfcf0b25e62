// Package events publishes scrape events to Redis Streams.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	infraevents "github.com/mai-repo/Newscraper/infrastructure/events"
	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
)

// asyncPublishTimeout is the context timeout for async publish operations.
const asyncPublishTimeout = 5 * time.Second

// Publisher publishes news events to a Redis stream.
type Publisher struct {
	client *redis.Client
	stream string
	log    infralogger.Logger
}

// NewPublisher creates a new event publisher writing to stream.
// Returns nil if client is nil.
func NewPublisher(client *redis.Client, stream string, log infralogger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	if stream == "" {
		stream = infraevents.DefaultStreamName
	}
	return &Publisher{
		client: client,
		stream: stream,
		log:    log,
	}
}

// Publish sends an event to the Redis stream.
func (p *Publisher) Publish(ctx context.Context, event infraevents.NewsEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				infralogger.String("event_type", string(event.EventType)),
				infralogger.String("stream", p.stream),
				infralogger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published news event",
			infralogger.String("event_type", string(event.EventType)),
			infralogger.String("stream_id", result.Val()),
		)
	}

	return nil
}

// ArticlesScrapedEvent builds the event announcing a stored scrape batch.
func ArticlesScrapedEvent(sourceURL string, articles []domain.Article) infraevents.NewsEvent {
	return infraevents.NewsEvent{
		EventType: infraevents.ArticlesScraped,
		Payload: infraevents.ArticlesScrapedPayload{
			SourceURL:  sourceURL,
			Count:      len(articles),
			ArticleIDs: lo.Map(articles, func(a domain.Article, _ int) int64 { return a.ID }),
		},
	}
}

// PublishArticlesScrapedAsync announces a stored scrape batch without
// blocking the caller. The write is bounded by asyncPublishTimeout.
func (p *Publisher) PublishArticlesScrapedAsync(sourceURL string, articles []domain.Article) {
	p.PublishAsync(ArticlesScrapedEvent(sourceURL, articles))
}

// PublishAsync publishes an event asynchronously.
// Errors are logged but not returned.
func (p *Publisher) PublishAsync(event infraevents.NewsEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				infralogger.String("event_type", string(event.EventType)),
				infralogger.Error(err),
			)
		}
	}()
}
