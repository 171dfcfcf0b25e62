package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mai-repo/Newscraper/infrastructure/events"
)

func TestNewsEvent_MarshalJSON(t *testing.T) {
	t.Helper()

	event := events.NewsEvent{
		EventID:   uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		EventType: events.ArticlesScraped,
		Timestamp: time.Date(2026, 1, 29, 10, 30, 0, 0, time.UTC),
		Payload: events.ArticlesScrapedPayload{
			SourceURL:  "https://example.com/most-popular",
			Count:      2,
			ArticleIDs: []int64{7, 8},
		},
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440001", decoded["event_id"])
	assert.Equal(t, "ARTICLES_SCRAPED", decoded["event_type"])
	assert.Equal(t, "2026-01-29T10:30:00Z", decoded["timestamp"])

	payload, ok := decoded["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/most-popular", payload["source_url"])
	assert.InDelta(t, 2, payload["count"], 0)
	assert.Equal(t, []any{float64(7), float64(8)}, payload["article_ids"])
}
