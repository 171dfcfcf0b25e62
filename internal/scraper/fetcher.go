// Package scraper fetches the configured listing page, extracts headline,
// summary and link triples from it and hands them to the store.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mai-repo/Newscraper/internal/domain"
)

// maxPageBytes caps how much of a listing page is read.
const maxPageBytes = 10 << 20

// HTTPFetcher retrieves a page with a single GET. It never retries.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher wraps client. Timeouts and User-Agent come from the client.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch returns the body of url. Any failure, including a non-2xx status,
// is a *domain.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}
