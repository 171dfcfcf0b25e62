package scraper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
)

// Scrape outcomes reported to the Recorder.
const (
	OutcomeSuccess     = "success"
	OutcomeFetchError  = "fetch_error"
	OutcomeIngestError = "ingest_error"
)

// PageFetcher retrieves raw markup.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ArticleStore persists a scrape batch atomically.
type ArticleStore interface {
	InsertBatch(ctx context.Context, items []domain.ExtractedArticle) ([]domain.Article, error)
}

// Publisher announces stored articles. It must not block the scrape.
type Publisher interface {
	PublishArticlesScrapedAsync(sourceURL string, articles []domain.Article)
}

// Recorder observes scrape runs.
type Recorder interface {
	ObserveScrape(outcome string, duration time.Duration, extracted, inserted int)
}

// Service runs fetch, extract and ingest for the configured target.
type Service struct {
	fetcher   PageFetcher
	extractor *Extractor
	store     ArticleStore
	targetURL string
	log       logger.Logger
	publisher Publisher
	recorder  Recorder

	// writeMu keeps at most one batch insert in flight per process.
	writeMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher publishes an event after every stored batch.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRecorder reports every run to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates a Service scraping targetURL.
func NewService(
	fetcher PageFetcher,
	extractor *Extractor,
	store ArticleStore,
	targetURL string,
	log logger.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		targetURL: targetURL,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TargetURL returns the page this service scrapes.
func (s *Service) TargetURL() string {
	return s.targetURL
}

// Scrape fetches the target, extracts every triple and stores them in one
// batch. It returns the stored articles. Unparseable markup counts as an
// empty page. Fetch failures are *domain.FetchError and store failures are
// *domain.IngestError.
func (s *Service) Scrape(ctx context.Context) ([]domain.Article, error) {
	start := time.Now()

	markup, err := s.fetcher.Fetch(ctx, s.targetURL)
	if err != nil {
		s.observe(OutcomeFetchError, start, 0, 0)
		return nil, err
	}

	items, err := s.extractor.ExtractArticles(markup)
	if err != nil {
		var parseErr *domain.ParseError
		if !errors.As(err, &parseErr) {
			s.observe(OutcomeFetchError, start, 0, 0)
			return nil, err
		}
		s.log.Warn("Listing page unparseable, storing nothing",
			logger.String("url", s.targetURL), logger.Error(err))
		items = nil
	}

	inserted, err := s.insert(ctx, items)
	if err != nil {
		s.observe(OutcomeIngestError, start, len(items), 0)
		return nil, err
	}

	s.observe(OutcomeSuccess, start, len(items), len(inserted))
	s.log.Info("Scrape complete",
		logger.String("url", s.targetURL),
		logger.Int("extracted", len(items)),
		logger.Int("inserted", len(inserted)),
		logger.Duration("duration", time.Since(start)),
	)

	if s.publisher != nil && len(inserted) > 0 {
		s.publisher.PublishArticlesScrapedAsync(s.targetURL, inserted)
	}

	return inserted, nil
}

func (s *Service) insert(ctx context.Context, items []domain.ExtractedArticle) ([]domain.Article, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.store.InsertBatch(ctx, items)
}

func (s *Service) observe(outcome string, start time.Time, extracted, inserted int) {
	if s.recorder != nil {
		s.recorder.ObserveScrape(outcome, time.Since(start), extracted, inserted)
	}
}
