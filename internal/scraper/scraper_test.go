package scraper_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/repository"
	"github.com/mai-repo/Newscraper/internal/scraper"
)

const targetURL = "https://news.example/most-popular/"

type staticFetcher struct {
	body []byte
	err  error
}

func (f staticFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.body, f.err
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) InsertBatch(ctx context.Context, items []domain.ExtractedArticle) ([]domain.Article, error) {
	args := m.Called(ctx, items)
	articles, _ := args.Get(0).([]domain.Article)
	return articles, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishArticlesScrapedAsync(sourceURL string, articles []domain.Article) {
	m.Called(sourceURL, articles)
}

type recordedRun struct {
	outcome             string
	extracted, inserted int
}

type fakeRecorder struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (r *fakeRecorder) ObserveScrape(outcome string, _ time.Duration, extracted, inserted int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{outcome, extracted, inserted})
}

func newService(f scraper.PageFetcher, store scraper.ArticleStore, opts ...scraper.Option) *scraper.Service {
	return scraper.NewService(f, scraper.NewExtractor(scraper.DefaultSelectors()), store, targetURL, logger.NewNop(), opts...)
}

func TestService_Scrape(t *testing.T) {
	t.Parallel()

	wantItems := []domain.ExtractedArticle{
		{Headline: "First headline", Summary: "First summary", Link: "https://news.example/1"},
		{Headline: "Second headline", Summary: "Second summary", Link: "https://news.example/2"},
	}
	stored := []domain.Article{
		{ID: 1, Headline: wantItems[0].Headline, Summary: wantItems[0].Summary, Link: wantItems[0].Link},
		{ID: 2, Headline: wantItems[1].Headline, Summary: wantItems[1].Summary, Link: wantItems[1].Link},
	}

	store := &mockStore{}
	store.On("InsertBatch", mock.Anything, wantItems).Return(stored, nil).Once()
	pub := &mockPublisher{}
	pub.On("PublishArticlesScrapedAsync", targetURL, stored).Once()
	rec := &fakeRecorder{}

	svc := newService(staticFetcher{body: []byte(twoArticlesHTML)}, store,
		scraper.WithPublisher(pub), scraper.WithRecorder(rec))

	got, err := svc.Scrape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stored, got)
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
	assert.Equal(t, []recordedRun{{scraper.OutcomeSuccess, 2, 2}}, rec.runs)
}

func TestService_Scrape_NoContainers(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	store.On("InsertBatch", mock.Anything, []domain.ExtractedArticle{}).Return([]domain.Article{}, nil).Once()
	pub := &mockPublisher{}

	svc := newService(staticFetcher{body: []byte("<html><body><p>maintenance</p></body></html>")}, store,
		scraper.WithPublisher(pub))

	got, err := svc.Scrape(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got)
	pub.AssertNotCalled(t, "PublishArticlesScrapedAsync", mock.Anything, mock.Anything)
}

func TestService_Scrape_FetchError(t *testing.T) {
	t.Parallel()

	fetchErr := &domain.FetchError{URL: targetURL, StatusCode: 502}
	store := &mockStore{}
	rec := &fakeRecorder{}

	_, err := newService(staticFetcher{err: fetchErr}, store, scraper.WithRecorder(rec)).Scrape(context.Background())

	assert.ErrorIs(t, err, fetchErr)
	store.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	assert.Equal(t, scraper.OutcomeFetchError, rec.runs[0].outcome)
}

func TestService_Scrape_IngestError(t *testing.T) {
	t.Parallel()

	ingestErr := &domain.IngestError{Err: errors.New("deadlock detected")}
	store := &mockStore{}
	store.On("InsertBatch", mock.Anything, mock.Anything).Return(nil, ingestErr)
	rec := &fakeRecorder{}

	got, err := newService(staticFetcher{body: []byte(twoArticlesHTML)}, store, scraper.WithRecorder(rec)).
		Scrape(context.Background())

	assert.Nil(t, got)
	var target *domain.IngestError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, recordedRun{scraper.OutcomeIngestError, 2, 0}, rec.runs[0])
}

// Scraping the same page twice stores every article twice; there is no
// deduplication key.
func TestService_Scrape_TwiceStoresDuplicates(t *testing.T) {
	t.Parallel()

	sqlDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	insertSQL := regexp.QuoteMeta(`INSERT INTO news (headline, summary, link) VALUES ($1, $2, $3) RETURNING id`)
	nextID := 0
	for range 2 {
		dbMock.ExpectBegin()
		prep := dbMock.ExpectPrepare(insertSQL)
		for _, n := range []string{"First", "Second"} {
			nextID++
			prep.ExpectQuery().
				WithArgs(n+" headline", n+" summary", sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(nextID))
		}
		dbMock.ExpectCommit()
	}

	repo := repository.NewArticleRepository(sqlx.NewDb(sqlDB, "postgres"))
	svc := newService(staticFetcher{body: []byte(twoArticlesHTML)}, repo)

	first, err := svc.Scrape(context.Background())
	require.NoError(t, err)
	second, err := svc.Scrape(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Headline, second[0].Headline)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

type serialCheckStore struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *serialCheckStore) InsertBatch(_ context.Context, items []domain.ExtractedArticle) ([]domain.Article, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	for {
		seen := s.maxSeen.Load()
		if n <= seen || s.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	return make([]domain.Article, len(items)), nil
}

func TestService_Scrape_SerializesWrites(t *testing.T) {
	t.Parallel()

	store := &serialCheckStore{}
	svc := newService(staticFetcher{body: []byte(twoArticlesHTML)}, store)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Scrape(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), store.maxSeen.Load())
}
