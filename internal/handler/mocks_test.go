package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/verify"
)

type mockScraper struct{ mock.Mock }

func (m *mockScraper) Scrape(ctx context.Context) ([]domain.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

type mockArticles struct{ mock.Mock }

func (m *mockArticles) ListPage(ctx context.Context, page, perPage int) (domain.Page, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).(domain.Page), args.Error(1)
}

func (m *mockArticles) FilterByKeyword(ctx context.Context, keywords []string) ([]domain.Article, error) {
	args := m.Called(ctx, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *mockArticles) Search(ctx context.Context, headlineQuery, summaryQuery string) ([]domain.Article, error) {
	args := m.Called(ctx, headlineQuery, summaryQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *mockArticles) UpdateHeadline(ctx context.Context, oldHeadline, newHeadline string) (int64, error) {
	args := m.Called(ctx, oldHeadline, newHeadline)
	return args.Get(0).(int64), args.Error(1)
}

type mockFavorites struct{ mock.Mock }

func (m *mockFavorites) ListByUser(ctx context.Context, username string) ([]domain.FavoriteArticle, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FavoriteArticle), args.Error(1)
}

func (m *mockFavorites) Add(ctx context.Context, username string, newsID int64) (domain.Favorite, error) {
	args := m.Called(ctx, username, newsID)
	return args.Get(0).(domain.Favorite), args.Error(1)
}

func (m *mockFavorites) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPokemonStore struct{ mock.Mock }

func (m *mockPokemonStore) Create(ctx context.Context, p domain.Pokemon) (domain.Pokemon, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Pokemon), args.Error(1)
}

func (m *mockPokemonStore) Update(ctx context.Context, p domain.Pokemon) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPokemonStore) UpdateImage(ctx context.Context, id int64, image string) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *mockPokemonStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPokemonStore) List(ctx context.Context) ([]domain.Pokemon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pokemon), args.Error(1)
}

type mockLookup struct{ mock.Mock }

func (m *mockLookup) Lookup(ctx context.Context, name string) (domain.PokemonSprite, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.PokemonSprite), args.Error(1)
}

type mockCaptcha struct{ mock.Mock }

func (m *mockCaptcha) Verify(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockIdentity struct{ mock.Mock }

func (m *mockIdentity) Verify(ctx context.Context, token string) (*verify.GoogleClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verify.GoogleClaims), args.Error(1)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// recordingLogger keeps error entries so tests can inspect their fields.
type recordingLogger struct {
	infralogger.NoOpLogger

	mu     sync.Mutex
	errors map[string][]infralogger.Field
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{errors: make(map[string][]infralogger.Field)}
}

func (l *recordingLogger) Error(msg string, fields ...infralogger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors[msg] = fields
}

func (l *recordingLogger) With(...infralogger.Field) infralogger.Logger { return l }

func (l *recordingLogger) field(msg, key string) (infralogger.Field, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.errors[msg] {
		if f.Key == key {
			return f, true
		}
	}
	return infralogger.Field{}, false
}
