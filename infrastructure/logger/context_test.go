package logger_test

import (
	"context"
	"testing"

	"github.com/mai-repo/Newscraper/infrastructure/logger"
)

func newWarnLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{"stderr"}})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return l
}

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	l := newWarnLogger(t)
	ctx := logger.WithContext(context.Background(), l)

	if got := logger.FromContext(ctx); got != l {
		t.Errorf("FromContext() = %v, want stored logger", got)
	}
}

func TestFromContext_LatestWins(t *testing.T) {
	t.Parallel()

	first := newWarnLogger(t)
	second := first.With(logger.String("request_id", "abc"))

	ctx := logger.WithContext(context.Background(), first)
	ctx = logger.WithContext(ctx, second)

	if got := logger.FromContext(ctx); got != second {
		t.Error("FromContext() returned the older logger")
	}
}

func TestFromContext_FallbackIsSharedAndUsable(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())
	if a == nil || b == nil {
		t.Fatal("fallback logger is nil")
	}
	if a != b {
		t.Error("fallback logger is not shared")
	}

	a.Info("filtered at warn level")
	a.Warn("scrape skipped", logger.String("url", "https://example.com"))
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "loud", OutputPaths: []string{"stderr"}})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	l.Info("ok", logger.Int("articles", 3))
}
