// Package app wires the configured clients, repositories and services shared
// by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	infrahttp "github.com/mai-repo/Newscraper/infrastructure/http"
	"github.com/mai-repo/Newscraper/infrastructure/logger"
	infraredis "github.com/mai-repo/Newscraper/infrastructure/redis"
	"github.com/mai-repo/Newscraper/infrastructure/retry"
	"github.com/mai-repo/Newscraper/internal/api"
	"github.com/mai-repo/Newscraper/internal/config"
	"github.com/mai-repo/Newscraper/internal/database"
	"github.com/mai-repo/Newscraper/internal/events"
	"github.com/mai-repo/Newscraper/internal/handler"
	"github.com/mai-repo/Newscraper/internal/metrics"
	"github.com/mai-repo/Newscraper/internal/pokeapi"
	"github.com/mai-repo/Newscraper/internal/repository"
	"github.com/mai-repo/Newscraper/internal/scraper"
	"github.com/mai-repo/Newscraper/internal/verify"
)

// connectBackoff is the first delay between startup database pings.
const connectBackoff = 500 * time.Millisecond

// App holds every long-lived dependency.
type App struct {
	Config *config.Config
	Log    logger.Logger

	DB      *sqlx.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics

	Articles  *repository.ArticleRepository
	Favorites *repository.FavoriteRepository
	Pokemon   *repository.PokemonRepository
	Scraper   *scraper.Service

	google *verify.GoogleVerifier
}

// New connects to Postgres, applies the schema and builds the services.
// Redis is optional: when configured but unreachable, events are disabled
// and a warning is logged.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.DSN(), database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectRetry:    retry.Config{MaxAttempts: cfg.Database.ConnectAttempts, InitialDelay: connectBackoff},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	if err = database.EnsureSchema(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	a := &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Metrics:   metrics.New(),
		Articles:  repository.NewArticleRepository(db),
		Favorites: repository.NewFavoriteRepository(db),
		Pokemon:   repository.NewPokemonRepository(db),
	}

	a.Redis = connectRedis(ctx, cfg.Redis, log)
	a.Scraper = a.newScraper()

	return a, nil
}

func connectRedis(ctx context.Context, cfg infraredis.Config, log logger.Logger) *redis.Client {
	if !cfg.Enabled() {
		log.Info("Redis not configured, scrape events disabled")
		return nil
	}

	client, err := infraredis.NewClient(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, scrape events disabled",
			logger.String("address", cfg.Address),
			logger.Error(err),
		)
		return nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Address))
	return client
}

func (a *App) newScraper() *scraper.Service {
	sc := a.Config.Scraper

	fetcher := scraper.NewHTTPFetcher(infrahttp.NewClient(&infrahttp.ClientConfig{
		Timeout:   sc.Timeout,
		UserAgent: sc.UserAgent,
	}))
	extractor := scraper.NewExtractor(scraper.Selectors{
		Container: sc.Selectors.Container,
		Headline:  sc.Selectors.Headline,
		Summary:   sc.Selectors.Summary,
		Link:      sc.Selectors.Link,
	})

	opts := []scraper.Option{scraper.WithRecorder(a.Metrics)}
	if pub := events.NewPublisher(a.Redis, a.Config.Events.Stream, a.Log); pub != nil {
		opts = append(opts, scraper.WithPublisher(pub))
	}

	return scraper.NewService(fetcher, extractor, a.Articles, sc.TargetURL,
		a.Log.With(logger.String("component", "scraper")), opts...)
}

// Handlers builds the HTTP handlers.
func (a *App) Handlers() api.Handlers {
	authClient := infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: a.Config.Auth.Timeout})
	pokeClient := infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: a.Config.PokeAPI.Timeout})

	return api.Handlers{
		News: handler.NewNewsHandler(a.Scraper, a.Articles, a.Log, handler.NewsOptions{
			Keywords:       a.Config.News.Keywords,
			DefaultPerPage: a.Config.News.DefaultPerPage,
			MaxPerPage:     a.Config.News.MaxPerPage,
		}),
		Favorites: handler.NewFavoriteHandler(a.Favorites, a.Articles, a.Log),
		Pokemon: handler.NewPokemonHandler(a.Pokemon,
			pokeapi.NewClient(pokeClient, a.Config.PokeAPI.BaseURL), a.Log),
		Auth: handler.NewAuthHandler(
			verify.NewRecaptchaVerifier(authClient, a.Config.Auth.RecaptchaURL, a.Config.Auth.RecaptchaSecret),
			a.googleVerifier(authClient),
			a.Log,
		),
	}
}

func (a *App) googleVerifier(client *http.Client) *verify.GoogleVerifier {
	if a.google == nil {
		a.google = verify.NewGoogleVerifier(client, a.Config.Auth.GoogleCertsURL, a.Config.Auth.GoogleClientID)
	}
	return a.google
}

// Dependencies returns the clients the HTTP server health-checks.
func (a *App) Dependencies() api.Dependencies {
	return api.Dependencies{DB: a.DB, Redis: a.Redis, Metrics: a.Metrics}
}

// Close releases the database and Redis connections and stops the Google
// key refresh.
func (a *App) Close() error {
	if a.google != nil {
		a.google.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	return a.DB.Close()
}
