// Package config defines the news scraper configuration and its defaults.
package config

import (
	"fmt"
	"net/url"
	"time"

	infraconfig "github.com/mai-repo/Newscraper/infrastructure/config"
	"github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/infrastructure/profiling"
	infraredis "github.com/mai-repo/Newscraper/infrastructure/redis"
)

const (
	defaultServiceName  = "news-scraper"
	defaultVersion      = "0.1.0"
	defaultServicePort  = 8050
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second

	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBName          = "newscraper"
	defaultDBUser          = "postgres"
	defaultDBSSLMode       = "disable"
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnectAttempts = 5

	defaultTargetURL         = "https://www.theatlantic.com/most-popular/"
	defaultScrapeTimeout     = 30 * time.Second
	defaultContainerSelector = "article"
	defaultHeadlineSelector  = "h2"
	defaultSummarySelector   = "p"
	defaultLinkSelector      = "a"

	defaultPerPage    = 10
	defaultMaxPerPage = 100

	defaultRecaptchaURL   = "https://www.google.com/recaptcha/api/siteverify"
	defaultGoogleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"
	defaultAuthTimeout    = 10 * time.Second

	defaultPokeAPIBaseURL = "https://pokeapi.co/api/v2"
	defaultPokeAPITimeout = 10 * time.Second

	defaultEventStream = "news:events"
)

var (
	defaultKeywords    = []string{"Trump", "America", "DOGE"}
	defaultCORSOrigins = []string{"http://localhost:5173", "https://mai-newscraper.vercel.app"}
)

// Config is the full service configuration.
type Config struct {
	Service   ServiceConfig     `yaml:"service"`
	Database  DatabaseConfig    `yaml:"database"`
	Scraper   ScraperConfig     `yaml:"scraper"`
	News      NewsConfig        `yaml:"news"`
	Auth      AuthConfig        `yaml:"auth"`
	PokeAPI   PokeAPIConfig     `yaml:"pokeapi"`
	Redis     infraredis.Config `yaml:"redis"`
	Events    EventsConfig      `yaml:"events"`
	Logging   logger.Config     `yaml:"logging"`
	Profiling profiling.Config  `yaml:"profiling"`
}

// ServiceConfig holds HTTP server settings.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"PORT"         yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"    yaml:"debug"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL settings. URL, when set, wins over the
// individual fields.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL" yaml:"url"`
	Host            string        `env:"DB_HOST"      yaml:"host"`
	Port            int           `env:"DB_PORT"      yaml:"port"`
	User            string        `env:"DB_USER"      yaml:"user"`
	Password        string        `env:"DB_PASSWORD"  yaml:"password"`
	Database        string        `env:"DB_NAME"      yaml:"database"`
	SSLMode         string        `env:"DB_SSLMODE"   yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectAttempts int           `yaml:"connect_attempts"`
}

// DSN returns the connection string handed to lib/pq.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// ScraperConfig holds the scrape target and the CSS selectors used on it.
type ScraperConfig struct {
	TargetURL string        `env:"SCRAPER_TARGET_URL" yaml:"target_url"`
	Timeout   time.Duration `env:"SCRAPER_TIMEOUT"    yaml:"timeout"`
	UserAgent string        `env:"SCRAPER_USER_AGENT" yaml:"user_agent"`
	Selectors Selectors     `yaml:"selectors"`
}

// Selectors are goquery selectors. Headline, Summary and Link are evaluated
// inside each Container match.
type Selectors struct {
	Container string `yaml:"container"`
	Headline  string `yaml:"headline"`
	Summary   string `yaml:"summary"`
	Link      string `yaml:"link"`
}

// NewsConfig holds read-side settings.
type NewsConfig struct {
	Keywords       []string `env:"NEWS_KEYWORDS" yaml:"keywords"`
	DefaultPerPage int      `yaml:"default_per_page"`
	MaxPerPage     int      `yaml:"max_per_page"`
}

// AuthConfig holds the reCAPTCHA and Google Sign-In settings.
type AuthConfig struct {
	GoogleClientID  string        `env:"GOOGLE_CLIENT_KEY" yaml:"google_client_id"`
	RecaptchaSecret string        `env:"BACKEND_KEY"       yaml:"recaptcha_secret"`
	RecaptchaURL    string        `yaml:"recaptcha_url"`
	GoogleCertsURL  string        `yaml:"google_certs_url"`
	Timeout         time.Duration `yaml:"timeout"`
}

// PokeAPIConfig holds the PokéAPI client settings.
type PokeAPIConfig struct {
	BaseURL string        `env:"POKEAPI_BASE_URL" yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// EventsConfig controls scrape event publishing. Publishing is skipped
// when Redis has no address.
type EventsConfig struct {
	Stream string `env:"EVENTS_STREAM" yaml:"stream"`
}

// Load reads path, applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults(path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setScraperDefaults(&cfg.Scraper)
	setNewsDefaults(&cfg.News)
	setAuthDefaults(&cfg.Auth)
	setPokeAPIDefaults(&cfg.PokeAPI)
	if cfg.Events.Stream == "" {
		cfg.Events.Stream = defaultEventStream
	}
	cfg.Logging.SetDefaults()
	if cfg.Profiling.Port == 0 {
		cfg.Profiling.Port = profiling.DefaultPort
	}
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if len(svc.CORSOrigins) == 0 {
		svc.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}
	if svc.ReadTimeout == 0 {
		svc.ReadTimeout = defaultReadTimeout
	}
	if svc.WriteTimeout == 0 {
		svc.WriteTimeout = defaultWriteTimeout
	}
	if svc.IdleTimeout == 0 {
		svc.IdleTimeout = defaultIdleTimeout
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = defaultMaxOpenConns
	}
	if db.MaxIdleConns == 0 {
		db.MaxIdleConns = defaultMaxIdleConns
	}
	if db.ConnMaxLifetime == 0 {
		db.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if db.ConnectAttempts == 0 {
		db.ConnectAttempts = defaultConnectAttempts
	}
}

func setScraperDefaults(s *ScraperConfig) {
	if s.TargetURL == "" {
		s.TargetURL = defaultTargetURL
	}
	if s.Timeout == 0 {
		s.Timeout = defaultScrapeTimeout
	}
	if s.Selectors.Container == "" {
		s.Selectors.Container = defaultContainerSelector
	}
	if s.Selectors.Headline == "" {
		s.Selectors.Headline = defaultHeadlineSelector
	}
	if s.Selectors.Summary == "" {
		s.Selectors.Summary = defaultSummarySelector
	}
	if s.Selectors.Link == "" {
		s.Selectors.Link = defaultLinkSelector
	}
}

func setNewsDefaults(n *NewsConfig) {
	if len(n.Keywords) == 0 {
		n.Keywords = append([]string(nil), defaultKeywords...)
	}
	if n.DefaultPerPage == 0 {
		n.DefaultPerPage = defaultPerPage
	}
	if n.MaxPerPage == 0 {
		n.MaxPerPage = defaultMaxPerPage
	}
}

func setAuthDefaults(a *AuthConfig) {
	if a.RecaptchaURL == "" {
		a.RecaptchaURL = defaultRecaptchaURL
	}
	if a.GoogleCertsURL == "" {
		a.GoogleCertsURL = defaultGoogleCertsURL
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAuthTimeout
	}
}

func setPokeAPIDefaults(p *PokeAPIConfig) {
	if p.BaseURL == "" {
		p.BaseURL = defaultPokeAPIBaseURL
	}
	if p.Timeout == 0 {
		p.Timeout = defaultPokeAPITimeout
	}
}

// Validate checks the settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Database.URL == "" {
		if err := infraconfig.ValidateRequired("database.host", c.Database.Host); err != nil {
			return err
		}
		if err := infraconfig.ValidatePort("database.port", c.Database.Port); err != nil {
			return err
		}
	}
	if err := validateHTTPURL("scraper.target_url", c.Scraper.TargetURL); err != nil {
		return err
	}
	if c.News.DefaultPerPage < 1 || c.News.DefaultPerPage > c.News.MaxPerPage {
		return &infraconfig.ValidationError{
			Field:   "news.default_per_page",
			Message: fmt.Sprintf("must be between 1 and %d", c.News.MaxPerPage),
		}
	}
	if c.Profiling.Enabled {
		if err := infraconfig.ValidatePort("profiling.port", c.Profiling.Port); err != nil {
			return err
		}
	}
	return infraconfig.ValidateLogLevel("logging.level", c.Logging.Level)
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &infraconfig.ValidationError{Field: field, Message: "must be an absolute http(s) URL"}
	}
	return nil
}
