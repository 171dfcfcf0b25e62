// Package database opens the Postgres pool and owns the schema.
package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/infrastructure/retry"
)

// DefaultPingTimeout bounds the connectivity check in Open and Ping.
const DefaultPingTimeout = 5 * time.Second

var (
	//go:embed schema.sql
	schemaSQL string

	//go:embed trigram.sql
	trigramSQL string
)

// PoolConfig sizes the connection pool. Zero values keep database/sql defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// ConnectRetry governs the initial ping. Zero fields take retry defaults.
	ConnectRetry retry.Config
}

// Open connects to dsn with lib/pq and verifies the connection, retrying
// while the server is unreachable or still starting.
func Open(ctx context.Context, dsn string, pool PoolConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	pingErr := retry.Do(ctx, pool.ConnectRetry, func() error {
		return Ping(ctx, db)
	})
	if pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}

// Ping checks connectivity within DefaultPingTimeout.
func Ping(ctx context.Context, db *sqlx.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// EnsureSchema creates the tables and search triggers if missing, installs the
// trigram indexes when the pg_trgm extension is available, and rebuilds the
// search table so rows written before the triggers existed are searchable.
// It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB, log logger.Logger) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	// Search falls back to sequential scans without the extension.
	if _, err := db.ExecContext(ctx, trigramSQL); err != nil {
		log.Warn("Trigram indexes unavailable", logger.Error(err))
	}

	n, err := RebuildSearchIndex(ctx, db)
	if err != nil {
		return err
	}

	log.Info("Schema ready", logger.Int64("search_rows", n))
	return nil
}

// RebuildSearchIndex replaces news_fts with a fresh projection of news in one
// transaction and returns the number of rows copied.
func RebuildSearchIndex(ctx context.Context, db *sqlx.DB) (int64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM news_fts`); err != nil {
		return 0, fmt.Errorf("clear search table: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO news_fts (id, headline, summary, link)
		SELECT id, headline, summary, link FROM news`)
	if err != nil {
		return 0, fmt.Errorf("copy into search table: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit rebuild: %w", err)
	}

	return n, nil
}
