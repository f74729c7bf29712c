package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RetryPolicy controls how connection establishment is retried.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// connectWithRetry runs connect until it succeeds or the attempts run out.
func connectWithRetry(ctx context.Context, policy RetryPolicy, log zerolog.Logger, target string, connect func(ctx context.Context) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(policy.Delay))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := connect(ctx); err != nil {
			log.Warn().Err(err).Str("target", target).
				Int("attempt", attempt).Int("max_attempts", attempts).
				Msg("database connection failed")
			return retry.RetryableError(err)
		}
		return nil
	})
}

// NewConnection opens a PostgreSQL pool and waits until it answers a ping
func NewConnection(ctx context.Context, databaseURL string, policy RetryPolicy, log zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = connectWithRetry(ctx, policy, log, "postgres", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database after %d attempts: %w", policy.Attempts, err)
	}

	log.Info().Msg("connected to postgres")
	return db, nil
}

// RunMigrations applies the embedded goose migrations
func RunMigrations(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}
