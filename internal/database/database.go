package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/NetindoGit/netindo_api/internal/config"
)

const (
	connectAttempts  = 5
	connectBaseDelay = 500 * time.Millisecond
	pingTimeout      = 5 * time.Second
)

// Connect opens the PostgreSQL pool and verifies it with a ping. Startup
// races against the database container, so failed pings are retried with
// backoff before giving up.
func Connect(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	var lastErr error
	for attempt := 0; attempt < connectAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff(attempt))
		}

		db, err := sqlx.Open("postgres", dsn)
		if err != nil {
			lastErr = err
			continue
		}

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(4)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return db, nil
		}

		lastErr = err
		_ = db.Close()
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, lastErr)
}

// backoff doubles per attempt, capped at 5s.
func backoff(attempt int) time.Duration {
	d := connectBaseDelay << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
