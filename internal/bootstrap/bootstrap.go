// Package bootstrap prepares a shard's master database: it waits until the
// master answers, then creates whatever tables are missing.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Skotchmaster/sharded_shop/internal/models"
	"github.com/Skotchmaster/sharded_shop/internal/shard"
	pkgdb "github.com/Skotchmaster/sharded_shop/pkg/db"
)

var ErrShardNotSet = errors.New("SHARD environment variable is not set")

type Policy struct {
	Attempts int
	Interval time.Duration
}

var DefaultPolicy = Policy{Attempts: 30, Interval: 2 * time.Second}

// Probe reports whether the master is reachable.
type Probe func(ctx context.Context) error

// Opener opens the master through GORM once the probe succeeded.
type Opener func(ctx context.Context) (*gorm.DB, error)

// PingProbe opens a plain database/sql handle per attempt and pings it.
// Postgres goes through lib/pq, sqlite through the glebarez driver.
func PingProbe(driver, dsn string) Probe {
	sqlDriver := driver
	if driver == shard.SchemePostgres || driver == "postgresql" {
		sqlDriver = "postgres"
	}

	return func(ctx context.Context) error {
		db, err := sql.Open(sqlDriver, dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	}
}

// WaitForDB runs probe until it succeeds or the policy is exhausted, in which
// case the last probe error is returned.
func WaitForDB(ctx context.Context, probe Probe, policy Policy, l *slog.Logger) error {
	if policy.Attempts <= 0 {
		policy.Attempts = 1
	}
	if l == nil {
		l = slog.Default()
	}

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if lastErr = probe(ctx); lastErr == nil {
			return nil
		}

		l.Warn("db_connect_retry",
			"attempt", attempt,
			"max_attempts", policy.Attempts,
			"error", lastErr,
		)

		if attempt == policy.Attempts {
			break
		}

		timer := time.NewTimer(policy.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("wait for db: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return fmt.Errorf("db not reachable after %d attempts: %w", policy.Attempts, lastErr)
}

// Run waits for the shard master and materializes the schema on it. Replicas
// are never touched.
func Run(ctx context.Context, shardID string, probe Probe, open Opener, schema *models.Schema, policy Policy, l *slog.Logger) ([]string, error) {
	if shardID == "" {
		return nil, ErrShardNotSet
	}
	if l == nil {
		l = slog.Default()
	}
	l = l.With("shard", shardID)

	if err := WaitForDB(ctx, probe, policy, l); err != nil {
		return nil, err
	}

	db, err := open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open master: %w", err)
	}
	defer func() {
		if err := pkgdb.Close(db); err != nil {
			l.Warn("db_close_failed", "error", err)
		}
	}()

	created, err := schema.Materialize(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("materialize schema: %w", err)
	}

	l.Info("schema_ready", "created_tables", created)
	return created, nil
}

// ForEndpoints wires Run to the master of shardID using the default probe and opener.
func ForEndpoints(ctx context.Context, shardID string, endpoints shard.Endpoints, policy Policy, l *slog.Logger) ([]string, error) {
	if shardID == "" {
		return nil, ErrShardNotSet
	}
	dsn := endpoints.Resolve(shardID, false)
	driver := endpoints.Driver()

	probe := PingProbe(driver, dsn)
	open := func(ctx context.Context) (*gorm.DB, error) {
		return pkgdb.Open(ctx, driver, dsn)
	}
	return Run(ctx, shardID, probe, open, models.NewSchema(), policy, l)
}
