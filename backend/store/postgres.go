// Package store reads profiles, listings and towns from Postgres.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	gobreaker "github.com/sony/gobreaker/v2"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/metrics"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

//go:embed schema.sql
var schema string

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = zerr.New("postgres unavailable")

const breakerName = "postgres"

// Config holds connection pool settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// BreakerConfig tunes the read circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        // allowed through while half-open
	Interval     time.Duration // closed-state count reset
	Timeout      time.Duration // open-state wait before half-open
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerConfig returns the breaker settings used in production.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, zerr.Wrap(err, "open postgres")
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, zerr.Wrap(err, "ping postgres")
	}
	return db, nil
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return zerr.Wrap(err, "apply schema")
	}
	return nil
}

// Postgres implements the search ports over database/sql.
type Postgres struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker[any]
}

// New wraps db. Reads go through a circuit breaker; there are no retries.
func New(db *sql.DB, bc BreakerConfig) *Postgres {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= bc.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
		},
		// A missing row is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, model.ErrNotFound)
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})
	return &Postgres{db: db, cb: cb}
}

// Ping reports whether the database answers.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// run executes fn through the breaker and records query metrics.
func run[T any](p *Postgres, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	res, err := p.cb.Execute(func() (any, error) {
		return fn()
	})
	metrics.RecordDBQuery(op, time.Since(start), err)

	var zero T
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordBreakerRequest(breakerName, "rejected")
			return zero, zerr.With(zerr.Wrap(ErrUnavailable, err.Error()), "op", op)
		}
		if errors.Is(err, model.ErrNotFound) {
			metrics.RecordBreakerRequest(breakerName, "success")
		} else {
			metrics.RecordBreakerRequest(breakerName, "failure")
		}
		return zero, zerr.With(zerr.Wrap(err, "postgres "+op), "op", op)
	}
	metrics.RecordBreakerRequest(breakerName, "success")
	typed, ok := res.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}
