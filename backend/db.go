package main

import (
	"context"
	"database/sql"
	"time"

	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/config"
	"gitea.kood.tech/petrkubec/roomble/backend/graph"
	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/store"
)

func initDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := store.Open(ctx, store.Config{
		URL:             cfg.URL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	logging.Info().Int("max_open_conns", cfg.MaxOpenConns).Msg("database connection established")
	return db, nil
}

// loadGraph builds the locality graph from the configured source.
func loadGraph(ctx context.Context, source string, db *sql.DB) (*graph.Graph, error) {
	if source != "postgres" {
		return graph.NewDefault()
	}
	records, err := store.LoadLocalities(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, zerr.Wrap(graph.ErrGraphIntegrity, "towns table is empty, run db-seeder towns")
	}
	return graph.New(records)
}
