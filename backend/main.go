package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gitea.kood.tech/petrkubec/roomble/backend/compat"
	"gitea.kood.tech/petrkubec/roomble/backend/config"
	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/ranking"
	"gitea.kood.tech/petrkubec/roomble/backend/search"
	"gitea.kood.tech/petrkubec/roomble/backend/store"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("roomble backend stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := loadGraph(ctx, cfg.Locality.Source, db)
	if err != nil {
		return err
	}
	logging.Info().Int("localities", g.Len()).Str("source", cfg.Locality.Source).Msg("locality graph loaded")

	scorer, err := compat.NewScorer(cfg.Compat.Weights)
	if err != nil {
		return err
	}

	pg := store.New(db, store.BreakerConfig{
		MaxRequests:  cfg.Database.Breaker.MaxRequests,
		Interval:     cfg.Database.Breaker.Interval,
		Timeout:      cfg.Database.Breaker.Timeout,
		MinRequests:  cfg.Database.Breaker.MinRequests,
		FailureRatio: cfg.Database.Breaker.FailureRatio,
	})
	policy := search.Config{
		DefaultPageSize:        cfg.Search.DefaultPageSize,
		MaxPageSize:            cfg.Search.MaxPageSize,
		RequireFlatmateSeeking: cfg.Search.RequireFlatmateSeeking,
		NearestTowns:           cfg.Search.NearestTowns,
	}

	s := &server{
		cfg:        cfg,
		graph:      g,
		scorer:     scorer,
		matches:    search.NewMatchService(pg, ranking.New(g, scorer), policy),
		properties: search.NewPropertyService(pg, g, policy),
		people:     pg,
		auth:       newAuthenticator(cfg.Auth.JWTSecret),
		db:         pg,
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Str("environment", cfg.Server.Environment).Msg("starting Roomble backend")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
