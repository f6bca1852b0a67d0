package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/cricket-scoring-service/internal/config"
	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/handler"
	"github.com/maxviazov/cricket-scoring-service/internal/logger"
	"github.com/maxviazov/cricket-scoring-service/internal/metrics"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
	"github.com/maxviazov/cricket-scoring-service/internal/repository/postgres"
	"github.com/maxviazov/cricket-scoring-service/internal/repository/sqlite"
	"github.com/maxviazov/cricket-scoring-service/internal/service"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP scoring API",
		Long: `Run the HTTP scoring API.

Deliveries are journaled to the storage backend selected in the config
(sqlite by default, or postgres). Metrics are served on /metrics.

Example:
  cricketd serve --config ./config.yaml
  APP_STORAGE_DRIVER=postgres APP_POSTGRES_PASSWORD=secret cricketd serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Verbose {
		cfg.Logger.Level = "debug"
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	log.Info().Str("config", opts.ConfigPath).Msg("config loaded")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	mp, metricsHandler, err := metrics.PrometheusProvider()
	if err != nil {
		return err
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("meter provider shutdown failed")
		}
	}()
	recorder, err := metrics.NewRecorder(metrics.Meter(mp))
	if err != nil {
		return err
	}

	format, err := engine.ParseFormat(cfg.Engine.DefaultFormat)
	if err != nil {
		return err
	}
	mgr := stats.NewManager()
	matchSvc := service.NewMatchService(store.Deliveries(), store.Tx(), mgr, service.MatchConfig{
		DefaultFormat:  format,
		CommentaryKeep: cfg.Engine.CommentaryKeep,
		Observers:      []engine.Observer{recorder},
	}, log)
	statsSvc := service.NewStatsService(mgr, log)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(log))
	handler.Register(r, store, matchSvc, statsSvc, metricsHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		s, err := postgres.Open(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Storage.SQLitePath).Msg("opened sqlite journal")
		return s, nil
	}
}
