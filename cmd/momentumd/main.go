// Command momentumd runs the Momentum HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	momentum "github.com/momentumhq/momentum"
	audithook "github.com/momentumhq/momentum/audit_hook"
	"github.com/momentumhq/momentum/internal/api"
	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/jobs"
	"github.com/momentumhq/momentum/music"
	"github.com/momentumhq/momentum/observability"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/store"
	"github.com/momentumhq/momentum/store/memory"
	mongostore "github.com/momentumhq/momentum/store/mongo"
	pgstore "github.com/momentumhq/momentum/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("momentumd exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	catalog := reward.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = reward.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}
	}

	metrics := observability.NewMetricsExtension()

	engine := momentum.New(s,
		momentum.WithLogger(logger),
		momentum.WithCatalog(catalog),
		momentum.WithTaskRewardDefault(cfg.TaskRewardDefault),
		momentum.WithFocusRate(cfg.FocusRate),
		momentum.WithPlugin(metrics),
		momentum.WithPlugin(audithook.New(audithook.SlogRecorder(logger))),
	)
	if err := engine.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = engine.Stop() }()

	handlerOpts := []api.HandlerOption{
		api.WithLogger(logger),
		api.WithMetrics(metrics),
	}
	if cfg.MusicEnabled {
		handlerOpts = append(handlerOpts, api.WithMusic(music.NewClient(music.Config{
			BaseURL:      cfg.MusicBaseURL,
			TokenURL:     cfg.MusicTokenURL,
			ClientID:     cfg.MusicClientID,
			ClientSecret: cfg.MusicClientSecret,
		})))
	}

	handler := api.NewHandler(engine, api.NewAuth(cfg.JWTSecret, cfg.JWTTTL), handlerOpts...)

	scheduler := jobs.New(engine, logger)
	if cfg.DailyBonusPoints > 0 {
		if err := scheduler.AddDailyBonus(cfg.DailyBonusCron, cfg.DailyBonusPoints); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("momentumd listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return mongostore.Connect(cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverPostgres:
		return pgstore.Connect(ctx, cfg.PostgresDSN())
	default:
		return memory.New(), nil
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
