// Command api serves the magazine catalog over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"magazine-catalog/internal/config"
	hhttp "magazine-catalog/internal/handler/http"
	hauth "magazine-catalog/internal/handler/http/auth"
	"magazine-catalog/internal/infra/adapter/persistence/memory"
	"magazine-catalog/internal/infra/seed"
	"magazine-catalog/internal/observability/logging"
	"magazine-catalog/internal/observability/slo"
	"magazine-catalog/internal/observability/tracing"
	"magazine-catalog/internal/usecase/catalog"
	envcfg "magazine-catalog/pkg/config"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", envcfg.GetEnvString("APP_CONFIG", ""), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	version := getVersion()

	shutdownTracing := initTracing(logger, cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	svc := catalog.NewService(
		memory.NewAuthorRepo(),
		memory.NewMagazineRepo(),
		memory.NewArticleRepo(),
		logger,
	)

	proxies, err := cfg.TrustedProxies()
	if err != nil {
		logger.Error("invalid trusted proxies", slog.Any("error", err))
		os.Exit(1)
	}
	if len(proxies) > 0 {
		logger.Info("trusting forwarding headers from proxies", slog.Int("ranges", len(proxies)))
	}
	limiter := hhttp.NewWriteLimiter(cfg.RateLimit.WritesPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.ClientTTL).
		WithIPExtractor(hhttp.NewIPExtractor(proxies, logger))

	var ready atomic.Bool
	deps := serverDeps{
		Logger:       logger,
		Catalog:      svc,
		Auth:         hauth.NewAuthenticator(cfg.JWTSecret(), logger),
		Limiter:      limiter,
		SLO:          slo.NewTracker(),
		Ready:        &ready,
		Version:      version,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	}

	if err := runServer(logger, cfg, deps); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the structured logger from configuration and installs it as default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	logger := logging.New(logging.Options{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
		Output: os.Stdout,
	})
	slog.SetDefault(logger)
	return logger
}

// initTracing installs the OpenTelemetry SDK provider when enabled.
func initTracing(logger *slog.Logger, cfg *config.AppConfig) func(context.Context) error {
	if !cfg.Tracing.Enabled {
		return func(context.Context) error { return nil }
	}
	logger.Info("tracing enabled", slog.Float64("sample_ratio", cfg.Tracing.SampleRatio))
	return tracing.InitProvider(cfg.Tracing.SampleRatio)
}

func getVersion() string {
	return envcfg.GetEnvString("VERSION", "dev")
}

// loadSeed applies the seed file, if any, to the catalog.
func loadSeed(ctx context.Context, logger *slog.Logger, svc *catalog.Service, path string) error {
	if path == "" {
		logger.Info("no seed file configured; starting with an empty catalog")
		return nil
	}
	doc, err := seed.Load(path)
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, svc, doc)
	if err != nil {
		return err
	}
	logger.Info("seed catalog loaded",
		slog.String("file", path),
		slog.Int("authors", len(res.Authors)),
		slog.Int("magazines", len(res.Magazines)),
		slog.Int("articles", len(res.Articles)))
	return svc.RefreshMetrics(ctx)
}

// warmUp applies the seed catalog and then marks the server ready.
// On failure ready stays false.
func warmUp(ctx context.Context, logger *slog.Logger, svc *catalog.Service, path string, ready *atomic.Bool) error {
	if err := loadSeed(ctx, logger, svc, path); err != nil {
		return fmt.Errorf("load seed catalog: %w", err)
	}
	ready.Store(true)
	logger.Info("catalog ready")
	return nil
}

// startScheduler registers the periodic gauge and SLO refresh plus limiter cleanup.
func startScheduler(logger *slog.Logger, cfg *config.AppConfig, deps serverDeps) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Metrics.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Metrics.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := deps.Catalog.RefreshMetrics(ctx); err != nil {
			logger.Warn("catalog metrics refresh failed", slog.Any("error", err))
		}
		snap := deps.SLO.Refresh()
		if !snap.MeetsObjectives() {
			logger.Warn("SLO objectives missed",
				slog.Int64("requests", snap.Requests),
				slog.Float64("availability", snap.Availability),
				slog.Duration("p99", snap.P99))
		}
		if removed := deps.Limiter.Cleanup(); removed > 0 {
			logger.Debug("write limiter cleanup", slog.Int("removed", removed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add refresh job: %w", err)
	}

	c.Start()
	logger.Info("scheduler started",
		slog.String("schedule", cfg.Metrics.RefreshSchedule),
		slog.String("timezone", cfg.Metrics.Timezone))
	return c, nil
}

// runServer binds the listener, starts serving and the scheduler, then applies
// the seed catalog; /ready answers 503 until that finishes. Everything shuts
// down gracefully on SIGINT, SIGTERM or a seed failure.
func runServer(logger *slog.Logger, cfg *config.AppConfig, deps serverDeps) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	scheduler, err := startScheduler(logger, cfg, deps)
	if err != nil {
		_ = ln.Close()
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           applyMiddleware(deps, setupRoutes(deps)),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Slowloris 対策
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", ln.Addr().String()),
			slog.String("version", deps.Version))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		return warmUp(egCtx, logger, deps.Catalog, cfg.Seed.File, deps.Ready)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server...")

		<-scheduler.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return eg.Wait()
}
