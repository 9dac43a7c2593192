package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/okian/livescores/internal/adapters/http/api"
	"github.com/okian/livescores/internal/adapters/provider"
	"github.com/okian/livescores/internal/adapters/provider/demo"
	"github.com/okian/livescores/internal/adapters/provider/espn"
	"github.com/okian/livescores/internal/adapters/provider/sportradar"
	"github.com/okian/livescores/internal/adapters/repository"
	app "github.com/okian/livescores/internal/app"
	"github.com/okian/livescores/internal/config"
	"github.com/okian/livescores/pkg/logger"
	"github.com/okian/livescores/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(metricsOptions(cfg)...)

	store, err := buildStore(ctx, cfg)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to open store", logger.String("store", cfg.Store), logger.Error(err))
	}
	loggerInstance.Info(ctx, "store ready", logger.String("store", cfg.Store))

	svc := app.New(
		app.WithLogger(loggerInstance.Named("service")),
		app.WithStore(store),
		app.WithFetcher(buildFetcher(cfg)),
		app.WithDemoAdapter(demo.New()),
		app.WithRefreshInterval(cfg.RefreshInterval()),
		app.WithCloseToGameThreshold(cfg.CloseToGameThreshold()),
		app.WithStaleThreshold(cfg.StaleThreshold()),
		app.WithFetchTimeout(cfg.FetchTimeout()),
		app.WithMaxConcurrentFetches(cfg.MaxConcurrentFetches),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Fatal(ctx, "failed to start service", logger.Error(err))
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(svc, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildStore opens the configured backend.
func buildStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return repository.NewMemoryStore(), nil
	case config.StoreRedis:
		store, err := repository.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			repository.WithKeyPrefix(cfg.RedisKeyPrefix))
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}

// buildFetcher routes each service to its adapter. Without a Sportradar key
// the Sportradar arms stay unset and those subscriptions fail per fetch.
func buildFetcher(cfg *config.Config) *provider.Dispatcher {
	opts := []provider.DispatcherOption{
		provider.WithDefault(espn.New(provider.NewClient(cfg.ESPNBaseURL))),
	}
	if cfg.SportradarAPIKey != "" {
		client := sportradar.NewClient(cfg.SportradarBaseURL, cfg.SportradarAPIKey)
		level := sportradar.WithAccessLevel(cfg.SportradarAccessLevel)
		opts = append(opts,
			provider.WithNFL(sportradar.NewNFL(client, level)),
			provider.WithSoccer(sportradar.NewSoccer(client, level)),
		)
	}
	return provider.NewDispatcher(opts...)
}

// metricsOptions maps config onto the global metrics manager.
func metricsOptions(cfg *config.Config) []metrics.Option {
	var opts []metrics.Option
	if env := strings.TrimSpace(cfg.Environment); env != "" {
		opts = append(opts, metrics.WithConstLabels(map[string]string{"env": env}))
	}
	return opts
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
