package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/crease/internal/adapters/http/api"
	"github.com/okian/crease/internal/adapters/http/site"
	"github.com/okian/crease/internal/adapters/http/swagger"
	service "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/config"
	"github.com/okian/crease/pkg/logger"
	"github.com/okian/crease/pkg/metrics"

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
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// System metrics are collected by updateSystemMetrics on the custom registry.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(metricsOptions(cfg)...)

	svc := newService(cfg, loggerInstance)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(shutdownCtx, "server stopped")
}

// newService maps configuration onto service options.
func newService(cfg *config.Config, l logger.Logger) *service.Service {
	return service.New(
		service.WithLogger(l),
		service.WithStoreDSN(cfg.StoreDriver, cfg.StoreDSN),
		service.WithBoundaryReference(cfg.BoundaryReferenceDistance),
		service.WithWheelSizes(cfg.WheelSize, cfg.ScoringWheelSize),
	)
}

// metricsOptions maps configuration onto the metrics manager. Label pairs
// were checked by config validation.
func metricsOptions(cfg *config.Config) []metrics.Option {
	labels, _ := cfg.MetricsLabelMap()
	return []metrics.Option{
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithMetricPrefix(cfg.MetricsPrefix),
		metrics.WithCustomLabels(labels),
		metrics.WithHistogramBuckets(cfg.MetricsLatencyBucketsMS),
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
	}
}

// newHandler registers docs, API and dashboard routes and wraps them in the
// request-id and CORS middleware.
func newHandler(ctx context.Context, cfg *config.Config, svc *service.Service) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	site.Register(ctx, mux, svc)

	return api.RequestID(api.CORS(cfg.CORSAllowedOrigins)(mux))
}

// startSystemMetricsUpdater refreshes system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.RefreshInterval())
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

// startServiceMetricsUpdater refreshes the delivery and batter gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
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
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics refreshes store gauges. GetStats updates them as a side effect.
func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()
	if n, ok := stats["deliveries"].(int); ok {
		metrics.UpdateDeliveriesTotal(n)
	}
	if n, ok := stats["batters"].(int); ok {
		metrics.UpdateBattersTotal(n)
	}
}
