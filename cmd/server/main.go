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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	catalogHandler "consentintel/internal/catalog/handler"
	catalogMetrics "consentintel/internal/catalog/metrics"
	catalogService "consentintel/internal/catalog/service"
	catalogStore "consentintel/internal/catalog/store"
	consentHandler "consentintel/internal/consent/handler"
	consentMetrics "consentintel/internal/consent/metrics"
	consentService "consentintel/internal/consent/service"
	consentStore "consentintel/internal/consent/store"
	"consentintel/internal/platform/config"
	"consentintel/internal/platform/health"
	"consentintel/internal/platform/logger"
	"consentintel/internal/platform/traces"
	"consentintel/internal/realtime"
	httptransport "consentintel/internal/transport/http"
	"consentintel/pkg/platform/middleware/metadata"
	"consentintel/pkg/platform/middleware/request"
	"consentintel/pkg/platform/tracer"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing consent intelligence api",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
		"environment", cfg.Environment,
		"version", health.Version,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	catalog, err := catalogStore.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("app catalog loaded", "apps", catalog.Len(), "source", catalogSource(cfg.CatalogPath))

	proxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}

	shutdownTracing, err := traces.Init(ctx, traces.Config{
		Endpoint:    cfg.OTLPEndpoint,
		Version:     health.Version,
		Environment: cfg.Environment,
		SampleRatio: cfg.TraceSampleRatio,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("failed to flush traces", "error", err)
		}
	}()

	reg := prometheus.DefaultRegisterer
	trace := tracer.NewOTel()

	hub := realtime.NewHub(log,
		realtime.WithMetrics(realtime.NewMetrics(reg)),
		realtime.WithAllowedOrigins(cfg.CORSAllowedOrigins),
	)

	consent := consentService.NewService(consentStore.New(), catalog, log,
		consentService.WithMetrics(consentMetrics.New(reg)),
		consentService.WithTracer(trace),
		consentService.WithPublisher(hub),
	)
	catalogSvc := catalogService.New(catalog,
		catalogService.WithMetrics(catalogMetrics.New(reg)),
		catalogService.WithLogger(log),
		catalogService.WithTracer(trace),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("catalog", func(context.Context) error {
		if catalog.Len() == 0 {
			return errors.New("app catalog is empty")
		}
		return nil
	})
	healthHandler.RegisterCheck("realtime", hub.Ready)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        request.NewMetrics(reg),
		Metadata:       &metadata.Config{TrustedProxies: proxies},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Health:         healthHandler,
		API: []httptransport.RouteRegistrar{
			catalogHandler.New(catalogSvc, log),
			consentHandler.New(consent, log),
		},
		Streaming: []httptransport.RouteRegistrar{hub},
	})

	apiServer := newServer(cfg.Addr, router)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := newServer(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		return serve(apiServer)
	})
	g.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		return serve(metricsServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(
			apiServer.Shutdown(shutdownCtx),
			metricsServer.Shutdown(shutdownCtx),
		)
	})

	return g.Wait()
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
