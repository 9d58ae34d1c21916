package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpapi "represent/internal/http"
	"represent/internal/platform/config"
	"represent/internal/platform/httpserver"
	"represent/internal/platform/logger"
	platformmetrics "represent/internal/platform/metrics"
	"represent/internal/platform/redis"
	"represent/internal/platform/secrets"
	rlmetrics "represent/internal/ratelimit/metrics"
	rlmw "represent/internal/ratelimit/middleware"
	rlmodels "represent/internal/ratelimit/models"
	rlstore "represent/internal/ratelimit/store"
	"represent/internal/representatives/handler"
	"represent/internal/representatives/metrics"
	"represent/internal/representatives/providers"
	"represent/internal/representatives/providers/civic"
	"represent/internal/representatives/providers/openstates"
	"represent/internal/representatives/service"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	creds, err := loadCredentials(ctx, cfg.Secrets)
	if err != nil {
		return fmt.Errorf("load provider credentials: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	lookupMetrics := metrics.New(reg)
	observer := providers.NewObserver(log, lookupMetrics)
	httpClient := &http.Client{
		Timeout:   cfg.ProviderTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	resolver := civic.New(cfg.Providers.CivicBaseURL, creds.CivicAPIKey,
		providers.NewCaller(providers.ProviderCivic, httpClient, cfg.ProviderTimeout, observer))
	people := openstates.New(cfg.Providers.OpenStatesBaseURL, creds.OpenStatesAPIKey,
		providers.NewCaller(providers.ProviderOpenStates, httpClient, cfg.ProviderTimeout, observer))

	svc := service.New(resolver, people, log, lookupMetrics,
		service.WithLookupTimeout(cfg.LookupTimeout),
		service.WithCoordinateFetcher(people),
	)

	deps := httpapi.Deps{
		Logger:      log,
		Lookup:      handler.New(svc, log),
		HTTPMetrics: platformmetrics.NewHTTP(reg),
		Gatherer:    reg,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   newRateLimiter(ctx, cfg.RateLimit, redisClient, reg, log),
	}
	if redisClient != nil {
		deps.Health = redisClient
	}

	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(deps), cfg.LookupTimeout+5*time.Second)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting represent", "addr", cfg.Addr, "secrets_backend", cfg.Secrets.Backend, "redis", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func loadCredentials(ctx context.Context, cfg config.SecretsConfig) (secrets.Credentials, error) {
	names := secrets.Names{
		CivicAPIKey:      cfg.CivicAPIKeyParam,
		OpenStatesAPIKey: cfg.OpenStatesAPIKeyParam,
	}
	if cfg.Backend == config.SecretsBackendSSM {
		src, err := secrets.NewSSMSourceFromConfig(ctx, cfg.AWSRegion)
		if err != nil {
			return secrets.Credentials{}, err
		}
		return secrets.Load(ctx, src, names)
	}
	return secrets.Load(ctx, secrets.NewEnvSource(), names)
}

// newRateLimiter uses redis as the shared store when configured, with the
// in-memory store as its fallback. Without redis the in-memory store is primary.
func newRateLimiter(ctx context.Context, cfg config.RateLimitConfig, client *redis.Client, reg prometheus.Registerer, log *slog.Logger) *rlmw.Middleware {
	limit := rlmodels.Limit{Requests: cfg.Requests, Window: cfg.Window}
	memory := rlstore.NewInMemoryStore()
	if !cfg.Enabled {
		return rlmw.New(memory, limit, log, rlmw.WithDisabled(true))
	}
	go sweep(ctx, memory, cfg.Window)

	opts := []rlmw.Option{rlmw.WithMetrics(rlmetrics.New(reg))}
	if client == nil {
		return rlmw.New(memory, limit, log, opts...)
	}
	opts = append(opts, rlmw.WithFallback(memory))
	return rlmw.New(rlstore.NewRedisStore(client.Client), limit, log, opts...)
}

func sweep(ctx context.Context, s *rlstore.InMemoryStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
