// casepilot is the case-file triage service: it detects the work a case
// file implies, fans it out to specialist workers, and serves the
// aggregated reports over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	cphttp "github.com/casepilot/casepilot/internal/adapter/http"
	"github.com/casepilot/casepilot/internal/adapter/memory"
	cpnats "github.com/casepilot/casepilot/internal/adapter/nats"
	"github.com/casepilot/casepilot/internal/adapter/openai"
	"github.com/casepilot/casepilot/internal/adapter/postgres"
	"github.com/casepilot/casepilot/internal/adapter/ristretto"
	"github.com/casepilot/casepilot/internal/adapter/ws"
	"github.com/casepilot/casepilot/internal/config"
	"github.com/casepilot/casepilot/internal/logger"
	"github.com/casepilot/casepilot/internal/middleware"
	"github.com/casepilot/casepilot/internal/port/reportstore"
	"github.com/casepilot/casepilot/internal/port/worker"
	"github.com/casepilot/casepilot/internal/resilience"
	"github.com/casepilot/casepilot/internal/service"
)

func main() {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	slog.SetDefault(log)
	defer logCloser.Close()

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"worker_timeout", cfg.Engine.WorkerTimeout,
		"max_parallel", cfg.Engine.MaxParallel,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	var store reportstore.Store
	storeStatus := "memory"
	if cfg.Postgres.DSN != "" {
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
		storeStatus = "postgres"
		slog.Info("postgres connected")
	} else {
		store = memory.NewStore()
		slog.Info("using in-memory report archive")
	}

	reportCache, err := ristretto.New(cfg.Cache.MaxSizeMB)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer reportCache.Close()

	natsStatus := "disabled"
	var triageOpts []service.TriageOption
	if cfg.NATS.URL != "" {
		queue, err := cpnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = queue.Close() }()
		triageOpts = append(triageOpts, service.WithQueue(queue))
		natsStatus = "connected"
	}

	// --- Workers and pipeline ---

	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	llmClient := openai.NewClient(cfg.LLM, breaker)

	registry := worker.NewRegistry()
	openai.RegisterWorkers(registry, llmClient)

	hub := ws.NewHub()
	engine := service.NewEngine(registry, cfg.Engine.WorkerTimeout, cfg.Engine.MaxParallel, hub)

	triageOpts = append(triageOpts,
		service.WithCache(reportCache, cfg.Cache.ReportTTL),
		service.WithStore(store),
		service.WithBroadcaster(hub),
	)
	triageSvc := service.NewTriage(service.NewDetector(), engine, triageOpts...)

	// --- HTTP ---

	componentHealth := func() map[string]string {
		return map[string]string{
			"archive":     storeStatus,
			"nats":        natsStatus,
			"llm_breaker": breaker.State(),
		}
	}
	handlers := cphttp.NewHandlers(triageSvc, store, registry, cfg.Server.MaxBodyBytes, componentHealth)

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(cphttp.CORS(cfg.Server.CORSOrigin))
	r.Use(cphttp.RequestID)
	r.Use(cphttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(limiter.Handler)
	r.Use(middleware.APIKeyAuth(cfg.Auth.APIKeyHashes))

	cphttp.MountRoutes(r, handlers, hub.HandleWS)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Triage requests wait on worker timeouts, so writes get headroom
		// beyond the engine deadline.
		WriteTimeout: cfg.Engine.WorkerTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
