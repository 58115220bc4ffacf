// casepilot-mcp serves the triage pipeline over the Model Context Protocol
// on stdio, for use as a tool server by AI assistants.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/casepilot/casepilot/internal/adapter/mcp"
	"github.com/casepilot/casepilot/internal/adapter/memory"
	"github.com/casepilot/casepilot/internal/adapter/openai"
	"github.com/casepilot/casepilot/internal/config"
	"github.com/casepilot/casepilot/internal/port/worker"
	"github.com/casepilot/casepilot/internal/resilience"
	"github.com/casepilot/casepilot/internal/service"
)

func main() {
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

	// stdout carries the MCP stream; logs must go to stderr.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	llmClient := openai.NewClient(cfg.LLM, breaker)

	registry := worker.NewRegistry()
	openai.RegisterWorkers(registry, llmClient)

	store := memory.NewStore()
	engine := service.NewEngine(registry, cfg.Engine.WorkerTimeout, cfg.Engine.MaxParallel, nil)
	triageSvc := service.NewTriage(service.NewDetector(), engine,
		service.WithStore(store))

	srv := mcp.NewServer(
		mcp.ServerConfig{Name: "casepilot", Version: "0.1.0"},
		mcp.ServerDeps{Triage: triageSvc, Store: store, Registry: registry},
	)

	slog.Info("serving MCP over stdio")
	return srv.ServeStdio()
}
