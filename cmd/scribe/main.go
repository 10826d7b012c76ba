package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/outboundhq/scribe/internal/anthropic"
	"github.com/outboundhq/scribe/internal/api"
	"github.com/outboundhq/scribe/internal/config"
	"github.com/outboundhq/scribe/internal/events"
	"github.com/outboundhq/scribe/internal/llm"
	"github.com/outboundhq/scribe/internal/openai"
	"github.com/outboundhq/scribe/internal/store"
	"github.com/outboundhq/scribe/internal/workflow"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("scribe starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// LLM provider
	completer, err := buildCompleter(cfg)
	if err != nil {
		slog.Error("failed to configure llm provider", "error", err)
		os.Exit(1)
	}
	resilient := llm.NewResilient(completer, cfg.LLMTimeout, slog.Default())
	slog.Info("llm provider ready", "provider", cfg.LLMProvider)

	// Workflow engine
	engine := workflow.New(resilient, slog.Default())

	// NATS
	eventsClient, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventsClient.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Async follow-up pipeline
	proc := events.NewFollowUpProcessor(db, engine, eventsClient, slog.Default())
	if err := eventsClient.Subscribe(events.SubjectFollowUpDue, proc.HandleFollowUpDue); err != nil {
		slog.Error("failed to subscribe to follow-up events", "error", err)
		os.Exit(1)
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.APIToken, db, engine, eventsClient, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("scribe ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}
	cancel()
	slog.Info("scribe stopped")
}

func buildCompleter(cfg config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errMissingKey("OPENAI_API_KEY")
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature), nil
	default:
		if cfg.AnthropicAPIKey == "" {
			return nil, errMissingKey("ANTHROPIC_API_KEY")
		}
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.Temperature), nil
	}
}

type errMissingKey string

func (e errMissingKey) Error() string {
	return string(e) + " is required"
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
