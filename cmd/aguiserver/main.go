// Command aguiserver is a reference AG-UI HTTP server that streams Edgee
// gateway sends to AG-UI compatible frontends (like CopilotKit) over
// Server-Sent Events.
//
// Requests that carry frontend tools run in manual mode: tool calls are
// streamed back for the frontend to execute. Other requests run the agentic
// loop over the server's demo tools.
//
// Configuration is via environment variables (a .env file is loaded when present):
//
//	AGUI_PORT                  - Server port (default: 8000)
//	AGUI_LOG_LEVEL             - debug, info, warn or error (default: info)
//	EDGEE_API_KEY              - API key (required)
//	EDGEE_BASE_URL             - Gateway URL override (optional)
//	EDGEE_BACKEND              - gateway, anthropic or google (default: gateway)
//	EDGEE_MODEL                - Model, e.g. openai/gpt-4o (required)
//	EDGEE_MAX_TOOL_ITERATIONS  - Tool round budget (default: 10)
//	EDGEE_TIMEOUT              - Per-request timeout (default: 2m)
//	EDGEE_STREAM               - Stream round-trips (default: true)
//	EDGEE_DEMO_TOOLS           - Enable demo tools (default: true)
//
// Usage:
//
//	EDGEE_MODEL=openai/gpt-4o go run ./cmd/aguiserver
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

	"github.com/edgee-cloud/go-sdk/client"
	"github.com/edgee-cloud/go-sdk/tool"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	cc := cfg.Client
	cc.Logger = logger
	c, err := client.New(context.Background(), cc)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}

	var tools *tool.Set
	if cfg.EnableDemoTools {
		tools = demoTools()
		logger.Info("registered demo tools", "names", tools.Names())
	}

	mux := http.NewServeMux()
	mux.Handle("/api/agent", corsMiddleware(NewAgentHandler(c, tools, cfg, logger)))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("AG-UI server starting",
		"addr", server.Addr,
		"backend", cfg.Client.Backend,
		"model", cfg.Model,
		"endpoint", "POST http://localhost:"+cfg.Port+"/api/agent",
	)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
