package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/edgee-cloud/go-sdk/agui"
	"github.com/edgee-cloud/go-sdk/client"
	"github.com/edgee-cloud/go-sdk/event"
	"github.com/edgee-cloud/go-sdk/tool"
)

// AgentHandler handles AG-UI agent requests over SSE.
type AgentHandler struct {
	client *client.Client
	tools  *tool.Set
	config *Config
	log    *slog.Logger
}

// NewAgentHandler creates a handler sending through c. Server-side tools
// are executed only for requests that carry no frontend tools.
func NewAgentHandler(c *client.Client, tools *tool.Set, cfg *Config, log *slog.Logger) *AgentHandler {
	return &AgentHandler{client: c, tools: tools, config: cfg, log: log}
}

// ServeHTTP handles POST requests to run a send and stream its events via SSE.
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		h.log.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input agui.RunAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	log := h.log.With("run_id", input.RunID, "thread_id", input.ThreadID)

	prepared, err := input.Prepare()
	if err != nil {
		log.Warn("invalid input", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	opts := []client.Option{
		client.WithStream(h.config.Stream),
		client.WithMaxToolIterations(h.config.MaxToolIterations),
	}
	if len(prepared.Tools) > 0 {
		log.Info("frontend tools", "count", len(prepared.Tools))
	} else {
		opts = append(opts, client.WithTools(h.tools))
	}

	log.Info("request started", "message_count", len(prepared.Messages))

	events := event.NewChannel()
	opts = append(opts, client.WithEventChannel(events))
	go func() {
		defer close(events)
		if _, err := h.client.Send(ctx, h.config.Model, prepared.Input(), opts...); err != nil {
			log.Warn("send failed", "error", err)
		}
	}()

	var eventCount int
	var lastError error
	for ev := range prepared.Mapper().MapStream(events) {
		if lastError != nil {
			continue // drain so the send can finish
		}
		eventCount++
		log.Debug("sending SSE event", "event_type", ev.Type(), "event_num", eventCount)
		if err := writeSSE(w, flusher, ev); err != nil {
			log.Error("failed to write SSE event", "error", err, "event_type", ev.Type())
			lastError = err
		}
	}

	duration := time.Since(start)
	if lastError != nil {
		log.Error("request failed",
			"duration_ms", duration.Milliseconds(),
			"events_sent", eventCount,
			"error", lastError,
		)
		return
	}
	log.Info("request completed",
		"duration_ms", duration.Milliseconds(),
		"events_sent", eventCount,
	)
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	// event: TYPE\ndata: {json}\n\n
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()
	return nil
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
