package client

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/agent"
	"github.com/edgee-cloud/go-sdk/event"
	"github.com/edgee-cloud/go-sdk/internal/transport/anthropic"
	"github.com/edgee-cloud/go-sdk/internal/transport/google"
	"github.com/edgee-cloud/go-sdk/internal/transport/openai"
)

// Client sends conversations to models through a transport, running the
// tool-calling loop when executable tools are attached.
// A Client is safe for concurrent use; sends share no state.
type Client struct {
	transport     edgee.Transport
	logger        *slog.Logger
	events        chan<- event.Event
	maxIterations int
}

// ClientOption configures a Client built with NewWithTransport.
type ClientOption func(*Client)

// WithLogger sets the logger used by every send.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithEvents sets the channel receiving the events of every send.
func WithEvents(ch chan<- event.Event) ClientOption {
	return func(c *Client) {
		c.events = ch
	}
}

// WithDefaultMaxToolIterations sets the tool round budget used when a send
// does not specify one.
func WithDefaultMaxToolIterations(n int) ClientOption {
	return func(c *Client) {
		c.maxIterations = n
	}
}

// New creates a client for the configured backend.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	t, err := newTransport(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(t,
		WithLogger(logger),
		WithEvents(cfg.Events),
		WithDefaultMaxToolIterations(cfg.MaxToolIterations),
	), nil
}

// FromEnv creates a client configured from EDGEE_API_KEY, EDGEE_BASE_URL and
// EDGEE_BACKEND. See ConfigFromEnv.
func FromEnv(ctx context.Context) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

// NewWithTransport creates a client over an existing transport.
func NewWithTransport(t edgee.Transport, opts ...ClientOption) *Client {
	c := &Client{transport: t}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

func newTransport(ctx context.Context, cfg Config, logger *slog.Logger) (edgee.Transport, error) {
	switch cfg.Backend {
	case "", BackendGateway:
		opts := []openai.ClientOption{openai.WithLogger(logger)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPClient != nil {
			opts = append(opts, openai.WithHTTPClient(cfg.HTTPClient))
		}
		return openai.New(cfg.APIKey, opts...), nil

	case BackendAnthropic:
		opts := []anthropic.ClientOption{anthropic.WithLogger(logger)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPClient != nil {
			opts = append(opts, anthropic.WithHTTPClient(cfg.HTTPClient))
		}
		return anthropic.New(cfg.APIKey, opts...), nil

	case BackendGoogle:
		opts := []google.ClientOption{google.WithLogger(logger)}
		if cfg.BaseURL != "" {
			opts = append(opts, google.WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPClient != nil {
			opts = append(opts, google.WithHTTPClient(cfg.HTTPClient))
		}
		c, err := google.New(ctx, cfg.APIKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google client: %w", err)
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Send sends the input to model and returns the final response.
//
// Without executable tools this is a single round-trip; tool descriptors
// passed in an *edgee.InputObject are sent as-is and the model's tool calls
// come back untouched. With WithTools the tool-calling loop runs until the
// model answers without tool calls or the iteration budget runs out, in
// which case the last response is returned with Truncated() reporting true.
//
// Errors come from input validation, the transport and ctx. Tool failures
// are reported to the model, never to the caller.
func (c *Client) Send(ctx context.Context, model string, input edgee.Input, opts ...Option) (*edgee.SendResponse, error) {
	req, o, err := c.prepare(model, input, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := agent.Run(ctx, c.transport, req, o.Tools, c.loopOptions(o)...)
	if err != nil {
		c.logger.Debug("send failed", "model", model, "duration", time.Since(start), "error", err)
		return nil, err
	}
	c.logger.Debug("send complete",
		"model", model,
		"duration", time.Since(start),
		"iterations", resp.Iterations,
		"termination", resp.Termination,
		"total_tokens", resp.TotalUsage.TotalTokens,
	)
	return resp, nil
}

// Stream sends the input to model with streamed round-trips and yields every
// chunk of every round as it arrives. Validation, transport and context
// errors are yielded once as the final element. Breaking out of the range
// closes the underlying stream.
//
// When the tool iteration budget runs out, the range simply ends after the
// last chunk, whose finish reason is still "tool_calls". The annotated
// response (Iterations, Termination, Transcript, TotalUsage) is carried by
// the RunEnd event; use WithEventChannel to receive it, or Send with
// WithStream(true) to get it as the return value.
func (c *Client) Stream(ctx context.Context, model string, input edgee.Input, opts ...Option) iter.Seq2[edgee.StreamChunk, error] {
	req, o, err := c.prepare(model, input, opts)
	if err != nil {
		return func(yield func(edgee.StreamChunk, error) bool) {
			yield(edgee.StreamChunk{}, err)
		}
	}
	return agent.Stream(ctx, c.transport, req, o.Tools, c.loopOptions(o)...)
}

// prepare normalizes the input and builds the first request of a send.
func (c *Client) prepare(model string, input edgee.Input, opts []Option) (edgee.Request, *Options, error) {
	o := ApplyOptions(opts...)
	if strings.TrimSpace(model) == "" {
		return edgee.Request{}, nil, ErrMissingModel
	}

	in, err := edgee.Normalize(input)
	if err != nil {
		return edgee.Request{}, nil, err
	}
	if len(in.Tools) > 0 && o.Tools.Len() > 0 {
		return edgee.Request{}, nil, ErrMixedToolModes
	}
	if o.Compression {
		if o.CompressionRate < 0 || o.CompressionRate > 1 {
			return edgee.Request{}, nil, fmt.Errorf("compression rate %v out of range [0, 1]", o.CompressionRate)
		}
		in.EnableCompression = true
		in.CompressionRate = o.CompressionRate
	}

	req := edgee.NewRequest(model, in)
	if o.MaxTokens > 0 {
		req.MaxTokens = o.MaxTokens
	}
	req.Temperature = o.Temperature
	return req, o, nil
}

func (c *Client) loopOptions(o *Options) []agent.Option {
	n := o.MaxToolIterations
	if n == 0 {
		n = c.maxIterations
	}
	if n == 0 {
		n = agent.DefaultMaxToolIterations
	}
	events := c.events
	if o.Events != nil {
		events = o.Events
	}
	return []agent.Option{
		agent.WithMaxToolIterations(n),
		agent.WithStreaming(o.Stream),
		agent.WithParallelToolCalls(o.ParallelToolCalls),
		agent.WithHandlerTimeout(o.HandlerTimeout),
		agent.WithEvents(events),
		agent.WithLogger(c.logger),
	}
}
