package agent

import (
	"log/slog"
	"time"

	"github.com/edgee-cloud/go-sdk/event"
)

// DefaultMaxToolIterations is the tool round budget used when none is set.
const DefaultMaxToolIterations = 10

// Options contains configuration for a loop execution.
type Options struct {
	// MaxToolIterations bounds the number of tool execution rounds.
	// Must be at least 1. Default is 10.
	MaxToolIterations int

	// Streaming selects the streaming transport for each round-trip.
	// Streamed rounds are accumulated before tool calls are inspected.
	Streaming bool

	// ParallelToolCalls runs the tool calls of one round concurrently.
	// Results are still appended in the order the calls were received.
	// Default is false.
	ParallelToolCalls bool

	// HandlerTimeout sets the timeout for each individual tool handler.
	// A value of 0 means no per-handler timeout.
	HandlerTimeout time.Duration

	// Events receives loop events. Sends never block; events are dropped
	// when the channel is full. The channel is never closed by the loop.
	Events chan<- event.Event

	// Logger receives debug and warning records. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring loop execution.
type Option func(*Options)

// WithMaxToolIterations sets the maximum number of tool execution rounds.
func WithMaxToolIterations(n int) Option {
	return func(o *Options) {
		o.MaxToolIterations = n
	}
}

// WithStreaming enables or disables streamed round-trips.
func WithStreaming(enabled bool) Option {
	return func(o *Options) {
		o.Streaming = enabled
	}
}

// WithParallelToolCalls enables or disables concurrent tool execution.
// Default is false.
func WithParallelToolCalls(enabled bool) Option {
	return func(o *Options) {
		o.ParallelToolCalls = enabled
	}
}

// WithHandlerTimeout sets the timeout for each individual tool handler.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithEvents sets the channel receiving loop events.
func WithEvents(ch chan<- event.Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxToolIterations: DefaultMaxToolIterations,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
