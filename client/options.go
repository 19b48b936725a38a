package client

import (
	"time"

	"github.com/edgee-cloud/go-sdk/event"
	"github.com/edgee-cloud/go-sdk/tool"
)

// Options contains configuration for a single send.
type Options struct {
	Tools             *tool.Set
	MaxToolIterations int
	Stream            bool
	ParallelToolCalls bool
	HandlerTimeout    time.Duration
	MaxTokens         int
	Temperature       *float64

	// Compression enables gateway prompt compression at CompressionRate.
	Compression     bool
	CompressionRate float64

	// Events overrides the client's event channel for this send.
	Events chan<- event.Event
}

// Option is a functional option for configuring a send.
type Option func(*Options)

// WithTools attaches executable tools. The model's tool calls are validated,
// executed and answered automatically until it stops asking for tools.
func WithTools(tools *tool.Set) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// WithMaxToolIterations sets the maximum number of tool execution rounds.
func WithMaxToolIterations(n int) Option {
	return func(o *Options) {
		o.MaxToolIterations = n
	}
}

// WithStream selects streamed round-trips for Send. Stream always streams.
func WithStream(enabled bool) Option {
	return func(o *Options) {
		o.Stream = enabled
	}
}

// WithParallelToolCalls runs the tool calls of one round concurrently.
func WithParallelToolCalls(enabled bool) Option {
	return func(o *Options) {
		o.ParallelToolCalls = enabled
	}
}

// WithHandlerTimeout bounds each tool handler invocation.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithCompression asks the gateway to compress the prompt at the given
// rate in (0, 1]. A rate of 0 uses the gateway default.
func WithCompression(rate float64) Option {
	return func(o *Options) {
		o.Compression = true
		o.CompressionRate = rate
	}
}

// WithEventChannel sends the events of this send to ch instead of the
// client's channel.
func WithEventChannel(ch chan<- event.Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
