package edgee

import "context"

// Request is the body of one chat completion round-trip.
type Request struct {
	Model         string           `json:"model"`
	Messages      []Message        `json:"messages"`
	Tools         []ToolDescriptor `json:"tools,omitempty"`
	ToolChoice    ToolChoice       `json:"tool_choice,omitempty"`
	Stream        bool             `json:"stream,omitempty"`
	StreamOptions *StreamOptions   `json:"stream_options,omitempty"`
	MaxTokens     int              `json:"max_tokens,omitempty"`
	Temperature   *float64         `json:"temperature,omitempty"`

	EnableCompression bool    `json:"enable_compression,omitempty"`
	CompressionRate   float64 `json:"compression_rate,omitempty"`
}

// StreamOptions configures streaming responses.
type StreamOptions struct {
	// IncludeUsage requests a trailing chunk carrying token usage.
	IncludeUsage bool `json:"include_usage"`
}

// NewRequest builds a request for the given model from normalized input.
func NewRequest(model string, in InputObject) Request {
	return Request{
		Model:             model,
		Messages:          cloneMessages(in.Messages),
		Tools:             in.Tools,
		ToolChoice:        in.ToolChoice,
		EnableCompression: in.EnableCompression,
		CompressionRate:   in.CompressionRate,
	}
}

// Clone returns a copy of the request that shares no slices with r.
func (r Request) Clone() Request {
	cp := r
	cp.Messages = cloneMessages(r.Messages)
	if len(r.Tools) > 0 {
		cp.Tools = make([]ToolDescriptor, len(r.Tools))
		copy(cp.Tools, r.Tools)
	}
	if r.StreamOptions != nil {
		so := *r.StreamOptions
		cp.StreamOptions = &so
	}
	return cp
}

// Transport sends requests to a model-serving backend.
// Implementations own timeouts and connection handling; errors they return are
// treated as fatal for the current call and are never retried by the caller.
type Transport interface {
	// Send performs a single-shot round-trip.
	Send(ctx context.Context, req Request) (*SendResponse, error)

	// Stream performs a streaming round-trip. The returned stream must be
	// closed by the caller, including when it stops reading early.
	Stream(ctx context.Context, req Request) (ChunkStream, error)
}

// ChunkStream is a pull-based, non-restartable sequence of stream chunks.
type ChunkStream interface {
	// Next advances to the next chunk. It returns false at the end of the
	// stream or on error.
	Next() bool
	// Current returns the chunk Next advanced to.
	Current() StreamChunk
	// Err returns the first error encountered, if any.
	Err() error
	// Close releases the underlying connection.
	Close() error
}
