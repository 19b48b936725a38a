// Package openai implements the gateway transport. The Edgee gateway speaks
// the OpenAI chat completions protocol, so requests go through the openai-go
// client and streams are decoded with its SSE decoder.
package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

// DefaultBaseURL is the public Edgee gateway.
const DefaultBaseURL = "https://api.edgee.ai"

const chatPath = "chat/completions"

// Client sends chat completion requests to the gateway.
type Client struct {
	client     *openai.Client
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the gateway client.
type ClientOption func(*Client)

// WithBaseURL sets the gateway origin, without the /v1 suffix.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a gateway client authenticated with the given API key.
// SDK-level retries are disabled: transport errors surface on the first failure.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(strings.TrimRight(c.baseURL, "/") + "/v1/"),
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}
	client := openai.NewClient(reqOpts...)
	c.client = &client
	return c
}

// Send performs a single-shot chat completion.
func (c *Client) Send(ctx context.Context, req edgee.Request) (*edgee.SendResponse, error) {
	req.Stream = false
	req.StreamOptions = nil

	c.logger.DebugContext(ctx, "gateway request", "model", req.Model, "messages", len(req.Messages), "tools", len(req.Tools))
	var raw []byte
	if err := c.client.Post(ctx, chatPath, req, &raw); err != nil {
		return nil, wrapError(err)
	}
	resp, err := edgee.ParseResponse(raw)
	if err != nil {
		return nil, edgee.NewPermanentError("gateway: malformed response", 0, err)
	}
	return resp, nil
}

// Stream performs a streaming chat completion. The returned stream owns the
// HTTP response body until it is closed.
func (c *Client) Stream(ctx context.Context, req edgee.Request) (edgee.ChunkStream, error) {
	req.Stream = true
	if req.StreamOptions == nil {
		req.StreamOptions = &edgee.StreamOptions{IncludeUsage: true}
	}

	c.logger.DebugContext(ctx, "gateway stream request", "model", req.Model, "messages", len(req.Messages), "tools", len(req.Tools))
	var res *http.Response
	if err := c.client.Post(ctx, chatPath, req, &res); err != nil {
		return nil, wrapError(err)
	}
	return &chunkStream{stream: ssestream.NewStream[json.RawMessage](ssestream.NewDecoder(res), nil)}, nil
}

// chunkStream decodes SSE data frames into edgee stream chunks.
type chunkStream struct {
	stream *ssestream.Stream[json.RawMessage]
	cur    edgee.StreamChunk
	err    error
}

func (s *chunkStream) Next() bool {
	if s.err != nil || !s.stream.Next() {
		return false
	}
	chunk, err := edgee.ParseChunk(s.stream.Current())
	if err != nil {
		s.err = edgee.NewPermanentError("gateway: malformed stream chunk", 0, err)
		return false
	}
	s.cur = chunk
	return true
}

func (s *chunkStream) Current() edgee.StreamChunk {
	return s.cur
}

func (s *chunkStream) Err() error {
	if s.err != nil {
		return s.err
	}
	return wrapError(s.stream.Err())
}

func (s *chunkStream) Close() error {
	return s.stream.Close()
}

var _ edgee.Transport = (*Client)(nil)
