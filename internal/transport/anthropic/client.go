// Package anthropic implements a transport that talks to the Anthropic
// Messages API directly instead of going through the gateway. Requests and
// responses are converted to and from the gateway wire shape, so the loop
// cannot tell the two apart.
package anthropic

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	edgee "github.com/edgee-cloud/go-sdk"
)

// Client wraps the Anthropic SDK to implement edgee.Transport.
type Client struct {
	client     *anthropic.Client
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithBaseURL overrides the API origin.
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

// New creates a new Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(c.baseURL))
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}
	client := anthropic.NewClient(reqOpts...)
	c.client = &client
	return c
}

// Send sends a conversation and returns a complete response.
func (c *Client) Send(ctx context.Context, req edgee.Request) (*edgee.SendResponse, error) {
	params := buildParams(req)
	c.logger.DebugContext(ctx, "anthropic request", "model", params.Model, "messages", len(params.Messages), "tools", len(params.Tools))

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	return toResponse(resp), nil
}

// Stream sends a conversation and returns a stream of gateway-shaped chunks.
func (c *Client) Stream(ctx context.Context, req edgee.Request) (edgee.ChunkStream, error) {
	params := buildParams(req)
	c.logger.DebugContext(ctx, "anthropic stream request", "model", params.Model, "messages", len(params.Messages), "tools", len(params.Tools))

	stream := c.client.Messages.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, wrapError(err)
	}
	return newChunkStream(stream), nil
}

var _ edgee.Transport = (*Client)(nil)
