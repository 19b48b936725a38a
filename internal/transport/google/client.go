// Package google implements a transport that talks to the Gemini API
// directly. Requests and responses are converted to and from the gateway
// wire shape.
package google

import (
	"context"
	"log/slog"
	"net/http"

	edgee "github.com/edgee-cloud/go-sdk"
	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK to implement edgee.Transport.
type Client struct {
	client     *genai.Client
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the Google client.
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

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return nil, err
	}
	c.client = client
	return c, nil
}

// Send sends a conversation and returns a complete response.
func (c *Client) Send(ctx context.Context, req edgee.Request) (*edgee.SendResponse, error) {
	model := modelName(req.Model)
	contents, system := convertMessages(req.Messages)
	c.logger.DebugContext(ctx, "google request", "model", model, "contents", len(contents), "tools", len(req.Tools))

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, buildConfig(req, system))
	if err != nil {
		return nil, wrapError(err)
	}
	return toResponse(model, resp)
}

// Stream sends a conversation and returns a stream of gateway-shaped chunks.
// The request is issued on the first call to Next.
func (c *Client) Stream(ctx context.Context, req edgee.Request) (edgee.ChunkStream, error) {
	model := modelName(req.Model)
	contents, system := convertMessages(req.Messages)
	c.logger.DebugContext(ctx, "google stream request", "model", model, "contents", len(contents), "tools", len(req.Tools))

	return newChunkStream(model, c.client.Models.GenerateContentStream(ctx, model, contents, buildConfig(req, system))), nil
}

var _ edgee.Transport = (*Client)(nil)
