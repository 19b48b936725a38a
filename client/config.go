package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/edgee-cloud/go-sdk/event"
	"github.com/edgee-cloud/go-sdk/internal/transport/openai"
	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey  = "EDGEE_API_KEY"
	EnvBaseURL = "EDGEE_BASE_URL"
	EnvBackend = "EDGEE_BACKEND"
)

// DefaultBaseURL is the public Edgee gateway.
const DefaultBaseURL = openai.DefaultBaseURL

// Backend selects the transport used to reach models.
type Backend string

const (
	// BackendGateway talks to the Edgee gateway (OpenAI-compatible chat completions).
	BackendGateway Backend = "gateway"

	// BackendAnthropic talks to the Anthropic Messages API directly.
	BackendAnthropic Backend = "anthropic"

	// BackendGoogle talks to the Gemini API directly.
	BackendGoogle Backend = "google"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrMixedToolModes is returned when a request carries both manual tool
	// descriptors and executable tools.
	ErrMixedToolModes = errors.New("manual tool descriptors and executable tools cannot be combined")

	// ErrMissingModel is returned when Send is called without a model.
	ErrMissingModel = errors.New("missing model")
)

// Config holds configuration for creating a client.
type Config struct {
	// APIKey authenticates against the selected backend. Required.
	APIKey string

	// BaseURL overrides the backend endpoint. For the gateway backend it
	// defaults to DefaultBaseURL; the direct backends use their SDK default.
	BaseURL string

	// Backend selects the transport. Default is BackendGateway.
	Backend Backend

	// HTTPClient is used for all requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives debug and warning records. Defaults to a discarding logger.
	Logger *slog.Logger

	// Events receives the events of every send. Sends never block.
	Events chan<- event.Event

	// MaxToolIterations is the default tool round budget for sends that
	// carry executable tools. Zero means agent.DefaultMaxToolIterations.
	MaxToolIterations int
}

// Validate reports whether the configuration can build a client.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Backend {
	case "", BackendGateway, BackendAnthropic, BackendGoogle:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.MaxToolIterations < 0 {
		return fmt.Errorf("max tool iterations must not be negative, got %d", c.MaxToolIterations)
	}
	return nil
}

// ConfigFromEnv builds a Config from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win.
func ConfigFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		APIKey:  os.Getenv(EnvAPIKey),
		BaseURL: os.Getenv(EnvBaseURL),
		Backend: Backend(strings.ToLower(os.Getenv(EnvBackend))),
	}
	return cfg, cfg.Validate()
}
