package openai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/openai/openai-go"
)

// wrapError wraps an OpenAI SDK error with edgee error categorization.
// It extracts status codes and Retry-After headers so callers can decide
// whether and when to retry.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return edgee.NewTransientError("gateway: network error", 0, err)
		}
		return err
	}

	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.StatusCode)
	}
	return edgee.NewStatusError("gateway: "+msg, apiErr.StatusCode, parseRetryAfter(apiErr.Response), err)
}

// parseRetryAfter extracts the Retry-After duration from an HTTP response.
// Returns 0 if the header is not present or cannot be parsed.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	// Try parsing as seconds (most common)
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP-date (RFC 7231)
	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}
