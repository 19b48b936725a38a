package google

import (
	"errors"

	edgee "github.com/edgee-cloud/go-sdk"
	"google.golang.org/genai"
)

// wrapError wraps a Google GenAI error with edgee error categorization.
// genai.APIError doesn't expose headers, so Retry-After is not available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Not an API error, return as-is (network failure or cancellation)
		return err
	}
	return edgee.NewStatusError("google: "+apiErr.Message, apiErr.Code, 0, err)
}
