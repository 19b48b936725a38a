package main

import (
	"context"
	"time"

	"github.com/edgee-cloud/go-sdk/tool"
)

// WeatherArgs are the arguments for get_weather.
type WeatherArgs struct {
	Location string `json:"location" jsonschema:"required,description=City name such as Paris"`
}

// EchoArgs are the arguments for echo.
type EchoArgs struct {
	Message string `json:"message" jsonschema:"required,description=Message to echo back"`
}

// demoTools returns the tools the server executes when the frontend sends
// none of its own.
func demoTools() *tool.Set {
	return tool.MustSet(
		tool.MustFunc("get_weather", "Get the current weather for a location",
			func(ctx context.Context, args WeatherArgs) (any, error) {
				select {
				case <-time.After(50 * time.Millisecond): // simulated latency
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				return map[string]any{
					"location":    args.Location,
					"temperature": 22,
					"conditions":  "Sunny",
					"unit":        "celsius",
				}, nil
			}),
		tool.MustFunc("get_time", "Get the current time",
			func(ctx context.Context, _ struct{}) (any, error) {
				return map[string]any{"time": time.Now().UTC().Format(time.RFC3339), "timezone": "UTC"}, nil
			}),
		tool.MustFunc("echo", "Echo back the input message (useful for testing)",
			func(ctx context.Context, args EchoArgs) (any, error) {
				return map[string]any{"echo": args.Message}, nil
			}),
	)
}
