// Command example walks through the SDK against a live gateway: text input,
// message input, manual tools, automatic tools, streaming and compression.
//
// Usage:
//
//	EDGEE_API_KEY=... go run ./cmd/example [model]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/client"
	"github.com/edgee-cloud/go-sdk/schema"
	"github.com/edgee-cloud/go-sdk/tool"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	model := "openai/gpt-4o"
	if len(os.Args) > 1 {
		model = os.Args[1]
	}

	level := slog.LevelWarn
	if os.Getenv("EDGEE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := client.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	cfg.Logger = logger

	c, err := client.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Text input ===")
	textInput(ctx, c, model)

	fmt.Println("\n=== Message input ===")
	messageInput(ctx, c, model)

	fmt.Println("\n=== Manual tools ===")
	manualTools(ctx, c, model)

	fmt.Println("\n=== Automatic tools ===")
	automaticTools(ctx, c, model)

	fmt.Println("\n=== Streaming ===")
	streaming(ctx, c, model)

	fmt.Println("\n=== Compression ===")
	compression(ctx, c, model)
}

func textInput(ctx context.Context, c *client.Client, model string) {
	resp, err := c.Send(ctx, model, edgee.Text("What is the capital of France?"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(resp.Text())
	printUsage(resp.Usage)
}

func messageInput(ctx context.Context, c *client.Client, model string) {
	resp, err := c.Send(ctx, model, edgee.Messages(
		edgee.SystemMessage("You are a helpful assistant."),
		edgee.UserMessage("Say hello!"),
	))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(resp.Text())
}

var weatherParams = json.RawMessage(`{
	"type": "object",
	"properties": {"location": {"type": "string", "description": "City name"}},
	"required": ["location"]
}`)

func manualTools(ctx context.Context, c *client.Client, model string) {
	resp, err := c.Send(ctx, model, &edgee.InputObject{
		Messages:   []edgee.Message{edgee.UserMessage("What is the weather in Paris?")},
		Tools:      []edgee.ToolDescriptor{edgee.NewToolDescriptor("get_weather", "Get the current weather for a location", weatherParams)},
		ToolChoice: edgee.ToolChoiceAuto,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	for _, tc := range resp.ToolCalls() {
		fmt.Printf("Tool call: %s(%s)\n", tc.Name(), tc.Arguments())
	}
	if !resp.WantsTools() {
		fmt.Println(resp.Text())
	}
}

func automaticTools(ctx context.Context, c *client.Client, model string) {
	weather := tool.MustNew("get_weather", "Get the current weather for a location",
		schema.Object().Field("location", schema.String().Desc("City name").Required()),
		func(ctx context.Context, args tool.Args) (any, error) {
			loc, _ := args.String("location")
			return map[string]any{"location": loc, "temperature_c": 21, "conditions": "sunny"}, nil
		})

	resp, err := c.Send(ctx, model, edgee.Text("What is the weather in Paris and in Rome?"),
		client.WithTools(tool.MustSet(weather)),
		client.WithMaxToolIterations(3),
		client.WithParallelToolCalls(true),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(resp.Text())
	fmt.Printf("[Tool rounds: %d, termination: %s]\n", resp.Iterations, resp.Termination)
	printUsage(resp.TotalUsage)
}

func streaming(ctx context.Context, c *client.Client, model string) {
	acc := edgee.NewAccumulator()
	for chunk, err := range c.Stream(ctx, model, edgee.Text("Say hello in 3 different languages, one per line.")) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nStream error: %v\n", err)
			return
		}
		acc.Add(chunk)
		fmt.Print(chunk.Text())
	}
	fmt.Println()
	printUsage(acc.Response().Usage)
}

func compression(ctx context.Context, c *client.Client, model string) {
	resp, err := c.Send(ctx, model, edgee.Text("Explain quantum computing in simple terms."),
		client.WithCompression(0.5),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(resp.Text())
	printUsage(resp.Usage)

	if resp.Compression == nil {
		fmt.Println("No compression data available in response.")
		return
	}
	fmt.Printf("[Compression: %d input tokens, %d saved, rate %.0f%%]\n",
		resp.Compression.InputTokens, resp.Compression.SavedTokens, resp.Compression.Rate*100)
}

func printUsage(u edgee.Usage) {
	fmt.Printf("[Tokens: %d prompt, %d completion, %d total]\n", u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}
