// Package client is the entry point for sending conversations to models
// through the Edgee gateway.
//
// The Client wraps a transport and provides:
//
//   - Simple sends: one round-trip, text or full conversation input
//   - Manual tool calling: descriptors are sent, tool calls come back raw
//   - Automatic tool calling: executable tools are run in a bounded loop
//   - Streaming: every chunk of every round as an iterator
//   - Event emission: observable sends via channel
//
// # Basic Usage
//
//	c, err := client.New(ctx, client.Config{APIKey: os.Getenv("EDGEE_API_KEY")})
//	if err != nil {
//	    return err
//	}
//
//	resp, err := c.Send(ctx, "openai/gpt-4o", edgee.Text("Hello!"))
//	fmt.Println(resp.Text())
//
// Or read EDGEE_API_KEY, EDGEE_BASE_URL and EDGEE_BACKEND from the
// environment (and a .env file):
//
//	c, err := client.FromEnv(ctx)
//
// # Tools
//
// Attach executable tools and the client answers the model's tool calls
// until it produces a final answer:
//
//	resp, err := c.Send(ctx, "openai/gpt-4o", edgee.Text("Weather in Paris?"),
//	    client.WithTools(tools),
//	    client.WithMaxToolIterations(5),
//	)
//	if resp.Truncated() {
//	    // the model was still asking for tools when the budget ran out
//	}
//
// Tool descriptors passed in an *edgee.InputObject are manual mode: they are
// sent as-is and tool calls are returned for the caller to handle. The two
// modes cannot be combined in one send.
//
// # Streaming
//
//	for chunk, err := range c.Stream(ctx, "openai/gpt-4o", edgee.Text("Tell me a story")) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Text())
//	}
//
// # Compression
//
// The gateway can compress prompts before forwarding them:
//
//	resp, err := c.Send(ctx, model, input, client.WithCompression(0.5))
//	if resp.Compression != nil {
//	    fmt.Println("saved", resp.Compression.SavedTokens, "tokens")
//	}
//
// # Backends
//
// BackendGateway (default) speaks the gateway's OpenAI-compatible API.
// BackendAnthropic and BackendGoogle call those providers directly with the
// same request and response shapes.
package client
