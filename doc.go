// Package edgee holds the wire data model shared by the Edgee gateway SDK.
//
// The types in this package mirror the gateway's OpenAI-compatible chat
// completion format: [Message], [ToolCall], [ToolDescriptor], [Request],
// [SendResponse] and the streaming [StreamChunk]. [Accumulator] folds a
// stream back into the same [SendResponse] shape a single-shot call returns.
//
// Use the [github.com/edgee-cloud/go-sdk/client] package as the entry point:
//
//	c, err := client.New(ctx, client.Config{APIKey: os.Getenv("EDGEE_API_KEY")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Send(ctx, "gpt-4o", edgee.Text("What is the capital of France?"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Text())
//
// # Input
//
// A send accepts any [Input]: a plain [Text] prompt, a conversation built with
// [Messages], or a full [InputObject] carrying manual tool descriptors and
// gateway compression settings:
//
//	resp, err := c.Send(ctx, "gpt-4o", &edgee.InputObject{
//	    Messages:          []edgee.Message{edgee.UserMessage(longPrompt)},
//	    EnableCompression: true,
//	    CompressionRate:   0.5,
//	})
//	if resp.Compression != nil {
//	    fmt.Println("saved", resp.Compression.SavedTokens, "tokens")
//	}
//
// # Tools
//
// Executable tools live in [github.com/edgee-cloud/go-sdk/tool]. When tools are
// attached to a send, the client runs the agentic loop from
// [github.com/edgee-cloud/go-sdk/agent]: tool calls are validated, executed and
// answered until the model produces a final response or the iteration budget
// runs out. A response cut short by the budget reports [SendResponse.Truncated].
//
// # Errors
//
// Transport failures are returned as [*Error] values categorized as transient,
// permanent or user input. Tool failures never surface as errors from a send;
// they are reported back to the model as tool results.
package edgee
