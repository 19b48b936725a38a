// Package agent implements the bounded agentic loop: send the conversation,
// execute the tools the model asks for, append their results and send again,
// until the model answers without tool calls or the iteration budget runs out.
//
// # Basic Usage
//
//	tools := tool.MustSet(
//	    tool.MustNew("get_weather", "Get current weather",
//	        schema.Object().Field("location", schema.String().Required()),
//	        func(ctx context.Context, args tool.Args) (any, error) {
//	            loc, _ := args.String("location")
//	            return map[string]any{"location": loc, "temp_c": 21}, nil
//	        }),
//	)
//
//	req := edgee.Request{Model: "openai/gpt-4o", Messages: []edgee.Message{edgee.UserMessage("Weather in Paris?")}}
//	resp, err := agent.Run(ctx, transport, req, tools, agent.WithMaxToolIterations(5))
//	if err != nil {
//	    return err // transport failure or cancellation
//	}
//	if resp.Truncated() {
//	    log.Printf("stopped after %d tool rounds", resp.Iterations)
//	}
//
// # States
//
// Each round-trip moves through AwaitingResponse, then either Done (no tool
// calls) or ExecutingTools. After each tool round the iteration counter is
// incremented; reaching the budget moves the loop to IterationLimitExceeded
// and the last response is returned annotated with
// edgee.TerminationIterationLimit.
//
// # Tool Failures
//
// Unknown tools, invalid arguments, handler errors and handler panics are
// reported to the model as tool messages carrying a JSON error object. They
// never abort the loop. Transport errors are returned unmodified.
//
// # Streaming
//
// Stream yields the chunks of every round-trip as they arrive. Breaking out
// of the range closes the in-flight stream:
//
//	for chunk, err := range agent.Stream(ctx, transport, req, tools) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Text())
//	}
//
// A round whose stream ends before a finish reason is never folded into a
// response. It fails with a transient *edgee.Error wrapping io.ErrUnexpectedEOF.
//
// # Events
//
// WithEvents receives run, step, message and tool call events, each tagged
// with the loop state. See the event and agui packages.
package agent
