// Package agui connects sends to the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol that
// standardizes how AI agents connect to user-facing applications. This package
// converts send events and conversations to their AG-UI counterparts.
//
// # Overview
//
// This package provides:
//   - [Mapper]: converts [event.Event] values to AG-UI events
//   - Message conversion utilities: [ToMessages], [FromMessages]
//   - [RunAgentInput]: the AG-UI request, prepared into a send input
//
// The package does NOT provide HTTP handlers or transport implementations. Use
// the AG-UI SDK's SSE writer or any other transport.
//
// # Usage
//
//	prepared, err := runAgentInput.Prepare()
//	if err != nil {
//	    return err
//	}
//	mapper := prepared.Mapper()
//
//	events := event.NewChannel()
//	c, _ := client.New(ctx, client.Config{APIKey: key, Events: events})
//
//	go func() {
//	    defer close(events)
//	    c.Send(ctx, model, prepared.Input(), client.WithStream(true))
//	}()
//	for e := range events {
//	    if ev := mapper.MapEvent(e); ev != nil {
//	        writeEvent(ev)
//	    }
//	}
//
// # Event Mapping
//
//   - run_start, run_end, run_error → RUN_STARTED, RUN_FINISHED, RUN_ERROR
//   - step_start, step_end → STEP_STARTED, STEP_FINISHED (named "step-N")
//   - message_start, message_delta, message_end → TEXT_MESSAGE_START, TEXT_MESSAGE_CONTENT, TEXT_MESSAGE_END
//   - tool_call_start, tool_call_args, tool_call_end, tool_call_result → TOOL_CALL_*
//   - iteration_limit → CUSTOM "edgee.iteration_limit"
//
// # Thread Safety
//
// The Mapper is NOT safe for concurrent use. Message conversion functions are
// stateless and safe for concurrent use.
package agui
