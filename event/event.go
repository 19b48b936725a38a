// Package event provides the observable events of a send. The agentic loop
// emits them while it runs, and the event types map 1:1 onto the AG-UI
// protocol (see the agui package).
package event

import (
	"time"

	edgee "github.com/edgee-cloud/go-sdk"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when a send begins.
	RunStart Type = "run_start"

	// RunEnd fires when a send returns a response, including a truncated one.
	RunEnd Type = "run_end"

	// RunError fires when a transport error or cancellation aborts the send.
	RunError Type = "run_error"
)

// Step lifecycle events. A step is one request/response round-trip.
const (
	// StepStart fires before a request is sent.
	StepStart Type = "step_start"

	// StepEnd fires when the response of a step is complete.
	StepEnd Type = "step_end"
)

// Message lifecycle events
const (
	// MessageStart fires when an assistant message begins.
	MessageStart Type = "message_start"

	// MessageDelta fires for each streamed content fragment.
	MessageDelta Type = "message_delta"

	// MessageEnd fires when an assistant message completes.
	MessageEnd Type = "message_end"
)

// Tool call lifecycle events
const (
	// ToolCallStart fires when the loop picks up a tool call (contains tool name).
	ToolCallStart Type = "tool_call_start"

	// ToolCallArgs fires with the raw tool call arguments.
	ToolCallArgs Type = "tool_call_args"

	// ToolCallEnd fires when the tool call has been fully received.
	ToolCallEnd Type = "tool_call_end"

	// ToolCallExecuting fires before the tool handler runs.
	ToolCallExecuting Type = "tool_call_executing"

	// ToolCallResult fires with the tool result message content.
	ToolCallResult Type = "tool_call_result"
)

// IterationLimit fires when the tool iteration budget runs out while the
// model is still requesting tools.
const IterationLimit Type = "iteration_limit"

// Event represents an observable occurrence during a send.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// RunID identifies the send that produced the event.
	RunID string

	// MessageID identifies the message for Start/Delta/End correlation.
	MessageID string

	// State is the loop state when the event fired.
	State string

	// Delta contains streaming content for MessageDelta events.
	Delta string

	// Response contains the complete response for StepEnd, MessageEnd and RunEnd events.
	Response *edgee.SendResponse

	// ToolCall contains the tool call for tool-related events.
	ToolCall *edgee.ToolCall

	// Result is the content sent back to the model for ToolCallResult events.
	Result string

	// Step is the current round-trip number (1-indexed).
	Step int

	// Error contains the failure for RunError events, and the tool error for
	// ToolCallResult events of failed calls.
	Error error

	// Message contains additional context (e.g. termination reason).
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel without blocking.
// Events are dropped when the channel is nil or full.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
