package agent

// State is a state of the agentic loop.
type State string

const (
	// AwaitingResponse is entered when a request is sent.
	AwaitingResponse State = "awaiting_response"

	// ExecutingTools is entered when a response asks for tool calls.
	ExecutingTools State = "executing_tools"

	// Done is entered when a response carries no tool calls.
	Done State = "done"

	// IterationLimitExceeded is entered when the tool round budget runs out
	// while the model is still asking for tools.
	IterationLimitExceeded State = "iteration_limit_exceeded"
)

// Terminal reports whether the loop stops in this state.
func (s State) Terminal() bool {
	return s == Done || s == IterationLimitExceeded
}
