package agui

import (
	"encoding/json"
	"errors"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	edgee "github.com/edgee-cloud/go-sdk"
)

// RunAgentInput represents the AG-UI protocol request for running an agent.
// It is the JSON body AG-UI frontends post and is transport-agnostic.
type RunAgentInput struct {
	ThreadID       string           `json:"thread_id"`
	RunID          string           `json:"run_id"`
	Messages       []events.Message `json:"messages"`
	Tools          []any            `json:"tools,omitempty"`   // Frontend-provided tools
	Context        []any            `json:"context,omitempty"` // Context items
	State          any              `json:"state,omitempty"`
	ForwardedProps any              `json:"forwarded_props,omitempty"`
}

// PreparedInput contains validated and converted input ready for a send.
type PreparedInput struct {
	ThreadID string
	RunID    string
	Messages []edgee.Message
	Tools    []Tool // Parsed frontend tools
	State    any    // Raw state from frontend
}

// ErrNoMessages is returned when the input contains no messages.
var ErrNoMessages = errors.New("no messages provided")

// Prepare validates the input and converts its messages and tools.
// Returns ErrNoMessages if Messages is empty.
func (r *RunAgentInput) Prepare() (*PreparedInput, error) {
	messages := ToMessages(r.Messages)
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	result := &PreparedInput{
		ThreadID: r.ThreadID,
		RunID:    r.RunID,
		Messages: messages,
		State:    r.State,
	}

	if len(r.Tools) > 0 {
		tools, err := ParseTools(r.Tools)
		if err != nil {
			return nil, err
		}
		result.Tools = tools
	}
	return result, nil
}

// Input returns the send input. Frontend tools become manual-mode
// descriptors, so their calls come back in the response for the frontend
// to execute.
func (p *PreparedInput) Input() *edgee.InputObject {
	in := &edgee.InputObject{Messages: p.Messages}
	if len(p.Tools) > 0 {
		in.Tools = Descriptors(p.Tools)
		in.ToolChoice = edgee.ToolChoiceAuto
	}
	return in
}

// Mapper returns a Mapper for this run.
func (p *PreparedInput) Mapper() *Mapper {
	return NewMapper(p.ThreadID, p.RunID)
}

// DecodeState decodes the raw state into a typed struct.
// Returns the zero value of T if State is nil.
func DecodeState[T any](input *PreparedInput) (T, error) {
	var result T
	if input.State == nil {
		return result, nil
	}

	// Re-marshal and unmarshal to get proper typing
	data, err := json.Marshal(input.State)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, err
	}
	return result, nil
}
