package edgee

import "encoding/json"

// ToolTypeFunction is the only tool type the gateway currently accepts.
const ToolTypeFunction = "function"

// ToolDescriptor is the wire-format declaration of a callable function.
type ToolDescriptor struct {
	Type     string              `json:"type"`
	Function FunctionDeclaration `json:"function"`
}

// FunctionDeclaration describes a function the model may call.
type FunctionDeclaration struct {
	// Name is the unique identifier for the function.
	Name string `json:"name"`
	// Description explains what the function does (helps the model decide when to use it).
	Description string `json:"description,omitempty"`
	// Parameters is a JSON Schema object defining the function parameters.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// NewToolDescriptor creates a function tool descriptor.
func NewToolDescriptor(name, description string, parameters json.RawMessage) ToolDescriptor {
	return ToolDescriptor{
		Type: ToolTypeFunction,
		Function: FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ToolCall represents a request from the model to invoke a tool.
type ToolCall struct {
	// ID is an opaque correlation token assigned by the gateway.
	ID string `json:"id"`
	// Type is always "function".
	Type string `json:"type"`
	// Function names the function and carries its serialized arguments.
	Function FunctionCall `json:"function"`
}

// FunctionCall holds the name and raw JSON arguments of a tool call.
// Arguments are not validated until the matching tool executes them.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Name returns the name of the function to invoke.
func (c ToolCall) Name() string {
	return c.Function.Name
}

// Arguments returns the raw serialized arguments.
func (c ToolCall) Arguments() string {
	return c.Function.Arguments
}

// ToolChoice controls how the model uses tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide when to use tools.
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceNone disables tool use for the request.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceRequired forces the model to use a tool.
	ToolChoiceRequired ToolChoice = "required"
)
