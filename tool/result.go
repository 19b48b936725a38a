package tool

import (
	"encoding/json"
	"errors"
	"fmt"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/schema"
)

// FormatResult serializes a handler result into tool message content.
//
// Strings are sent verbatim, as are []byte and json.RawMessage. A nil result
// becomes "null". Everything else goes through encoding/json, so structs
// honor their json tags and maps are emitted with sorted keys.
func FormatResult(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.RawMessage:
		return string(x), nil
	case []byte:
		return string(x), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("tool: serialize result: %w", err)
	}
	return string(data), nil
}

type errorPayload struct {
	Error  string              `json:"error"`
	Tool   string              `json:"tool,omitempty"`
	Fields []schema.FieldError `json:"fields,omitempty"`
}

// FormatError renders an error as the JSON object reported to the model,
// for example {"error":"tool: unknown tool \"lookup\""}. Argument errors also
// list the failing fields.
func FormatError(err error) string {
	p := errorPayload{Error: err.Error()}

	var argErr *ArgumentError
	var execErr *ExecutionError
	var unknown *UnknownToolError
	switch {
	case errors.As(err, &argErr):
		p.Tool = argErr.Tool
		p.Fields = argErr.Err.Fields
	case errors.As(err, &execErr):
		p.Tool = execErr.Tool
	case errors.As(err, &unknown):
		p.Tool = unknown.Name
	}

	data, mErr := json.Marshal(p)
	if mErr != nil {
		data, _ = json.Marshal(errorPayload{Error: err.Error()})
	}
	return string(data)
}

// Result is the outcome of one tool call.
type Result struct {
	// ToolCallID links the result to the originating call.
	ToolCallID string
	// Name is the called tool name.
	Name string
	// Value is the handler's return value, nil on error.
	Value any
	// Content is the serialized value or error sent to the model.
	Content string
	// Err is set when the call failed. It is reported to the model, never
	// propagated.
	Err error
}

// IsError reports whether the call failed.
func (r Result) IsError() bool {
	return r.Err != nil
}

// Message returns the tool-role message answering the call.
func (r Result) Message() edgee.Message {
	return edgee.ToolMessage(r.ToolCallID, r.Content)
}

// NewResult builds the result of a call from a handler value or error.
func NewResult(call edgee.ToolCall, value any, err error) Result {
	r := Result{ToolCallID: call.ID, Name: call.Name()}
	if err == nil {
		content, fmtErr := FormatResult(value)
		if fmtErr == nil {
			r.Value = value
			r.Content = content
			return r
		}
		err = &ExecutionError{Tool: call.Name(), Err: fmtErr}
	}
	r.Err = err
	r.Content = FormatError(err)
	return r
}
