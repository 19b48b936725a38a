package tool

import (
	"errors"
	"fmt"

	"github.com/edgee-cloud/go-sdk/schema"
)

var (
	// ErrEmptyName is returned when a tool is created without a name.
	ErrEmptyName = errors.New("tool: empty name")

	// ErrNilHandler is returned when a tool is created without a handler.
	ErrNilHandler = errors.New("tool: nil handler")

	// ErrNilTool is returned when a nil tool is added to a set.
	ErrNilTool = errors.New("tool: nil tool")
)

// UnknownToolError is returned when a tool call references an unregistered tool.
type UnknownToolError struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool: unknown tool %q", e.Name)
}

// ArgumentError reports arguments that failed schema validation.
// The handler is never invoked when this error is returned.
type ArgumentError struct {
	Tool string
	Err  *schema.ValidationError
}

// Error returns the tool name and every failing field.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("tool: %s: %v", e.Tool, e.Err)
}

// Unwrap returns the validation error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// ExecutionError wraps an error returned by a tool handler.
type ExecutionError struct {
	Tool string
	Err  error
}

// Error returns a formatted error message including the tool name and cause.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool: %s execution failed: %v", e.Tool, e.Err)
}

// Unwrap returns the handler's original error for use with errors.Is and errors.As.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// DuplicateToolError is returned when a tool set already holds a tool with the same name.
type DuplicateToolError struct {
	Name string
}

// Error returns a formatted error message including the duplicate tool name.
func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool: duplicate tool name %q", e.Name)
}
