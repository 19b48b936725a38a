package tool

import (
	"context"
	"errors"
	"fmt"
	"slices"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/schema"
)

// Tool binds a name, a description and a parameter schema to a handler.
// A Tool is immutable once created and safe for concurrent use as long as its
// handler is.
type Tool struct {
	name        string
	description string
	params      schema.Schema
	descriptor  edgee.ToolDescriptor
	invoke      func(ctx context.Context, validated any) (any, error)
}

// New creates a tool. A nil params schema declares a tool without arguments.
// Schema definition errors are reported here rather than on first call.
func New(name, description string, params schema.Schema, handler Handler) (*Tool, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	return newTool(name, description, params, func(ctx context.Context, validated any) (any, error) {
		args, _ := validated.(map[string]any)
		return handler(ctx, Args(args))
	})
}

// MustNew is like New but panics on error.
func MustNew(name, description string, params schema.Schema, handler Handler) *Tool {
	t, err := New(name, description, params, handler)
	if err != nil {
		panic(err)
	}
	return t
}

// Create is New with the description as the last argument.
func Create(name string, params schema.Schema, handler Handler, description string) (*Tool, error) {
	return New(name, description, params, handler)
}

// Func creates a tool whose parameter schema is reflected from T.
//
// Example:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" jsonschema:"description=City name"`
//	}
//
//	weather, err := tool.Func("get_weather", "Get current weather",
//	    func(ctx context.Context, args WeatherArgs) (any, error) {
//	        return map[string]any{"location": args.Location, "temperature": 21}, nil
//	    })
func Func[T any](name, description string, fn TypedHandler[T]) (*Tool, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	params, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	return newTool(name, description, params, func(ctx context.Context, validated any) (any, error) {
		return fn(ctx, validated.(T))
	})
}

// MustFunc is like Func but panics on error.
func MustFunc[T any](name, description string, fn TypedHandler[T]) *Tool {
	t, err := Func(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t
}

func newTool(name, description string, params schema.Schema, invoke func(context.Context, any) (any, error)) (*Tool, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if params == nil {
		params = schema.Object()
	}
	if c, ok := params.(schema.Checker); ok {
		if err := c.Check(); err != nil {
			return nil, fmt.Errorf("tool %s: %w", name, err)
		}
	}
	return &Tool{
		name:        name,
		description: description,
		params:      params,
		descriptor:  edgee.NewToolDescriptor(name, description, slices.Clone(params.JSON())),
		invoke:      invoke,
	}, nil
}

// Name returns the tool name, which is also the wire function name.
func (t *Tool) Name() string {
	return t.name
}

// Description returns the description shown to the model.
func (t *Tool) Description() string {
	return t.description
}

// Schema returns the parameter schema.
func (t *Tool) Schema() schema.Schema {
	return t.params
}

// Descriptor returns the wire-format declaration of the tool. It holds no
// reference to the handler and is identical across calls.
func (t *Tool) Descriptor() edgee.ToolDescriptor {
	d := t.descriptor
	d.Function.Parameters = slices.Clone(d.Function.Parameters)
	return d
}

// Execute validates the raw arguments and runs the handler.
//
// A validation failure returns an *ArgumentError without invoking the handler.
// A handler error is returned as an *ExecutionError wrapping the original.
// Panics are not recovered here.
func (t *Tool) Execute(ctx context.Context, arguments string) (any, error) {
	validated, err := t.params.Validate([]byte(arguments))
	if err != nil {
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			verr = &schema.ValidationError{Fields: []schema.FieldError{{Reason: err.Error()}}}
		}
		return nil, &ArgumentError{Tool: t.name, Err: verr}
	}

	result, err := t.invoke(ctx, validated)
	if err != nil {
		return nil, &ExecutionError{Tool: t.name, Err: err}
	}
	return result, nil
}
