package tool

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with arguments that already passed validation.
// The returned value is serialized with FormatResult before it is sent back
// to the model.
type Handler func(ctx context.Context, args Args) (any, error)

// TypedHandler executes a tool with arguments decoded into T.
type TypedHandler[T any] func(ctx context.Context, args T) (any, error)

// Args holds validated tool arguments. Integers are int64, other numbers
// float64, objects map[string]any and arrays []any.
type Args map[string]any

// String returns the string value of key.
func (a Args) String(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

// Int returns the integer value of key.
func (a Args) Int(key string) (int64, bool) {
	v, ok := a[key].(int64)
	return v, ok
}

// Float returns the numeric value of key, widening integers.
func (a Args) Float(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the boolean value of key.
func (a Args) Bool(key string) (bool, bool) {
	v, ok := a[key].(bool)
	return v, ok
}

// Object returns the nested object stored under key.
func (a Args) Object(key string) (Args, bool) {
	v, ok := a[key].(map[string]any)
	return Args(v), ok
}

// Slice returns the array stored under key.
func (a Args) Slice(key string) ([]any, bool) {
	v, ok := a[key].([]any)
	return v, ok
}

// Decode copies the arguments into v, which must be a pointer.
func (a Args) Decode(v any) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
