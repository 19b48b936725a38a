package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	sjs "github.com/santhosh-tekuri/jsonschema/v6"
)

// TypedSchema validates arguments against the schema reflected from T and
// decodes them into a T.
type TypedSchema[T any] struct {
	doc      json.RawMessage
	compiled *sjs.Schema
}

// For reflects a JSON Schema from the struct type T.
//
// Field names follow the json tags; fields without omitempty are required and
// undeclared fields are rejected. Use jsonschema struct tags for descriptions,
// enums and bounds:
//
//	type WeatherArgs struct {
//		Location string `json:"location" jsonschema:"description=City name"`
//		Unit     string `json:"unit,omitempty" jsonschema:"enum=celsius,enum=fahrenheit"`
//	}
//	s, err := schema.For[WeatherArgs]()
func For[T any]() (*TypedSchema[T], error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	reflected := r.Reflect(new(T))
	reflected.Version = ""
	reflected.ID = ""

	doc, err := json.Marshal(reflected)
	if err != nil {
		return nil, &DefinitionError{Message: fmt.Sprintf("reflect %T: %v", *new(T), err), Err: err}
	}
	compiled, err := compile(doc)
	if err != nil {
		return nil, err
	}
	return &TypedSchema[T]{doc: doc, compiled: compiled}, nil
}

// MustFor is like For but panics on error.
func MustFor[T any]() *TypedSchema[T] {
	s, err := For[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// JSON returns the reflected document.
func (s *TypedSchema[T]) JSON() json.RawMessage {
	return s.doc
}

// Validate checks raw arguments and returns the decoded T.
func (s *TypedSchema[T]) Validate(raw []byte) (any, error) {
	return s.Decode(raw)
}

// Decode checks raw arguments and decodes them into a T.
func (s *TypedSchema[T]) Decode(raw []byte) (T, error) {
	var out T
	v, verr := decodeArguments(raw)
	if verr != nil {
		return out, verr
	}
	if err := validateCompiled(s.compiled, v); err != nil {
		return out, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return out, &ValidationError{Fields: []FieldError{{Reason: err.Error()}}}
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ValidationError{Fields: []FieldError{{Reason: err.Error()}}}
	}
	return out, nil
}
