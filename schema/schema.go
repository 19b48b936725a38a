package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema describes and validates the arguments of a tool.
type Schema interface {
	// JSON returns the JSON Schema document sent to the model.
	JSON() json.RawMessage

	// Validate checks raw JSON arguments and returns the validated value.
	// Failures are reported as *ValidationError.
	Validate(raw []byte) (any, error)
}

// Checker is implemented by schemas whose definition can be inconsistent,
// such as a builder with min greater than max.
type Checker interface {
	Check() error
}

// Builder is the interface implemented by all schema builders.
// It provides a fluent API for constructing JSON Schema objects.
type Builder interface {
	// Build serializes the schema to json.RawMessage.
	// Returns a *DefinitionError if the schema is inconsistent.
	Build() (json.RawMessage, error)

	// MustBuild is like Build but panics on error.
	MustBuild() json.RawMessage

	node() *schemaNode
}

// schemaNode is the internal representation of a declared field.
type schemaNode struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`

	// String constraints
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Numeric constraints
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`

	// Array constraints
	Items       *schemaNode `json:"items,omitempty"`
	MinItems    *int        `json:"minItems,omitempty"`
	MaxItems    *int        `json:"maxItems,omitempty"`
	UniqueItems bool        `json:"uniqueItems,omitempty"`

	// Object constraints
	Properties           map[string]*schemaNode `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`

	// order keeps properties in declaration order for diagnostics.
	order      []string
	patternErr error

	// compiled caches the compiled document of a root node. Builders are
	// mutable, so the cache is keyed by the document it was built from.
	mu          sync.Mutex
	compiled    *jsonschema.Schema
	compiledDoc []byte
}

// Sentinel errors for schema definitions.
var (
	// ErrInvalidRange is returned when min exceeds max.
	ErrInvalidRange = errors.New("schema: minimum exceeds maximum")

	// ErrInvalidPattern is returned when a regex pattern is invalid.
	ErrInvalidPattern = errors.New("schema: invalid regex pattern")

	// ErrNilItems is returned when an array has no items schema.
	ErrNilItems = errors.New("schema: array requires items schema")
)

// DefinitionError reports an inconsistent schema definition.
type DefinitionError struct {
	Field   string // Dotted path of the offending field, empty for the root
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *DefinitionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("schema: %s", e.Message)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// FieldError is a single validation failure.
type FieldError struct {
	// Field is the path of the failing value, such as "user.tags[2]".
	// It is empty when the payload as a whole is rejected.
	Field string `json:"field,omitempty"`
	// Reason describes the failure.
	Reason string `json:"reason"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// ValidationError reports every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// Has reports whether the error mentions the given field path.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (s *schemaNode) check(path string) error {
	fail := func(msg string, err error) error {
		return &DefinitionError{Field: path, Message: msg, Err: err}
	}

	switch s.Type {
	case "string":
		if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
			return fail("minLength exceeds maxLength", ErrInvalidRange)
		}
		if s.patternErr != nil {
			return fail(fmt.Sprintf("invalid pattern %q: %v", s.Pattern, s.patternErr), ErrInvalidPattern)
		}

	case "integer", "number":
		if s.Minimum != nil && s.Maximum != nil && *s.Minimum > *s.Maximum {
			return fail("minimum exceeds maximum", ErrInvalidRange)
		}
		if s.ExclusiveMinimum != nil && s.ExclusiveMaximum != nil && *s.ExclusiveMinimum >= *s.ExclusiveMaximum {
			return fail("exclusiveMinimum >= exclusiveMaximum", ErrInvalidRange)
		}

	case "array":
		if s.Items == nil {
			return fail("array requires items schema", ErrNilItems)
		}
		if s.MinItems != nil && s.MaxItems != nil && *s.MinItems > *s.MaxItems {
			return fail("minItems exceeds maxItems", ErrInvalidRange)
		}
		return s.Items.check(path + "[]")

	case "object":
		for _, name := range s.order {
			if err := s.Properties[name].check(joinPath(path, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// base carries the behavior every builder shares.
type base struct {
	n *schemaNode
}

// Required marks this field as required when used in an object.
// Returns a RequiredField wrapper for use with ObjectBuilder.Field().
func (b base) Required() *RequiredField {
	return &RequiredField{n: b.n}
}

// Check reports an inconsistent definition as a *DefinitionError.
func (b base) Check() error {
	return b.n.check("")
}

// Build serializes the schema to json.RawMessage.
func (b base) Build() (json.RawMessage, error) {
	if err := b.n.check(""); err != nil {
		return nil, err
	}
	return json.Marshal(b.n)
}

// MustBuild is like Build but panics on error.
func (b base) MustBuild() json.RawMessage {
	data, err := b.Build()
	if err != nil {
		panic(err)
	}
	return data
}

// JSON returns the serialized schema. Inconsistent definitions are still
// serialized; use Check or Build to detect them.
func (b base) JSON() json.RawMessage {
	data, _ := json.Marshal(b.n)
	return data
}

// Validate checks raw JSON against the declared fields and fills in the
// declared defaults of absent optional fields.
func (b base) Validate(raw []byte) (any, error) {
	compiled, err := b.n.compile()
	if err != nil {
		return nil, err
	}
	v, verr := decodeArguments(raw)
	if verr != nil {
		return nil, verr
	}
	if err := validateCompiled(compiled, v); err != nil {
		return nil, err
	}
	return b.n.shape(plain(v)), nil
}

// compile checks the definition and returns its compiled document, reusing
// the previous compilation while the document is unchanged.
func (s *schemaNode) compile() (*jsonschema.Schema, error) {
	if err := s.check(""); err != nil {
		return nil, err
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return nil, &DefinitionError{Message: err.Error(), Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.compiled != nil && bytes.Equal(doc, s.compiledDoc) {
		return s.compiled, nil
	}
	compiled, err := compile(doc)
	if err != nil {
		return nil, err
	}
	s.compiled, s.compiledDoc = compiled, doc
	return compiled, nil
}

func (b base) node() *schemaNode {
	return b.n
}

// RequiredField wraps a Builder to mark it as required in an object.
type RequiredField struct {
	n *schemaNode
}

// ptr returns a pointer to the value.
func ptr[T any](v T) *T {
	return &v
}
