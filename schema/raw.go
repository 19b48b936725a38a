package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer    = message.NewPrinter(language.English)
	resourceID atomic.Uint64
)

// RawSchema validates arguments against an arbitrary JSON Schema document.
type RawSchema struct {
	doc      json.RawMessage
	compiled *jsonschema.Schema
}

// Raw compiles a JSON Schema document. Compilation failures are returned as
// a *DefinitionError.
func Raw(doc json.RawMessage) (*RawSchema, error) {
	compiled, err := compile(doc)
	if err != nil {
		return nil, err
	}
	return &RawSchema{doc: slices.Clone(doc), compiled: compiled}, nil
}

// MustRaw is like Raw but panics on error.
func MustRaw(doc json.RawMessage) *RawSchema {
	s, err := Raw(doc)
	if err != nil {
		panic(err)
	}
	return s
}

func compile(doc []byte) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, &DefinitionError{Message: fmt.Sprintf("invalid JSON: %v", err), Err: err}
	}

	url := fmt.Sprintf("mem://schema/%d.json", resourceID.Add(1))
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, &DefinitionError{Message: err.Error(), Err: err}
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, &DefinitionError{Message: err.Error(), Err: err}
	}
	return compiled, nil
}

// JSON returns the original document.
func (s *RawSchema) JSON() json.RawMessage {
	return s.doc
}

// Validate checks raw arguments and returns them decoded with integers as
// int64 and other numbers as float64.
func (s *RawSchema) Validate(raw []byte) (any, error) {
	v, verr := decodeArguments(raw)
	if verr != nil {
		return nil, verr
	}
	if err := validateCompiled(s.compiled, v); err != nil {
		return nil, err
	}
	return plain(v), nil
}

func validateCompiled(compiled *jsonschema.Schema, v any) error {
	err := compiled.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Fields: []FieldError{{Reason: err.Error()}}}
	}
	var fields []FieldError
	collectLeaves(ve, &fields)
	slices.SortStableFunc(fields, func(a, b FieldError) int {
		return strings.Compare(a.Field, b.Field)
	})
	return &ValidationError{Fields: fields}
}

// collectLeaves flattens the compiler's error tree into field diagnostics.
func collectLeaves(ve *jsonschema.ValidationError, out *[]FieldError) {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			collectLeaves(c, out)
		}
		return
	}

	path := formatLocation(ve.InstanceLocation)
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			*out = append(*out, FieldError{Field: joinPath(path, name), Reason: "is required"})
		}
		return
	case *kind.AdditionalProperties:
		for _, name := range k.Properties {
			*out = append(*out, FieldError{Field: joinPath(path, name), Reason: "is not allowed"})
		}
		return
	}
	*out = append(*out, FieldError{Field: path, Reason: reason(ve.ErrorKind)})
}

// reason phrases the common keyword failures; anything else falls back to
// the compiler's English message.
func reason(k jsonschema.ErrorKind) string {
	switch k := k.(type) {
	case *kind.Type:
		return fmt.Sprintf("expected %s, got %s", strings.Join(k.Want, " or "), k.Got)
	case *kind.Enum:
		return "must be one of " + enumList(k.Want)
	case *kind.Minimum:
		return "must be >= " + ratString(k.Want)
	case *kind.Maximum:
		return "must be <= " + ratString(k.Want)
	case *kind.ExclusiveMinimum:
		return "must be > " + ratString(k.Want)
	case *kind.ExclusiveMaximum:
		return "must be < " + ratString(k.Want)
	case *kind.MinLength:
		return fmt.Sprintf("must be at least %d characters", k.Want)
	case *kind.MaxLength:
		return fmt.Sprintf("must be at most %d characters", k.Want)
	case *kind.Pattern:
		return fmt.Sprintf("must match pattern %q", k.Want)
	case *kind.MinItems:
		return fmt.Sprintf("must contain at least %d items", k.Want)
	case *kind.MaxItems:
		return fmt.Sprintf("must contain at most %d items", k.Want)
	case *kind.UniqueItems:
		return fmt.Sprintf("items %d and %d are equal", k.Duplicates[0], k.Duplicates[1])
	}
	return k.LocalizedString(printer)
}

func ratString(r *big.Rat) string {
	f, _ := r.Float64()
	return formatNumber(f)
}

// formatLocation renders a JSON pointer as a dotted path with array indexes.
func formatLocation(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		if isIndex(tok) {
			b.WriteString("[" + tok + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
