package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// decodeArguments parses tool arguments, keeping numbers as json.Number so
// integers and floats can be told apart. Blank input is read as {}.
func decodeArguments(raw []byte) (any, *ValidationError) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, malformed(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed(errors.New("unexpected data after JSON value"))
	}
	return v, nil
}

func malformed(err error) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Reason: "malformed JSON: " + err.Error()}}}
}

// shape fills absent optional fields that declare a default and turns
// integral floats in integer fields into int64. It runs on values that
// already passed validation.
func (s *schemaNode) shape(v any) any {
	switch x := v.(type) {
	case float64:
		if s.Type == "integer" && x == math.Trunc(x) && math.Abs(x) <= math.MaxInt64 {
			return int64(x)
		}
	case map[string]any:
		if s.Type != "object" {
			return v
		}
		for _, name := range s.order {
			prop := s.Properties[name]
			if val, present := x[name]; present {
				x[name] = prop.shape(val)
				continue
			}
			if prop.Default != nil {
				x[name] = prop.Default
			}
		}
	case []any:
		if s.Items == nil {
			return v
		}
		for i, item := range x {
			x[i] = s.Items.shape(item)
		}
	}
	return v
}

// plain converts decoded JSON into the value shapes handlers receive:
// integers as int64, other numbers as float64.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = plain(item)
		}
		return out
	}
	return v
}

func enumList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case string:
			parts[i] = strconv.Quote(x)
		case float64:
			parts[i] = formatNumber(x)
		default:
			parts[i] = fmt.Sprint(x)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
