// Package schema declares and validates tool parameters.
//
// Every tool carries a [Schema]: a JSON Schema document sent to the model and a
// strict validator for the arguments the model sends back. Validation never
// coerces across types: "5" is not a number, 5.5 is not an integer and null is
// no type at all. Failures are reported as a [*ValidationError] listing every
// offending field by path, such as "user.tags[2].id". Builders, raw
// documents and reflected types all compile to JSON Schema 2020-12 and share
// one validator, so the same document gives the same diagnostics.
//
// # Declared Fields
//
// The fluent builders declare fields without reflection. Validated objects are
// returned as map[string]any with integers as int64 and numbers as float64;
// defaults are applied to absent optional fields:
//
//	params := schema.Object().
//		Field("location", schema.String().Desc("City name").Required()).
//		Field("unit", schema.String().Enum("celsius", "fahrenheit").Default("celsius")).
//		Field("days", schema.Int().Min(1).Max(14).Default(7))
//
//	args, err := params.Validate([]byte(`{"location":"Paris"}`))
//
// Inconsistent definitions (min above max, a bad regex) are reported as a
// [*DefinitionError] by Build, Check and Validate:
//
//	_, err := schema.Object().
//		Field("count", schema.Int().Min(10).Max(5)).
//		Build()
//	// schema: field "count": minimum exceeds maximum
//
// # Raw Documents
//
// [Raw] compiles any JSON Schema document, for example one received from an
// MCP server:
//
//	s, err := schema.Raw(json.RawMessage(`{"type":"object","required":["q"]}`))
//
// # Go Types
//
// [For] reflects a schema from a struct and decodes validated arguments into it:
//
//	type SearchArgs struct {
//		Query string `json:"query" jsonschema:"description=Search terms"`
//		Limit int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50"`
//	}
//	s := schema.MustFor[SearchArgs]()
//	args, err := s.Decode(raw)
package schema
