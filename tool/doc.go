// Package tool defines executable tools for the agentic loop.
//
// A [Tool] binds a name, a description and a [schema.Schema] to a handler.
// The model sees only the [Tool.Descriptor]; when it asks for the tool, the
// arguments are validated first and the handler runs only on valid input.
//
// # Declared Parameters
//
//	weather := tool.MustNew("get_weather", "Get current weather",
//	    schema.Object().
//	        Field("location", schema.String().Desc("City name").Required()).
//	        Field("unit", schema.String().Enum("celsius", "fahrenheit").Default("celsius")),
//	    func(ctx context.Context, args tool.Args) (any, error) {
//	        loc, _ := args.String("location")
//	        return map[string]any{"location": loc, "temperature": 21}, nil
//	    })
//
// # Typed Parameters
//
// [Func] reflects the schema from a struct and decodes arguments into it:
//
//	type SearchArgs struct {
//	    Query string `json:"query" jsonschema:"description=Search terms"`
//	}
//
//	search := tool.MustFunc("search", "Search the docs",
//	    func(ctx context.Context, args SearchArgs) (any, error) {
//	        return index.Search(ctx, args.Query)
//	    })
//
// # Sets
//
// A [Set] holds the tools of one call. Names must be unique:
//
//	tools := tool.MustSet(weather, search)
//
// # Results and Errors
//
// Handler results are serialized with [FormatResult]: strings, []byte and
// json.RawMessage are sent verbatim and everything else is JSON encoded.
// Failures are reported to the model as a JSON object built by [FormatError]:
//
//	{"error":"tool: get_weather: invalid arguments: location: is required",
//	 "tool":"get_weather",
//	 "fields":[{"field":"location","reason":"is required"}]}
//
// Calling [Tool.Execute] directly surfaces the typed errors instead:
// [*ArgumentError] for invalid arguments and [*ExecutionError] wrapping the
// handler's own error.
package tool
