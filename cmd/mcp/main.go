// Command mcp is a reference MCP server that exposes a tool set over stdio.
//
// MCP clients (like Claude Desktop or other AI assistants) can discover and
// call the tools. Arguments are validated against each tool's schema before
// the handler runs.
//
// Usage:
//
//	go run ./cmd/mcp
//
// Configuration for Claude Desktop (~/Library/Application Support/Claude/claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "edgee-tools": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/go-sdk"
//	        }
//	    }
//	}
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/edgee-cloud/go-sdk/mcp"
	"github.com/edgee-cloud/go-sdk/tool"
)

func main() {
	tools := tool.MustSet(
		tool.MustFunc("echo", "Echo back the input text", echoHandler),
		tool.MustFunc("time", "Get the current time", timeHandler),
		tool.MustFunc("calculate", "Perform basic arithmetic", calculateHandler),
	)

	if err := mcp.ServeStdio(tools,
		mcp.WithName("edgee-mcp-example"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}

// EchoArgs are the arguments for the echo tool.
type EchoArgs struct {
	Text string `json:"text" jsonschema:"description=The text to echo back"`
}

func echoHandler(ctx context.Context, args EchoArgs) (any, error) {
	return args.Text, nil
}

// TimeArgs are the arguments for the time tool.
type TimeArgs struct {
	Format string `json:"format,omitempty" jsonschema:"enum=rfc3339,enum=unix,enum=human,default=human"`
}

func timeHandler(ctx context.Context, args TimeArgs) (any, error) {
	now := time.Now()

	switch strings.ToLower(args.Format) {
	case "rfc3339":
		return now.Format(time.RFC3339), nil
	case "unix":
		return fmt.Sprintf("%d", now.Unix()), nil
	default:
		return now.Format("Monday, January 2, 2006 at 3:04 PM MST"), nil
	}
}

// CalculateArgs are the arguments for the calculate tool.
type CalculateArgs struct {
	Operation string  `json:"operation" jsonschema:"enum=add,enum=subtract,enum=multiply,enum=divide"`
	A         float64 `json:"a" jsonschema:"description=First number"`
	B         float64 `json:"b" jsonschema:"description=Second number"`
}

func calculateHandler(ctx context.Context, args CalculateArgs) (any, error) {
	var result float64

	switch args.Operation {
	case "add":
		result = args.A + args.B
	case "subtract":
		result = args.A - args.B
	case "multiply":
		result = args.A * args.B
	case "divide":
		if args.B == 0 {
			return nil, fmt.Errorf("cannot divide by zero")
		}
		result = args.A / args.B
	default:
		return nil, fmt.Errorf("unknown operation: %s", args.Operation)
	}

	return map[string]float64{"result": result}, nil
}
