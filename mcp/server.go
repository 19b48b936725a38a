package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/tool"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server that exposes every tool of the set.
// Calls go through the same validation and result serialization as the
// tool-calling loop; failures are returned as MCP error results.
//
// Example:
//
//	mcpServer := mcp.NewServer(tools,
//	    mcp.WithName("my-tools"),
//	    mcp.WithVersion("1.0.0"),
//	)
//	server.ServeStdio(mcpServer)
func NewServer(tools *tool.Set, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "edgee-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, t := range tools.Tools() {
		s.AddTool(ToMCPTool(t), handlerFor(tools, t.Name()))
	}
	return s
}

// handlerFor adapts a tool of the set to an MCP tool handler.
func handlerFor(tools *tool.Set, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			args = string(data)
		}

		res := call(ctx, tools, edgee.ToolCall{
			ID:       "mcp_" + uuid.NewString(),
			Type:     edgee.ToolTypeFunction,
			Function: edgee.FunctionCall{Name: name, Arguments: args},
		})
		if res.IsError() {
			return mcp.NewToolResultError(res.Content), nil
		}
		return mcp.NewToolResultText(res.Content), nil
	}
}

func call(ctx context.Context, tools *tool.Set, tc edgee.ToolCall) (res tool.Result) {
	defer func() {
		if v := recover(); v != nil {
			err := &tool.ExecutionError{Tool: tc.Name(), Err: &tool.PanicError{Value: v, Stack: debug.Stack()}}
			res = tool.NewResult(tc, nil, err)
		}
	}()
	return tools.Call(ctx, tc)
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(tools *tool.Set, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(tools, opts...))
}
