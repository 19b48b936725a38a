package mcp

import (
	"context"
	"fmt"

	"github.com/edgee-cloud/go-sdk/schema"
	"github.com/edgee-cloud/go-sdk/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// RemoteError is the failure of a call the MCP server flagged as an error.
type RemoteError struct {
	Tool    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("mcp: tool %s failed: %s", e.Tool, e.Message)
}

// Remote is a session with an MCP server whose tools can be executed
// locally as ordinary tools. It is safe for concurrent use.
type Remote struct {
	client *client.Client
}

// Connect starts an MCP server subprocess and opens a session over stdio.
// The command is the path to the MCP server executable, and args are passed to it.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Remote, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return ConnectClient(ctx, c)
}

// ConnectSSE opens a session with an MCP server over SSE.
func ConnectSSE(ctx context.Context, baseURL string) (*Remote, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}
	return ConnectClient(ctx, c)
}

// ConnectClient starts and initializes an existing MCP client.
// The client is closed on failure.
func ConnectClient(ctx context.Context, c *client.Client) (*Remote, error) {
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "edgee-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}
	return &Remote{client: c}, nil
}

// Close ends the session.
func (r *Remote) Close() error {
	return r.client.Close()
}

// Tools lists the server's tools and wraps each as an executable tool whose
// arguments are validated against the server's input schema.
func (r *Remote) Tools(ctx context.Context) ([]*tool.Tool, error) {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	tools := make([]*tool.Tool, 0, len(result.Tools))
	for _, mt := range result.Tools {
		doc, err := InputSchema(mt)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", mt.Name, err)
		}
		params, err := schema.Raw(doc)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", mt.Name, err)
		}
		t, err := tool.New(mt.Name, mt.Description, params, r.handler(mt.Name))
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// Set is Tools collected into a tool set.
func (r *Remote) Set(ctx context.Context) (*tool.Set, error) {
	tools, err := r.Tools(ctx)
	if err != nil {
		return nil, err
	}
	return tool.NewSet(tools...)
}

func (r *Remote) handler(name string) tool.Handler {
	return func(ctx context.Context, args tool.Args) (any, error) {
		result, err := r.client.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      name,
				Arguments: map[string]any(args),
			},
		})
		if err != nil {
			return nil, err
		}
		text := ResultText(result)
		if result.IsError {
			return nil, &RemoteError{Tool: name, Message: text}
		}
		return text, nil
	}
}
