package mcp

import (
	"encoding/json"
	"strings"

	"github.com/edgee-cloud/go-sdk/tool"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToMCPTool converts a tool to an MCP tool. The tool's parameter schema is
// used verbatim as the raw input schema.
func ToMCPTool(t *tool.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name(), t.Description(), t.Schema().JSON())
}

// InputSchema returns the JSON Schema document of an MCP tool, preferring
// the raw schema when the server sent one.
func InputSchema(t mcp.Tool) (json.RawMessage, error) {
	if len(t.RawInputSchema) > 0 {
		return t.RawInputSchema, nil
	}
	return json.Marshal(t.InputSchema)
}

// ResultText concatenates the content of a call result as text. Non-text
// content and structured content are rendered as JSON.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	if result.StructuredContent != nil && len(parts) == 0 {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, "\n")
}
