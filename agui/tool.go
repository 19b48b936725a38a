package agui

import (
	"encoding/json"

	edgee "github.com/edgee-cloud/go-sdk"
)

// Tool represents a tool definition from the AG-UI protocol.
// Frontend tools run in the browser, so they are sent as manual-mode
// descriptors and their calls are handed back to the frontend.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// Descriptor converts the tool to its wire declaration.
func (t Tool) Descriptor() edgee.ToolDescriptor {
	return edgee.NewToolDescriptor(t.Name, t.Description, t.Parameters)
}

// ParseTools parses a slice of any (from JSON unmarshaling) into Tool structs.
// This handles the Tools field from RunAgentInput which is []any.
func ParseTools(raw []any) ([]Tool, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	// Re-marshal and unmarshal to get proper typing
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var tools []Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// Descriptors converts frontend tools to wire declarations.
func Descriptors(tools []Tool) []edgee.ToolDescriptor {
	if len(tools) == 0 {
		return nil
	}
	result := make([]edgee.ToolDescriptor, len(tools))
	for i, t := range tools {
		result[i] = t.Descriptor()
	}
	return result
}
