package edgee

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single turn of a conversation in gateway wire format.
type Message struct {
	Role Role `json:"role"`
	// Content is the message text. A nil Content is sent as JSON null, which is
	// what the gateway returns for assistant turns that only carry tool calls.
	Content *string `json:"content"`
	// Name optionally identifies the author of a user or system message.
	Name string `json:"name,omitempty"`
	// ToolCalls contains tool invocation requests from an assistant message.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// ToolCallID links a tool result back to the originating ToolCall.
	// Required when Role is RoleTool.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Text returns the message content, or an empty string when it is null.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// HasToolCalls reports whether the message requests any tool invocation.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// SystemMessage creates a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: &content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: &content}
}

// AssistantMessage creates an assistant message with plain text content.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: &content}
}

// ToolMessage creates a tool result message answering the tool call with the given ID.
func ToolMessage(toolCallID, content string) Message {
	return Message{Role: RoleTool, Content: &content, ToolCallID: toolCallID}
}

// cloneMessages copies a conversation so callers never share backing arrays
// with a running request.
func cloneMessages(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
