package agui

import (
	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	edgee "github.com/edgee-cloud/go-sdk"
)

// Role constants matching AG-UI protocol.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// ToMessages converts AG-UI messages to conversation messages.
func ToMessages(msgs []events.Message) []edgee.Message {
	result := make([]edgee.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, ToMessage(msg))
	}
	return result
}

// ToMessage converts a single AG-UI message.
func ToMessage(msg events.Message) edgee.Message {
	m := edgee.Message{
		Role: toRole(msg.Role),
	}
	if msg.Content != nil {
		content := *msg.Content
		m.Content = &content
	}
	if msg.ToolCallID != nil {
		m.ToolCallID = *msg.ToolCallID
	}

	if len(msg.ToolCalls) > 0 {
		m.ToolCalls = make([]edgee.ToolCall, len(msg.ToolCalls))
		for i, tc := range msg.ToolCalls {
			m.ToolCalls[i] = edgee.ToolCall{
				ID:   tc.ID,
				Type: edgee.ToolTypeFunction,
				Function: edgee.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			}
		}
	}
	return m
}

// FromMessages converts conversation messages to AG-UI messages, for
// example to build a MESSAGES_SNAPSHOT from a transcript.
func FromMessages(msgs []edgee.Message) []events.Message {
	result := make([]events.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, FromMessage(msg))
	}
	return result
}

// FromMessage converts a single message. A message ID is generated.
func FromMessage(msg edgee.Message) events.Message {
	m := events.Message{
		ID:   events.GenerateMessageID(),
		Role: fromRole(msg.Role),
	}
	if msg.Content != nil {
		content := *msg.Content
		m.Content = &content
	}
	if msg.ToolCallID != "" {
		id := msg.ToolCallID
		m.ToolCallID = &id
	}

	if len(msg.ToolCalls) > 0 {
		m.ToolCalls = make([]events.ToolCall, len(msg.ToolCalls))
		for i, tc := range msg.ToolCalls {
			m.ToolCalls[i] = events.ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: events.Function{
					Name:      tc.Name(),
					Arguments: tc.Arguments(),
				},
			}
		}
	}
	return m
}

func toRole(role string) edgee.Role {
	switch role {
	case RoleAssistant:
		return edgee.RoleAssistant
	case RoleSystem:
		return edgee.RoleSystem
	case RoleTool:
		return edgee.RoleTool
	default:
		return edgee.RoleUser
	}
}

func fromRole(role edgee.Role) string {
	switch role {
	case edgee.RoleAssistant:
		return RoleAssistant
	case edgee.RoleSystem:
		return RoleSystem
	case edgee.RoleTool:
		return RoleTool
	default:
		return RoleUser
	}
}
