package anthropic

import (
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	edgee "github.com/edgee-cloud/go-sdk"
)

// defaultMaxTokens is sent when the request leaves MaxTokens unset;
// the Messages API requires it.
const defaultMaxTokens = 4096

// buildParams converts a gateway request into Messages API parameters.
func buildParams(req edgee.Request) anthropic.MessageNewParams {
	maxTokens := int64(defaultMaxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}

	msgs, system := convertMessages(req.Messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName(req.Model)),
		MaxTokens: maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
		if req.ToolChoice != "" && req.ToolChoice != edgee.ToolChoiceNone {
			params.ToolChoice = convertToolChoice(req.ToolChoice)
		}
	}
	return params
}

// modelName strips the gateway provider prefix ("anthropic/claude-...").
func modelName(model string) string {
	if name, ok := strings.CutPrefix(model, "anthropic/"); ok {
		return name
	}
	return model
}

func convertMessages(messages []edgee.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var result []anthropic.MessageParam
	var system []anthropic.TextBlockParam
	lastWasTool := false

	for _, msg := range messages {
		isTool := msg.Role == edgee.RoleTool
		switch msg.Role {
		case edgee.RoleSystem:
			// Skip empty system messages - Anthropic API rejects empty text blocks
			if text := msg.Text(); text != "" {
				system = append(system, anthropic.TextBlockParam{Text: text})
			}
		case edgee.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				var blocks []anthropic.ContentBlockParamUnion
				if text := msg.Text(); text != "" {
					blocks = append(blocks, anthropic.NewTextBlock(text))
				}
				for _, tc := range msg.ToolCalls {
					var input any = map[string]any{}
					if args := strings.TrimSpace(tc.Arguments()); args != "" {
						_ = json.Unmarshal([]byte(args), &input)
					}
					blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name()))
				}
				result = append(result, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleAssistant,
					Content: blocks,
				})
			} else if text := msg.Text(); text != "" {
				result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
			}
		case edgee.RoleTool:
			// Tool results travel as user messages; consecutive results share one user message.
			block := anthropic.NewToolResultBlock(msg.ToolCallID, msg.Text(), isErrorContent(msg.Text()))
			if lastWasTool && len(result) > 0 {
				last := &result[len(result)-1]
				last.Content = append(last.Content, block)
			} else {
				result = append(result, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleUser,
					Content: []anthropic.ContentBlockParamUnion{block},
				})
			}
		default:
			// Skip empty messages - Anthropic API rejects empty text blocks
			if text := msg.Text(); text != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
			}
		}
		lastWasTool = isTool
	}

	return result, system
}

// isErrorContent reports whether tool message content is the JSON error
// object produced for failed tool calls.
func isErrorContent(content string) bool {
	if !strings.HasPrefix(content, `{"error":`) {
		return false
	}
	var payload struct {
		Error *string `json:"error"`
	}
	return json.Unmarshal([]byte(content), &payload) == nil && payload.Error != nil
}

func convertTools(tools []edgee.ToolDescriptor) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		// Parse the JSON Schema to get the input schema
		var schema map[string]any
		if len(t.Function.Parameters) > 0 {
			_ = json.Unmarshal(t.Function.Parameters, &schema)
		}

		// Extract required as []string
		var required []string
		if reqVal, ok := schema["required"].([]any); ok {
			for _, r := range reqVal {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}

		toolParam := anthropic.ToolParam{
			Name: t.Function.Name,
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: schema["properties"],
				Required:   required,
			},
		}
		if t.Function.Description != "" {
			toolParam.Description = anthropic.String(t.Function.Description)
		}

		result[i] = anthropic.ToolUnionParam{OfTool: &toolParam}
	}
	return result
}

func convertToolChoice(choice edgee.ToolChoice) anthropic.ToolChoiceUnionParam {
	switch choice {
	case edgee.ToolChoiceNone:
		return anthropic.ToolChoiceUnionParam{
			OfNone: &anthropic.ToolChoiceNoneParam{},
		}
	case edgee.ToolChoiceRequired:
		return anthropic.ToolChoiceUnionParam{
			OfAny: &anthropic.ToolChoiceAnyParam{},
		}
	default:
		return anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	}
}
