package google

import (
	"encoding/json"
	"fmt"
	"strings"

	edgee "github.com/edgee-cloud/go-sdk"
	"google.golang.org/genai"
)

// BlockedError indicates the prompt was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("google: request blocked: %s", e.Reason)
}

// buildConfig converts request options into a generation config.
func buildConfig(req edgee.Request, system *genai.Content) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{SystemInstruction: system}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}
	if len(req.Tools) > 0 {
		config.Tools = convertTools(req.Tools)
		if req.ToolChoice != "" {
			config.ToolConfig = convertToolChoice(req.ToolChoice)
		}
	}
	return config
}

// modelName strips the gateway provider prefix ("google/gemini-...").
func modelName(model string) string {
	if name, ok := strings.CutPrefix(model, "google/"); ok {
		return name
	}
	return model
}

// convertMessages splits the conversation into Gemini contents and a system
// instruction. Tool results carry the function name, which Gemini requires,
// looked up from the assistant turn that issued the call.
func convertMessages(messages []edgee.Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var system *genai.Content
	names := make(map[string]string)
	lastWasTool := false

	for _, msg := range messages {
		isTool := msg.Role == edgee.RoleTool
		switch msg.Role {
		case edgee.RoleSystem:
			if text := msg.Text(); text != "" {
				if system == nil {
					system = &genai.Content{}
				}
				system.Parts = append(system.Parts, &genai.Part{Text: text})
			}

		case edgee.RoleAssistant:
			var parts []*genai.Part
			if text := msg.Text(); text != "" {
				parts = append(parts, &genai.Part{Text: text})
			}
			for _, tc := range msg.ToolCalls {
				names[tc.ID] = tc.Name()
				var args map[string]any
				_ = json.Unmarshal([]byte(tc.Arguments()), &args)
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{ID: tc.ID, Name: tc.Name(), Args: args},
				})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}

		case edgee.RoleTool:
			// Parse the content as a JSON object if possible, otherwise wrap it
			var result map[string]any
			if err := json.Unmarshal([]byte(msg.Text()), &result); err != nil || result == nil {
				result = map[string]any{"result": msg.Text()}
			}
			part := &genai.Part{FunctionResponse: &genai.FunctionResponse{
				ID:       msg.ToolCallID,
				Name:     names[msg.ToolCallID],
				Response: result,
			}}
			if lastWasTool && len(contents) > 0 {
				last := contents[len(contents)-1]
				last.Parts = append(last.Parts, part)
			} else {
				contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{part}})
			}

		default:
			if text := msg.Text(); text != "" {
				contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: text}}})
			}
		}
		lastWasTool = isTool
	}

	return contents, system
}
