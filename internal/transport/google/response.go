package google

import (
	"encoding/json"
	"iter"
	"strings"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// finishReason maps a Gemini finish reason to the gateway vocabulary.
// Gemini reports STOP for turns that end in function calls.
func finishReason(r genai.FinishReason, hasCalls bool) string {
	switch r {
	case "":
		return ""
	case genai.FinishReasonStop:
		if hasCalls {
			return edgee.FinishReasonToolCalls
		}
		return edgee.FinishReasonStop
	case genai.FinishReasonMaxTokens:
		return edgee.FinishReasonLength
	case genai.FinishReasonSafety, genai.FinishReasonRecitation, genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent, genai.FinishReasonSPII:
		return edgee.FinishReasonContentFilter
	default:
		return strings.ToLower(string(r))
	}
}

func convertUsage(m *genai.GenerateContentResponseUsageMetadata) *edgee.Usage {
	if m == nil {
		return nil
	}
	u := &edgee.Usage{
		PromptTokens:     int(m.PromptTokenCount),
		CompletionTokens: int(m.CandidatesTokenCount),
		TotalTokens:      int(m.TotalTokenCount),
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	if m.CachedContentTokenCount > 0 {
		u.PromptTokensDetails = &edgee.PromptTokensDetails{CachedTokens: int(m.CachedContentTokenCount)}
	}
	if m.ThoughtsTokenCount > 0 {
		u.CompletionTokensDetails = &edgee.CompletionTokensDetails{ReasoningTokens: int(m.ThoughtsTokenCount)}
	}
	return u
}

// toolCall converts a function call part. Gemini often omits call ids, so
// one is synthesized to keep results correlatable.
func toolCall(fc *genai.FunctionCall) edgee.ToolCall {
	id := fc.ID
	if id == "" {
		id = "call_" + uuid.NewString()
	}
	args := "{}"
	if fc.Args != nil {
		if data, err := json.Marshal(fc.Args); err == nil {
			args = string(data)
		}
	}
	return edgee.ToolCall{
		ID:       id,
		Type:     edgee.ToolTypeFunction,
		Function: edgee.FunctionCall{Name: fc.Name, Arguments: args},
	}
}

func blocked(resp *genai.GenerateContentResponse) error {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return edgee.NewUserInputError("google: prompt blocked", 0, &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)})
	}
	return nil
}

func toResponse(model string, resp *genai.GenerateContentResponse) (*edgee.SendResponse, error) {
	if err := blocked(resp); err != nil {
		return nil, err
	}

	out := &edgee.SendResponse{
		ID:     resp.ResponseID,
		Object: "chat.completion",
		Model:  model,
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := convertUsage(resp.UsageMetadata); u != nil {
		out.Usage = *u
	}

	for i, cand := range resp.Candidates {
		msg := edgee.Message{Role: edgee.RoleAssistant}
		if cand.Content != nil {
			var text strings.Builder
			hasText := false
			for _, part := range cand.Content.Parts {
				switch {
				case part.FunctionCall != nil:
					msg.ToolCalls = append(msg.ToolCalls, toolCall(part.FunctionCall))
				case part.Text != "" && !part.Thought:
					text.WriteString(part.Text)
					hasText = true
				}
			}
			if hasText {
				s := text.String()
				msg.Content = &s
			}
		}
		out.Choices = append(out.Choices, edgee.Choice{
			Index:        i,
			Message:      msg,
			FinishReason: finishReason(cand.FinishReason, len(msg.ToolCalls) > 0),
		})
	}
	return out, nil
}

// chunkStream pulls Gemini stream responses and converts each into a chunk.
type chunkStream struct {
	next  func() (*genai.GenerateContentResponse, error, bool)
	stop  func()
	model string
	calls int
	cur   edgee.StreamChunk
	err   error
}

func newChunkStream(model string, seq iter.Seq2[*genai.GenerateContentResponse, error]) *chunkStream {
	next, stop := iter.Pull2(seq)
	return &chunkStream{next: next, stop: stop, model: model}
}

func (s *chunkStream) Next() bool {
	if s.err != nil {
		return false
	}
	for {
		resp, err, ok := s.next()
		if !ok {
			return false
		}
		if err != nil {
			s.err = wrapError(err)
			return false
		}
		if err := blocked(resp); err != nil {
			s.err = err
			return false
		}
		if resp == nil {
			continue
		}
		s.cur = s.convert(resp)
		return true
	}
}

func (s *chunkStream) convert(resp *genai.GenerateContentResponse) edgee.StreamChunk {
	chunk := edgee.StreamChunk{
		ID:     resp.ResponseID,
		Object: "chat.completion.chunk",
		Model:  s.model,
		Usage:  convertUsage(resp.UsageMetadata),
	}
	if resp.ModelVersion != "" {
		chunk.Model = resp.ModelVersion
	}

	for i, cand := range resp.Candidates {
		choice := edgee.StreamChoice{Index: i, Delta: edgee.StreamDelta{Role: edgee.RoleAssistant}}
		if cand.Content != nil {
			var text strings.Builder
			hasText := false
			for _, part := range cand.Content.Parts {
				switch {
				case part.FunctionCall != nil:
					tc := toolCall(part.FunctionCall)
					choice.Delta.ToolCalls = append(choice.Delta.ToolCalls, edgee.ToolCallDelta{
						Index:    s.calls,
						ID:       tc.ID,
						Type:     tc.Type,
						Function: edgee.FunctionCallDelta{Name: tc.Function.Name, Arguments: tc.Function.Arguments},
					})
					s.calls++
				case part.Text != "" && !part.Thought:
					text.WriteString(part.Text)
					hasText = true
				}
			}
			if hasText {
				t := text.String()
				choice.Delta.Content = &t
			}
		}
		choice.FinishReason = finishReason(cand.FinishReason, s.calls > 0)
		chunk.Choices = append(chunk.Choices, choice)
	}
	return chunk
}

func (s *chunkStream) Current() edgee.StreamChunk {
	return s.cur
}

func (s *chunkStream) Err() error {
	return s.err
}

func (s *chunkStream) Close() error {
	s.stop()
	return nil
}
