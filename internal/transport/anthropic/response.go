package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	edgee "github.com/edgee-cloud/go-sdk"
)

// finishReason maps a Messages API stop reason to the gateway vocabulary.
func finishReason(r anthropic.StopReason) string {
	switch r {
	case "tool_use":
		return edgee.FinishReasonToolCalls
	case "end_turn", "stop_sequence", "pause_turn":
		return edgee.FinishReasonStop
	case "max_tokens":
		return edgee.FinishReasonLength
	case "refusal":
		return edgee.FinishReasonContentFilter
	default:
		return string(r)
	}
}

func convertUsage(u anthropic.Usage) edgee.Usage {
	usage := edgee.Usage{
		PromptTokens:     int(u.InputTokens),
		CompletionTokens: int(u.OutputTokens),
		TotalTokens:      int(u.InputTokens + u.OutputTokens),
	}
	if u.CacheReadInputTokens > 0 {
		usage.PromptTokensDetails = &edgee.PromptTokensDetails{CachedTokens: int(u.CacheReadInputTokens)}
	}
	return usage
}

// extractMessage collects text and tool_use blocks into one assistant message.
func extractMessage(content []anthropic.ContentBlockUnion) edgee.Message {
	msg := edgee.Message{Role: edgee.RoleAssistant}
	var text string
	hasText := false
	for _, block := range content {
		switch block.Type {
		case "text":
			text += block.Text
			hasText = true
		case "tool_use":
			args := string(block.Input)
			if args == "" {
				args = "{}"
			}
			msg.ToolCalls = append(msg.ToolCalls, edgee.ToolCall{
				ID:       block.ID,
				Type:     edgee.ToolTypeFunction,
				Function: edgee.FunctionCall{Name: block.Name, Arguments: args},
			})
		}
	}
	if hasText {
		msg.Content = &text
	}
	return msg
}

func toResponse(m *anthropic.Message) *edgee.SendResponse {
	return &edgee.SendResponse{
		ID:     m.ID,
		Object: "chat.completion",
		Model:  string(m.Model),
		Choices: []edgee.Choice{{
			Message:      extractMessage(m.Content),
			FinishReason: finishReason(m.StopReason),
		}},
		Usage: convertUsage(m.Usage),
	}
}

// chunkStream translates Messages API stream events into chunks. Text
// deltas are forwarded as they arrive; tool calls, the finish reason and
// usage are emitted in one final chunk once the message is complete.
type chunkStream struct {
	stream  *ssestream.Stream[anthropic.MessageStreamEventUnion]
	acc     anthropic.Message
	pending []edgee.StreamChunk
	cur     edgee.StreamChunk
	done    bool
	err     error
}

func newChunkStream(s *ssestream.Stream[anthropic.MessageStreamEventUnion]) *chunkStream {
	return &chunkStream{stream: s}
}

func (s *chunkStream) Next() bool {
	for len(s.pending) == 0 {
		if s.done || s.err != nil {
			return false
		}
		if !s.stream.Next() {
			if err := s.stream.Err(); err != nil {
				s.err = wrapError(err)
				return false
			}
			s.finish()
			continue
		}

		event := s.stream.Current()
		if err := s.acc.Accumulate(event); err != nil {
			s.err = err
			return false
		}

		switch event.Type {
		case "message_start":
			s.push(edgee.StreamDelta{Role: edgee.RoleAssistant}, "")
		case "content_block_delta":
			delta := event.AsContentBlockDelta()
			if textDelta := delta.Delta.AsTextDelta(); textDelta.Type == "text_delta" && textDelta.Text != "" {
				text := textDelta.Text
				s.push(edgee.StreamDelta{Content: &text}, "")
			}
		case "message_stop":
			s.finish()
		}
	}

	s.cur, s.pending = s.pending[0], s.pending[1:]
	return true
}

func (s *chunkStream) push(delta edgee.StreamDelta, finish string) {
	s.pending = append(s.pending, edgee.StreamChunk{
		ID:      s.acc.ID,
		Object:  "chat.completion.chunk",
		Model:   string(s.acc.Model),
		Choices: []edgee.StreamChoice{{Delta: delta, FinishReason: finish}},
	})
}

func (s *chunkStream) finish() {
	if s.done {
		return
	}
	s.done = true

	msg := extractMessage(s.acc.Content)
	var calls []edgee.ToolCallDelta
	for i, tc := range msg.ToolCalls {
		calls = append(calls, edgee.ToolCallDelta{
			Index: i,
			ID:    tc.ID,
			Type:  tc.Type,
			Function: edgee.FunctionCallDelta{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	s.push(edgee.StreamDelta{ToolCalls: calls}, finishReason(s.acc.StopReason))

	usage := convertUsage(s.acc.Usage)
	s.pending[len(s.pending)-1].Usage = &usage
}

func (s *chunkStream) Current() edgee.StreamChunk {
	return s.cur
}

func (s *chunkStream) Err() error {
	return s.err
}

func (s *chunkStream) Close() error {
	return s.stream.Close()
}
