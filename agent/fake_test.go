package agent

import (
	"context"
	"strings"
	"sync"

	edgee "github.com/edgee-cloud/go-sdk"
)

// turn is one scripted gateway reply.
type turn struct {
	resp *edgee.SendResponse
	err  error
}

// fakeTransport replays scripted turns. Once the script is exhausted the
// last turn repeats, which models a gateway that keeps asking for tools.
type fakeTransport struct {
	mu       sync.Mutex
	turns    []turn
	requests []edgee.Request
	opened   int
	closed   int
}

func newFake(turns ...turn) *fakeTransport {
	return &fakeTransport{turns: turns}
}

func (f *fakeTransport) next(req edgee.Request) turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req.Clone())
	i := min(len(f.requests)-1, len(f.turns)-1)
	return f.turns[i]
}

func (f *fakeTransport) Send(ctx context.Context, req edgee.Request) (*edgee.SendResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := f.next(req)
	if t.err != nil {
		return nil, t.err
	}
	return cloneResponse(t.resp), nil
}

func (f *fakeTransport) Stream(ctx context.Context, req edgee.Request) (edgee.ChunkStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := f.next(req)
	if t.err != nil {
		return nil, t.err
	}
	f.mu.Lock()
	f.opened++
	f.mu.Unlock()
	return &sliceStream{chunks: chunksFor(t.resp), onClose: f.markClosed}, nil
}

func (f *fakeTransport) markClosed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func (f *fakeTransport) sent() []edgee.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]edgee.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

type sliceStream struct {
	chunks  []edgee.StreamChunk
	pos     int
	err     error
	onClose func()
	closed  bool
}

func (s *sliceStream) Next() bool {
	if s.closed || s.pos >= len(s.chunks) {
		return false
	}
	s.pos++
	return true
}

func (s *sliceStream) Current() edgee.StreamChunk { return s.chunks[s.pos-1] }
func (s *sliceStream) Err() error                 { return s.err }

func (s *sliceStream) Close() error {
	if !s.closed {
		s.closed = true
		if s.onClose != nil {
			s.onClose()
		}
	}
	return nil
}

var testUsage = edgee.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}

func textResponse(text string) *edgee.SendResponse {
	return &edgee.SendResponse{
		ID:    "chatcmpl-1",
		Model: "openai/gpt-4o",
		Choices: []edgee.Choice{{
			Message:      edgee.AssistantMessage(text),
			FinishReason: edgee.FinishReasonStop,
		}},
		Usage: testUsage,
	}
}

func toolResponse(calls ...edgee.ToolCall) *edgee.SendResponse {
	return &edgee.SendResponse{
		ID:    "chatcmpl-1",
		Model: "openai/gpt-4o",
		Choices: []edgee.Choice{{
			Message:      edgee.Message{Role: edgee.RoleAssistant, ToolCalls: calls},
			FinishReason: edgee.FinishReasonToolCalls,
		}},
		Usage: testUsage,
	}
}

func toolCall(id, name, args string) edgee.ToolCall {
	return edgee.ToolCall{ID: id, Type: edgee.ToolTypeFunction, Function: edgee.FunctionCall{Name: name, Arguments: args}}
}

func cloneResponse(r *edgee.SendResponse) *edgee.SendResponse {
	cp := *r
	cp.Choices = make([]edgee.Choice, len(r.Choices))
	copy(cp.Choices, r.Choices)
	return &cp
}

// chunksFor splits a single-choice response into the chunks a gateway would
// stream for it: role, content fragments, tool call fragments, finish, usage.
func chunksFor(r *edgee.SendResponse) []edgee.StreamChunk {
	msg := r.Choices[0].Message
	frame := func(d edgee.StreamDelta, finish string) edgee.StreamChunk {
		return edgee.StreamChunk{
			ID:      r.ID,
			Object:  "chat.completion.chunk",
			Model:   r.Model,
			Choices: []edgee.StreamChoice{{Delta: d, FinishReason: finish}},
		}
	}

	chunks := []edgee.StreamChunk{frame(edgee.StreamDelta{Role: edgee.RoleAssistant}, "")}
	if msg.Content != nil {
		for _, word := range strings.SplitAfter(*msg.Content, " ") {
			chunks = append(chunks, frame(edgee.StreamDelta{Content: &word}, ""))
		}
	}
	for i, tc := range msg.ToolCalls {
		half := len(tc.Function.Arguments) / 2
		chunks = append(chunks,
			frame(edgee.StreamDelta{ToolCalls: []edgee.ToolCallDelta{{
				Index: i, ID: tc.ID, Type: tc.Type,
				Function: edgee.FunctionCallDelta{Name: tc.Function.Name, Arguments: tc.Function.Arguments[:half]},
			}}}, ""),
			frame(edgee.StreamDelta{ToolCalls: []edgee.ToolCallDelta{{
				Index:    i,
				Function: edgee.FunctionCallDelta{Arguments: tc.Function.Arguments[half:]},
			}}}, ""),
		)
	}
	chunks = append(chunks, frame(edgee.StreamDelta{}, r.Choices[0].FinishReason))

	usage := r.Usage
	chunks = append(chunks, edgee.StreamChunk{ID: r.ID, Model: r.Model, Choices: []edgee.StreamChoice{}, Usage: &usage})
	return chunks
}
