package edgee

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// StreamChunk is one wire frame of a streaming turn.
type StreamChunk struct {
	ID          string         `json:"id,omitempty"`
	Object      string         `json:"object,omitempty"`
	Created     int64          `json:"created,omitempty"`
	Model       string         `json:"model,omitempty"`
	Choices     []StreamChoice `json:"choices"`
	Usage       *Usage         `json:"usage,omitempty"`
	Compression *Compression   `json:"compression,omitempty"`
}

// StreamChoice is the partial state of one choice within a chunk.
type StreamChoice struct {
	Index        int         `json:"index"`
	Delta        StreamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// StreamDelta carries the fragments added to a choice by one chunk.
type StreamDelta struct {
	Role      Role            `json:"role,omitempty"`
	Content   *string         `json:"content,omitempty"`
	ToolCalls []ToolCallDelta `json:"tool_calls,omitempty"`
}

// ToolCallDelta is a fragment of a tool call. Fragments sharing an Index
// belong to the same call.
type ToolCallDelta struct {
	Index    int               `json:"index"`
	ID       string            `json:"id,omitempty"`
	Type     string            `json:"type,omitempty"`
	Function FunctionCallDelta `json:"function"`
}

// FunctionCallDelta holds a fragment of a function name and its arguments.
type FunctionCallDelta struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ParseChunk decodes a single SSE data payload.
func ParseChunk(data []byte) (StreamChunk, error) {
	var chunk StreamChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return StreamChunk{}, fmt.Errorf("decode chunk: %w", err)
	}
	return chunk, nil
}

// Text returns the content fragment of the first choice, if any.
func (c StreamChunk) Text() string {
	if len(c.Choices) == 0 || c.Choices[0].Delta.Content == nil {
		return ""
	}
	return *c.Choices[0].Delta.Content
}

// FinishReason returns the finish reason of the first choice, if any.
func (c StreamChunk) FinishReason() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].FinishReason
}

// Accumulator folds the chunks of one streaming turn into a SendResponse.
// It is a single-consumer fold and is not safe for concurrent use. A consumer
// that stops early can simply drop the accumulator.
type Accumulator struct {
	id          string
	created     int64
	model       string
	choices     map[int]*choiceState
	usage       *Usage
	compression *Compression
}

type choiceState struct {
	role       Role
	content    strings.Builder
	hasContent bool
	calls      map[int]*ToolCall
	finish     string
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{choices: make(map[int]*choiceState)}
}

// Add folds one chunk into the accumulated state. Deltas for a choice that
// already received a finish reason are ignored.
func (a *Accumulator) Add(chunk StreamChunk) {
	if chunk.ID != "" && a.id == "" {
		a.id = chunk.ID
	}
	if chunk.Created != 0 && a.created == 0 {
		a.created = chunk.Created
	}
	if chunk.Model != "" && a.model == "" {
		a.model = chunk.Model
	}
	if chunk.Usage != nil {
		u := *chunk.Usage
		a.usage = &u
	}
	if chunk.Compression != nil {
		c := *chunk.Compression
		a.compression = &c
	}

	for _, sc := range chunk.Choices {
		st, ok := a.choices[sc.Index]
		if !ok {
			st = &choiceState{calls: make(map[int]*ToolCall)}
			a.choices[sc.Index] = st
		}
		if st.finish != "" {
			continue
		}
		st.apply(sc.Delta)
		if sc.FinishReason != "" {
			st.finish = sc.FinishReason
		}
	}
}

func (s *choiceState) apply(d StreamDelta) {
	if d.Role != "" && s.role == "" {
		s.role = d.Role
	}
	if d.Content != nil {
		s.hasContent = true
		s.content.WriteString(*d.Content)
	}
	for _, td := range d.ToolCalls {
		call, ok := s.calls[td.Index]
		if !ok {
			call = &ToolCall{}
			s.calls[td.Index] = call
		}
		if td.ID != "" {
			call.ID = td.ID
		}
		if td.Type != "" {
			call.Type = td.Type
		}
		if td.Function.Name != "" {
			call.Function.Name += td.Function.Name
		}
		call.Function.Arguments += td.Function.Arguments
	}
}

// Done reports whether at least one choice was seen and every seen choice
// has received a finish reason.
func (a *Accumulator) Done() bool {
	if len(a.choices) == 0 {
		return false
	}
	for _, st := range a.choices {
		if st.finish == "" {
			return false
		}
	}
	return true
}

// Response builds the normalized response from the accumulated state.
// The result has the same shape as a single-shot response of the same turn.
func (a *Accumulator) Response() *SendResponse {
	resp := &SendResponse{
		ID:      a.id,
		Object:  "chat.completion",
		Created: a.created,
		Model:   a.model,
		Choices: make([]Choice, 0, len(a.choices)),
	}
	if a.usage != nil {
		resp.Usage = *a.usage
	}
	if a.compression != nil {
		c := *a.compression
		resp.Compression = &c
	}

	for _, idx := range slices.Sorted(maps.Keys(a.choices)) {
		resp.Choices = append(resp.Choices, a.choices[idx].choice(idx))
	}
	return resp
}

func (s *choiceState) choice(idx int) Choice {
	msg := Message{Role: s.role}
	if msg.Role == "" {
		msg.Role = RoleAssistant
	}
	if s.hasContent {
		text := s.content.String()
		msg.Content = &text
	}
	if len(s.calls) > 0 {
		msg.ToolCalls = make([]ToolCall, 0, len(s.calls))
		for _, ci := range slices.Sorted(maps.Keys(s.calls)) {
			call := *s.calls[ci]
			if call.Type == "" {
				call.Type = ToolTypeFunction
			}
			msg.ToolCalls = append(msg.ToolCalls, call)
		}
	}
	return Choice{Index: idx, Message: msg, FinishReason: s.finish}
}
