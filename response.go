package edgee

import (
	"encoding/json"
	"fmt"
)

// FinishReasonToolCalls is the finish reason signalling that the model wants
// tools executed before it continues.
const FinishReasonToolCalls = "tool_calls"

// Common terminal finish reasons.
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonContentFilter = "content_filter"
)

// Termination records why an orchestrated send stopped.
type Termination string

const (
	// TerminationComplete indicates the model stopped requesting tools.
	TerminationComplete Termination = "complete"

	// TerminationIterationLimit indicates the tool iteration budget ran out
	// while the model was still requesting tools.
	TerminationIterationLimit Termination = "iteration_limit_exceeded"
)

// SendResponse is the normalized view over one gateway turn.
type SendResponse struct {
	ID          string       `json:"id,omitempty"`
	Object      string       `json:"object,omitempty"`
	Created     int64        `json:"created,omitempty"`
	Model       string       `json:"model,omitempty"`
	Choices     []Choice     `json:"choices"`
	Usage       Usage        `json:"usage"`
	Compression *Compression `json:"compression,omitempty"`

	// Iterations is the number of tool execution rounds performed.
	Iterations int `json:"-"`
	// Termination is set when the response comes out of an agentic loop.
	Termination Termination `json:"-"`
	// Transcript is the full conversation, including every intermediate
	// tool call and tool result, as of the final turn.
	Transcript []Message `json:"-"`
	// TotalUsage aggregates usage across all round-trips of the loop.
	TotalUsage Usage `json:"-"`
}

// Choice is one candidate completion.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage contains token accounting for a request. The counters are always
// present (zero when the gateway omits them); only the detail objects may be nil.
type Usage struct {
	PromptTokens            int                      `json:"prompt_tokens"`
	CompletionTokens        int                      `json:"completion_tokens"`
	TotalTokens             int                      `json:"total_tokens"`
	PromptTokensDetails     *PromptTokensDetails     `json:"prompt_tokens_details,omitempty"`
	CompletionTokensDetails *CompletionTokensDetails `json:"completion_tokens_details,omitempty"`
}

// PromptTokensDetails breaks down prompt token usage.
type PromptTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

// CompletionTokensDetails breaks down completion token usage.
type CompletionTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

// Add accumulates another usage record into u.
func (u *Usage) Add(o Usage) {
	u.PromptTokens += o.PromptTokens
	u.CompletionTokens += o.CompletionTokens
	u.TotalTokens += o.TotalTokens
	if o.PromptTokensDetails != nil {
		if u.PromptTokensDetails == nil {
			u.PromptTokensDetails = &PromptTokensDetails{}
		}
		u.PromptTokensDetails.CachedTokens += o.PromptTokensDetails.CachedTokens
	}
	if o.CompletionTokensDetails != nil {
		if u.CompletionTokensDetails == nil {
			u.CompletionTokensDetails = &CompletionTokensDetails{}
		}
		u.CompletionTokensDetails.ReasoningTokens += o.CompletionTokensDetails.ReasoningTokens
	}
}

// Compression reports the gateway's prompt compression metrics.
type Compression struct {
	InputTokens int     `json:"input_tokens"`
	SavedTokens int     `json:"saved_tokens"`
	Rate        float64 `json:"rate"`
}

// ParseResponse normalizes a raw gateway payload.
func ParseResponse(data []byte) (*SendResponse, error) {
	var resp SendResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for i := range resp.Choices {
		if resp.Choices[i].Message.Role == "" {
			resp.Choices[i].Message.Role = RoleAssistant
		}
	}
	return &resp, nil
}

// Message returns the first choice's message, or nil if there are no choices.
func (r *SendResponse) Message() *Message {
	if r == nil || len(r.Choices) == 0 {
		return nil
	}
	return &r.Choices[0].Message
}

// Text returns the first choice's content. It returns an empty string when
// there are no choices or the content is null.
func (r *SendResponse) Text() string {
	msg := r.Message()
	if msg == nil {
		return ""
	}
	return msg.Text()
}

// FinishReason returns the first choice's finish reason.
func (r *SendResponse) FinishReason() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].FinishReason
}

// ToolCalls returns the first choice's tool calls, or nil if absent.
func (r *SendResponse) ToolCalls() []ToolCall {
	msg := r.Message()
	if msg == nil || len(msg.ToolCalls) == 0 {
		return nil
	}
	return msg.ToolCalls
}

// WantsTools reports whether the response asks for tool execution.
func (r *SendResponse) WantsTools() bool {
	return r.FinishReason() == FinishReasonToolCalls && len(r.ToolCalls()) > 0
}

// Truncated reports whether an agentic loop stopped on its iteration budget
// rather than on a final answer.
func (r *SendResponse) Truncated() bool {
	return r != nil && r.Termination == TerminationIterationLimit
}
