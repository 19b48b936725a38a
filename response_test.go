package edgee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "openai/gpt-4o",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Paris"},
				"finish_reason": "stop"
			}],
			"usage": {
				"prompt_tokens": 12,
				"completion_tokens": 2,
				"total_tokens": 14,
				"prompt_tokens_details": {"cached_tokens": 4}
			},
			"compression": {"input_tokens": 20, "saved_tokens": 8, "rate": 0.4}
		}`))
		require.NoError(t, err)

		assert.Equal(t, "Paris", resp.Text())
		assert.Equal(t, FinishReasonStop, resp.FinishReason())
		assert.Nil(t, resp.ToolCalls())
		assert.False(t, resp.WantsTools())
		assert.Equal(t, 14, resp.Usage.TotalTokens)
		require.NotNil(t, resp.Usage.PromptTokensDetails)
		assert.Equal(t, 4, resp.Usage.PromptTokensDetails.CachedTokens)
		assert.Nil(t, resp.Usage.CompletionTokensDetails)
		require.NotNil(t, resp.Compression)
		assert.Equal(t, 8, resp.Compression.SavedTokens)
		assert.Equal(t, 0.4, resp.Compression.Rate)
		assert.False(t, resp.Truncated())
	})

	t.Run("tool calls", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": null,
					"tool_calls": [{"id":"call_1","type":"function","function":{"name":"get_weather","arguments":"{\"location\":\"Paris\"}"}}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
		require.NoError(t, err)

		assert.Equal(t, "", resp.Text())
		assert.Nil(t, resp.Message().Content)
		require.Len(t, resp.ToolCalls(), 1)
		assert.Equal(t, "get_weather", resp.ToolCalls()[0].Name())
		assert.True(t, resp.WantsTools())
	})

	t.Run("missing usage defaults to zero", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{"choices":[{"message":{"content":"hi"},"finish_reason":"stop"}]}`))
		require.NoError(t, err)

		assert.Zero(t, resp.Usage.PromptTokens)
		assert.Zero(t, resp.Usage.CompletionTokens)
		assert.Zero(t, resp.Usage.TotalTokens)
		assert.Equal(t, RoleAssistant, resp.Message().Role)
	})

	t.Run("empty choices never panic", func(t *testing.T) {
		resp, err := ParseResponse([]byte(`{"choices":[]}`))
		require.NoError(t, err)

		assert.Equal(t, "", resp.Text())
		assert.Equal(t, "", resp.FinishReason())
		assert.Nil(t, resp.ToolCalls())
		assert.Nil(t, resp.Message())
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := ParseResponse([]byte(`{"choices":`))
		assert.Error(t, err)
	})
}

func TestNilResponseAccessors(t *testing.T) {
	var resp *SendResponse
	assert.Equal(t, "", resp.Text())
	assert.Equal(t, "", resp.FinishReason())
	assert.Nil(t, resp.ToolCalls())
	assert.False(t, resp.Truncated())
}

func TestWantsToolsRequiresCalls(t *testing.T) {
	resp := &SendResponse{Choices: []Choice{{
		Message:      Message{Role: RoleAssistant},
		FinishReason: FinishReasonToolCalls,
	}}}
	assert.False(t, resp.WantsTools())
}

func TestUsageAdd(t *testing.T) {
	var total Usage
	total.Add(Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	total.Add(Usage{
		PromptTokens:            3,
		CompletionTokens:        2,
		TotalTokens:             5,
		PromptTokensDetails:     &PromptTokensDetails{CachedTokens: 1},
		CompletionTokensDetails: &CompletionTokensDetails{ReasoningTokens: 7},
	})

	assert.Equal(t, 13, total.PromptTokens)
	assert.Equal(t, 7, total.CompletionTokens)
	assert.Equal(t, 20, total.TotalTokens)
	require.NotNil(t, total.PromptTokensDetails)
	assert.Equal(t, 1, total.PromptTokensDetails.CachedTokens)
	require.NotNil(t, total.CompletionTokensDetails)
	assert.Equal(t, 7, total.CompletionTokensDetails.ReasoningTokens)
}
