package google

import (
	"encoding/json"
	"errors"
	"iter"
	"strings"
	"testing"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/genai"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestConvertMessages(t *testing.T) {
	conv := []edgee.Message{
		edgee.SystemMessage("Be brief."),
		edgee.UserMessage("Weather?"),
		{Role: edgee.RoleAssistant, ToolCalls: []edgee.ToolCall{
			{ID: "c1", Type: edgee.ToolTypeFunction, Function: edgee.FunctionCall{Name: "get_weather", Arguments: `{"location":"Paris"}`}},
			{ID: "c2", Type: edgee.ToolTypeFunction, Function: edgee.FunctionCall{Name: "get_time", Arguments: `{}`}},
		}},
		edgee.ToolMessage("c1", `{"temp_c":21}`),
		edgee.ToolMessage("c2", "12:00"),
		edgee.AssistantMessage("21C at noon."),
	}

	contents, system := convertMessages(conv)

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "Be brief.", system.Parts[0].Text)

	require.Len(t, contents, 4)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)
	assert.Equal(t, "model", contents[3].Role)

	calls := contents[1].Parts
	require.Len(t, calls, 2)
	assert.Equal(t, "get_weather", calls[0].FunctionCall.Name)
	assert.Equal(t, map[string]any{"location": "Paris"}, calls[0].FunctionCall.Args)

	results := contents[2].Parts
	require.Len(t, results, 2, "consecutive tool results share one content")
	assert.Equal(t, "get_weather", results[0].FunctionResponse.Name)
	assert.Equal(t, "c1", results[0].FunctionResponse.ID)
	assert.Equal(t, map[string]any{"temp_c": float64(21)}, results[0].FunctionResponse.Response)
	assert.Equal(t, "get_time", results[1].FunctionResponse.Name)
	assert.Equal(t, map[string]any{"result": "12:00"}, results[1].FunctionResponse.Response)
}

func TestConvertTools(t *testing.T) {
	tools := convertTools([]edgee.ToolDescriptor{edgee.NewToolDescriptor("get_weather", "Get weather", json.RawMessage(`{
		"type": "object",
		"properties": {
			"location": {"type": "string", "description": "City"},
			"unit": {"type": "string", "enum": ["celsius", "fahrenheit"]},
			"days": {"type": "integer", "minimum": 1, "maximum": 7},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["location"]
	}`))})

	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 1)
	decl := tools[0].FunctionDeclarations[0]
	assert.Equal(t, "get_weather", decl.Name)

	params := decl.Parameters
	require.NotNil(t, params)
	assert.Equal(t, genai.TypeObject, params.Type)
	assert.Equal(t, []string{"location"}, params.Required)
	assert.Equal(t, "City", params.Properties["location"].Description)
	assert.Equal(t, []string{"celsius", "fahrenheit"}, params.Properties["unit"].Enum)
	assert.Equal(t, genai.TypeInteger, params.Properties["days"].Type)
	require.NotNil(t, params.Properties["days"].Maximum)
	assert.Equal(t, 7.0, *params.Properties["days"].Maximum)
	assert.Equal(t, genai.TypeString, params.Properties["tags"].Items.Type)

	assert.Nil(t, convertTools(nil))
	assert.Nil(t, convertSchema(nil))
	assert.Nil(t, convertSchema(json.RawMessage(`not json`)))
}

func TestConvertToolChoice(t *testing.T) {
	assert.Equal(t, genai.FunctionCallingConfigModeAuto, convertToolChoice(edgee.ToolChoiceAuto).FunctionCallingConfig.Mode)
	assert.Equal(t, genai.FunctionCallingConfigModeNone, convertToolChoice(edgee.ToolChoiceNone).FunctionCallingConfig.Mode)
	assert.Equal(t, genai.FunctionCallingConfigModeAny, convertToolChoice(edgee.ToolChoiceRequired).FunctionCallingConfig.Mode)
}

func TestBuildConfig(t *testing.T) {
	temp := 0.5
	cfg := buildConfig(edgee.Request{MaxTokens: 256, Temperature: &temp}, nil)
	assert.Equal(t, int32(256), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, float32(0.5), *cfg.Temperature)
	assert.Nil(t, cfg.Tools)
	assert.Nil(t, cfg.ToolConfig)
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", modelName("google/gemini-2.5-flash"))
	assert.Equal(t, "gemini-2.5-flash", modelName("gemini-2.5-flash"))
}

func TestFinishReason(t *testing.T) {
	assert.Equal(t, edgee.FinishReasonStop, finishReason(genai.FinishReasonStop, false))
	assert.Equal(t, edgee.FinishReasonToolCalls, finishReason(genai.FinishReasonStop, true))
	assert.Equal(t, edgee.FinishReasonLength, finishReason(genai.FinishReasonMaxTokens, false))
	assert.Equal(t, edgee.FinishReasonContentFilter, finishReason(genai.FinishReasonSafety, false))
	assert.Equal(t, "", finishReason("", true))
	assert.Equal(t, "other", finishReason(genai.FinishReasonOther, false))
}

func textCandidate(text string, finish genai.FinishReason) *genai.Candidate {
	return &genai.Candidate{
		Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		FinishReason: finish,
	}
}

func TestToResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		ResponseID: "r1",
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "Checking."},
				{FunctionCall: &genai.FunctionCall{Name: "get_weather", Args: map[string]any{"location": "Paris"}}},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{PromptTokenCount: 8, CandidatesTokenCount: 4, TotalTokenCount: 12},
	}

	out, err := toResponse("gemini-2.5-flash", resp)
	require.NoError(t, err)

	assert.Equal(t, "r1", out.ID)
	assert.Equal(t, "gemini-2.5-flash", out.Model)
	assert.Equal(t, "Checking.", out.Text())
	assert.True(t, out.WantsTools())
	calls := out.ToolCalls()
	require.Len(t, calls, 1)
	assert.True(t, strings.HasPrefix(calls[0].ID, "call_"))
	assert.JSONEq(t, `{"location":"Paris"}`, calls[0].Arguments())
	assert.Equal(t, 12, out.Usage.TotalTokens)

	_, err = toResponse("m", &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"}})
	var blockedErr *BlockedError
	assert.ErrorAs(t, err, &blockedErr)
	assert.Equal(t, "SAFETY", blockedErr.Reason)
	assert.True(t, edgee.IsUserInput(err))
}

func seqOf(items ...any) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, it := range items {
			var ok bool
			switch v := it.(type) {
			case error:
				ok = yield(nil, v)
			case *genai.GenerateContentResponse:
				ok = yield(v, nil)
			}
			if !ok {
				return
			}
		}
	}
}

func TestChunkStream(t *testing.T) {
	s := newChunkStream("gemini", seqOf(
		&genai.GenerateContentResponse{ResponseID: "r1", Candidates: []*genai.Candidate{textCandidate("Hel", "")}},
		&genai.GenerateContentResponse{ResponseID: "r1", Candidates: []*genai.Candidate{textCandidate("lo", genai.FinishReasonStop)},
			UsageMetadata: &genai.GenerateContentResponseUsageMetadata{PromptTokenCount: 3, CandidatesTokenCount: 2}},
	))
	defer s.Close()

	acc := edgee.NewAccumulator()
	for s.Next() {
		acc.Add(s.Current())
	}
	require.NoError(t, s.Err())

	resp := acc.Response()
	assert.Equal(t, "Hello", resp.Text())
	assert.Equal(t, edgee.FinishReasonStop, resp.FinishReason())
	assert.Equal(t, 5, resp.Usage.TotalTokens)
	assert.Equal(t, "gemini", resp.Model)
}

func TestChunkStream_ToolCalls(t *testing.T) {
	call := func(name string) *genai.Part {
		return &genai.Part{FunctionCall: &genai.FunctionCall{ID: "id_" + name, Name: name, Args: map[string]any{}}}
	}
	s := newChunkStream("gemini", seqOf(
		&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{call("a")}}}}},
		&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{call("b")}}, FinishReason: genai.FinishReasonStop}}},
	))
	defer s.Close()

	acc := edgee.NewAccumulator()
	for s.Next() {
		acc.Add(s.Current())
	}
	require.NoError(t, s.Err())

	resp := acc.Response()
	assert.Equal(t, edgee.FinishReasonToolCalls, resp.FinishReason())
	calls := resp.ToolCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "id_a", calls[0].ID)
	assert.Equal(t, "b", calls[1].Name())
	assert.Equal(t, "{}", calls[1].Arguments())
}

func TestChunkStream_Error(t *testing.T) {
	apiErr := genai.APIError{Code: 503, Message: "overloaded"}
	s := newChunkStream("gemini", seqOf(
		&genai.GenerateContentResponse{Candidates: []*genai.Candidate{textCandidate("partial", "")}},
		apiErr,
	))
	defer s.Close()

	require.True(t, s.Next())
	assert.False(t, s.Next())
	require.Error(t, s.Err())
	assert.True(t, edgee.IsTransient(s.Err()))
	assert.Equal(t, 503, edgee.StatusCodeOf(s.Err()))
	assert.False(t, s.Next())
}

func TestChunkStream_EarlyClose(t *testing.T) {
	produced := 0
	seq := func(yield func(*genai.GenerateContentResponse, error) bool) {
		for range 100 {
			produced++
			if !yield(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{textCandidate("x", "")}}, nil) {
				return
			}
		}
	}

	s := newChunkStream("gemini", seq)
	require.True(t, s.Next())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, produced)
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, wrapError(nil))

	plain := errors.New("dial tcp: refused")
	assert.Same(t, plain, wrapError(plain))

	err := wrapError(genai.APIError{Code: 400, Message: "bad schema"})
	assert.True(t, edgee.IsUserInput(err))
	assert.Contains(t, err.Error(), "bad schema")
}
