package tool

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) *Tool {
	return MustNew(name, "Echo "+name, schema.Object().Field("text", schema.String().Required()),
		func(ctx context.Context, args Args) (any, error) {
			text, _ := args.String("text")
			return name + ":" + text, nil
		})
}

func call(id, name, args string) edgee.ToolCall {
	return edgee.ToolCall{ID: id, Type: edgee.ToolTypeFunction, Function: edgee.FunctionCall{Name: name, Arguments: args}}
}

func TestSet(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		s := MustSet(echoTool("b"), echoTool("a"), echoTool("c"))

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"b", "a", "c"}, s.Names())

		descs := s.Descriptors()
		require.Len(t, descs, 3)
		assert.Equal(t, "b", descs[0].Function.Name)
		assert.Equal(t, "c", descs[2].Function.Name)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := NewSet(echoTool("a"), echoTool("a"))

		var dup *DuplicateToolError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.Name)
		assert.Panics(t, func() { MustSet(echoTool("x"), echoTool("x")) })
	})

	t.Run("rejects nil tool", func(t *testing.T) {
		_, err := NewSet(nil)
		assert.ErrorIs(t, err, ErrNilTool)
	})

	t.Run("lookup", func(t *testing.T) {
		s := MustSet(echoTool("a"))

		tl, err := s.Lookup("a")
		require.NoError(t, err)
		assert.Equal(t, "a", tl.Name())

		_, err = s.Lookup("missing")
		var unknown *UnknownToolError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "missing", unknown.Name)
	})

	t.Run("zero and nil sets", func(t *testing.T) {
		var zero Set
		require.NoError(t, zero.Add(echoTool("a")))
		assert.Equal(t, 1, zero.Len())

		var nilSet *Set
		assert.Equal(t, 0, nilSet.Len())
		assert.Nil(t, nilSet.Descriptors())
		_, ok := nilSet.Get("a")
		assert.False(t, ok)
	})

	t.Run("concurrent reads", func(t *testing.T) {
		s := MustSet(echoTool("a"), echoTool("b"))
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Descriptors()
				_, _ = s.Lookup("b")
			}()
		}
		wg.Wait()
	})
}

func TestSetCall(t *testing.T) {
	failing := MustNew("fail", "", nil, func(ctx context.Context, args Args) (any, error) {
		return nil, errors.New("boom")
	})
	s := MustSet(echoTool("echo"), failing)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		res := s.Call(ctx, call("c1", "echo", `{"text":"hi"}`))
		assert.False(t, res.IsError())
		assert.Equal(t, "echo:hi", res.Value)
		assert.Equal(t, edgee.ToolMessage("c1", "echo:hi"), res.Message())
	})

	t.Run("unknown tool", func(t *testing.T) {
		res := s.Call(ctx, call("c2", "nope", `{}`))
		require.True(t, res.IsError())
		var unknown *UnknownToolError
		assert.ErrorAs(t, res.Err, &unknown)
		assert.Equal(t, "c2", res.ToolCallID)
		assert.JSONEq(t, `{"error":"tool: unknown tool \"nope\"","tool":"nope"}`, res.Content)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		res := s.Call(ctx, call("c3", "echo", `{"text":5}`))
		require.True(t, res.IsError())

		var payload struct {
			Error  string              `json:"error"`
			Fields []schema.FieldError `json:"fields"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.Content), &payload))
		assert.Equal(t, []schema.FieldError{{Field: "text", Reason: "expected string, got number"}}, payload.Fields)
	})

	t.Run("handler error", func(t *testing.T) {
		res := s.Call(ctx, call("c4", "fail", ``))
		require.True(t, res.IsError())
		assert.JSONEq(t, `{"error":"tool: fail execution failed: boom","tool":"fail"}`, res.Content)
		assert.Equal(t, edgee.RoleTool, res.Message().Role)
		assert.Equal(t, "c4", res.Message().ToolCallID)
	})
}
