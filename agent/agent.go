package agent

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"runtime/debug"
	"sync"

	edgee "github.com/edgee-cloud/go-sdk"
	"github.com/edgee-cloud/go-sdk/event"
	"github.com/edgee-cloud/go-sdk/internal/conversation"
	"github.com/edgee-cloud/go-sdk/tool"
	"github.com/google/uuid"
)

// Agent orchestrates bounded tool-calling conversations over a transport.
type Agent struct {
	transport edgee.Transport
	tools     *tool.Set
}

// New creates a new Agent with the given transport and tool set.
// A nil or empty tool set makes every send a single round-trip.
func New(t edgee.Transport, tools *tool.Set) *Agent {
	return &Agent{
		transport: t,
		tools:     tools,
	}
}

// Run executes the loop with a fresh Agent. See Agent.Run.
func Run(ctx context.Context, t edgee.Transport, req edgee.Request, tools *tool.Set, opts ...Option) (*edgee.SendResponse, error) {
	return New(t, tools).Run(ctx, req, opts...)
}

// Stream executes the loop with a fresh Agent. See Agent.Stream.
func Stream(ctx context.Context, t edgee.Transport, req edgee.Request, tools *tool.Set, opts ...Option) iter.Seq2[edgee.StreamChunk, error] {
	return New(t, tools).Stream(ctx, req, opts...)
}

// Run executes the loop and returns the final response.
//
// The response is annotated with the number of tool rounds, the termination
// reason, the full transcript and the usage aggregated over all round-trips.
// When the budget runs out the last response is returned with
// Termination set to edgee.TerminationIterationLimit. Tool failures never
// surface here; only transport errors and cancellation do.
func (a *Agent) Run(ctx context.Context, req edgee.Request, opts ...Option) (*edgee.SendResponse, error) {
	return a.execute(ctx, req, ApplyOptions(opts...), nil)
}

// Stream executes the loop with streamed round-trips and yields every chunk
// of every round in arrival order. A transport error or cancellation is
// yielded once as the final element. Breaking out of the range closes the
// in-flight stream.
//
// The final annotated response is reported through the RunEnd event only.
// A run stopped by the iteration budget ends after a chunk whose finish
// reason is "tool_calls"; the RunEnd response reports Truncated.
func (a *Agent) Stream(ctx context.Context, req edgee.Request, opts ...Option) iter.Seq2[edgee.StreamChunk, error] {
	return func(yield func(edgee.StreamChunk, error) bool) {
		o := ApplyOptions(opts...)
		o.Streaming = true

		_, err := a.execute(ctx, req, o, func(c edgee.StreamChunk) bool {
			return yield(c, nil)
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(edgee.StreamChunk{}, err)
		}
	}
}

// run holds the state of one loop execution. Nothing in it is shared
// between executions.
type run struct {
	transport edgee.Transport
	tools     *tool.Set
	opts      *Options
	log       *slog.Logger
	forward   func(edgee.StreamChunk) bool

	id    string
	base  edgee.Request
	conv  *conversation.Log
	state State
	step  int
	usage edgee.Usage
}

func (a *Agent) execute(ctx context.Context, req edgee.Request, o *Options, forward func(edgee.StreamChunk) bool) (*edgee.SendResponse, error) {
	if a.transport == nil {
		return nil, ErrNilTransport
	}
	if o.MaxToolIterations < 1 {
		return nil, ErrInvalidIterationBudget
	}

	id := uuid.NewString()
	r := &run{
		transport: a.transport,
		tools:     a.tools,
		opts:      o,
		log:       o.Logger.With("run_id", id, "model", req.Model),
		forward:   forward,
		id:        id,
		base:      req.Clone(),
		conv:      conversation.New(req.Messages...),
	}
	if a.tools.Len() > 0 {
		r.base.Tools = a.tools.Descriptors()
		r.base.ToolChoice = edgee.ToolChoiceAuto
	}
	r.base.Messages = nil

	r.emit(event.Event{Type: event.RunStart})
	resp, err := r.loop(ctx)
	switch {
	case errors.Is(err, errStopped):
		r.emit(event.Event{Type: event.RunEnd, Message: "stopped"})
	case err != nil:
		r.log.Debug("send failed", "step", r.step, "error", err)
		r.emit(event.Event{Type: event.RunError, Error: err})
	default:
		r.emit(event.Event{Type: event.RunEnd, Response: resp, Message: string(resp.Termination)})
	}
	return resp, err
}

func (r *run) loop(ctx context.Context) (*edgee.SendResponse, error) {
	iterations := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.step++
		r.state = AwaitingResponse
		r.emit(event.Event{Type: event.StepStart})

		resp, err := r.roundTrip(ctx, r.conv.Request(r.base))
		if err != nil {
			return nil, err
		}
		r.usage.Add(resp.Usage)
		r.emit(event.Event{Type: event.StepEnd, Response: resp})

		if !resp.WantsTools() || r.tools.Len() == 0 {
			r.state = Done
			if msg := resp.Message(); msg != nil {
				r.conv.Append(*msg)
				r.announceToolCalls(msg.ToolCalls)
			}
			r.log.Debug("loop done", "steps", r.step, "iterations", iterations)
			return r.finish(resp, iterations, edgee.TerminationComplete), nil
		}

		r.state = ExecutingTools
		msg := *resp.Message()
		r.conv.Append(msg)
		for _, res := range r.executeTools(ctx, msg.ToolCalls) {
			r.conv.Append(res.Message())
		}
		iterations++

		if iterations >= r.opts.MaxToolIterations {
			r.state = IterationLimitExceeded
			r.log.Warn("tool iteration limit reached", "iterations", iterations, "max", r.opts.MaxToolIterations)
			r.emit(event.Event{Type: event.IterationLimit, Response: resp})
			return r.finish(resp, iterations, edgee.TerminationIterationLimit), nil
		}
	}
}

func (r *run) finish(resp *edgee.SendResponse, iterations int, reason edgee.Termination) *edgee.SendResponse {
	resp.Iterations = iterations
	resp.Termination = reason
	resp.Transcript = r.conv.Messages()
	resp.TotalUsage = r.usage
	return resp
}

// roundTrip sends the conversation once, streamed or single-shot.
func (r *run) roundTrip(ctx context.Context, req edgee.Request) (*edgee.SendResponse, error) {
	messageID := uuid.NewString()
	r.log.Debug("sending request", "step", r.step, "messages", len(req.Messages), "stream", r.opts.Streaming)

	if !r.opts.Streaming {
		req.Stream = false
		req.StreamOptions = nil
		resp, err := r.transport.Send(ctx, req)
		if err != nil {
			return nil, err
		}
		r.emit(event.Event{Type: event.MessageStart, MessageID: messageID})
		if text := resp.Text(); text != "" {
			r.emit(event.Event{Type: event.MessageDelta, MessageID: messageID, Delta: text})
		}
		r.emit(event.Event{Type: event.MessageEnd, MessageID: messageID, Response: resp})
		return resp, nil
	}

	req.Stream = true
	req.StreamOptions = &edgee.StreamOptions{IncludeUsage: true}
	stream, err := r.transport.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	acc := edgee.NewAccumulator()
	started := false
	for stream.Next() {
		chunk := stream.Current()
		acc.Add(chunk)

		if !started {
			r.emit(event.Event{Type: event.MessageStart, MessageID: messageID})
			started = true
		}
		if delta := chunk.Text(); delta != "" {
			r.emit(event.Event{Type: event.MessageDelta, MessageID: messageID, Delta: delta})
		}
		if r.forward != nil && !r.forward(chunk) {
			return nil, errStopped
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if !acc.Done() {
		return nil, edgee.NewTransientError("stream ended before a finish reason", 0, io.ErrUnexpectedEOF)
	}

	resp := acc.Response()
	if !started {
		r.emit(event.Event{Type: event.MessageStart, MessageID: messageID})
	}
	r.emit(event.Event{Type: event.MessageEnd, MessageID: messageID, Response: resp})
	return resp, nil
}

// announceToolCalls emits the received events of each call. Calls left to
// the caller stop here; executed calls continue with Executing and Result.
func (r *run) announceToolCalls(calls []edgee.ToolCall) {
	for i := range calls {
		tc := &calls[i]
		r.emit(event.Event{Type: event.ToolCallStart, ToolCall: tc})
		r.emit(event.Event{Type: event.ToolCallArgs, ToolCall: tc})
		r.emit(event.Event{Type: event.ToolCallEnd, ToolCall: tc})
	}
}

// executeTools runs one round of tool calls and returns the results in
// call order.
func (r *run) executeTools(ctx context.Context, calls []edgee.ToolCall) []tool.Result {
	r.announceToolCalls(calls)

	results := make([]tool.Result, len(calls))
	if r.opts.ParallelToolCalls && len(calls) > 1 {
		var wg sync.WaitGroup
		for i, tc := range calls {
			wg.Add(1)
			go func(idx int, call edgee.ToolCall) {
				defer wg.Done()
				results[idx] = r.executeToolCall(ctx, call)
			}(i, tc)
		}
		wg.Wait()
		return results
	}

	for i, tc := range calls {
		results[i] = r.executeToolCall(ctx, tc)
	}
	return results
}

func (r *run) executeToolCall(ctx context.Context, tc edgee.ToolCall) tool.Result {
	r.emit(event.Event{Type: event.ToolCallExecuting, ToolCall: &tc})

	execCtx := ctx
	if r.opts.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.opts.HandlerTimeout)
		defer cancel()
	}

	res := r.callTool(execCtx, tc)
	if res.IsError() {
		r.log.Warn("tool call failed", "step", r.step, "tool", tc.Name(), "tool_call_id", tc.ID, "error", res.Err)
	} else {
		r.log.Debug("tool call succeeded", "step", r.step, "tool", tc.Name(), "tool_call_id", tc.ID)
	}

	r.emit(event.Event{Type: event.ToolCallResult, ToolCall: &tc, Result: res.Content, Error: res.Err})
	return res
}

// callTool executes a call, turning a handler panic into an execution error.
func (r *run) callTool(ctx context.Context, tc edgee.ToolCall) (res tool.Result) {
	defer func() {
		if v := recover(); v != nil {
			err := &tool.ExecutionError{Tool: tc.Name(), Err: &tool.PanicError{Value: v, Stack: debug.Stack()}}
			res = tool.NewResult(tc, nil, err)
		}
	}()
	return r.tools.Call(ctx, tc)
}

func (r *run) emit(e event.Event) {
	e.RunID = r.id
	e.State = string(r.state)
	e.Step = r.step
	event.Emit(r.opts.Events, e)
}
