package agui

import (
	"strconv"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/edgee-cloud/go-sdk/event"
)

// CustomIterationLimit names the CUSTOM event emitted when the tool
// iteration budget runs out.
const CustomIterationLimit = "edgee.iteration_limit"

// Mapper converts send events to AG-UI events. Each event maps to at most
// one AG-UI event.
//
// Create a new Mapper for each run using NewMapper. The Mapper is not
// safe for concurrent use - each goroutine should have its own Mapper.
type Mapper struct {
	threadID string
	runID    string
}

// NewMapper creates a new Mapper for a single run.
// The threadID and runID are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event.
func (m *Mapper) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return events.NewRunErrorEvent(msg)
}

// StepName is the AG-UI step name of a round-trip.
func StepName(step int) string {
	return "step-" + strconv.Itoa(step)
}

// MapEvent converts a send event to an AG-UI event.
// Returns nil for events that have no AG-UI equivalent.
func (m *Mapper) MapEvent(e event.Event) events.Event {
	switch e.Type {
	// Run lifecycle
	case event.RunStart:
		return m.RunStarted()
	case event.RunEnd:
		return m.RunFinished()
	case event.RunError:
		return m.RunError(e.Error)

	// Step lifecycle
	case event.StepStart:
		return events.NewStepStartedEvent(StepName(e.Step))
	case event.StepEnd:
		return events.NewStepFinishedEvent(StepName(e.Step))

	// Message lifecycle
	case event.MessageStart:
		return events.NewTextMessageStartEvent(
			e.MessageID,
			events.WithRole(RoleAssistant),
		)
	case event.MessageDelta:
		if e.Delta == "" {
			return nil
		}
		return events.NewTextMessageContentEvent(e.MessageID, e.Delta)
	case event.MessageEnd:
		return events.NewTextMessageEndEvent(e.MessageID)

	// Tool call lifecycle
	case event.ToolCallStart:
		if e.ToolCall == nil {
			return nil
		}
		return events.NewToolCallStartEvent(e.ToolCall.ID, e.ToolCall.Name())
	case event.ToolCallArgs:
		if e.ToolCall == nil || e.ToolCall.Arguments() == "" {
			return nil
		}
		return events.NewToolCallArgsEvent(e.ToolCall.ID, e.ToolCall.Arguments())
	case event.ToolCallEnd:
		if e.ToolCall == nil {
			return nil
		}
		return events.NewToolCallEndEvent(e.ToolCall.ID)
	case event.ToolCallResult:
		if e.ToolCall == nil {
			return nil
		}
		return events.NewToolCallResultEvent(events.GenerateMessageID(), e.ToolCall.ID, e.Result)
	case event.ToolCallExecuting:
		return nil

	case event.IterationLimit:
		return events.NewCustomEvent(CustomIterationLimit, events.WithValue(map[string]any{
			"step": e.Step,
		}))

	default:
		return nil
	}
}

// MapEvents converts a sequence of send events, dropping those without an
// AG-UI equivalent.
func (m *Mapper) MapEvents(in []event.Event) []events.Event {
	out := make([]events.Event, 0, len(in))
	for _, e := range in {
		if ev := m.MapEvent(e); ev != nil {
			out = append(out, ev)
		}
	}
	return out
}

// MapStream maps events from in until it is closed. The returned channel is
// closed after the last mapped event.
func (m *Mapper) MapStream(in <-chan event.Event) <-chan events.Event {
	out := make(chan events.Event, cap(in))
	go func() {
		defer close(out)
		for e := range in {
			if ev := m.MapEvent(e); ev != nil {
				out <- ev
			}
		}
	}()
	return out
}
