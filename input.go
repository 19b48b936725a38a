package edgee

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when an input normalizes to an empty conversation.
var ErrEmptyInput = errors.New("empty input")

// Input is anything that can be normalized into a request conversation.
// Use Text for a single user prompt, Messages for a full conversation,
// or *InputObject for the complete request input.
type Input interface {
	inputObject() InputObject
}

// Text is a plain user prompt.
type Text string

func (t Text) inputObject() InputObject {
	return InputObject{Messages: []Message{UserMessage(string(t))}}
}

// Messages wraps an existing conversation as Input.
func Messages(msgs ...Message) Input {
	return messagesInput(msgs)
}

type messagesInput []Message

func (m messagesInput) inputObject() InputObject {
	return InputObject{Messages: cloneMessages(m)}
}

// InputObject is the full request input.
type InputObject struct {
	// Messages is the conversation to send.
	Messages []Message
	// Tools declares functions for manual tool calling. Tool calls returned by
	// the model are handed back untouched: nothing is validated or executed.
	Tools []ToolDescriptor
	// ToolChoice controls tool usage when Tools is set.
	ToolChoice ToolChoice
	// EnableCompression asks the gateway to compress the prompt before
	// forwarding it to the model.
	EnableCompression bool
	// CompressionRate is the target compression rate in (0, 1].
	// Zero lets the gateway pick its default.
	CompressionRate float64
}

func (o *InputObject) inputObject() InputObject {
	if o == nil {
		return InputObject{}
	}
	cp := *o
	cp.Messages = cloneMessages(o.Messages)
	if len(o.Tools) > 0 {
		cp.Tools = make([]ToolDescriptor, len(o.Tools))
		copy(cp.Tools, o.Tools)
	}
	return cp
}

// Normalize converts an Input into a fresh InputObject that the caller owns.
// It fails with ErrEmptyInput when there is nothing to send.
func Normalize(in Input) (InputObject, error) {
	if in == nil {
		return InputObject{}, ErrEmptyInput
	}
	obj := in.inputObject()
	if len(obj.Messages) == 0 {
		return InputObject{}, ErrEmptyInput
	}
	if obj.CompressionRate < 0 || obj.CompressionRate > 1 {
		return InputObject{}, fmt.Errorf("compression rate %v out of range [0, 1]", obj.CompressionRate)
	}
	return obj, nil
}
