// Package conversation holds the append-only message log owned by a single
// send. Every message the loop sends or receives lands here in order, so the
// full transcript, including intermediate tool calls and their results, can
// always be reconstructed.
package conversation

import (
	"encoding/json"
	"fmt"
	"sync"

	edgee "github.com/edgee-cloud/go-sdk"
)

// Log is an ordered, append-only sequence of messages.
type Log struct {
	mu       sync.RWMutex
	messages []edgee.Message
}

// New creates a log initialized with a copy of the given messages.
func New(messages ...edgee.Message) *Log {
	l := &Log{}
	if len(messages) > 0 {
		l.messages = make([]edgee.Message, len(messages))
		copy(l.messages, messages)
	}
	return l
}

// Append adds messages to the end of the log.
func (l *Log) Append(msgs ...edgee.Message) {
	if len(msgs) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msgs...)
}

// Messages returns a copy of all messages.
func (l *Log) Messages() []edgee.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]edgee.Message, len(l.messages))
	copy(result, l.messages)
	return result
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Last returns the last n messages. If n > Len(), returns all messages.
func (l *Log) Last(n int) []edgee.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	start := max(len(l.messages)-n, 0)
	result := make([]edgee.Message, len(l.messages)-start)
	copy(result, l.messages[start:])
	return result
}

// Request returns a copy of base carrying the current transcript.
func (l *Log) Request(base edgee.Request) edgee.Request {
	req := base.Clone()
	req.Messages = l.Messages()
	return req
}

// MarshalJSON encodes the transcript as a JSON array of wire messages.
func (l *Log) MarshalJSON() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.messages == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.messages)
}

// Restore decodes a transcript produced by MarshalJSON into a new log.
func Restore(data []byte) (*Log, error) {
	var messages []edgee.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("conversation: restore transcript: %w", err)
	}
	return New(messages...), nil
}
