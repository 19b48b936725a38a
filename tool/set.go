package tool

import (
	"context"
	"sync"

	edgee "github.com/edgee-cloud/go-sdk"
)

// Set is an ordered collection of tools with unique names.
// It is safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	tools []*Tool
	index map[string]int
}

// NewSet creates a set from the given tools.
// Returns a *DuplicateToolError if two tools share a name.
func NewSet(tools ...*Tool) (*Set, error) {
	s := &Set{index: make(map[string]int, len(tools))}
	for _, t := range tools {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSet is like NewSet but panics on error.
func MustSet(tools ...*Tool) *Set {
	s, err := NewSet(tools...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a tool to the set.
// Returns a *DuplicateToolError if the name is already taken.
func (s *Set) Add(t *Tool) error {
	if t == nil {
		return ErrNilTool
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[t.name]; exists {
		return &DuplicateToolError{Name: t.name}
	}
	s.index[t.name] = len(s.tools)
	s.tools = append(s.tools, t)
	return nil
}

// Get retrieves a tool by name.
func (s *Set) Get(name string) (*Tool, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.tools[i], true
}

// Lookup retrieves a tool by name.
// Returns an *UnknownToolError if no tool has that name.
func (s *Set) Lookup(name string) (*Tool, error) {
	t, ok := s.Get(name)
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return t, nil
}

// Tools returns the tools in insertion order.
func (s *Set) Tools() []*Tool {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Descriptors returns the wire declarations of all tools in insertion order.
func (s *Set) Descriptors() []edgee.ToolDescriptor {
	tools := s.Tools()
	if len(tools) == 0 {
		return nil
	}
	out := make([]edgee.ToolDescriptor, len(tools))
	for i, t := range tools {
		out[i] = t.Descriptor()
	}
	return out
}

// Names returns the tool names in insertion order.
func (s *Set) Names() []string {
	tools := s.Tools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.name
	}
	return names
}

// Len returns the number of tools.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tools)
}

// Call resolves and executes a tool call. Unknown tools, invalid arguments
// and handler errors are captured in the Result so the model can recover;
// Call itself never fails.
func (s *Set) Call(ctx context.Context, call edgee.ToolCall) Result {
	t, err := s.Lookup(call.Name())
	if err != nil {
		return NewResult(call, nil, err)
	}
	value, err := t.Execute(ctx, call.Arguments())
	return NewResult(call, value, err)
}
