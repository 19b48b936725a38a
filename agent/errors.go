package agent

import (
	"errors"
)

var (
	// ErrInvalidIterationBudget indicates a tool iteration budget below 1.
	ErrInvalidIterationBudget = errors.New("agent: max tool iterations must be at least 1")

	// ErrNilTransport indicates an agent created without a transport.
	ErrNilTransport = errors.New("agent: nil transport")

	// errStopped signals that the stream consumer stopped iterating.
	errStopped = errors.New("agent: stream consumer stopped")
)
