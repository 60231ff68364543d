package agent

import (
	"context"
	"time"
)

// Metadata describes the remote agent as returned by a describe call.
type Metadata struct {
	ModelID string
	Name    string
	RoleARN string
}

// UpdateRequest carries the fields sent when switching the agent's model.
type UpdateRequest struct {
	Name    string
	RoleARN string
	ModelID string
}

// InvokeRequest is one user turn sent to the agent runtime.
type InvokeRequest struct {
	AgentID     string
	AliasID     string
	SessionID   string
	EnableTrace bool
	EndSession  bool
	Text        string
}

// Manager is the agent management API.
type Manager interface {
	DescribeAgent(ctx context.Context, agentID string) (Metadata, error)
	UpdateAgent(ctx context.Context, agentID string, req UpdateRequest) error
}

// Runtime is the agent runtime API.
type Runtime interface {
	InvokeAgent(ctx context.Context, req InvokeRequest) (EventStream, error)
}

// EventKind tags a streamed response event.
type EventKind int

const (
	EventChunk EventKind = iota + 1
	EventTrace
)

// Event is one element of a response stream. Bytes is set for chunks,
// Payload for traces.
type Event struct {
	Kind    EventKind
	Bytes   []byte
	Payload any
}

// EventStream is a finite, non-restartable sequence of events.
//
//	for s.Next() {
//		ev := s.Current()
//	}
//	if err := s.Err(); err != nil { ... }
type EventStream interface {
	Next() bool
	Current() Event
	Err() error
	Close() error
}

// TraceSink receives trace payloads when tracing is enabled.
type TraceSink interface {
	Append(payload any) error
}

// Turn is the outcome of one request/response exchange.
type Turn struct {
	Prompt  string
	Reply   string
	Started time.Time
	Elapsed time.Duration
}
