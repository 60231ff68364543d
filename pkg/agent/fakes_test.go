package agent

import (
	"context"
	"time"
)

type fakeManager struct {
	meta        Metadata
	describeErr error
	updateErr   error

	describeCalls []string
	updates       []UpdateRequest
	log           *[]string
}

func (m *fakeManager) DescribeAgent(_ context.Context, agentID string) (Metadata, error) {
	m.describeCalls = append(m.describeCalls, agentID)
	m.record("describe")
	if m.describeErr != nil {
		return Metadata{}, m.describeErr
	}
	return m.meta, nil
}

func (m *fakeManager) UpdateAgent(_ context.Context, _ string, req UpdateRequest) error {
	m.updates = append(m.updates, req)
	m.record("update")
	return m.updateErr
}

func (m *fakeManager) record(call string) {
	if m.log != nil {
		*m.log = append(*m.log, call)
	}
}

type fakeRuntime struct {
	streams   []*sliceStream
	invokeErr error

	requests []InvokeRequest
	log      *[]string
}

func (r *fakeRuntime) InvokeAgent(_ context.Context, req InvokeRequest) (EventStream, error) {
	r.requests = append(r.requests, req)
	if r.log != nil {
		*r.log = append(*r.log, "invoke")
	}
	if r.invokeErr != nil {
		return nil, r.invokeErr
	}
	if len(r.streams) == 0 {
		return &sliceStream{}, nil
	}
	s := r.streams[0]
	r.streams = r.streams[1:]
	return s, nil
}

type sliceStream struct {
	events []Event
	err    error
	pos    int
	cur    Event
	closed bool
}

func (s *sliceStream) Next() bool {
	if s.pos >= len(s.events) {
		return false
	}
	s.cur = s.events[s.pos]
	s.pos++
	return true
}

func (s *sliceStream) Current() Event { return s.cur }
func (s *sliceStream) Err() error     { return s.err }
func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

func chunk(text string) Event { return Event{Kind: EventChunk, Bytes: []byte(text)} }
func trace(payload any) Event { return Event{Kind: EventTrace, Payload: payload} }

type recordingSink struct {
	payloads []any
	err      error
}

func (s *recordingSink) Append(payload any) error {
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}
