package bedrock

import (
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/minhyannv/bedrock-agent-chat/pkg/agent"
	loggerpkg "github.com/minhyannv/bedrock-agent-chat/pkg/logger"
)

// responseEvents is satisfied by *bedrockagentruntime.InvokeAgentEventStream.
type responseEvents interface {
	Events() <-chan types.ResponseStream
	Close() error
	Err() error
}

// eventStream maps SDK response stream members onto agent events. Members
// other than chunk and trace are skipped.
type eventStream struct {
	src     responseEvents
	cur     agent.Event
	logger  loggerpkg.Logger
	verbose bool
}

func newEventStream(src responseEvents, logger loggerpkg.Logger, verbose bool) *eventStream {
	return &eventStream{src: src, logger: logger, verbose: verbose}
}

func (s *eventStream) Next() bool {
	for ev := range s.src.Events() {
		switch v := ev.(type) {
		case *types.ResponseStreamMemberChunk:
			s.cur = agent.Event{Kind: agent.EventChunk, Bytes: v.Value.Bytes}
			return true
		case *types.ResponseStreamMemberTrace:
			s.cur = agent.Event{Kind: agent.EventTrace, Payload: traceFields(v.Value)}
			return true
		default:
			loggerpkg.Debugf(s.verbose, s.logger, "skipping response stream member %T", ev)
		}
	}
	return false
}

func (s *eventStream) Current() agent.Event { return s.cur }

func (s *eventStream) Err() error { return s.src.Err() }

func (s *eventStream) Close() error { return s.src.Close() }
