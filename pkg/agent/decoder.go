package agent

import (
	"fmt"
	"strings"
)

// Decode consumes stream to the end, concatenating chunk payloads in order.
// Trace payloads are handed to sink; a nil sink discards them. The stream is
// closed before Decode returns.
func Decode(stream EventStream, sink TraceSink) (string, error) {
	if stream == nil {
		return "", &OpError{Op: OpDecode, Err: fmt.Errorf("nil response stream")}
	}
	defer func() { _ = stream.Close() }()

	var reply strings.Builder
	for stream.Next() {
		ev := stream.Current()
		switch ev.Kind {
		case EventChunk:
			reply.Write(ev.Bytes)
		case EventTrace:
			if sink == nil {
				continue
			}
			if err := sink.Append(ev.Payload); err != nil {
				return reply.String(), &OpError{Op: OpDecode, Err: fmt.Errorf("write trace: %w", err)}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return reply.String(), &OpError{Op: OpDecode, Err: err}
	}
	return reply.String(), nil
}
