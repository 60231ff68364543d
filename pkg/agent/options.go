package agent

import (
	"time"

	loggerpkg "github.com/minhyannv/bedrock-agent-chat/pkg/logger"
)

// SessionOption configures optional dependencies for a Session.
type SessionOption func(*sessionDeps)

type sessionDeps struct {
	logger    loggerpkg.Logger
	verbose   bool
	sink      TraceSink
	sessionID string
	now       func() time.Time
}

// WithLogger injects a logger. Debug output is only written when verbose is set.
func WithLogger(l loggerpkg.Logger, verbose bool) SessionOption {
	return func(d *sessionDeps) {
		d.logger = l
		d.verbose = verbose
	}
}

// WithTraceSink sets where trace payloads go when tracing is enabled.
func WithTraceSink(s TraceSink) SessionOption {
	return func(d *sessionDeps) {
		d.sink = s
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) SessionOption {
	return func(d *sessionDeps) {
		d.sessionID = id
	}
}

// WithClock replaces time.Now for turn timing.
func WithClock(now func() time.Time) SessionOption {
	return func(d *sessionDeps) {
		d.now = now
	}
}
