package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	configpkg "github.com/minhyannv/bedrock-agent-chat/pkg/config"
	loggerpkg "github.com/minhyannv/bedrock-agent-chat/pkg/logger"
)

// Session holds the state of one conversation with a remote agent: the
// injected clients, the configuration, the session identifier, the cached
// agent metadata and the running total of turn durations.
type Session struct {
	config  configpkg.Config
	manager Manager
	runtime Runtime
	sink    TraceSink

	id        string
	metadata  Metadata
	validated bool
	total     time.Duration
	turns     int

	now     func() time.Time
	logger  loggerpkg.Logger
	verbose bool
}

// NewSession builds a Session. The session identifier is generated once and
// stays stable for the lifetime of the Session.
func NewSession(cfg configpkg.Config, manager Manager, runtime Runtime, opts ...SessionOption) (*Session, error) {
	if manager == nil || runtime == nil {
		return nil, errors.New("agent manager and runtime are required")
	}
	if strings.TrimSpace(cfg.AgentID) == "" || strings.TrimSpace(cfg.AgentAliasID) == "" {
		return nil, configpkg.ErrMissingRequired
	}

	deps := sessionDeps{logger: loggerpkg.NopLogger{}, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.sessionID == "" {
		deps.sessionID = uuid.NewString()
	}

	s := &Session{
		config:  cfg,
		manager: manager,
		runtime: runtime,
		id:      deps.sessionID,
		now:     deps.now,
		logger:  deps.logger,
		verbose: deps.verbose,
	}
	if cfg.EnableTrace {
		s.sink = deps.sink
	}

	s.debug("session created", map[string]any{
		"session_id":   s.id,
		"agent_id":     cfg.AgentID,
		"alias_id":     cfg.AgentAliasID,
		"model_id":     cfg.ModelID,
		"enable_trace": cfg.EnableTrace,
	})
	return s, nil
}

// ID returns the conversation identifier sent with every turn.
func (s *Session) ID() string { return s.id }

// Metadata returns the agent description cached by Validate.
func (s *Session) Metadata() Metadata { return s.metadata }

// Total returns the summed duration of all completed turns.
func (s *Session) Total() time.Duration { return s.total }

// Turns returns the number of completed turns.
func (s *Session) Turns() int { return s.turns }

// Validate fetches and caches the remote agent's metadata.
func (s *Session) Validate(ctx context.Context) (Metadata, error) {
	meta, err := s.manager.DescribeAgent(ctx, s.config.AgentID)
	if err != nil {
		return Metadata{}, &OpError{Op: OpValidate, Err: err}
	}
	s.metadata = meta
	s.validated = true
	s.debug("agent validated", map[string]any{
		"name":     meta.Name,
		"model_id": meta.ModelID,
	})
	return meta, nil
}

// Invoke reconciles the agent's model with the configured one and sends
// prompt to the agent runtime.
//
// The comparison uses the metadata cached by Validate, which is never
// refreshed, so while the configured model differs from that snapshot the
// update call is issued on every turn.
func (s *Session) Invoke(ctx context.Context, prompt string) (EventStream, error) {
	if !s.validated {
		return nil, ErrNotValidated
	}

	if s.config.ModelID != s.metadata.ModelID {
		s.debug("updating agent model", map[string]any{
			"from": s.metadata.ModelID,
			"to":   s.config.ModelID,
		})
		err := s.manager.UpdateAgent(ctx, s.config.AgentID, UpdateRequest{
			Name:    s.metadata.Name,
			RoleARN: s.metadata.RoleARN,
			ModelID: s.config.ModelID,
		})
		if err != nil {
			return nil, &OpError{Op: OpUpdate, Err: err}
		}
	}

	stream, err := s.runtime.InvokeAgent(ctx, InvokeRequest{
		AgentID:     s.config.AgentID,
		AliasID:     s.config.AgentAliasID,
		SessionID:   s.id,
		EnableTrace: s.config.EnableTrace,
		EndSession:  false,
		Text:        prompt,
	})
	if err != nil {
		return nil, &OpError{Op: OpInvoke, Err: err}
	}
	return stream, nil
}

// Ask runs one full turn: invoke, decode and timing. The turn's duration is
// added to the running total only when the turn succeeds.
func (s *Session) Ask(ctx context.Context, prompt string) (Turn, error) {
	started := s.now()

	stream, err := s.Invoke(ctx, prompt)
	if err != nil {
		return Turn{}, err
	}
	reply, err := Decode(stream, s.sink)
	if err != nil {
		return Turn{}, err
	}

	elapsed := s.now().Sub(started)
	s.total += elapsed
	s.turns++
	s.debug("turn complete", map[string]any{
		"turn":        s.turns,
		"reply_bytes": len(reply),
		"elapsed_ms":  elapsed.Milliseconds(),
	})
	return Turn{Prompt: prompt, Reply: reply, Started: started, Elapsed: elapsed}, nil
}

func (s *Session) debug(msg string, obj any) {
	loggerpkg.Debug(s.verbose, s.logger, msg, obj)
}
