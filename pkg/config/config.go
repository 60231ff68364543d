package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
)

const (
	// Section is the INI section holding the agent settings.
	Section = "AGENT_CONFIG"

	// DefaultModelID is used when MODEL_ID is empty.
	DefaultModelID = "anthropic.claude-instant-v1"
	// DefaultPersona is used when AGENT_PERSONNA is empty.
	DefaultPersona = "Agent"

	traceTimeLayout = "2006-01-02_15-04-05"
)

// Trace log encodings.
const (
	TraceFormatJSON = "json"
	TraceFormatYAML = "yaml"
)

// ErrMissingRequired reports a config file without AGENT_ID or AGENT_ALIAS_ID.
var ErrMissingRequired = errors.New("missing required configuration values")

// Config holds the settings for one chat run. It is immutable after Load.
type Config struct {
	ModelID      string
	AgentID      string
	AgentAliasID string
	EnableTrace  bool
	TraceFormat  string
	Persona      string

	// Optional AWS overrides; empty means the SDK default chain decides.
	Region  string
	Profile string
}

// Paths are the files derived from the executable location.
type Paths struct {
	Config   string
	TraceLog string
}

// DefaultPaths places <stem>.cfg and <stem>_trace_<timestamp>.log next to
// the executable.
func DefaultPaths(executable string, now time.Time) Paths {
	dir := filepath.Dir(executable)
	stem := strings.TrimSuffix(filepath.Base(executable), filepath.Ext(executable))
	return Paths{
		Config:   filepath.Join(dir, stem+".cfg"),
		TraceLog: filepath.Join(dir, fmt.Sprintf("%s_trace_%s.log", stem, now.Format(traceTimeLayout))),
	}
}

// Load reads the AGENT_CONFIG section of the INI file at path and applies
// defaults. A missing file, section or required identifier yields an error
// wrapping ErrMissingRequired.
func Load(path string) (Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %v", ErrMissingRequired, path, err)
	}
	sec, err := file.GetSection(Section)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s has no [%s] section", ErrMissingRequired, path, Section)
	}
	return fromSection(sec, path)
}

func fromSection(sec *ini.Section, path string) (Config, error) {
	get := func(key string) string {
		return strings.TrimSpace(sec.Key(key).String())
	}

	cfg := Config{
		ModelID:      get("MODEL_ID"),
		AgentID:      get("AGENT_ID"),
		AgentAliasID: get("AGENT_ALIAS_ID"),
		TraceFormat:  strings.ToLower(get("TRACE_FORMAT")),
		Persona:      get("AGENT_PERSONNA"),
		Region:       get("AWS_REGION"),
		Profile:      get("AWS_PROFILE"),
	}
	if cfg.AgentID == "" || cfg.AgentAliasID == "" {
		return Config{}, fmt.Errorf("%w: AGENT_ID and AGENT_ALIAS_ID must be set in %s", ErrMissingRequired, path)
	}

	if raw := get("ENABLE_TRACE"); raw != "" {
		enabled, err := sec.Key("ENABLE_TRACE").Bool()
		// Unrecognized non-empty values switch tracing on.
		cfg.EnableTrace = err != nil || enabled
	}

	switch cfg.TraceFormat {
	case "":
		cfg.TraceFormat = TraceFormatJSON
	case TraceFormatJSON, TraceFormatYAML:
	default:
		return Config{}, fmt.Errorf("unsupported TRACE_FORMAT %q in %s", cfg.TraceFormat, path)
	}

	if cfg.ModelID == "" {
		cfg.ModelID = DefaultModelID
	}
	if cfg.Persona == "" {
		cfg.Persona = DefaultPersona
	}
	return cfg, nil
}

// Greeting is the one-time welcome line.
func (c Config) Greeting() string {
	return fmt.Sprintf("Hello I'm the %s. How may I help you?", c.Persona)
}

// EndInstruction tells the user how to leave, and where traces go when
// tracing is enabled.
func (c Config) EndInstruction(traceLog string) string {
	if c.EnableTrace {
		return "To end the conversation, type bye and check traces in " + traceLog
	}
	return "To end the conversation, type bye"
}
