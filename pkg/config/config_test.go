package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `[AGENT_CONFIG]
MODEL_ID =
AGENT_ID = A1
AGENT_ALIAS_ID = AL1
ENABLE_TRACE =
AGENT_PERSONNA =
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelID != DefaultModelID {
		t.Fatalf("expected default model, got %q", cfg.ModelID)
	}
	if cfg.EnableTrace {
		t.Fatal("expected tracing disabled")
	}
	if cfg.Persona != "Agent" {
		t.Fatalf("expected persona Agent, got %q", cfg.Persona)
	}
	if cfg.TraceFormat != TraceFormatJSON {
		t.Fatalf("expected json trace format, got %q", cfg.TraceFormat)
	}
	if got := cfg.Greeting(); got != "Hello I'm the Agent. How may I help you?" {
		t.Fatalf("unexpected greeting %q", got)
	}
}

func TestLoadReadsAllKeys(t *testing.T) {
	path := writeConfig(t, `[AGENT_CONFIG]
model_id = anthropic.claude-v2
AGENT_ID = A1
AGENT_ALIAS_ID = AL1
ENABLE_TRACE = True
AGENT_PERSONNA = Travel Assistant
TRACE_FORMAT = YAML
AWS_REGION = us-west-2
AWS_PROFILE = dev
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		ModelID:      "anthropic.claude-v2",
		AgentID:      "A1",
		AgentAliasID: "AL1",
		EnableTrace:  true,
		TraceFormat:  TraceFormatYAML,
		Persona:      "Travel Assistant",
		Region:       "us-west-2",
		Profile:      "dev",
	}
	if cfg != want {
		t.Fatalf("unexpected config:\n got: %+v\nwant: %+v", cfg, want)
	}
}

func TestLoadTraceFlagValues(t *testing.T) {
	cases := map[string]bool{
		"false":   false,
		"0":       false,
		"yes":     true,
		"enabled": true,
	}
	for raw, want := range cases {
		path := writeConfig(t, "[AGENT_CONFIG]\nAGENT_ID = A1\nAGENT_ALIAS_ID = AL1\nENABLE_TRACE = "+raw+"\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", raw, err)
		}
		if cfg.EnableTrace != want {
			t.Fatalf("ENABLE_TRACE=%q: expected %v, got %v", raw, want, cfg.EnableTrace)
		}
	}
}

func TestLoadRequiresIdentifiers(t *testing.T) {
	cases := []string{
		"[AGENT_CONFIG]\nAGENT_ID = A1\nAGENT_ALIAS_ID =\n",
		"[AGENT_CONFIG]\nAGENT_ID =\nAGENT_ALIAS_ID = AL1\n",
		"[AGENT_CONFIG]\nMODEL_ID = m\n",
		"[OTHER]\nAGENT_ID = A1\nAGENT_ALIAS_ID = AL1\n",
	}
	for _, content := range cases {
		path := writeConfig(t, content)
		_, err := Load(path)
		if !errors.Is(err, ErrMissingRequired) {
			t.Fatalf("expected ErrMissingRequired for %q, got %v", content, err)
		}
		if !strings.Contains(err.Error(), path) {
			t.Fatalf("expected error to reference %s, got %v", path, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cfg"))
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
}

func TestLoadRejectsUnknownTraceFormat(t *testing.T) {
	path := writeConfig(t, "[AGENT_CONFIG]\nAGENT_ID = A1\nAGENT_ALIAS_ID = AL1\nTRACE_FORMAT = xml\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported trace format")
	}
}

func TestDefaultPaths(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	paths := DefaultPaths(filepath.Join("/opt", "chat", "bedrock-agent-chat"), now)

	if paths.Config != filepath.Join("/opt", "chat", "bedrock-agent-chat.cfg") {
		t.Fatalf("unexpected config path %q", paths.Config)
	}
	want := filepath.Join("/opt", "chat", "bedrock-agent-chat_trace_2024-03-09_14-05-07.log")
	if paths.TraceLog != want {
		t.Fatalf("unexpected trace path %q, want %q", paths.TraceLog, want)
	}
}

func TestEndInstruction(t *testing.T) {
	cfg := Config{}
	if got := cfg.EndInstruction("t.log"); got != "To end the conversation, type bye" {
		t.Fatalf("unexpected instruction %q", got)
	}
	cfg.EnableTrace = true
	if got := cfg.EndInstruction("t.log"); !strings.HasSuffix(got, "check traces in t.log") {
		t.Fatalf("unexpected instruction %q", got)
	}
}
