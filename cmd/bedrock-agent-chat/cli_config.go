package main

import (
	"flag"
	"io"
	"strings"
	"time"

	configpkg "github.com/minhyannv/bedrock-agent-chat/pkg/config"
)

// cliConfig holds command-line settings. The agent settings themselves live
// in the INI file.
type cliConfig struct {
	ConfigPath      string
	TraceLogPath    string
	Verbose         bool
	ContinueOnError bool
}

// parseCLIConfig parses args. Paths default to files next to executable.
func parseCLIConfig(args []string, executable string, now time.Time, stderr io.Writer) (cliConfig, error) {
	defaults := configpkg.DefaultPaths(executable, now)

	fs := flag.NewFlagSet("bedrock-agent-chat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaults.Config, "Path to the INI configuration file")
	traceLog := fs.String("trace_log", defaults.TraceLog, "Trace log file written when ENABLE_TRACE is set")
	verbose := fs.Bool("verbose", false, "Verbose diagnostic logging to stderr")
	continueOnError := fs.Bool("continue_on_error", false, "Keep the conversation going after a failed turn")
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}

	cfg := cliConfig{
		ConfigPath:      strings.TrimSpace(*configPath),
		TraceLogPath:    strings.TrimSpace(*traceLog),
		Verbose:         *verbose,
		ContinueOnError: *continueOnError,
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = defaults.Config
	}
	if cfg.TraceLogPath == "" {
		cfg.TraceLogPath = defaults.TraceLog
	}
	return cfg, nil
}
