// Package main provides an interactive shell for chatting with an Amazon
// Bedrock Agent.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/minhyannv/bedrock-agent-chat/pkg/agent"
	"github.com/minhyannv/bedrock-agent-chat/pkg/bedrock"
	configpkg "github.com/minhyannv/bedrock-agent-chat/pkg/config"
	"github.com/minhyannv/bedrock-agent-chat/pkg/console"
	loggerpkg "github.com/minhyannv/bedrock-agent-chat/pkg/logger"
	"github.com/minhyannv/bedrock-agent-chat/pkg/tracelog"
)

// main is the program entry point.
func main() {
	// AWS credentials and region may come from a .env file.
	_ = godotenv.Load()

	executable, err := os.Executable()
	if err != nil {
		executable = os.Args[0]
	}
	cli, err := parseCLIConfig(os.Args[1:], executable, time.Now(), os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	os.Exit(run(context.Background(), cli, newBedrockClients, os.Stdin, os.Stdout, os.Stderr))
}

// clientFactory builds the remote clients once the configuration is known.
type clientFactory func(ctx context.Context, cfg configpkg.Config, logger loggerpkg.Logger, verbose bool) (agent.Manager, agent.Runtime, error)

func newBedrockClients(ctx context.Context, cfg configpkg.Config, logger loggerpkg.Logger, verbose bool) (agent.Manager, agent.Runtime, error) {
	client, err := bedrock.New(ctx, bedrock.Options{
		Region:  cfg.Region,
		Profile: cfg.Profile,
		Logger:  logger,
		Verbose: verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, client, nil
}

// run loads the configuration, validates the agent and runs the chat loop.
// It returns the process exit status.
func run(ctx context.Context, cli cliConfig, newClients clientFactory, in io.Reader, out, errOut io.Writer) int {
	printer := console.New(out)
	appLogger := loggerpkg.NewWriterLogger(errOut, "bedrock-agent-chat")

	cfg, err := configpkg.Load(cli.ConfigPath)
	if err != nil {
		if errors.Is(err, configpkg.ErrMissingRequired) {
			printer.Error(fmt.Sprintf("Error: Please check the configuration file (%s) for required values", cli.ConfigPath), "")
		} else {
			printer.Error(fmt.Sprintf("Error: Invalid configuration file (%s)", cli.ConfigPath), err.Error())
		}
		loggerpkg.Debug(cli.Verbose, appLogger, "config load failed", map[string]any{"error": err.Error()})
		return 1
	}

	manager, runtime, err := newClients(ctx, cfg, appLogger, cli.Verbose)
	if err != nil {
		printer.Error("Error creating Bedrock clients.", err.Error())
		return 1
	}

	session, err := agent.NewSession(cfg, manager, runtime,
		agent.WithLogger(appLogger, cli.Verbose),
		agent.WithTraceSink(tracelog.New(cli.TraceLogPath, cfg.TraceFormat)),
	)
	if err != nil {
		printer.Error("Error starting chat session.", err.Error())
		return 1
	}

	if _, err := session.Validate(ctx); err != nil {
		reportError(printer, err)
		return 1
	}

	err = runREPL(ctx, session, replOptions{
		Persona:         cfg.Persona,
		ModelID:         cfg.ModelID,
		Greeting:        cfg.Greeting(),
		EndInstruction:  cfg.EndInstruction(cli.TraceLogPath),
		ContinueOnError: cli.ContinueOnError,
		Verbose:         cli.Verbose,
		Logger:          appLogger,
	}, in, printer)
	if err != nil {
		return 1
	}
	return 0
}

// reportError prints err in red with the hint for the failed operation.
func reportError(printer *console.Printer, err error) {
	if op, ok := agent.OpOf(err); ok {
		printer.Error(op.Hint(), bedrock.Describe(errors.Unwrap(err)))
		return
	}
	printer.Error("Error:", bedrock.Describe(err))
}
