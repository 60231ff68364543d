package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minhyannv/bedrock-agent-chat/pkg/agent"
	"github.com/minhyannv/bedrock-agent-chat/pkg/console"
	loggerpkg "github.com/minhyannv/bedrock-agent-chat/pkg/logger"
)

const exitWord = "bye"

// chatSession is the part of agent.Session the REPL needs.
type chatSession interface {
	Ask(ctx context.Context, prompt string) (agent.Turn, error)
	Total() time.Duration
}

// replOptions configures REPL behavior.
type replOptions struct {
	Persona         string
	ModelID         string
	Greeting        string
	EndInstruction  string
	ContinueOnError bool
	Verbose         bool
	Logger          loggerpkg.Logger
}

// runREPL greets the user and answers one line at a time until "bye" or end
// of input. A failed turn is printed and returned unless ContinueOnError is
// set.
func runREPL(ctx context.Context, session chatSession, opts replOptions, in io.Reader, printer *console.Printer) error {
	if session == nil {
		return errors.New("chat session is required")
	}
	if in == nil {
		return errors.New("input reader is required")
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	printer.Greeting(opts.Greeting)
	for {
		printer.Prompt()
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, exitWord) {
			break
		}

		turn, err := session.Ask(ctx, input)
		if err != nil {
			reportError(printer, err)
			loggerpkg.Debug(opts.Verbose, opts.Logger, "turn failed", map[string]any{"error": err.Error()})
			if opts.ContinueOnError {
				continue
			}
			return err
		}
		printer.Reply(opts.Persona, turn.Reply, turn.Elapsed, opts.EndInstruction)
	}

	if err := scanner.Err(); err != nil {
		printer.Error("Error reading input.", err.Error())
		return fmt.Errorf("read input: %w", err)
	}
	printer.Farewell(opts.ModelID, session.Total())
	return nil
}
