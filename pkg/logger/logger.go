package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is the logging interface used by the chat client packages.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	mu        *sync.Mutex
	w         io.Writer
	component string
	now       func() time.Time
}

// NewWriterLogger builds a logger that writes one line per entry to w.
// component, when non-empty, is printed after the level.
func NewWriterLogger(w io.Writer, component string) Logger {
	return writerLogger{mu: &sync.Mutex{}, w: w, component: component, now: time.Now}
}

func (l writerLogger) write(level, msg string, obj any) {
	if l.w == nil {
		return
	}
	if l.component != "" {
		msg = "[" + l.component + "] " + msg
	}

	ts := l.now().Format(time.RFC3339)
	line := fmt.Sprintf("%s %-5s %s\n", ts, level, msg)
	if obj != nil {
		b, err := json.Marshal(obj)
		if err != nil {
			line = fmt.Sprintf("%s %-5s %s obj=%q\n", ts, level, msg, fmt.Sprintf("%+v", obj))
		} else {
			line = fmt.Sprintf("%s %-5s %s obj=%s\n", ts, level, msg, string(b))
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line)
}

func (l writerLogger) Info(msg string, obj any)  { l.write("INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write("WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write("DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write("ERROR", msg, obj) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is a format-style variant of Debug.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}
