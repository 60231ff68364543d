// Package tracelog appends agent trace events to a plain text file.
package tracelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Writer appends one indented block per trace event. The file is opened in
// append mode for every event and closed again, so nothing is created until
// the first Append.
type Writer struct {
	path   string
	format string
	count  int
}

// New returns a Writer for path. format is "json" or "yaml"; anything else
// falls back to json.
func New(path, format string) *Writer {
	if format != "yaml" {
		format = "json"
	}
	return &Writer{path: path, format: format}
}

// Count returns the number of blocks appended so far.
func (w *Writer) Count() int { return w.count }

// Append encodes payload and appends it to the log file.
func (w *Writer) Append(payload any) error {
	block, err := w.encode(payload)
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open trace log: %w", err)
	}
	if _, err := f.Write(block); err != nil {
		_ = f.Close()
		return fmt.Errorf("write trace log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close trace log: %w", err)
	}
	w.count++
	return nil
}

func (w *Writer) encode(payload any) ([]byte, error) {
	block, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	if w.format == "json" {
		return append(block, '\n'), nil
	}

	// Go through JSON first so YAML keys match the JSON rendering.
	var generic any
	if err := json.Unmarshal(block, &generic); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
