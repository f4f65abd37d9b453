// Package ui — stream.go renders the outcome of a streamed completion:
// the prose the model produced before its JSON, then the recovered JSON
// document pretty-printed.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mzashi/plugkit/internal/openai"
)

// Echo returns a writer that dims tokens as they arrive and indents the
// first one with prefix. Wire it to a client's TokenWriter to show live
// progress without mixing it into the real output.
func Echo(w io.Writer, prefix string) io.Writer {
	return &echoWriter{w: w, prefix: prefix}
}

type echoWriter struct {
	w      io.Writer
	prefix string
	opened bool
}

func (e *echoWriter) Write(p []byte) (int, error) {
	if !e.opened {
		fmt.Fprint(e.w, e.prefix)
		e.opened = true
	}
	faint := color.New(color.Faint)
	faint.Fprint(e.w, string(p))
	return len(p), nil
}

// RenderResult writes a stream result to w: the antecedent prose as-is,
// then the JSON document indented. Returns an error only when the JSON
// cannot be re-encoded.
func RenderResult(w io.Writer, res *openai.StreamResult) error {
	if text := strings.TrimSpace(res.Antecedent); text != "" {
		fmt.Fprintln(w, text)
	}

	if res.JSON == "" {
		yellow := color.New(color.FgYellow)
		yellow.Fprintln(w, "no JSON object in response")
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(res.JSON), "", "  "); err != nil {
		return fmt.Errorf("format response JSON: %w", err)
	}

	fmt.Fprintln(w, buf.String())
	return nil
}
