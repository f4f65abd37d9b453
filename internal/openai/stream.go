package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mzashi/plugkit/internal/extract"
)

// ErrNotStreaming is returned by StreamJSON when the request was not
// configured for streaming mode. This is a configuration failure detected
// before any network activity.
var ErrNotStreaming = errors.New("chat request must have Stream set to true")

// doneSentinel is the reserved payload marking normal end of stream,
// delivered in-band as ordinary message data.
const doneSentinel = "[DONE]"

// StreamResult is the outcome of one streaming extraction session.
type StreamResult struct {
	// Antecedent is all narration the model emitted outside the captured
	// object, concatenated in arrival order.
	Antecedent string

	// JSON is the first balanced JSON object found in the stream, or empty
	// if the stream ended before one completed. An unterminated capture is
	// a normal outcome, not an error — callers must check.
	JSON string
}

// FullText reassembles the response as the model produced it.
func (r *StreamResult) FullText() string {
	return r.Antecedent + r.JSON
}

// Decode unmarshals the captured JSON into v. It reports false without
// touching v when no object was captured.
func (r *StreamResult) Decode(v any) (bool, error) {
	if r.JSON == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(r.JSON), v); err != nil {
		return false, fmt.Errorf("decode captured JSON: %w", err)
	}
	return true, nil
}

// StreamJSON streams a chat completion and extracts the first balanced JSON
// object from the token stream. The connection is closed the moment the
// object completes — any tokens the model would still generate are never
// read, which saves both latency and cost.
//
// The request must have Stream set to true. A stream that ends (sentinel or
// transport close) before an object completes returns a result with JSON
// empty; transport and decode errors abort the call.
func (c *Client) StreamJSON(ctx context.Context, req ChatRequest) (*StreamResult, error) {
	if !req.Stream {
		return nil, ErrNotStreaming
	}

	src, err := c.openStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer src.Close()

	return c.consumeJSON(src)
}

// consumeJSON drives the extraction machine over an event source. Split out
// from StreamJSON so tests can feed it a fake source.
func (c *Client) consumeJSON(src EventSource) (*StreamResult, error) {
	state := extract.NewState()
	var result StreamResult
	var antecedent strings.Builder

	for ev := range src.Events() {
		if ev.Err != nil {
			return nil, fmt.Errorf("stream error: %w", ev.Err)
		}
		if ev.Open {
			continue
		}
		if ev.Data == doneSentinel {
			src.Close()
			break
		}

		var chunk ChatStream
		if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
			return nil, fmt.Errorf("decode stream chunk: %w", err)
		}

		delta := chunk.Delta()
		if delta == nil || delta.Content == nil {
			// Role announcements and empty final deltas carry no text.
			continue
		}

		if c.TokenWriter != nil {
			fmt.Fprint(c.TokenWriter, *delta.Content)
		}

		next, completed, passthrough := extract.Feed(state, *delta.Content)
		state = next
		antecedent.WriteString(passthrough)

		if completed != "" {
			result.JSON = completed
			src.Close()
			break
		}
	}

	result.Antecedent = antecedent.String()
	return &result, nil
}
