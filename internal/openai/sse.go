package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Event is one occurrence on a streaming connection. Exactly one of the
// three fields is meaningful: Open marks the connection being established,
// Err a transport failure, and otherwise Data carries a message payload.
type Event struct {
	Open bool
	Data string
	Err  error
}

// EventSource is an ordered stream of events from a long-lived connection.
// Events are delivered in arrival order and the channel is closed when the
// underlying stream ends. Close tears the connection down; it is idempotent
// and safe to call while the stream is still being read.
type EventSource interface {
	Events() <-chan Event
	Close()
}

// openStream starts a streaming chat completion and returns the SSE event
// source for it.
func (c *Client) openStream(ctx context.Context, req ChatRequest) (EventSource, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apiError(resp.StatusCode, respBody)
	}

	return newSSESource(resp.Body), nil
}

// sseSource reads Server-Sent Events from a response body. Only "data:"
// lines matter for this protocol; comments and other fields are skipped.
type sseSource struct {
	body   io.ReadCloser
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func newSSESource(body io.ReadCloser) *sseSource {
	s := &sseSource{
		body:   body,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go s.read()
	return s
}

func (s *sseSource) Events() <-chan Event {
	return s.events
}

// Close tears down the connection. Idempotent; events already buffered may
// still be drained but no new ones are produced.
func (s *sseSource) Close() {
	s.once.Do(func() {
		close(s.done)
		s.body.Close()
	})
}

func (s *sseSource) read() {
	defer close(s.events)

	if !s.emit(Event{Open: true}) {
		return
	}

	scanner := bufio.NewScanner(s.body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()

		// Skip blank lines and SSE comments.
		if len(line) == 0 || line[0] == ':' {
			continue
		}
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		data := bytes.TrimPrefix(line, []byte("data:"))
		data = bytes.TrimPrefix(data, []byte(" "))

		if !s.emit(Event{Data: string(data)}) {
			return
		}
	}

	// A read error after Close is just the connection being torn down,
	// not a transport failure the consumer should see.
	if err := scanner.Err(); err != nil {
		select {
		case <-s.done:
			return
		default:
		}
		s.emit(Event{Err: err})
	}
}

// emit delivers an event unless the source has been closed. Returns false
// once Close has been called so the reader can stop.
func (s *sseSource) emit(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}
