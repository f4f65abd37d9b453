package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI API root. Override with SetBaseURL for
	// compatible gateways.
	DefaultBaseURL = "https://api.openai.com/v1"

	chatPath       = "/chat/completions"
	embeddingsPath = "/embeddings"

	// requestTimeout bounds non-streaming calls. Streaming connections are
	// long-lived and bounded by the caller's context instead.
	requestTimeout = 60 * time.Second

	// maxResponseBody caps how much of a response body we will read.
	maxResponseBody = 10 * 1024 * 1024
)

// Client talks to an OpenAI-style API.
type Client struct {
	apiKey  string
	baseURL string

	// TokenWriter, when set, receives every raw content fragment as it
	// arrives during StreamJSON. Useful for live terminal rendering.
	TokenWriter io.Writer

	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a client authenticated with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		// No Timeout here: it would kill a healthy stream mid-response.
		streamClient: &http.Client{},
	}
}

// SetBaseURL points the client at an alternative API root.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Complete sends a non-streaming chat completion and returns the decoded
// response. The request's Stream flag is forced off.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.Stream = false

	respBody, err := c.doJSON(ctx, chatPath, req)
	if err != nil {
		return nil, err
	}

	var resp ChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return &resp, nil
}

// doJSON posts payload as JSON and returns the response body, mapping
// non-200 statuses to errors carrying a body excerpt.
func (c *Client) doJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// apiError turns a non-200 status into a readable error with a short body
// excerpt. API error bodies are JSON but we keep them opaque here.
func apiError(status int, body []byte) error {
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > 512 {
		excerpt = excerpt[:512] + "..."
	}
	return fmt.Errorf("API error (status %d): %s", status, excerpt)
}
