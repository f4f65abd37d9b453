package openai

import (
	"context"
	"encoding/json"
	"fmt"
)

// EmbeddingModel identifies an embedding model by its wire name.
type EmbeddingModel string

// EmbeddingAda is the default embedding model (1536-dimensional vectors).
const EmbeddingAda EmbeddingModel = "text-embedding-ada-002"

// EmbeddingRequest is the outbound body for an embeddings call. Input
// accepts one or many texts; vectors come back in input order.
type EmbeddingRequest struct {
	Model EmbeddingModel `json:"model"`
	Input []string       `json:"input"`
	User  string         `json:"user,omitempty"`
}

// EmbeddingItem is one embedded input.
type EmbeddingItem struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// EmbeddingUsage reports token accounting for an embeddings call.
type EmbeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// EmbeddingResponse is the decoded body of an embeddings call.
type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingItem `json:"data"`
	Model  string          `json:"model"`
	Usage  EmbeddingUsage  `json:"usage"`
}

// Embeddings sends an embeddings request and returns the decoded response.
func (c *Client) Embeddings(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	if req.Model == "" {
		req.Model = EmbeddingAda
	}
	if len(req.Input) == 0 {
		return nil, fmt.Errorf("embedding request needs at least one input")
	}

	respBody, err := c.doJSON(ctx, embeddingsPath, req)
	if err != nil {
		return nil, err
	}

	var resp EmbeddingResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	return &resp, nil
}

// EmbedStrings embeds texts and returns their vectors in input order.
func (c *Client) EmbedStrings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.Embeddings(ctx, EmbeddingRequest{Input: texts})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings response has %d items for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings response has out-of-range index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}
