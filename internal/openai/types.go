// Package openai implements a client for OpenAI-style chat-completion and
// embedding APIs, including streaming completions with incremental JSON
// extraction from the token stream.
package openai

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Model identifies a chat model by its wire name.
type Model string

const (
	GPT3Turbo    Model = "gpt-3.5-turbo-0613"
	GPT3Turbo16K Model = "gpt-3.5-turbo-16k-0613"
	GPT4May      Model = "gpt-4"
	GPT4         Model = "gpt-4-0613"
	GPT4Turbo    Model = "gpt-4-1106-preview"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
)

// ChatMessage is a single message in a conversation. Assistant messages
// carry either content or a function call, never both.
type ChatMessage struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	Name         string        `json:"name,omitempty"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// System builds a system message.
func System(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// Assistant builds an assistant message with plain content.
func Assistant(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// FunctionResult builds a function-role message carrying the output of the
// named function back to the model.
func FunctionResult(name, content string) ChatMessage {
	return ChatMessage{Role: RoleFunction, Name: name, Content: content}
}

// Function declares a callable function to the model. Parameters is a JSON
// Schema describing the arguments object.
type Function struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// FunctionFor declares a function whose parameters schema is generated from
// the struct type T.
func FunctionFor[T any](name, description string) Function {
	return Function{
		Name:        name,
		Description: description,
		Parameters:  jsonschema.Reflect(new(T)),
	}
}

// FunctionCallMode controls whether the model may call declared functions.
// The zero value means "let the API default apply"; use FunctionCallAuto,
// FunctionCallNone or FunctionCallName to force a mode.
type FunctionCallMode struct {
	mode string
	name string
}

// FunctionCallAuto lets the model decide whether to call a function.
func FunctionCallAuto() FunctionCallMode { return FunctionCallMode{mode: "auto"} }

// FunctionCallNone forbids function calls for this request.
func FunctionCallNone() FunctionCallMode { return FunctionCallMode{mode: "none"} }

// FunctionCallName forces the model to call the named function.
func FunctionCallName(name string) FunctionCallMode {
	return FunctionCallMode{mode: "name", name: name}
}

// MarshalJSON emits "auto", "none", or {"name": "..."} per the wire format.
func (m FunctionCallMode) MarshalJSON() ([]byte, error) {
	switch m.mode {
	case "auto", "none":
		return json.Marshal(m.mode)
	case "name":
		return json.Marshal(struct {
			Name string `json:"name"`
		}{Name: m.name})
	default:
		return nil, fmt.Errorf("unset function call mode")
	}
}

// ChatRequest is the outbound body for a chat completion.
// Build it with NewChatRequest so the defaults and clamps apply.
type ChatRequest struct {
	Model            Model             `json:"model"`
	Messages         []ChatMessage     `json:"messages"`
	Functions        []Function        `json:"functions,omitempty"`
	FunctionCall     *FunctionCallMode `json:"function_call,omitempty"`
	Temperature      float64           `json:"temperature"`
	Stream           bool              `json:"stream"`
	Stop             []string          `json:"stop,omitempty"`
	FrequencyPenalty float64           `json:"frequency_penalty"`
	N                int               `json:"n,omitempty"`
	MaxTokens        int               `json:"max_tokens,omitempty"`
}

// NewChatRequest builds a request with the library defaults: GPT4 and
// temperature 0.7.
func NewChatRequest(messages ...ChatMessage) ChatRequest {
	return ChatRequest{
		Model:       GPT4,
		Messages:    messages,
		Temperature: 0.7,
	}
}

// SetTemperature sets the sampling temperature, clamped to [0, 2].
func (r *ChatRequest) SetTemperature(t float64) {
	r.Temperature = clamp(t, 0, 2)
}

// SetFrequencyPenalty sets the frequency penalty, clamped to [-2, 2].
func (r *ChatRequest) SetFrequencyPenalty(p float64) {
	r.FrequencyPenalty = clamp(p, -2, 2)
}

func clamp(v, min, max float64) float64 {
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}

// FunctionCall is the model's request to invoke a declared function.
// Arguments is a JSON-encoded object string.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Decode unmarshals the call's arguments into v.
func (f *FunctionCall) Decode(v any) error {
	return json.Unmarshal([]byte(f.Arguments), v)
}

// Usage reports token accounting for a completed request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatChoice is one alternative completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatResponse is the body of a non-streaming completion.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// Message returns the first choice's message, or nil if there are none.
func (r *ChatResponse) Message() *ChatMessage {
	if len(r.Choices) == 0 {
		return nil
	}
	return &r.Choices[0].Message
}

// FunctionCall returns the function call from the first choice, or nil if
// the model answered with plain content.
func (r *ChatResponse) FunctionCall() *FunctionCall {
	if m := r.Message(); m != nil {
		return m.FunctionCall
	}
	return nil
}

// ChatDelta is the incremental payload inside one streaming chunk. Content
// is nil when the chunk carries no text fragment (role announcements, empty
// final deltas).
type ChatDelta struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// StreamChoice is one alternative within a streaming chunk.
type StreamChoice struct {
	Index        int       `json:"index"`
	Delta        ChatDelta `json:"delta"`
	FinishReason *string   `json:"finish_reason"`
}

// ChatStream is the decoded body of one streaming message payload.
type ChatStream struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Choices []StreamChoice `json:"choices"`
}

// Delta returns the first choice's delta, or nil if the chunk has no
// choices.
func (s *ChatStream) Delta() *ChatDelta {
	if len(s.Choices) == 0 {
		return nil
	}
	return &s.Choices[0].Delta
}
