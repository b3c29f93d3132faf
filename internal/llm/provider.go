package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt and returns the model output. With a Schema
	// the Content is a JSON object validated against it; without one the
	// Content is the reply text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil asks for plain text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name is kebab-case, e.g. "math-help". It doubles as the cache key for
	// the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text decodes a plain-text response.
func (r *Response) Text() (string, error) {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", fmt.Errorf("response is not text: %w", err)
	}
	return s, nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finishContent turns the raw model text into Response content: validated
// JSON when a schema was requested, a JSON string otherwise.
func finishContent(req Request, text string) (json.RawMessage, error) {
	if req.Schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		return b, nil
	}
	content := json.RawMessage(text)
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
