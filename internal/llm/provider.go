package llm

import (
	"context"
	"encoding/json"
)

// Provider sends a prompt to a hosted model and returns its output.
type Provider interface {
	// Generate runs a single completion. When req.Schema is set the
	// provider asks the model for schema-constrained JSON and validates
	// the returned content before handing it back.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model this provider talks to.
	ModelID() string
}

// Request is a provider-neutral completion request.
type Request struct {
	// System sets the model's role and rules.
	System string

	// Messages is the conversation. Flows send a single user message.
	Messages []Message

	// Schema constrains the response. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default in place.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "mcq-test". It doubles as the
	// OpenAI schema name and as the compiled-schema cache key, so it must
	// be unique per definition.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is what a provider returns.
type Response struct {
	// Content is the validated JSON document when a schema was requested,
	// otherwise the raw model text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the call.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
