// Package llm provides a unified client for text-generation providers.
//
// Providers are addressed by opaque identifiers chosen in configuration;
// the pool rotates over those identifiers and the Registry resolves them to
// concrete backends. Provider calls never retry internally: failures are
// classified (see ProviderError) and the retry decision belongs to the
// extraction layer.
package llm

import (
	"context"
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    Role
	Content string
}

// Usage tracks token consumption. Informational only; retry logic never
// looks at it.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Request represents a generation request.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONObject  bool // hint the provider to answer with a JSON object
}

// Response represents the generated output.
type Response struct {
	Content string
	Model   string // model that actually served the request
	Usage   Usage
}

// Provider is the call boundary to one generation backend.
type Provider interface {
	// Generate sends a completion request and returns the generated text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the configured provider identifier.
	Name() string
}

// Embedder is implemented by providers that can embed text. Embedding
// failures are classified exactly like generation failures.
type Embedder interface {
	Embed(ctx context.Context, input string) ([]float64, error)
}

// Config holds common provider construction settings.
type Config struct {
	APIKey  string
	BaseURL string // for OpenRouter or custom endpoints
	Model   string
	Timeout time.Duration
}
