package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Factory creates a provider registered under an opaque identifier.
type Factory func(name string, cfg Config) (Provider, error)

var factories = map[string]Factory{
	"openai": func(name string, cfg Config) (Provider, error) {
		return NewOpenAIProvider(name, cfg)
	},
	"openrouter": func(name string, cfg Config) (Provider, error) {
		// OpenRouter speaks the OpenAI API.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://openrouter.ai/api/v1"
		}
		return NewOpenAIProvider(name, cfg)
	},
	"anthropic": func(name string, cfg Config) (Provider, error) {
		return NewAnthropicProvider(name, cfg)
	},
	"ollama": func(name string, cfg Config) (Provider, error) {
		return NewOllamaProvider(name, cfg)
	},
}

// NewProvider builds a provider of the given backend type ("openai",
// "openrouter", "anthropic", "ollama") registered under name.
func NewProvider(backend, name string, cfg Config) (Provider, error) {
	factory, ok := factories[backend]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %s (available: anthropic, openai, openrouter, ollama)", backend)
	}
	return factory(name, cfg)
}

// Registry resolves opaque provider identifiers to constructed backends.
// It is the process-wide provider client: built once at startup, read-only
// afterwards, shared by every extraction.
type Registry struct {
	providers map[string]Provider
	limiters  map[string]*rate.Limiter
	ids       []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Register adds a provider under its identifier. A positive rpm installs a
// client-side requests-per-minute throttle for that provider.
func (r *Registry) Register(id string, p Provider, rpm int) {
	if _, exists := r.providers[id]; !exists {
		r.ids = append(r.ids, id)
	}
	r.providers[id] = p
	if rpm > 0 {
		r.limiters[id] = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	} else {
		delete(r.limiters, id)
	}
}

// IDs returns the provider identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Generate dispatches a generation request to the identified provider.
func (r *Registry) Generate(ctx context.Context, id string, req Request) (*Response, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", id)
	}
	if err := r.wait(ctx, id); err != nil {
		return nil, err
	}
	return p.Generate(ctx, req)
}

// Embed dispatches an embedding request to the identified provider. Not
// every backend supports embeddings.
func (r *Registry) Embed(ctx context.Context, id string, input string) ([]float64, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", id)
	}
	emb, ok := p.(Embedder)
	if !ok {
		return nil, fmt.Errorf("provider %s does not support embeddings", id)
	}
	if err := r.wait(ctx, id); err != nil {
		return nil, err
	}
	return emb.Embed(ctx, input)
}

func (r *Registry) wait(ctx context.Context, id string) error {
	lim, ok := r.limiters[id]
	if !ok {
		return nil
	}
	return lim.Wait(ctx)
}
