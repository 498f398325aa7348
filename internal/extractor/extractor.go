// Package extractor obtains a validated quote record from normalized
// document text, rotating over a pool of generation providers and retrying
// around their failures.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/orcado/orcado/internal/breaker"
	"github.com/orcado/orcado/internal/llm"
	"github.com/orcado/orcado/internal/logger"
)

// ErrAllProvidersUnavailable is returned when every provider in the pool is
// cooling down. The whole request should be retried later.
var ErrAllProvidersUnavailable = errors.New("all providers are cooling down")

// Generator dispatches a generation request to a provider by its pool
// identifier. *llm.Registry satisfies it.
type Generator interface {
	Generate(ctx context.Context, id string, req llm.Request) (*llm.Response, error)
}

// Config holds extractor settings.
type Config struct {
	MaxInputBytes int
	MaxTokens     int
	Temperature   float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxInputBytes: 48 * 1024,
		MaxTokens:     2048,
		Temperature:   0.1,
	}
}

// Option configures the extractor.
type Option func(*Config)

// WithMaxInputBytes caps the document size embedded in the prompt.
func WithMaxInputBytes(n int) Option {
	return func(c *Config) {
		c.MaxInputBytes = n
	}
}

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens(n int) Option {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTemperature sets the generation temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// Extractor runs the provider-pool extraction protocol. One extractor can
// serve concurrent documents; each Extract call is a sequential chain of
// attempts against the shared pool.
type Extractor struct {
	client Generator
	pool   *breaker.Pool
	config Config
}

// New creates a new Extractor over the given client and provider pool.
func New(client Generator, pool *breaker.Pool, opts ...Option) *Extractor {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Extractor{
		client: client,
		pool:   pool,
		config: cfg,
	}
}

// Extract obtains a validated quote record for the normalized text.
//
// At most poolSize+1 attempts are made. Transient provider failures rotate
// to the next healthy provider; a fatal provider failure or an invalid
// payload is given one extra attempt in total before surfacing. A pool with
// no healthy provider fails immediately with ErrAllProvidersUnavailable.
func (e *Extractor) Extract(ctx context.Context, text string) (*Quote, error) {
	attempts := e.pool.Size() + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		id, ok := e.pool.NextHealthy()
		if !ok {
			return nil, ErrAllProvidersUnavailable
		}

		logger.Debug("extraction attempt",
			"attempt", attempt+1,
			"max_attempts", attempts,
			"provider", id)

		resp, err := e.client.Generate(ctx, id, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: systemPrompt},
				{Role: llm.RoleUser, Content: buildUserPrompt(text, e.config.MaxInputBytes)},
			},
			MaxTokens:   e.config.MaxTokens,
			Temperature: e.config.Temperature,
			JSONObject:  true,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// The provider's responsiveness under this deadline is
				// unknown, not proven bad: consume the attempt but leave
				// the breaker alone.
				lastErr = err
				continue
			}

			e.pool.RecordFailure(id)
			lastErr = err

			if pe, ok := llm.AsProviderError(err); ok && pe.Transient() {
				logger.Warn("provider failed, rotating",
					"provider", id, "error", err)
				continue
			}
			if attempt == 0 {
				logger.Warn("provider failed",
					"provider", id, "error", err)
				continue
			}
			return nil, fmt.Errorf("provider %s: %w", id, err)
		}

		quote, err := parseQuote(resp.Content)
		if err != nil {
			// A malformed payload says nothing about provider health.
			lastErr = err
			if attempt == 0 {
				logger.Warn("invalid response payload, retrying",
					"provider", id, "error", err)
				continue
			}
			return nil, fmt.Errorf("provider %s: %w", id, err)
		}

		e.pool.RecordSuccess(id)
		quote.ModelUsed = id

		logger.Debug("extraction succeeded",
			"provider", id,
			"model", resp.Model,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens)
		return quote, nil
	}

	return nil, fmt.Errorf("extraction failed after %d attempts: %w", attempts, lastErr)
}
