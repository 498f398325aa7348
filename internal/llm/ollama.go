package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaProvider communicates with a local Ollama instance over its plain
// HTTP API.
type OllamaProvider struct {
	baseURL string
	model   string
	name    string
	client  *http.Client
}

// NewOllamaProvider creates a new Ollama provider registered under the
// given identifier.
func NewOllamaProvider(name string, cfg Config) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	model := cfg.Model
	if model == "" {
		model = "llama3.2"
	}

	client := &http.Client{}
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}

	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		name:    name,
		client:  client,
	}, nil
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Format   string          `json:"format,omitempty"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Generate sends a completion request to Ollama.
func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := make([]ollamaMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, ollamaMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	chatReq := ollamaChatRequest{
		Model:    p.model,
		Messages: messages,
		Stream:   false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}

	// Ollama constrains output to JSON via the format field.
	if req.JSONObject {
		chatReq.Format = "json"
	}

	var chatResp ollamaChatResponse
	if err := p.post(ctx, "/api/chat", chatReq, &chatResp); err != nil {
		return nil, err
	}

	return &Response{
		Content: chatResp.Message.Content,
		Model:   chatResp.Model,
		Usage: Usage{
			InputTokens:  chatResp.PromptEvalCount,
			OutputTokens: chatResp.EvalCount,
		},
	}, nil
}

// Embed requests an embedding vector for the input text.
func (p *OllamaProvider) Embed(ctx context.Context, input string) ([]float64, error) {
	var embedResp ollamaEmbedResponse
	err := p.post(ctx, "/api/embeddings", ollamaEmbedRequest{
		Model:  p.model,
		Prompt: input,
	}, &embedResp)
	if err != nil {
		return nil, err
	}
	return embedResp.Embedding, nil
}

// Name returns the provider identifier.
func (p *OllamaProvider) Name() string {
	return p.name
}

func (p *OllamaProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return &ProviderError{Provider: p.name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return &ProviderError{
			Provider: p.name,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("ollama: %s", strings.TrimSpace(string(raw))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
