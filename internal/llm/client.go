// Package llm provides LLM client interfaces and implementations.
package llm

import (
	"context"
	"errors"
	"time"
)

// ChatMessage represents a chat message for the model conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents a completion request.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
	// JSONOnly asks the provider for a JSON-object response where the
	// provider supports forcing it; otherwise the prompt contract applies.
	JSONOnly bool
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for LLM providers. One blocking call per request;
// no streaming, no retries.
type Client interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string

	// Close releases any resources held by the client. Clients are built
	// per request, so callers must close them when the request is done.
	Close() error
}

// Provider is the type of LLM provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ErrNoCredentials signals that no API key was available for any provider.
var ErrNoCredentials = errors.New("no model API key provided")

// Credentials holds the per-provider API keys available to a request.
type Credentials struct {
	OpenAI    string
	Anthropic string
	Gemini    string
}

// Factory builds a provider client for a request. It exists so the
// orchestrator and planner can be tested against a fake model.
type Factory func(ctx context.Context, creds Credentials) (Client, error)

// NewClient creates a client for the given provider.
func NewClient(ctx context.Context, provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey)
	default:
		return NewOpenAIClient(apiKey)
	}
}

// NewFactory returns a Factory that prefers the given provider when its key
// is present and otherwise falls back to the first provider with a key, in
// the order openai, anthropic, gemini.
func NewFactory(preferred Provider) Factory {
	return func(ctx context.Context, creds Credentials) (Client, error) {
		provider, key, err := resolve(creds, preferred)
		if err != nil {
			return nil, err
		}
		return NewClient(ctx, provider, key)
	}
}

// WithTimeout decorates a Factory so every completion call is bounded by the
// given timeout. A non-positive timeout leaves the factory unchanged.
func WithTimeout(factory Factory, timeout time.Duration) Factory {
	if timeout <= 0 {
		return factory
	}
	return func(ctx context.Context, creds Credentials) (Client, error) {
		client, err := factory(ctx, creds)
		if err != nil {
			return nil, err
		}
		return &timeoutClient{Client: client, timeout: timeout}, nil
	}
}

type timeoutClient struct {
	Client
	timeout time.Duration
}

func (c *timeoutClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.Client.Complete(ctx, req)
}

func resolve(creds Credentials, preferred Provider) (Provider, string, error) {
	byProvider := map[Provider]string{
		ProviderOpenAI:    creds.OpenAI,
		ProviderAnthropic: creds.Anthropic,
		ProviderGemini:    creds.Gemini,
	}
	if key := byProvider[preferred]; key != "" {
		return preferred, key, nil
	}
	for _, p := range []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		if byProvider[p] != "" {
			return p, byProvider[p], nil
		}
	}
	return "", "", ErrNoCredentials
}
