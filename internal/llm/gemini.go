package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the Google Gemini LLM client.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Name returns the provider name.
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Close releases the underlying gRPC connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Complete sends a completion request. System messages become the model's
// system instruction; remaining turns are joined into one prompt.
func (c *GeminiClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	name := req.Model
	if name == "" {
		name = "gemini-1.5-flash"
	}

	gm := c.client.GenerativeModel(name)
	gm.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		gm.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSONOnly {
		// Force JSON output for structured parsing.
		gm.ResponseMIMEType = "application/json"
	}

	var system, prompt strings.Builder
	for _, msg := range req.Messages {
		if msg.Role == "system" {
			system.WriteString(msg.Content)
			system.WriteString("\n")
			continue
		}
		fmt.Fprintf(&prompt, "%s: %s\n", msg.Role, msg.Content)
	}
	if system.Len() > 0 {
		gm.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system.String())},
		}
	}

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no response candidates from Gemini")
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content.WriteString(string(txt))
		}
	}

	var tokensIn, tokensOut int
	if resp.UsageMetadata != nil {
		tokensIn = int(resp.UsageMetadata.PromptTokenCount)
		tokensOut = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &CompletionResponse{
		Content:    content.String(),
		Model:      name,
		TokensIn:   tokensIn,
		TokensOut:  tokensOut,
		StopReason: resp.Candidates[0].FinishReason.String(),
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}
