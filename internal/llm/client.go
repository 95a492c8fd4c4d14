package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Prompt is the input for one generation call. Text-generation providers only
// see User; chat providers send System as the system message.
type Prompt struct {
	System string
	User   string
}

// Client is an abstraction over remote providers
type Client interface {
	// Generate returns the generated text for prompt
	Generate(ctx context.Context, prompt Prompt) (string, error)
	// Provider identifies the backing provider
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for config.Provider. A missing API key is reported
// as a *RemoteError with ReasonMissingCredentials.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultHuggingFaceConfig()
	}
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, newRemoteError(config.Provider, ReasonMissingCredentials, "no API key configured", nil)
	}

	switch config.Provider {
	case ProviderHuggingFace:
		return NewHuggingFaceClient(config, &http.Client{Timeout: config.Timeout}), nil
	case ProviderOpenAI:
		return NewOpenAIClient(config, &http.Client{Timeout: config.Timeout}), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, newRemoteError(ProviderGemini, ReasonMissingCredentials, "no API key configured", nil)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// Generate sends the prompt to the configured Gemini model
func (c *GeminiClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)
	if c.config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.config.MaxTokens))
	}
	if prompt.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(prompt.System))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", newRemoteError(ProviderGemini, ReasonNetwork, "generate content failed", err)
	}
	return extractTextFromResponse(resp)
}

// Provider returns ProviderGemini
func (c *GeminiClient) Provider() Provider {
	return ProviderGemini
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", newRemoteError(ProviderGemini, ReasonMalformedResponse, "no candidates in response", nil)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", newRemoteError(ProviderGemini, ReasonEmptyResponse, "no content in response", nil)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", newRemoteError(ProviderGemini, ReasonEmptyResponse, "no text parts in response", nil)
	}
	return strings.Join(parts, ""), nil
}
