package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	config     *Config
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates a client; httpClient carries the timeout
func NewOpenAIClient(config *Config, httpClient *http.Client) *OpenAIClient {
	return &OpenAIClient{config: config, httpClient: httpClient}
}

// Generate sends a system and a user message and returns the first choice
func (c *OpenAIClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: prompt.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt.User})

	payload := chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	body, err := postJSON(ctx, c.httpClient, ProviderOpenAI, url, c.config.APIKey, payload)
	if err != nil {
		return "", err
	}
	return parseChatContent(ProviderOpenAI, body)
}

// Provider returns ProviderOpenAI
func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

// Close is a no-op
func (c *OpenAIClient) Close() error {
	return nil
}

// parseChatContent extracts choices[0].message.content
func parseChatContent(provider Provider, body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", newRemoteError(provider, ReasonMalformedResponse, "decoding chat response", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", newRemoteError(provider, ReasonEmptyResponse, "no generated_text or choices[0].message.content in response", nil)
	}
	return *resp.Choices[0].Message.Content, nil
}
