package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// HuggingFaceClient calls the Hugging Face text-generation inference API
type HuggingFaceClient struct {
	config     *Config
	httpClient *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float32 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText *string `json:"generated_text"`
}

// NewHuggingFaceClient creates a client; httpClient carries the timeout
func NewHuggingFaceClient(config *Config, httpClient *http.Client) *HuggingFaceClient {
	return &HuggingFaceClient{config: config, httpClient: httpClient}
}

// Generate posts prompt.User as the model input
func (c *HuggingFaceClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + "/" + c.config.Model
	payload := hfRequest{
		Inputs: prompt.User,
		Parameters: hfParameters{
			MaxNewTokens: c.config.MaxTokens,
			Temperature:  c.config.Temperature,
		},
	}

	body, err := postJSON(ctx, c.httpClient, ProviderHuggingFace, url, c.config.APIKey, payload)
	if err != nil {
		return "", err
	}
	return parseGeneratedText(ProviderHuggingFace, body)
}

// Provider returns ProviderHuggingFace
func (c *HuggingFaceClient) Provider() Provider {
	return ProviderHuggingFace
}

// Close is a no-op
func (c *HuggingFaceClient) Close() error {
	return nil
}

// parseGeneratedText accepts either [{"generated_text": ...}] or {"generated_text": ...}.
// Chat-shaped bodies are accepted too so any text endpoint can sit behind the URL.
func parseGeneratedText(provider Provider, body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", newRemoteError(provider, ReasonEmptyResponse, "empty body", nil)
	}

	switch trimmed[0] {
	case '[':
		var gens []hfGeneration
		if err := json.Unmarshal(body, &gens); err != nil {
			return "", newRemoteError(provider, ReasonMalformedResponse, "decoding generations", err)
		}
		if len(gens) == 0 || gens[0].GeneratedText == nil {
			return "", newRemoteError(provider, ReasonEmptyResponse, "no generated_text in response", nil)
		}
		return *gens[0].GeneratedText, nil
	case '{':
		var gen hfGeneration
		if err := json.Unmarshal(body, &gen); err != nil {
			return "", newRemoteError(provider, ReasonMalformedResponse, "decoding generation", err)
		}
		if gen.GeneratedText != nil {
			return *gen.GeneratedText, nil
		}
		return parseChatContent(provider, body)
	default:
		return "", newRemoteError(provider, ReasonMalformedResponse, "response is not JSON", nil)
	}
}
