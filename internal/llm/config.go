// Package llm talks to remote text-generation providers and turns their output
// into optional resume feedback. Every failure is reported as a *RemoteError so
// callers can fall back to locally composed feedback.
package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider represents a remote text-generation provider
type Provider string

// Provider constants define supported providers
const (
	// ProviderHuggingFace is the Hugging Face inference API (text generation)
	ProviderHuggingFace Provider = "huggingface"
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is Google Gemini through the generative-ai SDK
	ProviderGemini Provider = "gemini"
)

// DefaultTimeout bounds a single remote call
const DefaultTimeout = 20 * time.Second

// Config holds the settings for one provider
type Config struct {
	Provider Provider
	Model    string
	// BaseURL overrides the provider endpoint; ignored by Gemini
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// MaxPromptChars is the longest resume prefix sent to the provider
	MaxPromptChars int
	Temperature    float32
	MaxTokens      int
}

// ParseProvider converts a provider name
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderHuggingFace, ProviderOpenAI, ProviderGemini:
		return p, nil
	case "hf":
		return ProviderHuggingFace, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

// DefaultConfig returns the defaults for provider. Unknown providers get the
// Hugging Face defaults with the provider name kept, so NewClient can reject it.
func DefaultConfig(provider Provider) *Config {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIConfig()
	case ProviderGemini:
		return DefaultGeminiConfig()
	case ProviderHuggingFace:
		return DefaultHuggingFaceConfig()
	default:
		cfg := DefaultHuggingFaceConfig()
		cfg.Provider = provider
		return cfg
	}
}

// DefaultHuggingFaceConfig returns the default Hugging Face configuration
func DefaultHuggingFaceConfig() *Config {
	return &Config{
		Provider:       ProviderHuggingFace,
		Model:          "gpt2",
		BaseURL:        "https://api-inference.huggingface.co/models",
		Timeout:        DefaultTimeout,
		MaxPromptChars: 1000,
		Temperature:    0.7,
		MaxTokens:      250,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		Model:          "gpt-4o-mini",
		BaseURL:        "https://api.openai.com/v1",
		Timeout:        DefaultTimeout,
		MaxPromptChars: 3500,
		Temperature:    0.7,
		MaxTokens:      700,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		Model:          "gemini-2.5-flash",
		Timeout:        DefaultTimeout,
		MaxPromptChars: 3500,
		Temperature:    0.7,
		MaxTokens:      700,
	}
}

// WithAPIKey returns a copy of the config using key
func (c *Config) WithAPIKey(key string) *Config {
	cp := *c
	cp.APIKey = key
	return &cp
}

// WithModel returns a copy of the config using model
func (c *Config) WithModel(model string) *Config {
	cp := *c
	cp.Model = model
	return &cp
}

// Truncate returns the first MaxPromptChars characters of text. A non-positive
// limit disables truncation.
func (c *Config) Truncate(text string) string {
	if c.MaxPromptChars <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == c.MaxPromptChars {
			return text[:i]
		}
		n++
	}
	return text
}
