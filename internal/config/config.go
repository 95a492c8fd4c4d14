// Package config provides configuration loading and validation for the CLI,
// the HTTP server and the queue worker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/jonathan/skillbyte/internal/llm"
	"github.com/jonathan/skillbyte/internal/ranking"
)

// Config is the runtime configuration. It can be loaded from a JSON file and
// overlaid with environment variables; all fields are optional.
type Config struct {
	// Remote analysis
	Provider       string `json:"provider,omitempty" validate:"omitempty,oneof=huggingface hf openai gemini"`
	Model          string `json:"model,omitempty"`
	BaseURL        string `json:"base_url,omitempty" validate:"omitempty,url"`
	APIKey         string `json:"api_key,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0,lte=300"`
	MaxPromptChars int    `json:"max_prompt_chars,omitempty" validate:"gte=0"`

	// Pipeline
	Catalog   string `json:"catalog,omitempty"` // Path to a custom keyword catalog
	MatchMode string `json:"match_mode,omitempty" validate:"omitempty,oneof=overlap eligibility"`

	// Serving
	Port    int `json:"port,omitempty" validate:"gte=0,lte=65535"`
	Workers int `json:"workers,omitempty" validate:"gte=0,lte=64"`

	// Sources and queue
	RabbitMQURL string        `json:"rabbitmq_url,omitempty" validate:"omitempty,url"`
	Storage     StorageConfig `json:"storage,omitempty"`
	UseBrowser  bool          `json:"use_browser,omitempty"` // Re-render thin pages in headless Chrome
	Verbose     bool          `json:"verbose,omitempty"`
}

// StorageConfig locates the S3-compatible bucket holding uploaded resumes.
type StorageConfig struct {
	AccountID string `json:"account_id,omitempty"` // Cloudflare R2 account
	Endpoint  string `json:"endpoint,omitempty" validate:"omitempty,url"`
	Region    string `json:"region,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" validate:"required_with=AccessKey"`
	Bucket    string `json:"bucket,omitempty"`
}

// Enabled reports whether object storage has been configured
func (s StorageConfig) Enabled() bool {
	return s.Bucket != "" || s.AccountID != "" || s.Endpoint != ""
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:  string(llm.ProviderHuggingFace),
		MatchMode: string(ranking.ModeEligibility),
		Port:      5001,
		Workers:   3,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return fmt.Errorf("config error: %s failed %q check", fieldPath(fe.Namespace()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}
	return nil
}

// fieldPath turns "Config.Storage.SecretKey" into "storage.secret_key"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snakeCase(p)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bool fields are not merged because unset cannot be told apart from false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.MatchMode == "" {
		result.MatchMode = defaults.MatchMode
	}
	if result.RabbitMQURL == "" {
		result.RabbitMQURL = defaults.RabbitMQURL
	}
	if !result.Storage.Enabled() {
		result.Storage = defaults.Storage
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.MaxPromptChars == 0 {
		result.MaxPromptChars = defaults.MaxPromptChars
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	return result
}

// LLM returns the remote provider configuration. Unset fields take the
// provider's defaults; a missing API key is read from the provider's
// environment variable.
func (c *Config) LLM() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.DefaultConfig(provider)
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	cfg.APIKey = c.APIKey
	if cfg.APIKey == "" {
		cfg.APIKey = ProviderKey(provider, os.Getenv)
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	if c.MaxPromptChars > 0 {
		cfg.MaxPromptChars = c.MaxPromptChars
	}
	return cfg, nil
}

// Mode returns the configured match mode
func (c *Config) Mode() (ranking.Mode, error) {
	if c.MatchMode == "" {
		return ranking.ModeEligibility, nil
	}
	return ranking.ParseMode(c.MatchMode)
}

// Store returns the object store configuration
func (c *Config) Store() fetch.StoreConfig {
	return fetch.StoreConfig{
		AccountID: c.Storage.AccountID,
		Endpoint:  c.Storage.Endpoint,
		Region:    c.Storage.Region,
		AccessKey: c.Storage.AccessKey,
		SecretKey: c.Storage.SecretKey,
		Bucket:    c.Storage.Bucket,
	}
}
