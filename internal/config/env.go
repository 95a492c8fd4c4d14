package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/skillbyte/internal/llm"
)

// Environment variables read by ApplyEnv.
const (
	EnvProvider       = "SKILLBYTE_PROVIDER"
	EnvModel          = "SKILLBYTE_MODEL"
	EnvBaseURL        = "SKILLBYTE_BASE_URL"
	EnvTimeout        = "SKILLBYTE_TIMEOUT"
	EnvMaxPromptChars = "SKILLBYTE_MAX_PROMPT_CHARS"
	EnvCatalog        = "SKILLBYTE_CATALOG"
	EnvMatchMode      = "SKILLBYTE_MATCH_MODE"
	EnvUseBrowser     = "SKILLBYTE_USE_BROWSER"
	EnvPort           = "PORT"
	EnvWorkers        = "SKILLBYTE_WORKERS"
	EnvRabbitMQURL    = "RABBITMQ_URL"

	EnvS3AccountID = "S3_ACCOUNT_ID"
	EnvS3Endpoint  = "S3_ENDPOINT"
	EnvS3Region    = "S3_REGION"
	EnvS3AccessKey = "S3_ACCESS_KEY_ID"
	EnvS3SecretKey = "S3_SECRET_ACCESS_KEY"
	EnvS3Bucket    = "S3_BUCKET"
)

// providerKeys lists the API key variables per provider, first match wins
var providerKeys = map[llm.Provider][]string{
	llm.ProviderHuggingFace: {"HUGGINGFACE_API_KEY", "HF_API_KEY"},
	llm.ProviderOpenAI:      {"OPENAI_API_KEY"},
	llm.ProviderGemini:      {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// ProviderKey returns the API key for provider from the environment
func ProviderKey(provider llm.Provider, getenv func(string) string) string {
	for _, key := range providerKeys[provider] {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// ApplyEnv overlays set environment variables onto c. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}

	str(EnvProvider, &c.Provider)
	str(EnvModel, &c.Model)
	str(EnvBaseURL, &c.BaseURL)
	str(EnvCatalog, &c.Catalog)
	str(EnvMatchMode, &c.MatchMode)
	str(EnvRabbitMQURL, &c.RabbitMQURL)

	str(EnvS3AccountID, &c.Storage.AccountID)
	str(EnvS3Endpoint, &c.Storage.Endpoint)
	str(EnvS3Region, &c.Storage.Region)
	str(EnvS3AccessKey, &c.Storage.AccessKey)
	str(EnvS3SecretKey, &c.Storage.SecretKey)
	str(EnvS3Bucket, &c.Storage.Bucket)

	if v := strings.TrimSpace(getenv(EnvTimeout)); v != "" {
		seconds, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.TimeoutSeconds = seconds
	}
	if v := strings.TrimSpace(getenv(EnvUseBrowser)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvUseBrowser, v, err)
		}
		c.UseBrowser = b
	}

	for key, dst := range map[string]*int{
		EnvMaxPromptChars: &c.MaxPromptChars,
		EnvPort:           &c.Port,
		EnvWorkers:        &c.Workers,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// parseSeconds accepts "20" or a Go duration such as "20s" or "1m"
func parseSeconds(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	return int(d.Seconds()), nil
}
