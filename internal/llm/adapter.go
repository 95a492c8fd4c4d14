package llm

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jonathan/skillbyte/internal/prompts"
)

// Result is the outcome of a remote enrichment. Exactly one of Feedback and Err is set.
type Result struct {
	Feedback string       `json:"feedback,omitempty"`
	Err      *RemoteError `json:"error,omitempty"`
}

// OK reports whether the remote call produced feedback
func (r Result) OK() bool {
	return r.Err == nil && r.Feedback != ""
}

// Adapter turns resume text into remote feedback and never returns a bare error
type Adapter struct {
	client  Client
	config  *Config
	initErr *RemoteError

	instruction string
	system      string
	user        string
}

// NewAdapter wraps an existing client. A nil client makes every Enrich call
// fail with ReasonMissingCredentials.
func NewAdapter(client Client, config *Config) *Adapter {
	if config == nil {
		config = DefaultHuggingFaceConfig()
	}
	if config.Timeout <= 0 {
		cp := *config
		cp.Timeout = DefaultTimeout
		config = &cp
	}
	return &Adapter{
		client:      client,
		config:      config,
		instruction: prompts.MustGet(prompts.AnalysisFile, prompts.KeyHuggingFaceInstruction),
		system:      prompts.MustGet(prompts.AnalysisFile, prompts.KeyChatSystem),
		user:        prompts.MustGet(prompts.AnalysisFile, prompts.KeyChatUser),
	}
}

// NewAdapterFromConfig builds the client for config. Missing credentials are not
// an error here: the adapter is returned and reports the failure on each call, so
// the caller falls back to local feedback. Other construction errors are returned.
func NewAdapterFromConfig(ctx context.Context, config *Config) (*Adapter, error) {
	client, err := NewClient(ctx, config)
	if err != nil {
		var re *RemoteError
		if !errors.As(err, &re) {
			return nil, err
		}
		a := NewAdapter(nil, config)
		a.initErr = re
		return a, nil
	}
	return NewAdapter(client, config), nil
}

// Provider returns the configured provider
func (a *Adapter) Provider() Provider {
	return a.config.Provider
}

// Enrich sends the truncated text to the provider within the configured timeout.
// It makes a single attempt.
func (a *Adapter) Enrich(ctx context.Context, text string) Result {
	provider := a.config.Provider
	if a.initErr != nil {
		return Result{Err: a.initErr}
	}
	if a.client == nil {
		return Result{Err: newRemoteError(provider, ReasonMissingCredentials, "no API key configured", nil)}
	}

	prompt := a.buildPrompt(a.config.Truncate(text))

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	log.Printf("[llm] requesting %s feedback (model=%s, chars=%d)", provider, a.config.Model, len(prompt.User))
	out, err := a.client.Generate(ctx, prompt)
	if err != nil {
		re := asRemoteError(provider, err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && re.Reason == ReasonNetwork {
			re.Message = "timed out after " + a.config.Timeout.String()
		}
		log.Printf("[llm] %s unavailable: %v", provider, re)
		return Result{Err: re}
	}

	feedback := CleanResponse(out)
	if feedback == "" {
		re := newRemoteError(provider, ReasonEmptyResponse, "provider returned blank text", nil)
		log.Printf("[llm] %s unavailable: %v", provider, re)
		return Result{Err: re}
	}
	return Result{Feedback: feedback}
}

// Close releases the client
func (a *Adapter) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

func (a *Adapter) buildPrompt(resume string) Prompt {
	data := map[string]string{"Resume": resume}
	if a.config.Provider == ProviderHuggingFace {
		return Prompt{User: prompts.Format(a.instruction, data)}
	}
	return Prompt{
		System: a.system,
		User:   prompts.Format(a.user, data),
	}
}

// Usable reports whether the adapter has a client. Callers use it to skip the
// remote step entirely when no provider is configured.
func (a *Adapter) Usable() bool {
	return a != nil && a.client != nil && a.initErr == nil && strings.TrimSpace(string(a.config.Provider)) != ""
}
