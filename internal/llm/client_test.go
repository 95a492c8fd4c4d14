package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHFClient(url string) *HuggingFaceClient {
	cfg := DefaultHuggingFaceConfig().WithAPIKey("hf-test")
	cfg.BaseURL = url
	return NewHuggingFaceClient(cfg, http.DefaultClient)
}

func newTestOpenAIClient(url string) *OpenAIClient {
	cfg := DefaultOpenAIConfig().WithAPIKey("sk-test")
	cfg.BaseURL = url
	return NewOpenAIClient(cfg, http.DefaultClient)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	for _, p := range []Provider{ProviderHuggingFace, ProviderOpenAI, ProviderGemini} {
		_, err := NewClient(context.Background(), DefaultConfig(p))
		require.Error(t, err)

		var re *RemoteError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, ReasonMissingCredentials, re.Reason)
		assert.ErrorIs(t, err, ErrRemoteUnavailable)
	}
}

func TestNewClient_Providers(t *testing.T) {
	c, err := NewClient(context.Background(), DefaultHuggingFaceConfig().WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, ProviderHuggingFace, c.Provider())

	c, err = NewClient(context.Background(), DefaultOpenAIConfig().WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Provider())

	_, err = NewClient(context.Background(), DefaultConfig("anthropic").WithAPIKey("k"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRemoteUnavailable)
}

func TestHuggingFace_ArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gpt2", r.URL.Path)
		assert.Equal(t, "Bearer hf-test", r.Header.Get("Authorization"))

		var req hfRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "analyze me", req.Inputs)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text":"Add metrics to your bullets."}]`))
	}))
	defer server.Close()

	out, err := newTestHFClient(server.URL).Generate(context.Background(), Prompt{User: "analyze me"})
	require.NoError(t, err)
	assert.Equal(t, "Add metrics to your bullets.", out)
}

func TestHuggingFace_ObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generated_text":"Looks good."}`))
	}))
	defer server.Close()

	out, err := newTestHFClient(server.URL).Generate(context.Background(), Prompt{User: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Looks good.", out)
}

func TestHuggingFace_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason Reason
	}{
		{"non-2xx", http.StatusServiceUnavailable, `{"error":"Model gpt2 is currently loading"}`, ReasonHTTPStatus},
		{"malformed", http.StatusOK, `[{"generated_text": 12}]`, ReasonMalformedResponse},
		{"not json", http.StatusOK, `hello`, ReasonMalformedResponse},
		{"empty array", http.StatusOK, `[]`, ReasonEmptyResponse},
		{"no known field", http.StatusOK, `{"something":"else"}`, ReasonEmptyResponse},
		{"empty body", http.StatusOK, ``, ReasonEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestHFClient(server.URL).Generate(context.Background(), Prompt{User: "x"})
			require.Error(t, err)

			var re *RemoteError
			require.True(t, errors.As(err, &re), "got %T", err)
			assert.Equal(t, tt.reason, re.Reason)
			if tt.reason == ReasonHTTPStatus {
				assert.Equal(t, tt.status, re.StatusCode)
			}
		})
	}
}

func TestHuggingFace_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestHFClient(url).Generate(context.Background(), Prompt{User: "x"})
	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, ReasonNetwork, re.Reason)
}

func TestOpenAI_ChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req chatRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 700, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"EXPERIENCE LEVEL: Beginner"}}]}`))
	}))
	defer server.Close()

	out, err := newTestOpenAIClient(server.URL).Generate(context.Background(), Prompt{System: "sys", User: "resume"})
	require.NoError(t, err)
	assert.Equal(t, "EXPERIENCE LEVEL: Beginner", out)
}

func TestOpenAI_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason Reason
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, ReasonHTTPStatus},
		{"no choices", http.StatusOK, `{"choices":[]}`, ReasonEmptyResponse},
		{"no message", http.StatusOK, `{"choices":[{}]}`, ReasonEmptyResponse},
		{"garbage", http.StatusOK, `{"choices":`, ReasonMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestOpenAIClient(server.URL).Generate(context.Background(), Prompt{User: "x"})
			var re *RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.reason, re.Reason)
		})
	}
}

func TestParseGeneratedText_AcceptsChatShape(t *testing.T) {
	out, err := parseGeneratedText(ProviderHuggingFace, []byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}
