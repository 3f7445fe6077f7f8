package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/core"
)

func TestAnthropicComplete(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		System    string `json:"system"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hello "},{"type":"tool_use","text":"ignored"},{"type":"text","text":"there"}]}`)
	}))
	defer server.Close()

	a := NewAnthropic("secret", "claude-test")
	a.baseURL = server.URL

	reply, err := a.Complete(context.Background(), "be helpful", "question", 1500)
	require.NoError(t, err)

	assert.Equal(t, "Hello there", reply)
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, 1500, got.MaxTokens)
	assert.Equal(t, "be helpful", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "question", got.Messages[0].Content)
}

func TestAnthropicCompleteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"type":"authentication_error"}}`)
	}))
	defer server.Close()

	a := NewAnthropic("bad", "claude-test")
	a.baseURL = server.URL

	_, err := a.Complete(context.Background(), "", "question", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 401")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Body, "authentication_error")
}

func TestRequestHeaders(t *testing.T) {
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		fmt.Fprint(w, `{"content":[{"type":"text","text":"ok"}]}`)
	}))
	defer server.Close()

	a := NewAnthropic("secret", "claude-test")
	a.baseURL = server.URL

	_, err := a.Complete(context.Background(), "", "question", 10)
	require.NoError(t, err)
	assert.Equal(t, core.BotUserAgent, headers.Get("User-Agent"))
	assert.Equal(t, "application/json", headers.Get("Accept"))
}

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want time.Duration
	}{
		{"default", nil, DefaultTimeout},
		{"configured", []Option{WithTimeout(5 * time.Second)}, 5 * time.Second},
		{"zero keeps default", []Option{WithTimeout(0)}, DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOllama("http://localhost:11434", "", "llama3", tt.opts...)
			assert.Equal(t, tt.want, o.client.Timeout)
		})
	}
}

func TestCompleteHonorsTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	o := NewCustomOpenAI(server.URL, "", "m", WithTimeout(50*time.Millisecond))

	_, err := o.Complete(context.Background(), "", "hello", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request:")
}

func TestNewProviderTimeoutFromConfig(t *testing.T) {
	p, err := NewProvider(context.Background(), &config.ProviderConfig{
		Provider:        config.ProviderAnthropic,
		AnthropicAPIKey: "k",
		Timeout:         30 * time.Second,
	})
	require.NoError(t, err)

	a, ok := p.(*Anthropic)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, a.client.Timeout)
}

func TestOpenAICompatibleComplete(t *testing.T) {
	var got struct {
		Model     string        `json:"model"`
		MaxTokens int           `json:"max_tokens"`
		Messages  []chatMessage `json:"messages"`
	}
	var headers http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"hi"}}]}`)
	}))
	defer server.Close()

	o := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:      server.URL,
		APIKey:       "key",
		Model:        "gpt-test",
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"X-Title": core.BotName},
	})

	reply, err := o.Complete(context.Background(), "system text", "user text", 200)
	require.NoError(t, err)

	assert.Equal(t, "hi", reply)
	assert.Equal(t, "Bearer key", headers.Get("Authorization"))
	assert.Equal(t, core.BotName, headers.Get("X-Title"))
	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 200, got.MaxTokens)
	assert.Equal(t, []chatMessage{
		{Role: "system", Content: "system text"},
		{Role: "user", Content: "user text"},
	}, got.Messages)
}

func TestOpenAICompatibleCompleteFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusBadRequest, `{"error":{"message":"bad"}}`, "http 400"},
		{"empty choices", http.StatusOK, `{"choices":[]}`, "empty choices"},
		{"invalid json", http.StatusOK, `not json`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			o := NewCustomOpenAI(server.URL+"/", "", "m")

			_, err := o.Complete(context.Background(), "", "hello", 10)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAICompatibleNoAuthWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"local"}}]}`)
	}))
	defer server.Close()

	o := NewOllama(server.URL, "", "llama3")

	reply, err := o.Complete(context.Background(), "", "hello", 10)
	require.NoError(t, err)
	assert.Equal(t, "local", reply)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ProviderConfig
		want    any
		wantErr error
	}{
		{
			name: "anthropic",
			cfg:  config.ProviderConfig{Provider: config.ProviderAnthropic, AnthropicAltKey: "k"},
			want: &Anthropic{},
		},
		{
			name: "openai",
			cfg:  config.ProviderConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "k"},
			want: &OpenAI{},
		},
		{
			name: "openrouter",
			cfg:  config.ProviderConfig{Provider: config.ProviderOpenRouter, OpenRouterAPIKey: "k"},
			want: &OpenRouter{},
		},
		{
			name: "ollama",
			cfg:  config.ProviderConfig{Provider: config.ProviderOllama, OllamaBaseURL: "http://localhost:11434"},
			want: &Ollama{},
		},
		{
			name: "custom",
			cfg:  config.ProviderConfig{Provider: config.ProviderCustom, CustomOpenAIBaseURL: "http://example.test"},
			want: &CustomOpenAI{},
		},
		{
			name:    "missing key",
			cfg:     config.ProviderConfig{Provider: config.ProviderAnthropic},
			wantErr: ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), &tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(context.Background(), &config.ProviderConfig{Provider: "gemini"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "unknown llm provider")
}
