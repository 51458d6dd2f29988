package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextGenerator(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantErr  bool
		wantType any
		model    string
	}{
		{"nil config", nil, true, nil, ""},
		{"missing key", &Config{Provider: ProviderGemini}, true, nil, ""},
		{"gemini", &Config{Provider: ProviderGemini, APIKey: "k"}, false, &OpenAIGenerator{}, "gemini-2.0-flash"},
		{"openai", &Config{Provider: ProviderOpenAI, APIKey: "k"}, false, &OpenAIGenerator{}, "gpt-4o-mini"},
		{"openai custom model", &Config{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-4o"}, false, &OpenAIGenerator{}, "gpt-4o"},
		{"anthropic", &Config{Provider: ProviderAnthropic, APIKey: "k"}, false, &AnthropicGenerator{}, "claude-3-5-haiku-latest"},
		{"unknown", &Config{Provider: "mistral", APIKey: "k"}, true, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewTextGenerator(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.wantType, gen)
			assert.Equal(t, tt.model, gen.Model())
		})
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{Provider: ProviderGemini, StatusCode: 429, Message: "quota"}

	assert.Equal(t, 429, err.HTTPStatus())
	assert.Equal(t, "gemini API request failed with status 429: quota", err.Error())
	assert.Equal(t, "anthropic API request failed with status 500", (&APIError{Provider: ProviderAnthropic, StatusCode: 500}).Error())
}

func TestAnthropicGenerator_GenerateText(t *testing.T) {
	var received messagesRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  # Title\n\nBody  "}],"usage":{"input_tokens":12,"output_tokens":34}}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(Config{APIKey: "test-key", BaseURL: srv.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		Messages:    []Message{{Role: "user", Content: "write"}},
		MaxTokens:   450,
		Temperature: 0.6,
	})
	require.NoError(t, err)

	assert.Equal(t, "# Title\n\nBody", resp.Text)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 34, resp.Usage.OutputTokens)
	assert.Equal(t, 450, received.MaxTokens)
	assert.InDelta(t, 0.6, received.Temperature, 0.001)
	assert.Equal(t, "write", received.Messages[0].Content)
}

func TestAnthropicGenerator_Defaults(t *testing.T) {
	var received messagesRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	require.NoError(t, err)

	assert.Equal(t, defaultMaxTokens, received.MaxTokens)
	assert.InDelta(t, defaultTemperature, received.Temperature, 0.001)
}

func TestAnthropicGenerator_RateLimitedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatus())
	assert.Contains(t, apiErr.Message, "slow down")
}

func TestAnthropicGenerator_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	assert.ErrorContains(t, err, "no content")
}

func TestOpenAIGenerator_GenerateText(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Ten Blog Titles"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12}
		}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{Provider: ProviderGemini, APIKey: "test-key", BaseURL: srv.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "be brief",
		Messages:     []Message{{Role: "user", Content: "titles about go"}},
		MaxTokens:    100,
		Temperature:  0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ten Blog Titles", resp.Text)
	assert.Equal(t, 5, resp.Usage.InputTokens)
	assert.Equal(t, 7, resp.Usage.OutputTokens)
	assert.Equal(t, "gemini-2.0-flash", received["model"])
	assert.EqualValues(t, 100, received["max_tokens"])

	messages, ok := received["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIGenerator_RateLimitedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Resource has been exhausted","type":"rate_limit_error","code":429}}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(Config{Provider: ProviderGemini, APIKey: "k", BaseURL: srv.URL})

	_, err := gen.GenerateText(context.Background(), TextGenerationRequest{Messages: []Message{{Role: "user", Content: "x"}}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatus())
	assert.Equal(t, ProviderGemini, apiErr.Provider)
}
