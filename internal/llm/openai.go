package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	defaultGeminiModel  = "gemini-2.0-flash"
	defaultOpenAIModel  = "gpt-4o-mini"
)

// chat completions over the OpenAI wire format; Gemini is reached through its compatible endpoint
type OpenAIGenerator struct {
	client   *openai.Client
	provider Provider
	model    string
	limiter  *rate.Limiter
}

func NewOpenAIGenerator(config Config) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(config.APIKey)

	provider := config.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	model := config.Model

	switch {
	case config.BaseURL != "":
		clientCfg.BaseURL = config.BaseURL
	case provider == ProviderGemini:
		clientCfg.BaseURL = geminiOpenAIBaseURL
	}

	if model == "" {
		model = defaultOpenAIModel
		if provider == ProviderGemini {
			model = defaultGeminiModel
		}
	}

	return &OpenAIGenerator{
		client:   openai.NewClientWithConfig(clientCfg),
		provider: provider,
		model:    model,
		limiter:  rate.NewLimiter(20, 5),
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, g.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// maps client errors to APIError so the upstream status survives wrapping
func (g *OpenAIGenerator) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Provider: g.provider, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{Provider: g.provider, StatusCode: reqErr.HTTPStatusCode, Message: strings.TrimSpace(string(reqErr.Body))}
	}

	return fmt.Errorf("failed to send request: %w", err)
}
