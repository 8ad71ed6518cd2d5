package analysis

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/luminamente/anima/internal/config"
)

// Generation parameters for the report analysis.
const (
	analysisTemperature = 0.7
	analysisMaxTokens   = 1000
)

// OpenAIProvider implements Provider using the OpenAI SDK. Perplexity
// and other OpenAI-compatible APIs are reached via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider from the analysis config.
func NewOpenAIProvider(cfg config.Analysis) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("analysis API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultAnalysisModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}
