// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIModel = openai.ChatModelGPT4oMini

// openAIProvider implements Provider on the official OpenAI SDK.
type openAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates a Provider backed by the OpenAI API.
func NewOpenAIProvider(apiKey string) Provider {
	return &openAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (p *openAIProvider) ID() string { return ProviderOpenAI }

func (p *openAIProvider) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	return &ChatResponse{
		Content:     completion.Choices[0].Message.Content,
		Model:       completion.Model,
		TotalTokens: int(completion.Usage.TotalTokens),
	}, nil
}
