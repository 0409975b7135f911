// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caraiagency/salon-cms/internal/model"
)

// ErrNoProviders is returned when no AI provider is configured.
var ErrNoProviders = errors.New("assistant: no providers configured")

// Result is a generated draft.
type Result struct {
	Content  string `json:"content"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Tokens   int    `json:"tokens,omitempty"`
}

// Service generates drafts, trying providers in configured order and
// falling over to the next one on failure.
type Service struct {
	providers []Provider
	logger    *slog.Logger
}

// NewService creates a Service over the given providers, tried in order.
func NewService(logger *slog.Logger, providers ...Provider) *Service {
	return &Service{providers: providers, logger: logger}
}

// Enabled reports whether at least one provider is configured.
func (s *Service) Enabled() bool {
	return len(s.providers) > 0
}

// Generate produces a draft for the given input.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if len(s.providers) == 0 {
		return nil, ErrNoProviders
	}

	req := ChatRequest{
		System: systemPrompt(in.Task),
		User:   userPrompt(in),
	}

	var lastErr error
	for _, p := range s.providers {
		resp, err := p.Complete(ctx, req)
		if err != nil {
			lastErr = err
			s.logger.Warn("assistant provider failed",
				"category", model.EventCategoryAssistant,
				"provider", p.ID(),
				"task", string(in.Task),
				"error", err.Error())
			continue
		}
		return &Result{
			Content:  resp.Content,
			Provider: p.ID(),
			Model:    resp.Model,
			Tokens:   resp.TotalTokens,
		}, nil
	}
	return nil, fmt.Errorf("assistant: all providers failed: %w", lastErr)
}
