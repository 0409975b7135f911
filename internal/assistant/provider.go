// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import "context"

// ChatRequest is a provider-neutral completion request.
type ChatRequest struct {
	System string
	User   string
}

// ChatResponse is a provider-neutral completion result.
type ChatResponse struct {
	Content     string
	Model       string
	TotalTokens int
}

// Provider performs one chat completion against a hosted model.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// Provider ids.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)
