// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel   = "gemini-2.0-flash"

	httpTimeout = 120 * time.Second
)

// geminiProvider implements Provider for Google Gemini.
type geminiProvider struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGeminiProvider creates a Provider backed by the Gemini API.
func NewGeminiProvider(apiKey string) Provider {
	return &geminiProvider{
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: httpTimeout},
	}
}

func (p *geminiProvider) ID() string { return ProviderGemini }

func (p *geminiProvider) Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": req.User}},
			},
		},
	}
	if req.System != "" {
		body["system_instruction"] = map[string]any{
			"parts": []map[string]string{{"text": req.System}},
		}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, geminiModel)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		UsageMetadata struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
		ModelVersion string `json:"modelVersion"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("gemini decode: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no candidates returned")
	}

	model := result.ModelVersion
	if model == "" {
		model = geminiModel
	}
	return &ChatResponse{
		Content:     result.Candidates[0].Content.Parts[0].Text,
		Model:       model,
		TotalTokens: result.UsageMetadata.TotalTokenCount,
	}, nil
}
