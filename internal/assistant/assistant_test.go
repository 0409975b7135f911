// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/caraiagency/salon-cms/internal/testutil"
)

type fakeProvider struct {
	id    string
	resp  *ChatResponse
	err   error
	calls int
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Complete(_ context.Context, _ ChatRequest) (*ChatResponse, error) {
	f.calls++
	return f.resp, f.err
}

func TestParseTask(t *testing.T) {
	tests := []struct {
		input   string
		want    Task
		wantErr bool
	}{
		{"social", TaskSocial, false},
		{"creative_blog", TaskCreativeBlog, false},
		{"strategy", TaskStrategy, false},
		{"rewrite", TaskRewrite, false},
		{" Social ", TaskSocial, false},
		{"blog", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTask(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTask(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTask(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      GenerateInput
		wantErr bool
	}{
		{"social with topic", GenerateInput{Task: TaskSocial, Topic: "spring braids"}, false},
		{"social without topic", GenerateInput{Task: TaskSocial}, true},
		{"rewrite with text", GenerateInput{Task: TaskRewrite, Text: "old copy"}, false},
		{"rewrite without text", GenerateInput{Task: TaskRewrite, Topic: "x"}, true},
		{"unknown task", GenerateInput{Task: "poem", Topic: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.in.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserPrompt(t *testing.T) {
	social := userPrompt(GenerateInput{Task: TaskSocial, Topic: "knotless braids", Tone: "playful"})
	if !strings.Contains(social, "knotless braids") || !strings.Contains(social, "playful") {
		t.Errorf("social prompt missing input: %q", social)
	}

	rewrite := userPrompt(GenerateInput{Task: TaskRewrite, Text: "our prices are cheap"})
	if !strings.Contains(rewrite, "our prices are cheap") {
		t.Errorf("rewrite prompt missing source text: %q", rewrite)
	}
}

func TestSystemPrompt_PerTask(t *testing.T) {
	seen := make(map[string]Task)
	for _, task := range []Task{TaskSocial, TaskCreativeBlog, TaskStrategy, TaskRewrite} {
		p := systemPrompt(task)
		if !strings.Contains(p, "Perry D Beauty Studio") {
			t.Errorf("systemPrompt(%s) lacks brand context", task)
		}
		if prev, ok := seen[p]; ok {
			t.Errorf("systemPrompt(%s) identical to systemPrompt(%s)", task, prev)
		}
		seen[p] = task
	}
}

func TestGenerate_FirstProviderWins(t *testing.T) {
	primary := &fakeProvider{id: "openai", resp: &ChatResponse{Content: "draft", Model: "gpt-4o-mini", TotalTokens: 42}}
	secondary := &fakeProvider{id: "gemini", resp: &ChatResponse{Content: "other"}}
	svc := NewService(testutil.TestLogger(), primary, secondary)

	result, err := svc.Generate(context.Background(), GenerateInput{Task: TaskSocial, Topic: "bridal looks"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Content != "draft" || result.Provider != "openai" || result.Tokens != 42 {
		t.Errorf("unexpected result: %+v", result)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary provider called %d times, want 0", secondary.calls)
	}
}

func TestGenerate_FallsOverOnProviderError(t *testing.T) {
	primary := &fakeProvider{id: "openai", err: errors.New("quota exceeded")}
	secondary := &fakeProvider{id: "gemini", resp: &ChatResponse{Content: "draft", Model: "gemini-2.0-flash"}}
	svc := NewService(testutil.TestLogger(), primary, secondary)

	result, err := svc.Generate(context.Background(), GenerateInput{Task: TaskStrategy, Topic: "fall campaign"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", result.Provider)
	}
}

func TestGenerate_AllProvidersFail(t *testing.T) {
	failing := errors.New("unavailable")
	svc := NewService(testutil.TestLogger(),
		&fakeProvider{id: "openai", err: failing},
		&fakeProvider{id: "gemini", err: failing},
	)

	_, err := svc.Generate(context.Background(), GenerateInput{Task: TaskSocial, Topic: "x"})
	if !errors.Is(err, failing) {
		t.Errorf("Generate() error = %v, want wrapped provider error", err)
	}
}

func TestGenerate_NoProviders(t *testing.T) {
	svc := NewService(testutil.TestLogger())
	if _, err := svc.Generate(context.Background(), GenerateInput{Task: TaskSocial, Topic: "x"}); !errors.Is(err, ErrNoProviders) {
		t.Errorf("Generate() error = %v, want ErrNoProviders", err)
	}
}

func TestGenerate_InvalidInputDoesNotCallProviders(t *testing.T) {
	p := &fakeProvider{id: "openai", resp: &ChatResponse{Content: "draft"}}
	svc := NewService(testutil.TestLogger(), p)

	if _, err := svc.Generate(context.Background(), GenerateInput{Task: TaskSocial}); err == nil {
		t.Fatal("Generate() expected validation error")
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times for invalid input, want 0", p.calls)
	}
}
