// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assistant generates marketing copy drafts for the studio via
// hosted AI providers. Output is always a draft for an editor to review,
// never published directly.
package assistant

import (
	"fmt"
	"strings"
)

// Task selects the kind of copy the assistant produces.
type Task string

// Supported assistant tasks.
const (
	TaskSocial       Task = "social"
	TaskCreativeBlog Task = "creative_blog"
	TaskStrategy     Task = "strategy"
	TaskRewrite      Task = "rewrite"
)

// ParseTask validates a task string from a request.
func ParseTask(s string) (Task, error) {
	switch Task(strings.ToLower(strings.TrimSpace(s))) {
	case TaskSocial:
		return TaskSocial, nil
	case TaskCreativeBlog:
		return TaskCreativeBlog, nil
	case TaskStrategy:
		return TaskStrategy, nil
	case TaskRewrite:
		return TaskRewrite, nil
	}
	return "", fmt.Errorf("unknown assistant task %q", s)
}

// GenerateInput carries the editor's request for a draft.
type GenerateInput struct {
	Task  Task   `json:"task"`
	Topic string `json:"topic"`
	// Text is the source text for rewrite tasks.
	Text string `json:"text,omitempty"`
	// Tone is an optional tone hint, e.g. "playful" or "professional".
	Tone string `json:"tone,omitempty"`
}

const brandContext = "You write for Perry D Beauty Studio, a boutique salon " +
	"specializing in braids, bridal styling, makeup and facials. The voice is " +
	"warm, confident and personal."

// systemPrompt returns the per-task system prompt.
func systemPrompt(task Task) string {
	switch task {
	case TaskSocial:
		return brandContext + " Write a short social media caption with two or " +
			"three fitting hashtags. Keep it under 80 words."
	case TaskCreativeBlog:
		return brandContext + " Write a blog article in markdown with a title " +
			"heading, an engaging introduction and two or three sections. " +
			"Aim for 400 to 600 words."
	case TaskStrategy:
		return brandContext + " Act as a marketing strategist. Produce a short, " +
			"actionable content plan as a bulleted list."
	case TaskRewrite:
		return brandContext + " Rewrite the provided text, keeping its meaning " +
			"but improving clarity and flow. Return only the rewritten text."
	}
	return brandContext
}

// userPrompt renders the editor's input into the user message.
func userPrompt(in GenerateInput) string {
	var sb strings.Builder
	if in.Task == TaskRewrite {
		sb.WriteString("Rewrite the following text:\n\n")
		sb.WriteString(in.Text)
	} else {
		sb.WriteString("Topic: ")
		sb.WriteString(in.Topic)
	}
	if in.Tone != "" {
		sb.WriteString("\n\nTone: ")
		sb.WriteString(in.Tone)
	}
	return sb.String()
}

// Validate checks that the input carries what its task needs.
func (in GenerateInput) Validate() error {
	if _, err := ParseTask(string(in.Task)); err != nil {
		return err
	}
	if in.Task == TaskRewrite {
		if strings.TrimSpace(in.Text) == "" {
			return fmt.Errorf("rewrite task requires text")
		}
		return nil
	}
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("%s task requires a topic", in.Task)
	}
	return nil
}
