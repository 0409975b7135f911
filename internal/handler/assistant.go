// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/caraiagency/salon-cms/internal/assistant"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
)

// AssistantHandler serves the AI drafting endpoint for editors.
type AssistantHandler struct {
	assistant *assistant.Service
	events    *service.EventService
	logger    *slog.Logger
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(svc *assistant.Service, events *service.EventService, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: svc, events: events, logger: logger}
}

// Generate handles POST /api/assistant.
func (h *AssistantHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !h.assistant.Enabled() {
		writeJSONError(w, http.StatusServiceUnavailable, "Assistant is not configured")
		return
	}

	var in assistant.GenerateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.assistant.Generate(r.Context(), in)
	if err != nil {
		h.logger.Error("assistant generation failed",
			"category", model.EventCategoryAssistant,
			"task", string(in.Task),
			"error", err.Error())
		writeJSONError(w, http.StatusBadGateway, "Assistant generation failed")
		return
	}

	_ = h.events.LogAssistantEvent(r.Context(), model.EventLevelInfo,
		"Draft generated", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{
			"task":     string(in.Task),
			"provider": result.Provider,
			"model":    result.Model,
			"tokens":   result.Tokens,
		})

	writeJSONSuccess(w, map[string]any{"result": result})
}
