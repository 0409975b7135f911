// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/caraiagency/salon-cms/internal/cms"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
)

var faqColumns = map[string]string{
	"question": "question",
	"answer":   "answer",
	"position": "position",
}

// FAQHandler serves the FAQ endpoints.
type FAQHandler struct {
	store  *cms.Store
	events *service.EventService
	logger *slog.Logger
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(store *cms.Store, events *service.EventService, logger *slog.Logger) *FAQHandler {
	return &FAQHandler{store: store, events: events, logger: logger}
}

// List handles GET /api/faqs.
func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.store.ListFAQs(r.Context())
	if err != nil {
		if schemaMissing(err) {
			h.logger.Warn("FAQ table missing, serving empty list",
				"category", model.EventCategoryContent,
				"error", err.Error())
			writeJSONSuccess(w, map[string]any{"faqs": []model.FAQ{}})
			return
		}
		h.logger.Error("failed to list FAQs", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load FAQs")
		return
	}

	writeJSONSuccess(w, map[string]any{"faqs": faqs})
}

// Create handles POST /api/cms/faqs.
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var faq model.FAQ
	if err := decodeJSON(w, r, &faq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
		writeJSONError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	id, err := h.store.CreateFAQ(r.Context(), faq)
	if err != nil {
		h.logger.Error("failed to create FAQ", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to create FAQ")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"FAQ created", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"faq_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Update handles PATCH /api/cms/faqs/{id}.
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields := filterFields(body, faqColumns)
	if len(fields) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	if err := h.store.UpdateFAQ(r.Context(), id, fields); err != nil {
		h.logger.Error("failed to update FAQ", "faq_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to update FAQ")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"FAQ updated", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"faq_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Delete handles DELETE /api/cms/faqs/{id}.
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteFAQ(r.Context(), id); err != nil {
		h.logger.Error("failed to delete FAQ", "faq_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete FAQ")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"FAQ deleted", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"faq_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}
