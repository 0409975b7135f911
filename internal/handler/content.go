// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/caraiagency/salon-cms/internal/cms"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
)

// ContentHandler serves the content block endpoints.
type ContentHandler struct {
	store     *cms.Store
	events    *service.EventService
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(store *cms.Store, events *service.EventService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		store:     store,
		events:    events,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// List handles GET /api/content. An optional prefix query parameter
// narrows the result to keys under one namespace, e.g. prefix=hero.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.store.ListContentBlocks(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		if schemaMissing(err) {
			h.logger.Warn("content tables missing, serving empty list",
				"category", model.EventCategoryContent,
				"error", err.Error())
			writeJSONSuccess(w, map[string]any{"blocks": []model.ContentBlock{}})
			return
		}
		h.logger.Error("failed to list content blocks", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}

	writeJSONSuccess(w, map[string]any{"blocks": blocks})
}

// Get handles GET /api/content/{key}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	block, err := h.store.GetContentBlock(r.Context(), key)
	if err != nil {
		if schemaMissing(err) {
			writeJSONError(w, http.StatusNotFound, "Content block not found")
			return
		}
		h.logger.Error("failed to get content block", "key", key, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	if block == nil {
		writeJSONError(w, http.StatusNotFound, "Content block not found")
		return
	}

	writeJSONSuccess(w, map[string]any{"block": block})
}

// Upsert handles POST /api/cms/content. The key is the identity; posting
// an existing key overwrites its value.
func (h *ContentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Key = strings.TrimSpace(req.Key)
	if req.Key == "" {
		writeJSONError(w, http.StatusBadRequest, "Content key is required")
		return
	}

	value := h.sanitizer.Sanitize(req.Value)
	if err := h.store.UpsertContentBlock(r.Context(), req.Key, value); err != nil {
		h.logger.Error("failed to upsert content block", "key", req.Key, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Content block saved", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"key": req.Key})

	writeJSONSuccess(w, map[string]any{"key": req.Key})
}
