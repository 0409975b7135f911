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

// serviceColumns maps patchable JSON fields to their backend columns.
// The availability flags are stored snake_case in every schema generation.
var serviceColumns = map[string]string{
	"title":           "title",
	"description":     "description",
	"category":        "category",
	"price":           "price",
	"durationMinutes": "durationMinutes",
	"position":        "position",
	"isActive":        "is_active",
	"isComingSoon":    "is_coming_soon",
	"isBookable":      "is_bookable",
	"isFeatured":      "isFeatured",
}

// ServicesHandler serves the salon service endpoints.
type ServicesHandler struct {
	store  *cms.Store
	events *service.EventService
	logger *slog.Logger
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(store *cms.Store, events *service.EventService, logger *slog.Logger) *ServicesHandler {
	return &ServicesHandler{store: store, events: events, logger: logger}
}

// ListCategories handles GET /api/services, the grouped public view.
func (h *ServicesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListServiceCategories(r.Context())
	if err != nil {
		if schemaMissing(err) {
			h.logger.Warn("services table missing, serving empty list",
				"category", model.EventCategoryContent,
				"error", err.Error())
			writeJSONSuccess(w, map[string]any{"categories": []model.ServiceCategory{}})
			return
		}
		h.logger.Error("failed to list service categories", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load services")
		return
	}
	if categories == nil {
		categories = []model.ServiceCategory{}
	}

	writeJSONSuccess(w, map[string]any{"categories": categories})
}

// List handles GET /api/cms/services, the flat admin view.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		if schemaMissing(err) {
			writeJSONSuccess(w, map[string]any{"services": []model.Service{}})
			return
		}
		h.logger.Error("failed to list services", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load services")
		return
	}

	writeJSONSuccess(w, map[string]any{"services": services})
}

// Create handles POST /api/cms/services.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var svc model.Service
	if err := decodeJSON(w, r, &svc); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(svc.Title) == "" {
		writeJSONError(w, http.StatusBadRequest, "Service title is required")
		return
	}

	id, err := h.store.CreateService(r.Context(), svc)
	if err != nil {
		h.logger.Error("failed to create service", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Service created", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"service_id": id, "title": svc.Title})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Update handles PATCH /api/cms/services/{id}.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields := filterFields(body, serviceColumns)
	if len(fields) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	if err := h.store.UpdateService(r.Context(), id, fields); err != nil {
		h.logger.Error("failed to update service", "service_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Service updated", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"service_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Delete handles DELETE /api/cms/services/{id}.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteService(r.Context(), id); err != nil {
		h.logger.Error("failed to delete service", "service_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Service deleted", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"service_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}
