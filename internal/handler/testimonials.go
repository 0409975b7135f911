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

var testimonialColumns = map[string]string{
	"clientName": "clientName",
	"location":   "location",
	"text":       "text",
	"rating":     "rating",
	"position":   "position",
	"featured":   "featured",
}

// TestimonialsHandler serves the testimonial endpoints.
type TestimonialsHandler struct {
	store     *cms.Store
	events    *service.EventService
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewTestimonialsHandler creates a new TestimonialsHandler.
func NewTestimonialsHandler(store *cms.Store, events *service.EventService, logger *slog.Logger) *TestimonialsHandler {
	return &TestimonialsHandler{
		store:     store,
		events:    events,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// List handles GET /api/testimonials. The featured query parameter
// narrows the result to featured reviews for the home page strip.
func (h *TestimonialsHandler) List(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.store.ListTestimonials(r.Context())
	if err != nil {
		if schemaMissing(err) {
			h.logger.Warn("testimonials table missing, serving empty list",
				"category", model.EventCategoryContent,
				"error", err.Error())
			writeJSONSuccess(w, map[string]any{"testimonials": []model.Testimonial{}})
			return
		}
		h.logger.Error("failed to list testimonials", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load testimonials")
		return
	}

	if r.URL.Query().Get("featured") == "true" {
		featured := make([]model.Testimonial, 0, len(testimonials))
		for _, t := range testimonials {
			if t.Featured {
				featured = append(featured, t)
			}
		}
		testimonials = featured
	}

	writeJSONSuccess(w, map[string]any{"testimonials": testimonials})
}

// Create handles POST /api/cms/testimonials.
func (h *TestimonialsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t model.Testimonial
	if err := decodeJSON(w, r, &t); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(t.ClientName) == "" || strings.TrimSpace(t.Text) == "" {
		writeJSONError(w, http.StatusBadRequest, "Client name and text are required")
		return
	}
	if t.Rating < 1 || t.Rating > 5 {
		writeJSONError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	// Reviews are client-submitted prose and end up rendered on the
	// public site, so they go through the same sanitizer as content.
	t.ClientName = h.sanitizer.Sanitize(t.ClientName)
	t.Location = h.sanitizer.Sanitize(t.Location)
	t.Text = h.sanitizer.Sanitize(t.Text)

	id, err := h.store.CreateTestimonial(r.Context(), t)
	if err != nil {
		h.logger.Error("failed to create testimonial", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Testimonial created", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"testimonial_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Update handles PATCH /api/cms/testimonials/{id}.
func (h *TestimonialsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields := filterFields(body, testimonialColumns)
	if len(fields) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}
	if rating, ok := fields["rating"].(float64); ok && (rating < 1 || rating > 5) {
		writeJSONError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	for _, col := range []string{"clientName", "location", "text"} {
		if s, ok := fields[col].(string); ok {
			fields[col] = h.sanitizer.Sanitize(s)
		}
	}

	if err := h.store.UpdateTestimonial(r.Context(), id, fields); err != nil {
		h.logger.Error("failed to update testimonial", "testimonial_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Testimonial updated", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"testimonial_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Delete handles DELETE /api/cms/testimonials/{id}.
func (h *TestimonialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteTestimonial(r.Context(), id); err != nil {
		h.logger.Error("failed to delete testimonial", "testimonial_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Testimonial deleted", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"testimonial_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}
