// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/caraiagency/salon-cms/internal/cms"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
)

// galleryColumns maps patchable JSON fields to their backend columns.
var galleryColumns = map[string]string{
	"title":          "title",
	"description":    "description",
	"url":            "url",
	"category":       "category",
	"source":         "source",
	"isHeroFeatured": "isHeroFeatured",
	"position":       "position",
}

// GalleryHandler serves the gallery image endpoints.
type GalleryHandler struct {
	store  *cms.Store
	events *service.EventService
	logger *slog.Logger
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(store *cms.Store, events *service.EventService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{store: store, events: events, logger: logger}
}

// List handles GET /api/gallery. An optional category query parameter
// filters the result; "All" and an empty value return everything.
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.ListGalleryImages(r.Context())
	if err != nil {
		if schemaMissing(err) {
			h.logger.Warn("gallery tables missing, serving empty list",
				"category", model.EventCategoryGallery,
				"error", err.Error())
			writeJSONSuccess(w, map[string]any{"images": []model.GalleryImage{}})
			return
		}
		h.logger.Error("failed to list gallery images", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load gallery")
		return
	}

	if category := r.URL.Query().Get("category"); category != "" && category != model.GalleryCategoryAll {
		filtered := make([]model.GalleryImage, 0, len(images))
		for _, img := range images {
			if strings.EqualFold(img.Category, category) {
				filtered = append(filtered, img)
			}
		}
		images = filtered
	}

	writeJSONSuccess(w, map[string]any{"images": images})
}

// Create handles POST /api/cms/gallery.
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var img model.GalleryImage
	if err := decodeJSON(w, r, &img); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validImageURL(img.URL) {
		writeJSONError(w, http.StatusBadRequest, "A valid image URL is required")
		return
	}

	id, err := h.store.CreateGalleryImage(r.Context(), img)
	if err != nil {
		h.logger.Error("failed to create gallery image", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to create gallery image")
		return
	}

	_ = h.events.LogGalleryEvent(r.Context(), model.EventLevelInfo,
		"Gallery image created", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"image_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Update handles PATCH /api/cms/gallery/{id}.
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields := filterFields(body, galleryColumns)
	if len(fields) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}
	if rawURL, ok := fields["url"].(string); ok && !validImageURL(rawURL) {
		writeJSONError(w, http.StatusBadRequest, "A valid image URL is required")
		return
	}

	if err := h.store.UpdateGalleryImage(r.Context(), id, fields); err != nil {
		h.logger.Error("failed to update gallery image", "image_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to update gallery image")
		return
	}

	_ = h.events.LogGalleryEvent(r.Context(), model.EventLevelInfo,
		"Gallery image updated", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"image_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Delete handles DELETE /api/cms/gallery/{id}.
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteGalleryImage(r.Context(), id); err != nil {
		h.logger.Error("failed to delete gallery image", "image_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete gallery image")
		return
	}

	_ = h.events.LogGalleryEvent(r.Context(), model.EventLevelInfo,
		"Gallery image deleted", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"image_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// validImageURL accepts absolute http(s) URLs only.
func validImageURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
