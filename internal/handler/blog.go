// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/caraiagency/salon-cms/internal/cms"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
	"github.com/caraiagency/salon-cms/internal/util"
)

var blogColumns = map[string]string{
	"title":       "title",
	"slug":        "slug",
	"excerpt":     "excerpt",
	"body":        "body",
	"imageUrl":    "imageUrl",
	"publishedAt": "publishedAt",
}

// BlogHandler serves the blog endpoints. Post bodies are stored as
// markdown and rendered to sanitized HTML on the public detail endpoint.
type BlogHandler struct {
	store     *cms.Store
	events    *service.EventService
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(store *cms.Store, events *service.EventService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		store:  store,
		events: events,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// List handles GET /api/blog. Only published, non-future posts are
// returned, excerpt only.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListBlogPosts(r.Context(), true)
	if err != nil {
		if schemaMissing(err) {
			h.logger.Warn("blog table missing, serving empty list",
				"category", model.EventCategoryContent,
				"error", err.Error())
			writeJSONSuccess(w, map[string]any{"posts": []model.BlogPost{}})
			return
		}
		h.logger.Error("failed to list blog posts", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load blog posts")
		return
	}

	for i := range posts {
		posts[i].Body = ""
	}
	writeJSONSuccess(w, map[string]any{"posts": posts})
}

// ListAll handles GET /api/cms/blog, including drafts.
func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListBlogPosts(r.Context(), false)
	if err != nil {
		if schemaMissing(err) {
			writeJSONSuccess(w, map[string]any{"posts": []model.BlogPost{}})
			return
		}
		h.logger.Error("failed to list blog posts", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load blog posts")
		return
	}

	writeJSONSuccess(w, map[string]any{"posts": posts})
}

// Get handles GET /api/blog/{slug}. The markdown body is rendered to
// HTML and returned alongside the raw post.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.store.GetBlogPostBySlug(r.Context(), slug)
	if err != nil {
		if schemaMissing(err) {
			writeJSONError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		h.logger.Error("failed to get blog post", "slug", slug, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to load blog post")
		return
	}
	if post == nil {
		writeJSONError(w, http.StatusNotFound, "Blog post not found")
		return
	}

	bodyHTML, err := h.renderBody(post.Body)
	if err != nil {
		h.logger.Error("failed to render blog post body", "slug", slug, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to render blog post")
		return
	}

	writeJSONSuccess(w, map[string]any{"post": post, "bodyHtml": bodyHTML})
}

// Create handles POST /api/cms/blog. An empty slug is derived from the
// title.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var post model.BlogPost
	if err := decodeJSON(w, r, &post); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(post.Title) == "" {
		writeJSONError(w, http.StatusBadRequest, "Post title is required")
		return
	}
	if post.Slug == "" {
		post.Slug = util.Slugify(post.Title)
	}

	if existing, err := h.store.GetBlogPostBySlug(r.Context(), post.Slug); err == nil && existing != nil {
		writeJSONError(w, http.StatusConflict, "A post with this slug already exists")
		return
	}

	id, err := h.store.CreateBlogPost(r.Context(), post)
	if err != nil {
		h.logger.Error("failed to create blog post", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to create blog post")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Blog post created", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"post_id": id, "slug": post.Slug})

	writeJSONSuccess(w, map[string]any{"id": id, "slug": post.Slug})
}

// Update handles PATCH /api/cms/blog/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields := filterFields(body, blogColumns)
	if len(fields) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	if err := h.store.UpdateBlogPost(r.Context(), id, fields); err != nil {
		h.logger.Error("failed to update blog post", "post_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to update blog post")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Blog post updated", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"post_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// Delete handles DELETE /api/cms/blog/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteBlogPost(r.Context(), id); err != nil {
		h.logger.Error("failed to delete blog post", "post_id", id, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete blog post")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo,
		"Blog post deleted", middleware.GetUserID(r), r.RemoteAddr,
		map[string]any{"post_id": id})

	writeJSONSuccess(w, map[string]any{"id": id})
}

// renderBody converts markdown to sanitized HTML.
func (h *BlogHandler) renderBody(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return h.sanitizer.Sanitize(buf.String()), nil
}
