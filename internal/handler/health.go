// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/caraiagency/salon-cms/internal/supabase"
	"github.com/caraiagency/salon-cms/internal/version"
)

// HealthHandler serves liveness and dependency probes.
type HealthHandler struct {
	client    *supabase.Client
	info      version.Info
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(client *supabase.Client, info version.Info) *HealthHandler {
	return &HealthHandler{
		client:    client,
		info:      info,
		startTime: time.Now(),
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"status":  "ok",
		"version": h.info.Version,
		"commit":  h.info.GitCommit,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Supabase handles GET /health/supabase. A failed ping answers 503 so an
// uptime monitor can distinguish backend trouble from app trouble.
func (h *HealthHandler) Supabase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.client.Ping(ctx); err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Supabase unreachable")
		return
	}
	writeJSONSuccess(w, map[string]any{"status": "ok"})
}
