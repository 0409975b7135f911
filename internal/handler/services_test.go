// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/caraiagency/salon-cms/internal/testutil"
)

func TestServicesListCategories(t *testing.T) {
	backend := newBackend("services")
	backend.rows["services"] = []map[string]any{
		{"id": "1", "title": "Knotless Braids", "category": "Braids", "position": float64(0)},
		{"id": "2", "title": "Bridal Glam", "category": "Makeup", "position": float64(1)},
		{"id": "3", "title": "Box Braids", "category": "Braids", "position": float64(2)},
	}
	store, events := testDeps(t, backend)
	h := NewServicesHandler(store, events, testutil.TestLogger())

	rec := doJSON(t, h.ListCategories, http.MethodGet, "/api/services", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	categories, ok := body["categories"].([]any)
	if !ok || len(categories) != 2 {
		t.Fatalf("categories = %v, want 2 groups", body["categories"])
	}
	first, _ := categories[0].(map[string]any)
	if first["name"] != "Braids" {
		t.Errorf("first category = %v, want Braids", first["name"])
	}
}

func TestServicesListCategories_MissingTableServesEmpty(t *testing.T) {
	store, events := testDeps(t, newBackend())
	h := NewServicesHandler(store, events, testutil.TestLogger())

	rec := doJSON(t, h.ListCategories, http.MethodGet, "/api/services", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if categories, ok := body["categories"].([]any); !ok || len(categories) != 0 {
		t.Errorf("categories = %v, want empty list", body["categories"])
	}
}

func TestServicesCreate(t *testing.T) {
	backend := newBackend("services")
	store, events := testDeps(t, backend)
	h := NewServicesHandler(store, events, testutil.TestLogger())

	rec := doJSON(t, h.Create, http.MethodPost, "/api/cms/services",
		`{"title": "Silk Press", "category": "Hair", "price": "from $85", "isActive": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if id, _ := body["id"].(string); id == "" {
		t.Error("response missing generated id")
	}
	if len(backend.rows["services"]) != 1 {
		t.Fatalf("stored %d rows, want 1", len(backend.rows["services"]))
	}
}

func TestServicesCreate_RequiresTitle(t *testing.T) {
	store, events := testDeps(t, newBackend("services"))
	h := NewServicesHandler(store, events, testutil.TestLogger())

	rec := doJSON(t, h.Create, http.MethodPost, "/api/cms/services", `{"title": "  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServicesUpdate_MapsFlagColumns(t *testing.T) {
	backend := newBackend("services")
	backend.rows["services"] = []map[string]any{{"id": "svc-1", "title": "Old"}}
	store, events := testDeps(t, backend)
	h := NewServicesHandler(store, events, testutil.TestLogger())

	router := chi.NewRouter()
	router.Patch("/api/cms/services/{id}", h.Update)

	req := httptest.NewRequest(http.MethodPatch, "/api/cms/services/svc-1",
		strings.NewReader(`{"title": "New", "isActive": false, "bogus": 1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	row := backend.rows["services"][0]
	if row["title"] != "New" {
		t.Errorf("title = %v, want New", row["title"])
	}
	// The JSON field isActive travels as the is_active column.
	if v, ok := row["is_active"].(bool); !ok || v {
		t.Errorf("is_active = %v, want false", row["is_active"])
	}
	if _, ok := row["bogus"]; ok {
		t.Error("unknown field leaked into the patch")
	}
}

func TestServicesUpdate_RejectsEmptyPatch(t *testing.T) {
	store, events := testDeps(t, newBackend("services"))
	h := NewServicesHandler(store, events, testutil.TestLogger())

	router := chi.NewRouter()
	router.Patch("/api/cms/services/{id}", h.Update)

	req := httptest.NewRequest(http.MethodPatch, "/api/cms/services/svc-1",
		strings.NewReader(`{"bogus": 1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
