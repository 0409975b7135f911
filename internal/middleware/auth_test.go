// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caraiagency/salon-cms/internal/model"
)

// withIdentity attaches an identity to a request the way LoadIdentity does.
func withIdentity(r *http.Request, role model.UserRole) *http.Request {
	identity := Identity{UserID: "u1", Email: "staff@example.com", Role: role}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyIdentity, identity))
}

func TestRequireRole_Anonymous(t *testing.T) {
	handler := RequireRole(model.RoleEditor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous requests")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/cms/content", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequireRole_Hierarchy(t *testing.T) {
	tests := []struct {
		name     string
		role     model.UserRole
		minimum  model.UserRole
		wantCode int
	}{
		{"editor reaches editor gate", model.RoleEditor, model.RoleEditor, http.StatusOK},
		{"admin reaches editor gate", model.RoleAdmin, model.RoleEditor, http.StatusOK},
		{"owner reaches admin gate", model.RoleOwner, model.RoleAdmin, http.StatusOK},
		{"tech reaches admin gate", model.RoleTech, model.RoleAdmin, http.StatusOK},
		{"editor blocked at admin gate", model.RoleEditor, model.RoleAdmin, http.StatusForbidden},
		{"visitor blocked at editor gate", model.RoleVisitor, model.RoleEditor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.minimum)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/cms/content", nil), tt.role)
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusForbidden && !strings.Contains(rr.Body.String(), "forbidden") {
				t.Errorf("body lacks error code: %s", rr.Body.String())
			}
		})
	}
}

func TestGetRole_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRole(req); got != model.RoleVisitor {
		t.Errorf("GetRole() = %v, want visitor", got)
	}
}

func TestGetIdentity(t *testing.T) {
	req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), model.RoleAdmin)
	identity := GetIdentity(req)
	if identity == nil {
		t.Fatal("GetIdentity() = nil")
	}
	if identity.UserID != "u1" || identity.Role != model.RoleAdmin {
		t.Errorf("unexpected identity: %+v", identity)
	}
}
