// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/caraiagency/salon-cms/internal/auth"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/service"
	"github.com/caraiagency/salon-cms/internal/session"
	"github.com/caraiagency/salon-cms/internal/supabase"
	"github.com/caraiagency/salon-cms/internal/testutil"
)

type fakeProfiles struct {
	role string
	err  error
}

func (f *fakeProfiles) GetProfileRole(_ context.Context, _ string) (string, error) {
	return f.role, f.err
}

// newAuthHandler wires an AuthHandler against a fake GoTrue endpoint.
// The fake accepts exactly one email/password pair.
func newAuthHandler(t *testing.T, email, password, profileRole string) (*AuthHandler, *scs.SessionManager) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/auth/v1/token") {
			http.NotFound(w, r)
			return
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != email || creds.Password != password {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_description": "Invalid login credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "token-123",
			"refresh_token": "refresh-123",
			"expires_in":    3600,
			"user":          map[string]any{"id": "user-1", "email": creds.Email},
		})
	}))
	t.Cleanup(server.Close)

	client, err := supabase.New(supabase.Config{URL: server.URL, AnonKey: "anon", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("supabase.New: %v", err)
	}

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sessions := session.New(db, true)
	logger := testutil.TestLogger()
	h := NewAuthHandler(
		client,
		auth.NewResolver(&fakeProfiles{role: profileRole}, logger),
		sessions,
		middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		service.NewEventService(db),
		logger,
	)
	return h, sessions
}

func doLogin(t *testing.T, h *AuthHandler, sessions *scs.SessionManager, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	sessions.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	h, sessions := newAuthHandler(t, "staff@example.com", "correct-horse", "editor")

	rec := doLogin(t, h, sessions, `{"email": "staff@example.com", "password": "correct-horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	if user["role"] != "editor" {
		t.Errorf("role = %v, want editor", user["role"])
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Error("login did not set a session cookie")
	}
}

func TestLogin_PinnedOwnerEmail(t *testing.T) {
	// The studio owner's role is pinned even when the profiles table says
	// otherwise.
	h, sessions := newAuthHandler(t, "perrydbeautystudio@gmail.com", "pw", "editor")

	rec := doLogin(t, h, sessions, `{"email": "PerryDBeautyStudio@gmail.com", "password": "pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	if user["role"] != "owner" {
		t.Errorf("role = %v, want owner", user["role"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, sessions := newAuthHandler(t, "staff@example.com", "correct-horse", "editor")

	rec := doLogin(t, h, sessions, `{"email": "staff@example.com", "password": "wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	h, sessions := newAuthHandler(t, "staff@example.com", "correct-horse", "editor")

	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		last = doLogin(t, h, sessions, `{"email": "staff@example.com", "password": "wrong"}`)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("fifth failure status = %d, want 429", last.Code)
	}

	// The correct password is refused while the lockout holds.
	rec := doLogin(t, h, sessions, `{"email": "staff@example.com", "password": "correct-horse"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status during lockout = %d, want 429", rec.Code)
	}
}

func TestLogin_Validation(t *testing.T) {
	h, sessions := newAuthHandler(t, "staff@example.com", "pw", "editor")

	for _, body := range []string{`{}`, `{"email": "a@b.c"}`, `not json`} {
		rec := doLogin(t, h, sessions, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestMe_Anonymous(t *testing.T) {
	h, sessions := newAuthHandler(t, "staff@example.com", "pw", "editor")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	sessions.LoadAndSave(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["authenticated"] != false {
		t.Errorf("authenticated = %v, want false", body["authenticated"])
	}
	if body["role"] != "visitor" {
		t.Errorf("role = %v, want visitor", body["role"])
	}
}
