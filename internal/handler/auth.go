// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/caraiagency/salon-cms/internal/auth"
	"github.com/caraiagency/salon-cms/internal/middleware"
	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
	"github.com/caraiagency/salon-cms/internal/session"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// AuthHandler serves login, logout, and identity endpoints. The role is
// resolved once at login and carried in the session from then on.
type AuthHandler struct {
	client     *supabase.Client
	resolver   *auth.Resolver
	sessions   *scs.SessionManager
	protection *middleware.LoginProtection
	events     *service.EventService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	client *supabase.Client,
	resolver *auth.Resolver,
	sessions *scs.SessionManager,
	protection *middleware.LoginProtection,
	events *service.EventService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		client:     client,
		resolver:   resolver,
		sessions:   sessions,
		protection: protection,
		events:     events,
		logger:     logger,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if locked, remaining := h.protection.IsAccountLocked(email); locked {
		writeJSONError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Account temporarily locked. Try again in %d minutes.", int(remaining.Minutes())+1))
		return
	}

	authSession, err := h.client.SignInWithPassword(r.Context(), email, req.Password)
	if err != nil {
		locked, lockDuration := h.protection.RecordFailedAttempt(email)

		h.logger.Warn("login failed",
			"category", model.EventCategoryAuth,
			"email", email,
			"remote_addr", r.RemoteAddr,
			"error", err.Error())
		_ = h.events.LogAuthEvent(r.Context(), model.EventLevelWarning,
			"Login failed", "", r.RemoteAddr, map[string]any{"email": email})

		if locked {
			writeJSONError(w, http.StatusTooManyRequests,
				fmt.Sprintf("Too many failed attempts. Account locked for %d minutes.", int(lockDuration.Minutes())))
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	role := h.resolver.Resolve(r.Context(), &authSession.User)

	// New session token on privilege change
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.logger.Error("failed to renew session token", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, authSession.User.ID)
	h.sessions.Put(r.Context(), session.KeyUserEmail, authSession.User.Email)
	h.sessions.Put(r.Context(), session.KeyUserRole, string(role))

	h.protection.RecordSuccessfulLogin(email)

	_ = h.events.LogAuthEvent(r.Context(), model.EventLevelInfo,
		"User logged in", authSession.User.ID, r.RemoteAddr,
		map[string]any{"role": string(role)})

	writeJSONSuccess(w, map[string]any{
		"user": map[string]any{
			"id":    authSession.User.ID,
			"email": authSession.User.Email,
			"role":  string(role),
		},
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.logger.Error("failed to destroy session", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	if userID != "" {
		_ = h.events.LogAuthEvent(r.Context(), model.EventLevelInfo,
			"User logged out", userID, r.RemoteAddr, nil)
	}

	writeJSONSuccess(w, nil)
}

// Me handles GET /api/auth/me. Anonymous requests get the visitor role
// rather than an error so the public site can probe session state.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		writeJSONSuccess(w, map[string]any{
			"authenticated": false,
			"role":          string(model.RoleVisitor),
		})
		return
	}

	writeJSONSuccess(w, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":    identity.UserID,
			"email": identity.Email,
			"role":  string(identity.Role),
		},
	})
}
