// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/service"
	"github.com/caraiagency/salon-cms/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyIdentity is the context key for the authenticated identity.
const ContextKeyIdentity ContextKey = "identity"

// Identity is the authenticated user attached to the request context.
// The role is resolved at login time and carried in the session.
type Identity struct {
	UserID string
	Email  string
	Role   model.UserRole
}

// LoadIdentity creates middleware that loads the session identity into the
// request context. Requests without a session proceed as visitors.
func LoadIdentity(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), session.KeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity := Identity{
				UserID: userID,
				Email:  sm.GetString(r.Context(), session.KeyUserEmail),
				Role:   model.ParseRole(sm.GetString(r.Context(), session.KeyUserRole)),
			}
			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the current identity from the request context.
// Returns nil if the request is anonymous.
func GetIdentity(r *http.Request) *Identity {
	identity, ok := r.Context().Value(ContextKeyIdentity).(Identity)
	if !ok {
		return nil
	}
	return &identity
}

// GetRole returns the role of the current request. Anonymous requests are
// visitors.
func GetRole(r *http.Request) model.UserRole {
	if identity := GetIdentity(r); identity != nil {
		return identity.Role
	}
	return model.RoleVisitor
}

// GetUserID returns the current user's id from context, or "" if anonymous.
func GetUserID(r *http.Request) string {
	if identity := GetIdentity(r); identity != nil {
		return identity.UserID
	}
	return ""
}

// RequireRole creates middleware that requires a minimum role.
// Anonymous requests get 401, authenticated requests below the minimum
// get 403. For example, RequireRole(model.RoleEditor) allows editor,
// admin, owner and tech users.
func RequireRole(minimum model.UserRole) func(http.Handler) http.Handler {
	return RequireRoleWithEventLog(minimum, nil)
}

// RequireRoleWithEventLog creates middleware that requires a minimum role
// and records denials. If eventService is provided, 403s are written to
// the event log.
func RequireRoleWithEventLog(minimum model.UserRole, eventService *service.EventService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r)
			if identity == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			if !model.HasRole(identity.Role, minimum) {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", identity.UserID,
					"user_role", string(identity.Role),
					"required_role", string(minimum),
					"remote_addr", r.RemoteAddr,
				)

				if eventService != nil {
					metadata := map[string]any{
						"method":        r.Method,
						"path":          r.URL.Path,
						"user_role":     string(identity.Role),
						"required_role": string(minimum),
					}
					_ = eventService.LogAuthEvent(r.Context(), model.EventLevelWarning,
						"Access denied: insufficient permissions", identity.UserID, r.RemoteAddr, metadata)
				}

				WriteAPIError(w, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEditor creates middleware that requires at least the editor role.
func RequireEditor() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEditor)
}

// RequireAdmin creates middleware that requires at least the admin role.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}
