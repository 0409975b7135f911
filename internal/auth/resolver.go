// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth resolves the application role for an authenticated
// identity. Resolution never fails open: any lookup failure or unknown
// role string degrades to the visitor role.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// Accounts whose role is pinned regardless of profile or metadata state.
// Pinned assignments keep the studio reachable even when the profiles
// table is missing or misconfigured.
var pinnedRoles = map[string]model.UserRole{
	"caraiagency@gmail.com":       model.RoleTech,
	"perrydbeautystudio@gmail.com": model.RoleOwner,
}

// ProfileReader looks up the role string stored on a user's profile row.
type ProfileReader interface {
	GetProfileRole(ctx context.Context, userID string) (string, error)
}

// Resolver determines the role of an authenticated identity.
type Resolver struct {
	profiles ProfileReader
	logger   *slog.Logger
}

// NewResolver creates a Resolver backed by the given profile reader.
func NewResolver(profiles ProfileReader, logger *slog.Logger) *Resolver {
	return &Resolver{profiles: profiles, logger: logger}
}

// Resolve returns the role for an identity. Order of precedence:
//
//  1. Pinned email assignments.
//  2. The role column of the user's profile row.
//  3. The role claim in the identity's metadata.
//
// A failed profile lookup falls through to metadata rather than
// aborting, so a broken profiles table cannot lock everyone out. Only
// unexpected faults are logged; a missing profiles relation is a known
// deployment state. A nil identity and any unrecognized role string
// resolve to visitor.
func (r *Resolver) Resolve(ctx context.Context, identity *supabase.Identity) model.UserRole {
	if identity == nil {
		return model.RoleVisitor
	}

	if role, ok := pinnedRoles[strings.ToLower(strings.TrimSpace(identity.Email))]; ok {
		return role
	}

	if identity.ID != "" {
		roleStr, err := r.profiles.GetProfileRole(ctx, identity.ID)
		switch {
		case err != nil && supabase.Classify(err) == supabase.ErrorMissingRelation:
			// No profiles table on this deployment. Metadata is the
			// expected source here, not a fault worth a warning.
		case err != nil:
			r.logger.Warn("role resolution fell back to metadata",
				"category", model.EventCategoryAuth,
				"user_id", identity.ID,
				"error", err.Error())
		case roleStr != "":
			return model.ParseRole(roleStr)
		}
	}

	if meta := identity.MetadataRole(); meta != "" {
		return model.ParseRole(meta)
	}
	return model.RoleVisitor
}
