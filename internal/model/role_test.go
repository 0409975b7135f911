// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in       string
		expected UserRole
	}{
		{"visitor", RoleVisitor},
		{"editor", RoleEditor},
		{"admin", RoleAdmin},
		{"owner", RoleOwner},
		{"tech", RoleTech},
		{"ADMIN", RoleAdmin},
		{"Tech", RoleTech},
		{" owner ", RoleOwner},
		{"", RoleVisitor},
		{"superuser", RoleVisitor},
		{"moderator", RoleVisitor},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRole(tt.in); got != tt.expected {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		minimum  UserRole
		expected bool
	}{
		{"editor below admin", RoleEditor, RoleAdmin, false},
		{"owner above editor", RoleOwner, RoleEditor, true},
		{"tech reflexive", RoleTech, RoleTech, true},
		{"visitor below editor", RoleVisitor, RoleEditor, false},
		{"visitor reflexive", RoleVisitor, RoleVisitor, true},
		{"tech above everything", RoleTech, RoleOwner, true},
		{"admin below owner", RoleAdmin, RoleOwner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.role, tt.minimum); got != tt.expected {
				t.Errorf("HasRole(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.expected)
			}
		})
	}
}

func TestRoleRank_TotalOrder(t *testing.T) {
	roles := Roles()
	for i := 1; i < len(roles); i++ {
		if roles[i-1].Rank() >= roles[i].Rank() {
			t.Errorf("rank of %q (%d) should be below rank of %q (%d)",
				roles[i-1], roles[i-1].Rank(), roles[i], roles[i].Rank())
		}
	}
}

func TestRoleRank_UnknownRanksAsVisitor(t *testing.T) {
	if got := UserRole("root").Rank(); got != RoleVisitor.Rank() {
		t.Errorf("unknown role rank = %d, want %d", got, RoleVisitor.Rank())
	}
}
