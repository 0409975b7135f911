// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including content entities, user roles, and event structures.
package model

import "strings"

// UserRole is a member of the closed, totally ordered role hierarchy.
// Roles are parsed once at the boundary; free-form role strings must not
// travel past ParseRole.
type UserRole string

// Known roles, weakest first.
const (
	RoleVisitor UserRole = "visitor"
	RoleEditor  UserRole = "editor"
	RoleAdmin   UserRole = "admin"
	RoleOwner   UserRole = "owner"
	RoleTech    UserRole = "tech"
)

// roleRank assigns each role its position in the hierarchy.
// Higher rank = more permissions.
var roleRank = map[UserRole]int{
	RoleVisitor: 0,
	RoleEditor:  1,
	RoleAdmin:   2,
	RoleOwner:   3,
	RoleTech:    4,
}

// ParseRole normalizes a role string into a UserRole.
// Matching is case-insensitive; anything unrecognized (including the
// empty string) maps to RoleVisitor.
func ParseRole(s string) UserRole {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRank[role]; ok {
		return role
	}
	return RoleVisitor
}

// Rank returns the numeric rank of the role. Unknown roles rank as visitor.
func (r UserRole) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return roleRank[RoleVisitor]
}

// HasRole reports whether role grants at least the permissions of minimum.
// The comparison is a pure rank lookup; it performs no I/O.
func HasRole(role, minimum UserRole) bool {
	return role.Rank() >= minimum.Rank()
}

// Roles returns all known roles in rank order, weakest first.
func Roles() []UserRole {
	return []UserRole{RoleVisitor, RoleEditor, RoleAdmin, RoleOwner, RoleTech}
}
