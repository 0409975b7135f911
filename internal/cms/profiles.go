// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"

	"github.com/caraiagency/salon-cms/internal/supabase"
)

// GetProfileRole returns the role string stored on a user's profile row,
// or "" when the user has no profile. The caller decides what an absent
// profile means.
func (s *Store) GetProfileRole(ctx context.Context, userID string) (string, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, profileTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Select("id,role").Eq("id", userID).Limit(1))
			rows = r
			return err
		},
		nil, // profile columns never changed names
	)
	if err != nil {
		return "", supabase.Normalize(err, "Supabase profile fetch failed")
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rowString(rows[0], "role"), nil
}
