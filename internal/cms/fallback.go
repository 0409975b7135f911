// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"

	"github.com/caraiagency/salon-cms/internal/supabase"
)

// attempt executes one backend call against a concrete table name.
type attempt func(ctx context.Context, table string) error

// execWithFallback runs a logical operation against candidate table names
// in preference order:
//
//  1. The primary attempt runs against the candidate.
//  2. If it fails with a missing column, the legacy attempt (same
//     candidate, renamed columns) runs once and its result becomes the
//     candidate's outcome.
//  3. Any outcome other than a missing relation, success or failure
//     alike, ends the iteration.
//  4. A missing relation moves on to the next candidate.
//
// Each candidate gets at most one column retry, so the total number of
// backend calls is bounded by twice the number of candidates. When every
// candidate reports a missing relation the last error is returned.
func execWithFallback(ctx context.Context, candidates []string, primary, legacy attempt) error {
	var lastErr error
	for _, table := range candidates {
		err := primary(ctx, table)
		if legacy != nil && supabase.Classify(err) == supabase.ErrorMissingColumn {
			err = legacy(ctx, table)
		}
		if err == nil {
			return nil
		}
		lastErr = err
		if supabase.Classify(err) != supabase.ErrorMissingRelation {
			return err
		}
	}
	return lastErr
}
