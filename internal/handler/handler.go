// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// schemaMissing reports whether a read failed because every candidate
// table name is absent. Public list endpoints degrade to an empty list
// on this fault so the site keeps rendering during a migration.
func schemaMissing(err error) bool {
	return supabase.Classify(err) == supabase.ErrorMissingRelation
}

// filterFields maps the allowed JSON keys of a patch body onto their
// backend column names. Unknown keys are dropped rather than rejected.
func filterFields(in map[string]any, columns map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for key, col := range columns {
		if v, ok := in[key]; ok {
			out[col] = v
		}
	}
	return out
}
