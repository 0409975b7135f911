// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

// fieldPair links a field's current name with the name used by the older
// schema generation. The rename tables below are fixed per entity; the
// transform is applied only after a detected schema mismatch, never
// speculatively.
type fieldPair struct {
	Current string
	Legacy  string
}

var (
	contentFields = []fieldPair{
		{"updatedAt", "updated_at"},
	}
	galleryFields = []fieldPair{
		{"isHeroFeatured", "is_hero_featured"},
		{"createdAt", "created_at"},
		{"position", "sort_order"},
	}
	serviceFields = []fieldPair{
		{"title", "name"},
		{"price", "price_label"},
		{"durationMinutes", "duration_mins"},
		{"position", "sort_order"},
	}
	faqFields = []fieldPair{
		{"position", "sort_order"},
	}
	testimonialFields = []fieldPair{
		{"clientName", "client_name"},
		{"position", "sort_order"},
	}
	blogFields = []fieldPair{
		{"imageUrl", "image_url"},
		{"publishedAt", "published_at"},
	}
)

// mapPayload rewrites a write payload keyed by current field names into
// one keyed by legacy names, for the retry after the backend rejected a
// current-named column. For each pair the value is copied to the legacy
// key when that key is absent, and the current key is always dropped so
// only one representation is sent. The input is not mutated and the
// function is idempotent.
func mapPayload(payload map[string]any, pairs []fieldPair) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, p := range pairs {
		if v, ok := out[p.Current]; ok {
			if _, taken := out[p.Legacy]; !taken {
				out[p.Legacy] = v
			}
			delete(out, p.Current)
		}
	}
	return out
}

// normalizeRow maps a read row that may carry either naming generation
// into one exposing the current names. When both names are populated the
// current one wins; when neither is present the field stays absent. The
// input row is not mutated.
func normalizeRow(row map[string]any, pairs []fieldPair) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	for _, p := range pairs {
		if v, ok := row[p.Current]; ok && v != nil {
			out[p.Current] = v
			continue
		}
		if v, ok := row[p.Legacy]; ok && v != nil {
			out[p.Current] = v
		}
	}
	return out
}

// legacyName returns the legacy counterpart of a current field name, or
// the name itself when the entity never renamed it.
func legacyName(name string, pairs []fieldPair) string {
	for _, p := range pairs {
		if p.Current == name {
			return p.Legacy
		}
	}
	return name
}
