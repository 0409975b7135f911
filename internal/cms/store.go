// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cms is the schema-tolerant data access layer for salon content.
//
// The hosted backend has lived through two naming generations (camelCase
// and snake_case) for several tables and columns, and deployments exist
// on both. Every operation therefore runs against an ordered list of
// candidate table names and retries once per candidate with renamed
// columns when the backend reports a missing column. See fallback.go for
// the exact algorithm.
package cms

import (
	"context"

	"github.com/caraiagency/salon-cms/internal/supabase"
)

// Backend is the subset of the Supabase client the store needs.
// Production code passes *supabase.Client; tests pass a fake.
type Backend interface {
	GetRows(ctx context.Context, table string, q *supabase.Query) ([]map[string]any, error)
	InsertRow(ctx context.Context, table string, payload map[string]any) (map[string]any, error)
	UpdateRows(ctx context.Context, table string, payload map[string]any, q *supabase.Query) error
	UpsertRow(ctx context.Context, table string, payload map[string]any, onConflict string) error
	DeleteRows(ctx context.Context, table string, q *supabase.Query) error
}

// Candidate table names per logical collection, most-preferred first.
// Preference order reflects the newest known deployment naming.
var (
	contentTables     = []string{"contentBlocks", "content_blocks"}
	galleryTables     = []string{"galleryImages", "gallery", "gallery_images"}
	serviceTables     = []string{"services"}
	faqTables         = []string{"faqs"}
	testimonialTables = []string{"testimonials"}
	blogTables        = []string{"blog_posts"}
	profileTables     = []string{"profiles"}
)

// Store mediates between the application and the content backend.
type Store struct {
	backend Backend
}

// New creates a Store over the given backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}
