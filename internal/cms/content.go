// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"time"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// ListContentBlocks returns content blocks, newest first, optionally
// filtered to keys starting with prefix.
func (s *Store) ListContentBlocks(ctx context.Context, prefix string) ([]model.ContentBlock, error) {
	buildQuery := func(orderCol string) *supabase.Query {
		q := supabase.NewQuery().Order(orderCol, true)
		if prefix != "" {
			q.ILike("key", prefix+"*")
		}
		return q
	}

	var rows []map[string]any
	err := execWithFallback(ctx, contentTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, buildQuery("updatedAt"))
			rows = r
			return err
		},
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, buildQuery(legacyName("updatedAt", contentFields)))
			rows = r
			return err
		},
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase content fetch failed")
	}

	blocks := make([]model.ContentBlock, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, decodeContentBlock(normalizeRow(row, contentFields)))
	}
	return blocks, nil
}

// GetContentBlock returns a single block by key, or nil when absent.
func (s *Store) GetContentBlock(ctx context.Context, key string) (*model.ContentBlock, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, contentTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Eq("key", key).Limit(1))
			rows = r
			return err
		},
		nil, // no renamed columns referenced
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase content fetch failed")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	block := decodeContentBlock(normalizeRow(rows[0], contentFields))
	return &block, nil
}

// UpsertContentBlock creates or overwrites the block for a key.
// The block id doubles as the key, so repeating the same input is a
// no-op at the backend.
func (s *Store) UpsertContentBlock(ctx context.Context, key, value string) error {
	payload := map[string]any{
		"id":        key,
		"key":       key,
		"value":     value,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}

	err := execWithFallback(ctx, contentTables,
		func(ctx context.Context, table string) error {
			return s.backend.UpsertRow(ctx, table, payload, "id")
		},
		func(ctx context.Context, table string) error {
			return s.backend.UpsertRow(ctx, table, mapPayload(payload, contentFields), "id")
		},
	)
	return supabase.Normalize(err, "Supabase content upsert failed")
}

func decodeContentBlock(row map[string]any) model.ContentBlock {
	return model.ContentBlock{
		ID:        rowString(row, "id"),
		Key:       rowString(row, "key"),
		Value:     rowString(row, "value"),
		UpdatedAt: rowTime(row, "updatedAt"),
	}
}
