// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"

	"github.com/google/uuid"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// ListFAQs returns FAQ entries ordered by position.
func (s *Store) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, faqTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order("position", false))
			rows = r
			return err
		},
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order(legacyName("position", faqFields), false))
			rows = r
			return err
		},
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase FAQ fetch failed")
	}

	faqs := make([]model.FAQ, 0, len(rows))
	for _, row := range rows {
		faqs = append(faqs, decodeFAQ(normalizeRow(row, faqFields)))
	}
	return faqs, nil
}

// CreateFAQ inserts a new FAQ entry and returns its generated id.
func (s *Store) CreateFAQ(ctx context.Context, faq model.FAQ) (string, error) {
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}
	payload := map[string]any{
		"id":       faq.ID,
		"question": faq.Question,
		"answer":   faq.Answer,
		"position": faq.Position,
	}

	err := execWithFallback(ctx, faqTables,
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, payload)
			return err
		},
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, mapPayload(payload, faqFields))
			return err
		},
	)
	if err != nil {
		return "", supabase.Normalize(err, "Supabase FAQ create failed")
	}
	return faq.ID, nil
}

// UpdateFAQ patches the given fields of a FAQ entry by id.
func (s *Store) UpdateFAQ(ctx context.Context, id string, fields map[string]any) error {
	err := execWithFallback(ctx, faqTables,
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, fields, supabase.NewQuery().Eq("id", id))
		},
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, mapPayload(fields, faqFields), supabase.NewQuery().Eq("id", id))
		},
	)
	return supabase.Normalize(err, "Supabase FAQ update failed")
}

// DeleteFAQ removes a FAQ entry by id.
func (s *Store) DeleteFAQ(ctx context.Context, id string) error {
	err := execWithFallback(ctx, faqTables,
		func(ctx context.Context, table string) error {
			return s.backend.DeleteRows(ctx, table, supabase.NewQuery().Eq("id", id))
		},
		nil,
	)
	return supabase.Normalize(err, "Supabase FAQ delete failed")
}

func decodeFAQ(row map[string]any) model.FAQ {
	return model.FAQ{
		ID:       rowString(row, "id"),
		Question: rowString(row, "question"),
		Answer:   rowString(row, "answer"),
		Position: rowInt(row, "position"),
	}
}
