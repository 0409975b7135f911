// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"

	"github.com/google/uuid"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// ListTestimonials returns testimonials ordered by position.
func (s *Store) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, testimonialTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order("position", false))
			rows = r
			return err
		},
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order(legacyName("position", testimonialFields), false))
			rows = r
			return err
		},
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase testimonials fetch failed")
	}

	testimonials := make([]model.Testimonial, 0, len(rows))
	for _, row := range rows {
		testimonials = append(testimonials, decodeTestimonial(normalizeRow(row, testimonialFields)))
	}
	return testimonials, nil
}

// CreateTestimonial inserts a new testimonial and returns its generated id.
func (s *Store) CreateTestimonial(ctx context.Context, t model.Testimonial) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	payload := map[string]any{
		"id":         t.ID,
		"clientName": t.ClientName,
		"location":   t.Location,
		"text":       t.Text,
		"rating":     t.Rating,
		"position":   t.Position,
		"featured":   t.Featured,
	}

	err := execWithFallback(ctx, testimonialTables,
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, payload)
			return err
		},
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, mapPayload(payload, testimonialFields))
			return err
		},
	)
	if err != nil {
		return "", supabase.Normalize(err, "Supabase testimonial create failed")
	}
	return t.ID, nil
}

// UpdateTestimonial patches the given fields of a testimonial by id.
func (s *Store) UpdateTestimonial(ctx context.Context, id string, fields map[string]any) error {
	err := execWithFallback(ctx, testimonialTables,
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, fields, supabase.NewQuery().Eq("id", id))
		},
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, mapPayload(fields, testimonialFields), supabase.NewQuery().Eq("id", id))
		},
	)
	return supabase.Normalize(err, "Supabase testimonial update failed")
}

// DeleteTestimonial removes a testimonial by id.
func (s *Store) DeleteTestimonial(ctx context.Context, id string) error {
	err := execWithFallback(ctx, testimonialTables,
		func(ctx context.Context, table string) error {
			return s.backend.DeleteRows(ctx, table, supabase.NewQuery().Eq("id", id))
		},
		nil,
	)
	return supabase.Normalize(err, "Supabase testimonial delete failed")
}

func decodeTestimonial(row map[string]any) model.Testimonial {
	return model.Testimonial{
		ID:         rowString(row, "id"),
		ClientName: rowString(row, "clientName"),
		Location:   rowString(row, "location"),
		Text:       rowString(row, "text"),
		Rating:     rowInt(row, "rating"),
		Position:   rowInt(row, "position"),
		Featured:   rowBool(row, "featured"),
	}
}
