// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// ListGalleryImages returns gallery images newest first.
func (s *Store) ListGalleryImages(ctx context.Context) ([]model.GalleryImage, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, galleryTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order("createdAt", true))
			rows = r
			return err
		},
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order(legacyName("createdAt", galleryFields), true))
			rows = r
			return err
		},
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase gallery fetch failed")
	}

	images := make([]model.GalleryImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, decodeGalleryImage(normalizeRow(row, galleryFields)))
	}
	return images, nil
}

// CreateGalleryImage inserts a new image and returns its generated id.
func (s *Store) CreateGalleryImage(ctx context.Context, img model.GalleryImage) (string, error) {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	payload := map[string]any{
		"id":             img.ID,
		"title":          img.Title,
		"description":    img.Description,
		"url":            img.URL,
		"category":       img.Category,
		"source":         img.Source,
		"isHeroFeatured": img.IsHeroFeatured,
		"position":       img.Position,
		"createdAt":      time.Now().UTC().Format(time.RFC3339),
	}

	err := execWithFallback(ctx, galleryTables,
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, payload)
			return err
		},
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, mapPayload(payload, galleryFields))
			return err
		},
	)
	if err != nil {
		return "", supabase.Normalize(err, "Supabase gallery create failed")
	}
	return img.ID, nil
}

// UpdateGalleryImage patches the given fields of an image by id.
func (s *Store) UpdateGalleryImage(ctx context.Context, id string, fields map[string]any) error {
	err := execWithFallback(ctx, galleryTables,
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, fields, supabase.NewQuery().Eq("id", id))
		},
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, mapPayload(fields, galleryFields), supabase.NewQuery().Eq("id", id))
		},
	)
	return supabase.Normalize(err, "Supabase gallery update failed")
}

// DeleteGalleryImage removes an image by id.
func (s *Store) DeleteGalleryImage(ctx context.Context, id string) error {
	err := execWithFallback(ctx, galleryTables,
		func(ctx context.Context, table string) error {
			return s.backend.DeleteRows(ctx, table, supabase.NewQuery().Eq("id", id))
		},
		nil,
	)
	return supabase.Normalize(err, "Supabase gallery delete failed")
}

func decodeGalleryImage(row map[string]any) model.GalleryImage {
	return model.GalleryImage{
		ID:             rowString(row, "id"),
		Title:          rowString(row, "title"),
		Description:    rowString(row, "description"),
		URL:            rowString(row, "url"),
		Category:       rowString(row, "category"),
		Source:         rowString(row, "source"),
		IsHeroFeatured: rowBool(row, "isHeroFeatured"),
		Position:       rowInt(row, "position"),
		CreatedAt:      rowTime(row, "createdAt"),
	}
}
