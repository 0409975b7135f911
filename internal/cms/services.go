// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/supabase"
)

// ListServices returns all services ordered by position.
func (s *Store) ListServices(ctx context.Context) ([]model.Service, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, serviceTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order("position", false))
			rows = r
			return err
		},
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order(legacyName("position", serviceFields), false))
			rows = r
			return err
		},
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase services fetch failed")
	}

	services := make([]model.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, decodeService(normalizeRow(row, serviceFields)))
	}
	return services, nil
}

// ListServiceCategories groups services by category for the public
// services page. Categories come out in first-seen order of their
// lowest-positioned service; services keep their position order within
// each group. Services with an empty category land in "Other".
func (s *Store) ListServiceCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	services, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var categories []model.ServiceCategory
	for _, svc := range services {
		name := svc.Category
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, model.ServiceCategory{
				ID:       name,
				Name:     name,
				Position: len(categories),
			})
		}
		categories[i].Services = append(categories[i].Services, svc)
	}
	for i := range categories {
		sort.SliceStable(categories[i].Services, func(a, b int) bool {
			return categories[i].Services[a].Position < categories[i].Services[b].Position
		})
	}
	return categories, nil
}

// CreateService inserts a new service and returns its generated id.
func (s *Store) CreateService(ctx context.Context, svc model.Service) (string, error) {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	payload := map[string]any{
		"id":              svc.ID,
		"title":           svc.Title,
		"description":     svc.Description,
		"category":        svc.Category,
		"price":           svc.Price,
		"durationMinutes": svc.DurationMinutes,
		"position":        svc.Position,
		"is_active":       svc.IsActive,
		"is_coming_soon":  svc.IsComingSoon,
		"is_bookable":     svc.IsBookable,
		"isFeatured":      svc.IsFeatured,
	}

	err := execWithFallback(ctx, serviceTables,
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, payload)
			return err
		},
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, mapPayload(payload, serviceFields))
			return err
		},
	)
	if err != nil {
		return "", supabase.Normalize(err, "Supabase service create failed")
	}
	return svc.ID, nil
}

// UpdateService patches the given fields of a service by id.
func (s *Store) UpdateService(ctx context.Context, id string, fields map[string]any) error {
	err := execWithFallback(ctx, serviceTables,
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, fields, supabase.NewQuery().Eq("id", id))
		},
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, mapPayload(fields, serviceFields), supabase.NewQuery().Eq("id", id))
		},
	)
	return supabase.Normalize(err, "Supabase service update failed")
}

// DeleteService removes a service by id.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	err := execWithFallback(ctx, serviceTables,
		func(ctx context.Context, table string) error {
			return s.backend.DeleteRows(ctx, table, supabase.NewQuery().Eq("id", id))
		},
		nil,
	)
	return supabase.Normalize(err, "Supabase service delete failed")
}

func decodeService(row map[string]any) model.Service {
	return model.Service{
		ID:              rowString(row, "id"),
		Title:           rowString(row, "title"),
		Description:     rowString(row, "description"),
		Category:        rowString(row, "category"),
		Price:           rowString(row, "price"),
		DurationMinutes: rowInt(row, "durationMinutes"),
		Position:        rowInt(row, "position"),
		IsActive:        rowBoolDefault(row, "is_active", true),
		IsComingSoon:    rowBool(row, "is_coming_soon"),
		IsBookable:      rowBoolDefault(row, "is_bookable", true),
		IsFeatured:      rowBool(row, "isFeatured"),
	}
}
