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

// ListBlogPosts returns posts newest first. When publishedOnly is set,
// drafts (zero publishedAt) and future-dated posts are filtered out.
func (s *Store) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, blogTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order("publishedAt", true))
			rows = r
			return err
		},
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Order(legacyName("publishedAt", blogFields), true))
			rows = r
			return err
		},
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase blog fetch failed")
	}

	now := time.Now()
	posts := make([]model.BlogPost, 0, len(rows))
	for _, row := range rows {
		post := decodeBlogPost(normalizeRow(row, blogFields))
		if publishedOnly && (post.PublishedAt.IsZero() || post.PublishedAt.After(now)) {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// GetBlogPostBySlug returns a single post, or nil when no post has the slug.
func (s *Store) GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var rows []map[string]any
	err := execWithFallback(ctx, blogTables,
		func(ctx context.Context, table string) error {
			r, err := s.backend.GetRows(ctx, table, supabase.NewQuery().Eq("slug", slug).Limit(1))
			rows = r
			return err
		},
		nil, // slug never changed names
	)
	if err != nil {
		return nil, supabase.Normalize(err, "Supabase blog fetch failed")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	post := decodeBlogPost(normalizeRow(rows[0], blogFields))
	return &post, nil
}

// CreateBlogPost inserts a new post and returns its generated id.
func (s *Store) CreateBlogPost(ctx context.Context, post model.BlogPost) (string, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	payload := map[string]any{
		"id":       post.ID,
		"title":    post.Title,
		"slug":     post.Slug,
		"excerpt":  post.Excerpt,
		"body":     post.Body,
		"imageUrl": post.ImageURL,
	}
	if !post.PublishedAt.IsZero() {
		payload["publishedAt"] = post.PublishedAt.UTC().Format(time.RFC3339)
	}

	err := execWithFallback(ctx, blogTables,
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, payload)
			return err
		},
		func(ctx context.Context, table string) error {
			_, err := s.backend.InsertRow(ctx, table, mapPayload(payload, blogFields))
			return err
		},
	)
	if err != nil {
		return "", supabase.Normalize(err, "Supabase blog create failed")
	}
	return post.ID, nil
}

// UpdateBlogPost patches the given fields of a post by id.
func (s *Store) UpdateBlogPost(ctx context.Context, id string, fields map[string]any) error {
	err := execWithFallback(ctx, blogTables,
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, fields, supabase.NewQuery().Eq("id", id))
		},
		func(ctx context.Context, table string) error {
			return s.backend.UpdateRows(ctx, table, mapPayload(fields, blogFields), supabase.NewQuery().Eq("id", id))
		},
	)
	return supabase.Normalize(err, "Supabase blog update failed")
}

// DeleteBlogPost removes a post by id.
func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	err := execWithFallback(ctx, blogTables,
		func(ctx context.Context, table string) error {
			return s.backend.DeleteRows(ctx, table, supabase.NewQuery().Eq("id", id))
		},
		nil,
	)
	return supabase.Normalize(err, "Supabase blog delete failed")
}

func decodeBlogPost(row map[string]any) model.BlogPost {
	return model.BlogPost{
		ID:          rowString(row, "id"),
		Title:       rowString(row, "title"),
		Slug:        rowString(row, "slug"),
		Excerpt:     rowString(row, "excerpt"),
		Body:        rowString(row, "body"),
		ImageURL:    rowString(row, "imageUrl"),
		PublishedAt: rowTime(row, "publishedAt"),
	}
}
