// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caraiagency/salon-cms/internal/model"
	"github.com/caraiagency/salon-cms/internal/store"
	"github.com/caraiagency/salon-cms/internal/testutil"
)

func TestCreateAndListEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	ctx := context.Background()

	created, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelWarning,
		Category:  model.EventCategoryAuth,
		Message:   "login failed",
		UserID:    sql.NullString{String: "user-1", Valid: true},
		IPAddress: "203.0.113.7",
		Metadata:  `{"email":"someone@example.com"}`,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	events, err := queries.ListRecentEvents(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "login failed", events[0].Message)
	assert.Equal(t, model.EventCategoryAuth, events[0].Category)
	require.True(t, events[0].UserID.Valid)
	assert.Equal(t, "user-1", events[0].UserID.String)
	assert.Equal(t, "203.0.113.7", events[0].IPAddress)
}

func TestListRecentEvents_CategoryFilterAndLimit(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	ctx := context.Background()

	for i, category := range []string{model.EventCategoryAuth, model.EventCategoryContent, model.EventCategoryContent} {
		_, err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  category,
			Message:   "event",
			Metadata:  "{}",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	events, err := queries.ListRecentEvents(ctx, model.EventCategoryContent, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCategoryContent, events[0].Category)
}

func TestDeleteOldEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	ctx := context.Background()
	now := time.Now()

	for _, age := range []time.Duration{-100 * 24 * time.Hour, -time.Hour} {
		_, err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   "event",
			Metadata:  "{}",
			CreatedAt: now.Add(age),
		})
		require.NoError(t, err)
	}

	require.NoError(t, queries.DeleteOldEvents(ctx, now.Add(-90*24*time.Hour)))

	events, err := queries.ListRecentEvents(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
