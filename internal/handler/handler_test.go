// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caraiagency/salon-cms/internal/cms"
	"github.com/caraiagency/salon-cms/internal/service"
	"github.com/caraiagency/salon-cms/internal/supabase"
	"github.com/caraiagency/salon-cms/internal/testutil"
)

// fakeBackend is an in-memory cms.Backend. Tables listed in rows exist
// and accept any column; everything else fails like a missing relation.
type fakeBackend struct {
	rows map[string][]map[string]any
}

func newBackend(tables ...string) *fakeBackend {
	rows := make(map[string][]map[string]any)
	for _, t := range tables {
		rows[t] = []map[string]any{}
	}
	return &fakeBackend{rows: rows}
}

func (f *fakeBackend) missing(table string) error {
	if _, ok := f.rows[table]; !ok {
		return &supabase.APIError{Code: "42P01", Message: fmt.Sprintf("relation %q does not exist", "public."+table)}
	}
	return nil
}

func (f *fakeBackend) GetRows(_ context.Context, table string, _ *supabase.Query) ([]map[string]any, error) {
	if err := f.missing(table); err != nil {
		return nil, err
	}
	return f.rows[table], nil
}

func (f *fakeBackend) InsertRow(_ context.Context, table string, payload map[string]any) (map[string]any, error) {
	if err := f.missing(table); err != nil {
		return nil, err
	}
	f.rows[table] = append(f.rows[table], payload)
	return payload, nil
}

func (f *fakeBackend) UpdateRows(_ context.Context, table string, payload map[string]any, _ *supabase.Query) error {
	if err := f.missing(table); err != nil {
		return err
	}
	for i := range f.rows[table] {
		for k, v := range payload {
			f.rows[table][i][k] = v
		}
	}
	return nil
}

func (f *fakeBackend) UpsertRow(_ context.Context, table string, payload map[string]any, _ string) error {
	if err := f.missing(table); err != nil {
		return err
	}
	id, _ := payload["id"].(string)
	for i, row := range f.rows[table] {
		if row["id"] == id {
			f.rows[table][i] = payload
			return nil
		}
	}
	f.rows[table] = append(f.rows[table], payload)
	return nil
}

func (f *fakeBackend) DeleteRows(_ context.Context, table string, _ *supabase.Query) error {
	return f.missing(table)
}

// testDeps wires a store over the fake backend plus a real event service
// on a throwaway database.
func testDeps(t *testing.T, backend *fakeBackend) (*cms.Store, *service.EventService) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	return cms.New(backend), service.NewEventService(db)
}

// decodeBody decodes a JSON response body.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
