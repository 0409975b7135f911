// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package supabase is a thin REST client for the hosted Supabase backend:
// PostgREST for content rows and GoTrue for identity. It models errors as
// *APIError and knows how to classify the schema-drift faults the data
// access layer recovers from.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const httpTimeout = 30 * time.Second

// Config holds the connection settings for a Client.
type Config struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string
	// AnonKey is the project's anonymous API key.
	AnonKey string
	// HTTPClient overrides the default client. Tests inject a client with
	// a fake round-tripper here; production code leaves it nil.
	HTTPClient *http.Client
}

// Client talks to one Supabase project. It is safe for concurrent use.
type Client struct {
	restURL string
	authURL string
	anonKey string
	http    *http.Client
}

// New creates a Client for the given project.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase: URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase: anon key is required")
	}

	base := strings.TrimSuffix(cfg.URL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: httpTimeout}
	}

	return &Client{
		restURL: base + "/rest/v1",
		authURL: base + "/auth/v1",
		anonKey: cfg.AnonKey,
		http:    httpClient,
	}, nil
}

// Query accumulates PostgREST filter, ordering, and paging parameters.
type Query struct {
	vals url.Values
}

// NewQuery returns an empty query selecting all columns.
func NewQuery() *Query {
	return &Query{vals: url.Values{"select": {"*"}}}
}

// Select sets the column projection.
func (q *Query) Select(columns string) *Query {
	q.vals.Set("select", columns)
	return q
}

// Eq adds an equality filter on a column.
func (q *Query) Eq(column, value string) *Query {
	q.vals.Set(column, "eq."+value)
	return q
}

// ILike adds a case-insensitive pattern filter on a column.
// The pattern uses PostgREST syntax, with * as the wildcard.
func (q *Query) ILike(column, pattern string) *Query {
	q.vals.Set(column, "ilike."+pattern)
	return q
}

// Order sets the ordering column and direction, replacing any previous one.
func (q *Query) Order(column string, descending bool) *Query {
	dir := "asc"
	if descending {
		dir = "desc"
	}
	q.vals.Set("order", column+"."+dir)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.vals.Set("limit", strconv.Itoa(n))
	return q
}

// Encode renders the query string. A nil query selects everything.
func (q *Query) Encode() string {
	if q == nil {
		return "select=*"
	}
	return q.vals.Encode()
}

// GetRows executes a read against a table and returns the raw rows.
func (c *Client) GetRows(ctx context.Context, table string, q *Query) ([]map[string]any, error) {
	body, err := c.rest(ctx, http.MethodGet, table, q, nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s rows: %w", table, err)
	}
	return rows, nil
}

// InsertRow inserts a single row and returns the stored representation.
func (c *Client) InsertRow(ctx context.Context, table string, payload map[string]any) (map[string]any, error) {
	headers := map[string]string{"Prefer": "return=representation"}
	body, err := c.rest(ctx, http.MethodPost, table, nil, payload, headers)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s insert result: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, &APIError{Message: "insert returned no rows"}
	}
	return rows[0], nil
}

// UpdateRows applies a partial update to the rows matched by the query.
func (c *Client) UpdateRows(ctx context.Context, table string, payload map[string]any, q *Query) error {
	_, err := c.rest(ctx, http.MethodPatch, table, q, payload, nil)
	return err
}

// UpsertRow inserts or updates a row keyed by the onConflict column.
func (c *Client) UpsertRow(ctx context.Context, table string, payload map[string]any, onConflict string) error {
	q := NewQuery()
	if onConflict != "" {
		q.vals.Set("on_conflict", onConflict)
	}
	headers := map[string]string{"Prefer": "resolution=merge-duplicates"}
	_, err := c.rest(ctx, http.MethodPost, table, q, payload, headers)
	return err
}

// DeleteRows deletes the rows matched by the query.
func (c *Client) DeleteRows(ctx context.Context, table string, q *Query) error {
	_, err := c.rest(ctx, http.MethodDelete, table, q, nil, nil)
	return err
}

// Ping verifies that the PostgREST endpoint is reachable and accepts the
// configured key. Used by the health probe only.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restURL+"/", nil)
	if err != nil {
		return fmt.Errorf("supabase ping: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase ping: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("ping failed with status %d", resp.StatusCode)}
	}
	return nil
}

// rest performs one PostgREST request and returns the raw response body.
// Non-2xx responses are decoded into *APIError.
func (c *Client) rest(ctx context.Context, method, table string, q *Query, payload any, headers map[string]string) ([]byte, error) {
	reqURL := c.restURL + "/" + url.PathEscape(table)
	if qs := q.Encode(); qs != "" {
		reqURL += "?" + qs
	}

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", table, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new %s request: %w", table, err)
	}
	c.setAuthHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", table, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// setAuthHeaders attaches the project key headers expected by Supabase.
func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
}

// decodeAPIError turns an error response body into an *APIError.
// PostgREST error bodies are JSON objects; anything else becomes the
// raw body as message.
func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", statusCode)
		}
	}
	return apiErr
}
