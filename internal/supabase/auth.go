// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Identity is the authenticated user object supplied by the identity
// provider. Only id, email, and the two role metadata slots are read.
type Identity struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// MetadataRole returns the role string carried on the identity itself,
// preferring provider-level metadata over user-level. Empty when absent.
func (i *Identity) MetadataRole() string {
	if i == nil {
		return ""
	}
	if role, ok := i.AppMetadata["role"].(string); ok && role != "" {
		return role
	}
	if role, ok := i.UserMetadata["role"].(string); ok && role != "" {
		return role
	}
	return ""
}

// AuthSession is the result of a successful password sign-in.
type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         Identity `json:"user"`
}

// SignInWithPassword authenticates an email/password pair against GoTrue.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.auth(ctx, http.MethodPost, "/token?grant_type=password", "", payload)
	if err != nil {
		return nil, err
	}

	var session AuthSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decoding auth session: %w", err)
	}
	if session.AccessToken == "" || session.User.ID == "" {
		return nil, &APIError{Message: "auth response missing access token or user"}
	}
	return &session, nil
}

// SignOut revokes the given access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.auth(ctx, http.MethodPost, "/logout", accessToken, nil)
	return err
}

// auth performs one GoTrue request. When accessToken is empty the anon
// key authorizes the call.
func (c *Client) auth(ctx context.Context, method, path, accessToken string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal auth payload: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.authURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new auth request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	token := accessToken
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read auth response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeAuthError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// decodeAuthError maps GoTrue error bodies onto *APIError. GoTrue uses
// different field names than PostgREST ("msg", "error_description").
func decodeAuthError(statusCode int, body []byte) *APIError {
	var raw struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &raw)

	msg := raw.Msg
	if msg == "" {
		msg = raw.Message
	}
	if msg == "" {
		msg = raw.ErrorDescription
	}
	if msg == "" {
		msg = raw.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("auth request failed with status %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
