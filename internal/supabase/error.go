// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package supabase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a backend error by the only signal the hosted
// backend gives us: its message text. The two recognized kinds mark the
// schema-drift cases the data access layer knows how to recover from;
// everything else is Other and is never retried.
type ErrorKind int

const (
	// ErrorOther is any backend fault that is not a recognized schema
	// mismatch: auth failures, constraint violations, network errors.
	ErrorOther ErrorKind = iota
	// ErrorMissingColumn means the query referenced a column name absent
	// from the current schema generation.
	ErrorMissingColumn
	// ErrorMissingRelation means the referenced table does not exist under
	// that name; the caller should try the next candidate name.
	ErrorMissingRelation
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case ErrorMissingColumn:
		return "missing_column"
	case ErrorMissingRelation:
		return "missing_relation"
	default:
		return "other"
	}
}

// APIError is the normalized shape of a PostgREST error response.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
	Code       string `json:"code"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.Message, e.Details, e.Hint} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	msg := strings.Join(parts, " | ")
	if msg == "" {
		msg = "unknown Supabase error"
	}
	if e.Code != "" {
		msg += fmt.Sprintf(" (code %s)", e.Code)
	}
	return msg
}

// Classify inspects an error and reports whether it is one of the two
// recognized schema-mismatch faults. The match is a deliberate textual
// shim over the backend's error wording: a message containing both
// "column" and "does not exist" is a missing column, "relation" and
// "does not exist" a missing relation. Callers must not depend on any
// wording beyond these substrings. A nil error classifies as Other.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorOther
	}

	msg := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}

	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "column") && strings.Contains(msg, "does not exist"):
		return ErrorMissingColumn
	case strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return ErrorMissingRelation
	default:
		return ErrorOther
	}
}

// Normalize wraps a backend error with operation context, producing the
// single error value surfaced to callers. The result always carries a
// human-readable message; the original error remains reachable through
// errors.Unwrap.
func Normalize(err error, context string) error {
	if err == nil {
		return nil
	}
	if context == "" {
		return err
	}
	if strings.Contains(err.Error(), context) {
		return err
	}
	return fmt.Errorf("%s: %w", context, err)
}
