// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"encoding/json"
	"strconv"
	"time"
)

// Row value accessors. Backend rows arrive as map[string]any decoded from
// JSON, so numbers are float64 and timestamps are RFC 3339 strings.

func rowString(row map[string]any, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func rowBool(row map[string]any, key string) bool {
	if v, ok := row[key].(bool); ok {
		return v
	}
	return false
}

// rowBoolDefault is rowBool with an explicit default for absent fields.
func rowBoolDefault(row map[string]any, key string, def bool) bool {
	if v, ok := row[key].(bool); ok {
		return v
	}
	return def
}

func rowInt(row map[string]any, key string) int {
	switch v := row[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case int:
		return v
	}
	return 0
}

// rowTime parses a timestamp field. PostgREST emits RFC 3339 with or
// without a timezone offset depending on the column type.
func rowTime(row map[string]any, key string) time.Time {
	s, ok := row[key].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
