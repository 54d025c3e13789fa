// Where: internal/domain/value/value.go
// What: Loose-typed conversion helpers for decoded template nodes.
// Why: Template YAML arrives as any; keep the coercion rules in one place.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// AsMap returns the value as a string-keyed map, nil when it is not one.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsSlice returns the value as a slice. Scalars are wrapped into a
// single-element slice so callers can treat "one or many" fields uniformly.
func AsSlice(v any) []any {
	if v == nil {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}
	return []any{v}
}

// AsString renders the value as a string; nil becomes the empty string.
func AsString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(v)
	}
}

// AsStringDefault renders the value as a string, falling back when empty.
func AsStringDefault(v any, fallback string) string {
	if s := AsString(v); s != "" {
		return s
	}
	return fallback
}

// coerceInt handles the int shapes YAML and JSON decoding produce, plus
// numeric strings.
func coerceInt(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		return int(typed), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// AsInt converts the value to an int, 0 when it cannot be converted.
func AsInt(v any) int {
	out, _ := coerceInt(v)
	return out
}

// AsIntDefault converts the value to an int, falling back when it cannot be
// converted.
func AsIntDefault(v any, fallback int) int {
	if out, ok := coerceInt(v); ok {
		return out
	}
	return fallback
}

// AsStringMap flattens a string-keyed map into string values, nil when the
// value is not a map.
func AsStringMap(v any) map[string]string {
	m := AsMap(v)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for key, val := range m {
		out[key] = AsString(val)
	}
	return out
}

// EnsureTrailingSlash appends a trailing slash to non-empty paths.
func EnsureTrailingSlash(path string) string {
	if path == "" || strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
