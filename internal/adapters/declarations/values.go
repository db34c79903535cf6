package declarations

import (
	"encoding/json"
	"fmt"
	"math"
)

// Decoded documents come from encoding/json (float64 numbers) or from YAML round
// tripped through JSON, so numbers are read defensively.

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func intField(obj map[string]any, field, key string) (int, bool, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := asInt(raw)
	if !ok {
		return 0, false, &LoadError{Field: fieldPath(field, key), Reason: fmt.Sprintf("expected integer, got %T", raw)}
	}
	return n, true, nil
}

func floatField(obj map[string]any, field, key string) (float64, bool, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, false, nil
	}
	f, ok := asFloat(raw)
	if !ok {
		return 0, false, &LoadError{Field: fieldPath(field, key), Reason: fmt.Sprintf("expected number, got %T", raw)}
	}
	return f, true, nil
}

func stringField(obj map[string]any, field, key string) (string, error) {
	s, ok := obj[key].(string)
	if !ok || s == "" {
		return "", &LoadError{Field: fieldPath(field, key), Reason: "missing mandatory field"}
	}
	return s, nil
}

func fieldPath(field, key string) string {
	if field == "" {
		return key
	}
	return field + "." + key
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
