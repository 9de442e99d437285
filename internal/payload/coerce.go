package payload

import (
	"github.com/spf13/cast"
)

// Truthy reports whether v counts as present in the upstream API's sense:
// nil, false, zero, "", "0" and empty arrays or objects are absent.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case *Object:
		return t.Len() > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// String coerces a scalar to its string form.
func String(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "1"
		}
		return ""
	}
	return cast.ToString(v)
}

// Int coerces a scalar to an int. Unparseable strings become 0.
func Int(v any) int {
	if s, ok := v.(string); ok {
		return int(cast.ToFloat64(s))
	}
	return cast.ToInt(v)
}

// Strings returns v as a list of strings. Lists have their scalar items
// converted, any other value becomes a single-element list.
func Strings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{String(v)}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if !isScalar(item) {
			continue
		}
		out = append(out, String(item))
	}
	return out
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, float64, int, int64:
		return true
	default:
		return false
	}
}
