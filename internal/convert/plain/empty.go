package plain

// DropEmpty returns a copy of data without nil values, empty strings and
// empty maps or slices. Nested maps and slices are cleaned first, so a
// container that only held empty values disappears from its parent too.
func DropEmpty(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		cleaned := dropEmptyValue(value)
		if isEmpty(cleaned) {
			continue
		}
		out[key] = cleaned
	}
	return out
}

func dropEmptyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return DropEmpty(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			cleaned := dropEmptyValue(item)
			if isEmpty(cleaned) {
				continue
			}
			out = append(out, cleaned)
		}
		return out
	default:
		return value
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
