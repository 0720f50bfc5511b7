// Package sanitize neutralizes NoSQL operator injection in untrusted input.
// Mapping keys that start with '$' or contain '.' are dropped recursively;
// everything else passes through unchanged. Dropping is silent: a security
// filter gives no feedback about what it discarded.
package sanitize

import "strings"

// Clean returns a structurally identical copy of v with dangerous mapping
// keys removed at every nesting depth. Arrays are walked element-wise;
// scalars and nil are returned as-is.
func Clean(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if Dangerous(k) {
				continue
			}
			out[k] = Clean(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Clean(child)
		}
		return out
	default:
		return v
	}
}

// Dangerous reports whether a mapping key could be interpreted as a MongoDB
// operator or a field path.
func Dangerous(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}
