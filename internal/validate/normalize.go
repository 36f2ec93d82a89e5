package validate

import (
	"strings"
	"unicode"
)

// NormalizeKeys rewrites every map key in the input, recursively, into
// canonical snake_case, so callers may supply either naming convention.
// This is the single normalization step at the boundary; everything past
// it assumes canonical keys.
func NormalizeKeys(input map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(input))
	for k, v := range input {
		out[snakeCase(k)] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return NormalizeKeys(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// snakeCase converts camelCase, PascalCase and kebab-case keys to
// snake_case. Keys already in snake_case pass through unchanged.
func snakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)

	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
