package mapsafe

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if val, ok := m[key]; ok {
		switch any(defaultValue).(type) {
		case int:
			switch x := val.(type) {
			case int:
				return any(x).(T)
			case float64:
				return any(int(x)).(T)
			}
		case float64:
			switch x := val.(type) {
			case float64:
				return any(x).(T)
			case int:
				return any(float64(x)).(T)
			}
		case string:
			if s, ok := val.(string); ok {
				return any(s).(T)
			}
		case bool:
			if b, ok := val.(bool); ok {
				return any(b).(T)
			}
		default:
			// fallback: if type matches exactly
			if v2, ok := val.(T); ok {
				return v2
			}
		}
	}
	return defaultValue
}

// GetFloats retrieves a numeric slice from a map[string]any.
// YAML decodes sequences as []any, so each element is converted individually.
// Missing keys or non-numeric elements yield the default value.
func GetFloats(m map[string]any, key string, defaultValue []float64) []float64 {
	val, ok := m[key]
	if !ok {
		return defaultValue
	}

	raw, ok := val.([]any)
	if !ok {
		return defaultValue
	}

	out := make([]float64, 0, len(raw))
	for _, elem := range raw {
		switch x := elem.(type) {
		case float64:
			out = append(out, x)
		case int:
			out = append(out, float64(x))
		default:
			return defaultValue
		}
	}

	return out
}
