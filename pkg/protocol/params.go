package protocol

import "strconv"

// ParamString reads a string parameter, falling back when absent or of
// the wrong type.
func ParamString(params map[string]any, key, fallback string) string {
	if value, ok := params[key].(string); ok {
		return value
	}

	return fallback
}

// ParamBool reads a boolean parameter, accepting bools and their string
// forms.
func ParamBool(params map[string]any, key string, fallback bool) bool {
	switch value := params[key].(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}

	return fallback
}

// ParamFloat reads a numeric parameter. JSON decoding produces float64,
// but hand-built graphs may carry ints or numeric strings.
func ParamFloat(params map[string]any, key string, fallback float64) float64 {
	switch value := params[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}

	return fallback
}
