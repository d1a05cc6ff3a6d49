package utils

import "strconv"

// ToFloat64 converts various numeric types to float64.
// Returns the converted value and true if successful, or 0 and false if
// conversion fails. Settings values arrive as interface{} after JSON or YAML
// decoding, so every common numeric representation has to be accepted.
func ToFloat64(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// ToInt converts a value to int via ToFloat64.
func ToInt(v interface{}) (int, bool) {
	f, ok := ToFloat64(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// ToBool converts a value to bool, accepting native bools and the usual
// string spellings.
func ToBool(v interface{}) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// ToString converts a value to string, rejecting non-string types rather
// than formatting them.
func ToString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ToFloatSlice converts a slice-valued setting into floats. Non-numeric
// elements are skipped.
func ToFloatSlice(v interface{}) ([]float64, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if f, fok := ToFloat64(item); fok {
			out = append(out, f)
		}
	}
	return out, true
}
