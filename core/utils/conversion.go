package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInt converts a cell value to int. Whole floats such as 12.0 are
// accepted, fractional ones are truncated toward zero. Blank or non-numeric
// values are an error.
func ParseInt(val any) (int, error) {
	switch v := val.(type) {
	case nil:
		return 0, fmt.Errorf("empty value")
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	}
	s := strings.TrimSpace(ToString(val))
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%v is not a representable integer", f)
	}
	return int(f), nil
}

// ToString converts a cell value to its text.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToBool reads a flag value. true, 1, yes and on (any case) are true,
// everything else is false.
func ToBool(val any) bool {
	if b, ok := val.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(ToString(val))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
