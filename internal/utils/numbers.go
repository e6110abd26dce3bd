package utils

import "strconv"

// ParseFloatOrZero parses a numeric string, defaulting un-parseable values to
// 0. Carrier responses carry weights and dimensions as loosely formatted
// strings.
func ParseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
