package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseFloatLocale parses a numeric token that may use either "." or "," as the
// decimal separator. When both appear, the comma is treated as a thousands
// separator and stripped; a lone comma is treated as the decimal point.
func ParseFloatLocale(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimRight(s, ".,")
	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ",", "")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloatDefault parses a locale-tolerant float or returns default if invalid.
func ParseFloatDefault(s string, def float64) float64 {
	if v, ok := ParseFloatLocale(s); ok {
		return v
	}
	return def
}
