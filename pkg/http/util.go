package http

import (
	xutil "copydesk/pkg/util"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// ParseFloatDefault parses string to float64 or returns default if empty/invalid.
// Accepts comma decimal separators.
func ParseFloatDefault(s string, def float64) float64 { return xutil.ParseFloatDefault(s, def) }
