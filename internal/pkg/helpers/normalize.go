package helpers

import (
	"strconv"
	"strings"
)

// NormalizeCode canonicalizes a course code: upper-case, surrounding
// whitespace removed. Stored codes and query arguments both go through this
// so lookups written with inconsistent case still match. Idempotent.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AtoiDefault parses s as an integer, returning def when s is empty or
// unparsable. Spreadsheet cells carry numbers as strings more often than not.
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// Cells exported from spreadsheets sometimes read "2.0" for 2.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

// ParseFloatDefault parses s as a float, returning def on failure.
func ParseFloatDefault(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return def
}
