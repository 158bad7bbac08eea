package tabular

import (
	"strconv"
	"strings"
)

// absentSentinels are the cell values mark sheets use for an absent student
// or an intentionally blank cell. They all score as zero.
var absentSentinels = map[string]struct{}{
	"AB":   {},
	"NAN":  {},
	"":     {},
	"NONE": {},
	"N/A":  {},
}

// ParseMark converts a raw mark cell to a number. Absent/empty sentinels and
// anything unparsable map to 0.0; this function never fails, a batch must
// not abort on one bad cell.
func ParseMark(raw string) float64 {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if _, absent := absentSentinels[cleaned]; absent {
		return 0.0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// SkipIdentifier reports whether an identifier cell should be silently
// dropped: empty cells, the literal "nan" pandas-style exports write for
// blanks, and rows that echo a header token (sheets pasted together often
// repeat the header mid-data). Echoes must be full header tokens like
// "REG NO" or "S.NO" so that real roll numbers sharing a prefix survive.
func SkipIdentifier(id string, headerEchoes ...string) bool {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return true
	}
	upper := strings.ToUpper(trimmed)
	for _, echo := range headerEchoes {
		if echo == "" {
			continue
		}
		if strings.Contains(upper, strings.ToUpper(echo)) {
			return true
		}
	}
	return false
}
