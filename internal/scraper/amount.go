package scraper

import (
	"strconv"
	"strings"
)

// ParseAmount converts a scraped amount string like "$1,200.50" to a float by
// keeping only digits and the decimal point. Anything unparsable is 0, never
// an error: a donor with an unreadable amount is still a donor.
func ParseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	var sb strings.Builder
	for _, ch := range raw {
		if (ch >= '0' && ch <= '9') || ch == '.' {
			sb.WriteRune(ch)
		}
	}
	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseDecimal parses a plain decimal string as entered on the admin form.
// Unlike ParseAmount it does no symbol stripping; it still never fails and
// never returns a negative value.
func ParseDecimal(raw string) float64 {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
