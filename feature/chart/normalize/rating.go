package normalize

import (
	"strconv"
	"strings"
)

// ParseRating extracts the numeric rating from a difficulty label such
// as "13" or "13+". The plus modifier adds plusStep to the base value
// (the step differs between services). The second return is false when
// the label contains no digits at all; callers must treat that as "no
// rating", not zero.
func ParseRating(label string, plusStep float64) (float64, bool) {
	if label == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range label {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}

	base, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	if strings.ContainsRune(label, '+') {
		return base + plusStep, true
	}
	return base, true
}
