package rules

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseLeadingFloat reads the longest numeric prefix of s, ignoring leading
// whitespace, as lenient numeric form input is read:
// "12px" is 12, "  3.5e2x" is 350, "abc" is NaN.
func ParseLeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	m := leadingFloat.FindString(s)
	if m == "" {
		return math.NaN()
	}

	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out of range values still carry a sign and magnitude.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}
