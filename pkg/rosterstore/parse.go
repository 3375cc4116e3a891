package rosterstore

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// tzPattern matches UTC offsets like "5", "+5", "-12:30".
var tzPattern = regexp.MustCompile(`^([+-]?)(\d{1,2})(?::(\d{2}))?$`)

// ParseTimezone converts a UTC offset string to a point on the 24-hour
// circle, normalized to [0, 24). "-12:30" becomes 11.5.
func ParseTimezone(raw string) (float64, error) {
	m := tzPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, fmt.Errorf("could not parse %q as a timezone offset", raw)
	}

	hours, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %q as a timezone offset: %w", raw, err)
	}
	if m[3] != "" {
		minutes, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse %q as a timezone offset: %w", raw, err)
		}
		hours += minutes / 60
	}
	if m[1] == "-" {
		hours = -hours
	}

	return math.Mod(math.Mod(hours, 24)+24, 24), nil
}
