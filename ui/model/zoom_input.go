package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseZoomPercent reads a typed zoom value such as "150", "150%" or "150.4".
// Fractions round to the nearest percent; range clamping is left to the session.
func ParseZoomPercent(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Round(f)), true
}
