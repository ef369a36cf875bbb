package utils

import (
	"math"
	"math/rand/v2"
	"time"
)

// RandomFloat returns a uniform float64 in [0.0, 1.0) for draws.
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // game randomness, not security critical
}

// RoundToInt64 rounds half away from zero, saturating at the int64 range
func RoundToInt64(v float64) int64 {
	r := math.Round(v)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// CeilSeconds converts a duration to whole seconds, rounding up and never
// returning less than zero.
func CeilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Seconds()))
}
