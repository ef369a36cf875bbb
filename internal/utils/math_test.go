package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundToInt64(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{in: 0, want: 0},
		{in: 2.4, want: 2},
		{in: 2.5, want: 3},
		{in: 37.5, want: 38},
		{in: -2.5, want: -3},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: math.MaxInt64},
		{in: 1e30, want: math.MaxInt64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToInt64(tt.in), "RoundToInt64(%v)", tt.in)
	}
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, int64(0), CeilSeconds(-time.Second))
	assert.Equal(t, int64(0), CeilSeconds(0))
	assert.Equal(t, int64(1), CeilSeconds(time.Millisecond))
	assert.Equal(t, int64(30), CeilSeconds(30*time.Second))
	assert.Equal(t, int64(31), CeilSeconds(30*time.Second+time.Nanosecond))
}

func TestRandomFloat_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		f := RandomFloat()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}
