package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(-1, 2)

	assert.Equal(t, V(2, 6), a.Add(b))
	assert.Equal(t, V(4, 2), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, 5.0, a.Dot(b))
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, 25.0, a.LenSq())
}

func TestNormalizeZeroSafe(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())

	n := V(0, -7).Normalize()
	assert.InDelta(t, 0.0, n.X, 1e-12)
	assert.InDelta(t, -1.0, n.Y, 1e-12)
	assert.InDelta(t, 1.0, V(3, 4).Normalize().Len(), 1e-12)
}

func TestAngleDeg(t *testing.T) {
	tests := []struct {
		v    Vec2
		want float64
	}{
		{V(1, 0), 0},
		{V(0, 1), 90},
		{V(-1, 0), 180},
		{V(0, -1), -90},
		{V(1, 1), 45},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.v.AngleDeg(), 1e-9, "angle of %+v", tt.v)
	}
}

func TestRotateAndFlip(t *testing.T) {
	r := V(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, r.X, 1e-12)
	assert.InDelta(t, 1.0, r.Y, 1e-12)

	assert.Equal(t, V(2, -3), V(2, 3).FlipY())
}

func TestIsFinite(t *testing.T) {
	assert.True(t, V(1, 2).IsFinite())
	assert.False(t, V(math.NaN(), 0).IsFinite())
	assert.False(t, V(0, math.Inf(-1)).IsFinite())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, -8.0, Clamp(-100, -8, 8))
	assert.Equal(t, 8.0, Clamp(12, -8, 8))
	assert.Equal(t, 0.5, Clamp(0.5, -8, 8))
}

func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(1e9, 1e9+1, 1e-6))
	assert.False(t, NearlyEqual(1, 1.1, 1e-6))
	assert.True(t, NearlyEqual(0, 1e-13, 1e-12))
}
