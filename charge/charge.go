// Package charge holds the ordered, mutable set of point charges placed
// around the fixed central charge.
package charge

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/vmath"
)

// Charge is a point charge in world units; sign of Q is its polarity
type Charge struct {
	X float64
	Y float64
	Q float64
}

// Pos returns the position as a vector
func (c Charge) Pos() vmath.Vec2 {
	return vmath.V(c.X, c.Y)
}

// Polarity returns the polarity encoded by the sign of Q
// Zero takes the sign bit, so -0 stays negative
func (c Charge) Polarity() Polarity {
	if math.Signbit(c.Q) {
		return Negative
	}
	return Positive
}

// Central is the fixed reference charge at the origin
type Central struct {
	Q float64
}

// DefaultCentral returns the +1 central charge
func DefaultCentral() Central {
	return Central{Q: constants.CentralChargeQ}
}

// Pos is always the origin
func (Central) Pos() vmath.Vec2 {
	return vmath.Vec2{}
}

// Polarity is the sign of a charge
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

func (p Polarity) String() string {
	if p == Negative {
		return "negative"
	}
	return "positive"
}

// Sign returns +1 or -1
func (p Polarity) Sign() float64 {
	if p == Negative {
		return -1
	}
	return 1
}

// Symbol returns the single-glyph label
func (p Polarity) Symbol() string {
	if p == Negative {
		return "−"
	}
	return "+"
}

// Toggle returns the opposite polarity
func (p Polarity) Toggle() Polarity {
	if p == Negative {
		return Positive
	}
	return Negative
}

// ParsePolarity accepts "positive"/"+" and "negative"/"-"
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pos", "+":
		return Positive, nil
	case "negative", "neg", "-", "−":
		return Negative, nil
	}
	return Positive, fmt.Errorf("%w: unknown polarity %q", ErrValidation, s)
}

// SignPolicy decides how a magnitude edit treats the existing sign
type SignPolicy int

const (
	// PreserveSign keeps the existing polarity and stores |value|
	PreserveSign SignPolicy = iota
	// LiteralSign stores the typed value as is
	LiteralSign
)

func (p SignPolicy) String() string {
	if p == LiteralSign {
		return "literal"
	}
	return "preserve"
}

// ParseSignPolicy accepts "preserve" or "literal"
func ParseSignPolicy(s string) (SignPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preserve":
		return PreserveSign, nil
	case "literal":
		return LiteralSign, nil
	}
	return PreserveSign, fmt.Errorf("%w: unknown sign policy %q", ErrValidation, s)
}

// apply resolves the stored magnitude for an edit of old to value
func (p SignPolicy) apply(old, value float64) float64 {
	if p == LiteralSign {
		return value
	}
	return math.Copysign(math.Abs(value), old)
}

// Bounds is an axis-aligned rectangle in world units
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultBounds returns x∈[-8,8], y∈[-5,5]
func DefaultBounds() Bounds {
	return Bounds{
		MinX: constants.BoundsMinX, MaxX: constants.BoundsMaxX,
		MinY: constants.BoundsMinY, MaxY: constants.BoundsMaxY,
	}
}

// DefaultSpawn returns the region new charges appear in
func DefaultSpawn() Bounds {
	return Bounds{
		MinX: constants.SpawnMinX, MaxX: constants.SpawnMaxX,
		MinY: constants.SpawnMinY, MaxY: constants.SpawnMaxY,
	}
}

// Width in world units
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height in world units
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Clamp returns the nearest point inside the rectangle
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return vmath.Clamp(x, b.MinX, b.MaxX), vmath.Clamp(y, b.MinY, b.MaxY)
}

// Contains reports whether (x, y) lies inside or on the edge
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersect returns the overlap of b and o; an empty overlap collapses onto o's nearest edge
func (b Bounds) Intersect(o Bounds) Bounds {
	r := Bounds{
		MinX: math.Max(b.MinX, o.MinX), MaxX: math.Min(b.MaxX, o.MaxX),
		MinY: math.Max(b.MinY, o.MinY), MaxY: math.Min(b.MaxY, o.MaxY),
	}
	if r.MinX > r.MaxX {
		x, _ := o.Clamp(b.MinX, o.MinY)
		r.MinX, r.MaxX = x, x
	}
	if r.MinY > r.MaxY {
		_, y := o.Clamp(o.MinX, b.MinY)
		r.MinY, r.MaxY = y, y
	}
	return r
}

// Validate rejects empty or non-finite rectangles
func (b Bounds) Validate() error {
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if !isFinite(v) {
			return fmt.Errorf("%w: bounds must be finite", ErrValidation)
		}
	}
	if b.MinX >= b.MaxX || b.MinY >= b.MaxY {
		return fmt.Errorf("%w: bounds [%g,%g]x[%g,%g] are empty", ErrValidation, b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
