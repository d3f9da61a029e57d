package render

import (
	"math"

	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/vmath"
)

// Viewport maps world units (y up) to canvas pixels (y down)
type Viewport struct {
	Scale  float64    // pixels per world unit
	Origin vmath.Vec2 // pixel position of world (0,0)
	Bounds charge.Bounds
}

// FitViewport scales bounds uniformly into a w x h pixel canvas with margin pixels to spare
func FitViewport(w, h int, bounds charge.Bounds, margin float64) Viewport {
	availW := float64(w) - 2*margin
	availH := float64(h) - 2*margin
	scale := math.Min(availW/bounds.Width(), availH/bounds.Height())
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	midX := (bounds.MinX + bounds.MaxX) / 2
	midY := (bounds.MinY + bounds.MaxY) / 2
	return Viewport{
		Scale: scale,
		Origin: vmath.V(
			float64(w)/2-midX*scale,
			float64(h)/2+midY*scale,
		),
		Bounds: bounds,
	}
}

// ToPixel converts a world point to canvas pixels
func (v Viewport) ToPixel(p vmath.Vec2) vmath.Vec2 {
	return vmath.V(v.Origin.X+p.X*v.Scale, v.Origin.Y-p.Y*v.Scale)
}

// ToWorld converts canvas pixels to a world point
func (v Viewport) ToWorld(px vmath.Vec2) vmath.Vec2 {
	return vmath.V((px.X-v.Origin.X)/v.Scale, -(px.Y-v.Origin.Y)/v.Scale)
}

// CellToPixel returns the pixel at the centre of a canvas-relative cell
func CellToPixel(col, row int) vmath.Vec2 {
	return vmath.V(float64(col)+0.5, float64(row)*2+1)
}

// PixelToCell returns the canvas-relative cell holding a pixel
func PixelToCell(px vmath.Vec2) (col, row int) {
	return int(math.Floor(px.X)), int(math.Floor(px.Y / 2))
}
