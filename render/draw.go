package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/efield/vmath"
)

// traceLine walks Bresenham's line from (x0,y0) to (x1,y1) inclusive
func traceLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	stepX := -1
	if x0 < x1 {
		stepX = 1
	}
	stepY := -1
	if y0 < y1 {
		stepY = 1
	}

	err := dx - dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += stepX
		}
		if e2 < dx {
			err += dx
			y0 += stepY
		}
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// Line draws a solid 1px line between pixel points
func (c *Canvas) Line(from, to vmath.Vec2, col tcell.Color) {
	traceLine(round(from.X), round(from.Y), round(to.X), round(to.Y), func(x, y int) {
		c.Set(x, y, col)
	})
}

// DashedLine draws on pixels, skips off pixels, repeating along the line
func (c *Canvas) DashedLine(from, to vmath.Vec2, on, off int, col tcell.Color) {
	if on <= 0 {
		return
	}
	period := on + off
	step := 0
	traceLine(round(from.X), round(from.Y), round(to.X), round(to.Y), func(x, y int) {
		if off <= 0 || step%period < on {
			c.Set(x, y, col)
		}
		step++
	})
}

// FillCircle fills every pixel whose centre lies within r of centre
func (c *Canvas) FillCircle(centre vmath.Vec2, r float64, col tcell.Color) {
	if r <= 0 {
		c.Set(round(centre.X), round(centre.Y), col)
		return
	}
	minX := int(math.Floor(centre.X - r))
	maxX := int(math.Ceil(centre.X + r))
	minY := int(math.Floor(centre.Y - r))
	maxY := int(math.Ceil(centre.Y + r))
	r2 := r * r
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - centre.X
			dy := float64(y) - centre.Y
			if dx*dx+dy*dy <= r2 {
				c.Set(x, y, col)
			}
		}
	}
}

// StrokeRect draws a 1px rectangle outline between two corners
func (c *Canvas) StrokeRect(a, b vmath.Vec2, col tcell.Color) {
	c.Line(vmath.V(a.X, a.Y), vmath.V(b.X, a.Y), col)
	c.Line(vmath.V(b.X, a.Y), vmath.V(b.X, b.Y), col)
	c.Line(vmath.V(b.X, b.Y), vmath.V(a.X, b.Y), col)
	c.Line(vmath.V(a.X, b.Y), vmath.V(a.X, a.Y), col)
}

// Arrow draws a shaft from start along delta with a filled head of size head
// delta is in screen pixels (y down); a zero delta draws nothing
func (c *Canvas) Arrow(start, delta vmath.Vec2, head float64, col tcell.Color) bool {
	if delta.IsZero() || !delta.IsFinite() {
		return false
	}
	tip := start.Add(delta)
	c.Line(start, tip, col)

	back := delta.Normalize().Scale(-head)
	left := tip.Add(back.Rotate(math.Pi / 6))
	right := tip.Add(back.Rotate(-math.Pi / 6))

	// Fill the head by sweeping lines from the tip across its base
	tx, ty := round(tip.X), round(tip.Y)
	traceLine(round(left.X), round(left.Y), round(right.X), round(right.Y), func(x, y int) {
		traceLine(tx, ty, x, y, func(px, py int) { c.Set(px, py, col) })
	})
	return true
}
