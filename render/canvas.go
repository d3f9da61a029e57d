package render

import "github.com/gdamore/tcell/v2"

// Surface is the subset of tcell.Screen the renderers write to
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// halfBlock draws the top pixel in fg and the bottom pixel in bg
const halfBlock = '▀'

// Canvas is a pixel grid mapped onto terminal cells at 1x2 pixels per cell
// Row 2k is the upper half of cell row k, row 2k+1 the lower half
type Canvas struct {
	width  int // pixels
	height int // pixels
	pix    []tcell.Color
	bg     tcell.Color
}

// NewCanvas creates a canvas covering cols x rows cells
func NewCanvas(cols, rows int, bg tcell.Color) *Canvas {
	c := &Canvas{bg: bg}
	c.Resize(cols, rows)
	return c
}

// Resize adjusts to cols x rows cells, reallocating only if capacity is insufficient
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows * 2
	if cap(c.pix) < size {
		c.pix = make([]tcell.Color, size)
	} else {
		c.pix = c.pix[:size]
	}
	c.width = cols
	c.height = rows * 2
	c.Clear()
}

// SetBackground changes the clear colour
func (c *Canvas) SetBackground(bg tcell.Color) {
	c.bg = bg
}

// Clear fills every pixel with the background
func (c *Canvas) Clear() {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0] = c.bg
	// Exponential copy
	for filled := 1; filled < len(c.pix); filled *= 2 {
		copy(c.pix[filled:], c.pix[:filled])
	}
}

// Width in pixels
func (c *Canvas) Width() int { return c.width }

// Height in pixels
func (c *Canvas) Height() int { return c.height }

// Cols returns the width in cells
func (c *Canvas) Cols() int { return c.width }

// Rows returns the height in cells
func (c *Canvas) Rows() int { return c.height / 2 }

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set colours one pixel, clipping silently
func (c *Canvas) Set(x, y int, col tcell.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pix[y*c.width+x] = col
}

// At returns the pixel colour, background when out of bounds
func (c *Canvas) At(x, y int) tcell.Color {
	if !c.inBounds(x, y) {
		return c.bg
	}
	return c.pix[y*c.width+x]
}

// Count returns how many pixels carry col
func (c *Canvas) Count(col tcell.Color) int {
	n := 0
	for _, p := range c.pix {
		if p == col {
			n++
		}
	}
	return n
}

// Flush writes the canvas to s with its top-left cell at (x0, y0)
func (c *Canvas) Flush(s Surface, x0, y0 int) {
	sw, sh := s.Size()
	rows := c.Rows()
	for cy := 0; cy < rows; cy++ {
		sy := y0 + cy
		if sy < 0 || sy >= sh {
			continue
		}
		top := c.pix[(2*cy)*c.width : (2*cy+1)*c.width]
		bottom := c.pix[(2*cy+1)*c.width : (2*cy+2)*c.width]
		for cx := 0; cx < c.width; cx++ {
			sx := x0 + cx
			if sx < 0 || sx >= sw {
				continue
			}
			if top[cx] == c.bg && bottom[cx] == c.bg {
				s.SetContent(sx, sy, ' ', nil, tcell.StyleDefault.Background(c.bg))
				continue
			}
			style := tcell.StyleDefault.Foreground(top[cx]).Background(bottom[cx])
			s.SetContent(sx, sy, halfBlock, nil, style)
		}
	}
}
