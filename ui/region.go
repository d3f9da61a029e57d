package ui

// Region is a rectangle of screen cells in absolute coordinates
type Region struct {
	X, Y, W, H int
}

// Sub returns a nested region relative to r, clipped to r
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Region{X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Contains reports whether the absolute cell (x, y) lies in r
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports a region with no cells
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
