package input

import (
	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/vmath"
)

// Projector converts between world units and canvas pixels
type Projector interface {
	ToPixel(world vmath.Vec2) vmath.Vec2
	ToWorld(px vmath.Vec2) vmath.Vec2
}

// PointerState is the drag state of the pointer
type PointerState int

const (
	PointerIdle PointerState = iota
	PointerDragging
)

func (s PointerState) String() string {
	if s == PointerDragging {
		return "dragging"
	}
	return "idle"
}

// Tracker is the pointer state machine: Idle or Dragging(index)
// The offset keeps a grabbed charge from jumping to the pointer
type Tracker struct {
	state       PointerState
	index       int
	offset      vmath.Vec2 // world units, pointer minus charge centre
	count       int        // sequence length at press
	hitRadius   float64
	hoverRadius float64
}

// NewTracker creates an idle tracker with radii in pixels
func NewTracker(hitRadius, hoverRadius float64) *Tracker {
	if hitRadius <= 0 {
		hitRadius = constants.HitRadius
	}
	if hoverRadius <= 0 {
		hoverRadius = constants.HoverRadius
	}
	return &Tracker{index: -1, hitRadius: hitRadius, hoverRadius: hoverRadius}
}

// State returns the current state
func (t *Tracker) State() PointerState { return t.state }

// Dragging returns the dragged index and whether a drag is active
func (t *Tracker) Dragging() (int, bool) {
	return t.index, t.state == PointerDragging
}

// Offset returns the recorded grab offset in world units
func (t *Tracker) Offset() vmath.Vec2 { return t.offset }

// HitTest returns the first charge whose rendered centre is within radius pixels of px
func HitTest(px vmath.Vec2, proj Projector, charges []charge.Charge, radius float64) int {
	r2 := radius * radius
	for i, c := range charges {
		if proj.ToPixel(c.Pos()).Sub(px).LenSq() < r2 {
			return i
		}
	}
	return -1
}

// Press starts a drag on the first charge under px; returns the index or -1
func (t *Tracker) Press(px vmath.Vec2, proj Projector, charges []charge.Charge) int {
	i := HitTest(px, proj, charges, t.hitRadius)
	if i < 0 {
		t.reset()
		return -1
	}
	t.state = PointerDragging
	t.index = i
	t.count = len(charges)
	t.offset = proj.ToWorld(px).Sub(charges[i].Pos())
	return i
}

// Move returns the world position the dragged charge should take
// ok is false when idle
func (t *Tracker) Move(px vmath.Vec2, proj Projector) (index int, target vmath.Vec2, ok bool) {
	if t.state != PointerDragging {
		return -1, vmath.Vec2{}, false
	}
	return t.index, proj.ToWorld(px).Sub(t.offset), true
}

// Release ends a drag on button up
func (t *Tracker) Release() { t.reset() }

// Leave ends a drag when the pointer exits the canvas
func (t *Tracker) Leave() { t.reset() }

// Cancel ends a drag without further moves
func (t *Tracker) Cancel() { t.reset() }

// Revalidate drops a drag once the sequence length differs from the one seen at press
// An insert or removal anywhere can shift the dragged index onto another charge
func (t *Tracker) Revalidate(n int) bool {
	if t.state == PointerDragging && (t.index >= n || n != t.count) {
		t.reset()
		return false
	}
	return true
}

// Hover returns the charge to show a tooltip for, or -1 while dragging or off target
func (t *Tracker) Hover(px vmath.Vec2, proj Projector, charges []charge.Charge) int {
	if t.state == PointerDragging {
		return -1
	}
	return HitTest(px, proj, charges, t.hoverRadius)
}

func (t *Tracker) reset() {
	t.state = PointerIdle
	t.index = -1
	t.count = 0
	t.offset = vmath.Vec2{}
}
