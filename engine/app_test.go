package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/efield/audio"
	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/config"
	"github.com/lixenwraith/efield/input"
	"github.com/lixenwraith/efield/render"
	"github.com/lixenwraith/efield/ui"
	"github.com/lixenwraith/efield/vmath"
)

// cuePlayer records cues instead of playing them
type cuePlayer struct {
	cues []audio.Cue
}

func (p *cuePlayer) Play(c audio.Cue) { p.cues = append(p.cues, c) }
func (p *cuePlayer) Close()           {}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) (*App, *cuePlayer) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Store.Seed = 42
	for _, m := range mutate {
		m(cfg)
	}
	require.NoError(t, cfg.Validate())
	p := &cuePlayer{}
	a, err := New(cfg, p, nil)
	require.NoError(t, err)
	a.Resize(100, 30)
	return a, p
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func screenRow(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func findRow(s tcell.Screen, substr string) int {
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(screenRow(s, y), substr) {
			return y
		}
	}
	return -1
}

// cellOf returns the screen cell showing world point p
func cellOf(a *App, p vmath.Vec2) (int, int) {
	col, row := render.PixelToCell(a.Viewport().ToPixel(p))
	area := a.CanvasArea()
	return area.X + col, area.Y + row
}

func TestAddKeyAddsChargeInSpawnRegion(t *testing.T) {
	a, p := newTestApp(t)

	require.True(t, a.HandleKey(ui.RuneKey('a')))
	require.Equal(t, 1, a.Store().Len())
	c, err := a.Store().At(0)
	require.NoError(t, err)
	assert.True(t, charge.DefaultSpawn().Contains(c.X, c.Y))
	assert.Equal(t, 1.0, c.Q)
	assert.Len(t, a.Report().Contributions, 1)
	assert.False(t, a.Status().Error)
	assert.Equal(t, []audio.Cue{audio.CueAdd}, p.cues)
}

func TestInvalidMagnitudeBlocksUntilAcknowledged(t *testing.T) {
	a, p := newTestApp(t)
	a.Controls().Magnitude.SetValue("abc")

	a.HandleKey(ui.RuneKey('a'))
	assert.Equal(t, 0, a.Store().Len())
	assert.True(t, a.Status().Error)
	assert.Contains(t, a.Status().Text, "valid magnitude")
	assert.Equal(t, []audio.Cue{audio.CueError}, p.cues)

	// The next key only dismisses the message
	a.HandleKey(ui.RuneKey('c'))
	assert.False(t, a.Status().Error)
	assert.Len(t, p.cues, 1)

	a.Controls().Magnitude.SetValue("2")
	a.HandleKey(ui.RuneKey('a'))
	assert.Equal(t, 1, a.Store().Len())
}

func TestCapacityLimitReported(t *testing.T) {
	a, _ := newTestApp(t, func(c *config.Config) { c.Store.MaxCharges = 1 })
	a.HandleKey(ui.RuneKey('a'))
	a.HandleKey(ui.RuneKey('a'))
	assert.Equal(t, 1, a.Store().Len())
	assert.Contains(t, a.Status().Text, "limit")
}

func TestClearLeavesNoForces(t *testing.T) {
	a, p := newTestApp(t)
	for _, c := range []charge.Charge{{X: 1, Y: 1, Q: 2}, {X: -2, Y: 0, Q: -1}, {X: 0, Y: -3, Q: 5}} {
		_, err := a.Store().AddAt(c)
		require.NoError(t, err)
	}
	s := newScreen(t, 100, 30)
	a.Draw(s)
	assert.Equal(t, 3, a.Stats().Arrows)

	a.HandleKey(ui.RuneKey('c'))
	a.Draw(s)

	assert.Equal(t, 0, a.Store().Len())
	assert.Equal(t, vmath.Vec2{}, a.Report().Net)
	assert.Equal(t, 0.0, a.Report().NetMagnitude)
	assert.Equal(t, 0, a.Stats().Arrows)
	assert.False(t, a.Stats().NetArrow)
	assert.Equal(t, audio.CueClear, p.cues[len(p.cues)-1])
}

func TestDragMovesAndClamps(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.Store().AddAt(charge.Charge{X: 1, Y: 1, Q: 1})
	require.NoError(t, err)

	x, y := cellOf(a, vmath.V(1, 1))
	a.HandlePointer(x, y, true)
	_, dragging := a.tracker.Dragging()
	require.True(t, dragging)

	// Two cells right moves the charge by two pixels
	a.HandlePointer(x+2, y, true)
	c, _ := a.Store().At(0)
	assert.InDelta(t, 1+2/a.Viewport().Scale, c.X, 1e-9)
	assert.InDelta(t, 1.0, c.Y, 1e-9)

	// The last canvas column lies beyond the bounds, so the position clamps
	area := a.CanvasArea()
	a.HandlePointer(area.X+area.W-1, y, true)
	c, _ = a.Store().At(0)
	assert.Equal(t, 8.0, c.X)

	a.HandlePointer(area.X+area.W-1, y, false)
	assert.Equal(t, input.PointerIdle, a.tracker.State())
}

func TestDragLeavingCanvasStops(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.Store().AddAt(charge.Charge{X: 0, Y: 2, Q: 1})
	require.NoError(t, err)

	x, y := cellOf(a, vmath.V(0, 2))
	a.HandlePointer(x, y, true)
	a.HandlePointer(a.CanvasArea().W+5, y, true) // over the panel
	assert.Equal(t, input.PointerIdle, a.tracker.State())

	c, _ := a.Store().At(0)
	assert.Equal(t, charge.Charge{X: 0, Y: 2, Q: 1}, c)
}

func TestStaleDragIndexReturnsToIdle(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: -2, Y: 0, Q: 1})
	_, _ = a.Store().AddAt(charge.Charge{X: 2, Y: 0, Q: -1})

	x, y := cellOf(a, vmath.V(2, 0))
	a.HandlePointer(x, y, true)
	i, dragging := a.tracker.Dragging()
	require.True(t, dragging)
	require.Equal(t, 1, i)

	require.NoError(t, a.Store().Remove(1))
	a.HandlePointer(x+3, y, true)

	assert.Equal(t, input.PointerIdle, a.tracker.State())
	assert.Equal(t, []charge.Charge{{X: -2, Y: 0, Q: 1}}, a.Store().Snapshot())
}

func TestHoverTooltip(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: -3, Y: 1, Q: -2})

	x, y := cellOf(a, vmath.V(-3, 1))
	a.HandlePointer(x, y, false)
	tip := a.Tooltip()
	require.True(t, tip.Visible)
	assert.Contains(t, tip.Text, "Negative")
	assert.Equal(t, x, tip.X)

	a.HandlePointer(1, 1, false)
	assert.False(t, a.Tooltip().Visible)
}

func TestFieldEditsApplyLiveAndRevertWhenInvalid(t *testing.T) {
	a, p := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 1, Y: 1, Q: 1})
	a.Controls().SetFocus(ui.Focus{Target: ui.TargetX})

	a.HandleKey(ui.Key{Code: ui.KeyClearLine})
	a.HandleKey(ui.RuneKey('3'))
	c, _ := a.Store().At(0)
	assert.Equal(t, 3.0, c.X, "edits apply while typing")

	a.HandleKey(ui.Key{Code: ui.KeyClearLine})
	a.HandleKey(ui.RuneKey('-'))
	a.HandleKey(ui.Key{Code: ui.KeyEnter})

	assert.True(t, a.Status().Error)
	assert.Equal(t, audio.CueError, p.cues[len(p.cues)-1])
	assert.Equal(t, "3.00", a.Controls().FieldText(ui.Focus{Target: ui.TargetX}))
	c, _ = a.Store().At(0)
	assert.Equal(t, 3.0, c.X)
}

func TestMagnitudeEditPreservesSign(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 1, Y: 1, Q: -1})
	a.Controls().SetFocus(ui.Focus{Target: ui.TargetQ})

	a.HandleKey(ui.Key{Code: ui.KeyClearLine})
	a.HandleKey(ui.RuneKey('4'))
	a.HandleKey(ui.Key{Code: ui.KeyEnter})

	c, _ := a.Store().At(0)
	assert.Equal(t, -4.0, c.Q)
}

func TestDeleteFocusedRow(t *testing.T) {
	a, p := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 1, Y: 1, Q: 1})
	_, _ = a.Store().AddAt(charge.Charge{X: 2, Y: 2, Q: 2})
	a.Controls().SetFocus(ui.Focus{Target: ui.TargetDelete, Row: 0})

	a.HandleKey(ui.Key{Code: ui.KeyDelete})
	assert.Equal(t, []charge.Charge{{X: 2, Y: 2, Q: 2}}, a.Store().Snapshot())
	assert.Equal(t, audio.CueDelete, p.cues[len(p.cues)-1])
}

func TestReferenceScenarioOnScreen(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 3, Y: 0, Q: 1})

	rep := a.Report()
	assert.InDelta(t, 1e9, rep.NetMagnitude, 1e-3)
	assert.InDelta(t, -1e9, rep.Net.X, 1e-3)
	assert.InDelta(t, 180, math.Abs(rep.NetAngle), 1e-9)

	s := newScreen(t, 100, 30)
	a.Draw(s)
	assert.GreaterOrEqual(t, findRow(s, "Net force"), 0)
	assert.GreaterOrEqual(t, findRow(s, "Angle = 180.00°"), 0)
	assert.GreaterOrEqual(t, findRow(s, "Add charge"), 0)
	assert.Equal(t, 1, a.Stats().Arrows)
	assert.True(t, a.Stats().NetArrow)
}

func TestCentralChargeDrawnAtOrigin(t *testing.T) {
	a, _ := newTestApp(t)
	s := newScreen(t, 100, 30)
	a.Draw(s)

	x, y := cellOf(a, vmath.Vec2{})
	r, _, style, _ := s.GetContent(x, y)
	fg, _, _ := style.Decompose()
	assert.Equal(t, '▀', r)
	assert.Equal(t, a.theme.Positive, fg)
}

func TestHandleEventMouseAndResize(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 0, Y: -2, Q: 1})

	assert.True(t, a.HandleEvent(tcell.NewEventResize(80, 24)))
	assert.Equal(t, 80-44, a.CanvasArea().W)

	x, y := cellOf(a, vmath.V(0, -2))
	a.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	_, dragging := a.tracker.Dragging()
	assert.True(t, dragging)
	a.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, input.PointerIdle, a.tracker.State())
}

func TestQuitKeys(t *testing.T) {
	a, _ := newTestApp(t)
	assert.False(t, a.HandleKey(ui.RuneKey('q')))
	assert.False(t, a.HandleKey(ui.Key{Code: ui.KeyEsc}))
}

func TestRunDrawsAndQuits(t *testing.T) {
	a, _ := newTestApp(t)
	s := newScreen(t, 100, 30)

	done := make(chan error, 1)
	go func() { done <- a.Run(s) }()
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, a.Frames(), 1)
}

func TestStoreChangesLeaveDrawingToTheLoop(t *testing.T) {
	a, _ := newTestApp(t)
	a.screen = newScreen(t, 100, 30)

	assert.True(t, a.HandleKey(ui.RuneKey('a')))
	a.HandlePointer(5, 5, false)
	assert.Equal(t, 1, a.Store().Len())
	assert.Equal(t, 0, a.Frames())

	a.redraw()
	assert.Equal(t, 1, a.Frames())
}

func TestDeletingEarlierChargeEndsDrag(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: -2, Y: 0, Q: 1})
	_, _ = a.Store().AddAt(charge.Charge{X: 2, Y: 0, Q: -1})
	_, _ = a.Store().AddAt(charge.Charge{X: 4, Y: 3, Q: 2})

	x, y := cellOf(a, vmath.V(2, 0))
	a.HandlePointer(x, y, true)
	i, dragging := a.tracker.Dragging()
	require.True(t, dragging)
	require.Equal(t, 1, i)

	// mouse still held while the first row is deleted from the keyboard
	a.Controls().SetFocus(ui.Focus{Target: ui.TargetDelete, Row: 0})
	a.HandleKey(ui.Key{Code: ui.KeyDelete})
	assert.Equal(t, input.PointerIdle, a.tracker.State())

	a.HandlePointer(x+3, y, true)
	assert.Equal(t, []charge.Charge{{X: 2, Y: 0, Q: -1}, {X: 4, Y: 3, Q: 2}}, a.Store().Snapshot())
}

func TestMagnitudeEditThroughZeroKeepsNegativeSign(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 1, Y: 1, Q: -2})
	a.Controls().SetFocus(ui.Focus{Target: ui.TargetQ})

	a.HandleKey(ui.Key{Code: ui.KeyClearLine})
	for _, r := range "0.5" {
		a.HandleKey(ui.RuneKey(r))
	}
	c, _ := a.Store().At(0)
	assert.Equal(t, -0.5, c.Q)

	a.HandleKey(ui.Key{Code: ui.KeyEnter})
	c, _ = a.Store().At(0)
	assert.Equal(t, -0.5, c.Q)
	assert.Equal(t, charge.Negative, c.Polarity())
}

func TestRejectedEditResyncsRows(t *testing.T) {
	a, _ := newTestApp(t)
	_, _ = a.Store().AddAt(charge.Charge{X: 1, Y: 1, Q: 1})
	a.Controls().SetFocus(ui.Focus{Target: ui.TargetX})
	a.HandleKey(ui.RuneKey('9'))
	require.Equal(t, "1.009", a.Controls().FieldText(ui.Focus{Target: ui.TargetX}))

	// the row disappears without the panel hearing about it
	a.Store().OnChange(func() {})
	require.NoError(t, a.Store().Remove(0))

	a.HandleKey(ui.RuneKey('7'))
	assert.Equal(t, 0, a.Controls().Rows())
	assert.Equal(t, ui.Focus{Target: ui.TargetAdd}, a.Controls().Focused())
}
