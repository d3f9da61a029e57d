package engine

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/format"
	"github.com/lixenwraith/efield/render"
	"github.com/lixenwraith/efield/ui"
)

// Run attaches the screen and processes events until quit or screen shutdown
// A panic restores the terminal before propagating
func (a *App) Run(screen tcell.Screen) error {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()

	a.screen = screen
	defer func() { a.screen = nil }()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.SetStyle(a.theme.Style(a.theme.Text))
	screen.HideCursor()
	screen.Clear()
	a.Resize(screen.Size())
	a.redraw()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			a.log.Debug("quit requested")
			return nil
		}
		a.redraw()
	}
}

// HandleEvent dispatches one terminal event; false means quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		k, ok := translateKey(ev)
		if !ok {
			return true
		}
		return a.HandleKey(k)

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.HandlePointer(x, y, ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		if a.screen != nil {
			a.screen.Sync()
		}
		a.Resize(ev.Size())
	}
	return true
}

// HandleKey routes a decoded key; false means quit
func (a *App) HandleKey(k ui.Key) bool {
	if a.acknowledge() {
		return true
	}
	if k.Code == ui.KeyEsc {
		if _, dragging := a.tracker.Dragging(); dragging {
			a.tracker.Cancel()
			return true
		}
	}
	return a.apply(a.controls.HandleKey(k))
}

// HandlePointer processes the pointer at screen cell (x, y) with the primary button state
func (a *App) HandlePointer(x, y int, down bool) {
	a.pointer = [2]int{x, y}
	inCanvas := a.canvasArea.Contains(x, y)
	px := render.CellToPixel(x-a.canvasArea.X, y-a.canvasArea.Y)

	switch {
	case down && !a.pointerDown:
		a.pointerDown = true
		if a.acknowledge() {
			break
		}
		if inCanvas {
			a.apply(a.controls.Blur())
			if i := a.tracker.Press(px, a.viewport, a.store.Snapshot()); i >= 0 {
				a.log.Debug("drag started", zap.Int("index", i))
			}
		} else if a.panelArea.Contains(x, y) {
			a.apply(a.controls.Click(x, y))
		}

	case down:
		if !inCanvas {
			a.tracker.Leave()
			break
		}
		if !a.tracker.Revalidate(a.store.Len()) {
			break
		}
		if i, target, ok := a.tracker.Move(px, a.viewport); ok {
			if err := a.store.SetPosition(i, target.X, target.Y); err != nil {
				a.log.Debug("drag dropped", zap.Int("index", i), zap.Error(err))
				a.tracker.Cancel()
			}
		}

	default:
		if a.pointerDown {
			a.pointerDown = false
			a.tracker.Release()
		}
	}

	a.hover = -1
	if inCanvas {
		a.hover = a.tracker.Hover(px, a.viewport, a.store.Snapshot())
	}
	a.updateTooltip(a.store.Snapshot())
}

// updateTooltip describes the hovered charge at the last pointer cell
func (a *App) updateTooltip(charges []charge.Charge) {
	if a.hover < 0 || a.hover >= len(charges) {
		a.tooltip = render.Tooltip{}
		return
	}
	q := charges[a.hover].Q
	a.tooltip = render.Tooltip{
		Visible: true,
		X:       a.pointer[0],
		Y:       a.pointer[1],
		Text:    format.Tooltip(q, a.fmtOpts),
		Tint:    a.theme.PolarityColor(q),
	}
}

// translateKey maps tcell keys onto panel keys
func translateKey(ev *tcell.EventKey) (ui.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return ui.RuneKey(ev.Rune()), true
	case tcell.KeyEnter:
		return ui.Key{Code: ui.KeyEnter}, true
	case tcell.KeyTab:
		return ui.Key{Code: ui.KeyTab}, true
	case tcell.KeyBacktab:
		return ui.Key{Code: ui.KeyBacktab}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ui.Key{Code: ui.KeyBackspace}, true
	case tcell.KeyDelete:
		return ui.Key{Code: ui.KeyDelete}, true
	case tcell.KeyLeft:
		return ui.Key{Code: ui.KeyLeft}, true
	case tcell.KeyRight:
		return ui.Key{Code: ui.KeyRight}, true
	case tcell.KeyUp:
		return ui.Key{Code: ui.KeyUp}, true
	case tcell.KeyDown:
		return ui.Key{Code: ui.KeyDown}, true
	case tcell.KeyHome:
		return ui.Key{Code: ui.KeyHome}, true
	case tcell.KeyEnd:
		return ui.Key{Code: ui.KeyEnd}, true
	case tcell.KeyPgUp:
		return ui.Key{Code: ui.KeyPgUp}, true
	case tcell.KeyPgDn:
		return ui.Key{Code: ui.KeyPgDn}, true
	case tcell.KeyEscape:
		return ui.Key{Code: ui.KeyEsc}, true
	case tcell.KeyCtrlU:
		return ui.Key{Code: ui.KeyClearLine}, true
	}
	return ui.Key{}, false
}
