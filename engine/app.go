// Package engine is the interactive controller. It owns the charge store and
// every piece of view state, translates terminal events into store mutations
// and redraws the whole frame after each change.
package engine

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/efield/audio"
	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/config"
	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/format"
	"github.com/lixenwraith/efield/input"
	"github.com/lixenwraith/efield/physics"
	"github.com/lixenwraith/efield/render"
	"github.com/lixenwraith/efield/ui"
)

// canvasMargin keeps the frame off the canvas edge, in pixels
const canvasMargin = 2

// App holds the application state; it is driven from a single goroutine
type App struct {
	store    *charge.Store
	tracker  *input.Tracker
	controls *ui.Controls
	central  charge.Central
	params   physics.Params
	theme    render.Theme
	style    render.SceneStyle
	fmtOpts  format.Options
	player   audio.Player
	log      *zap.Logger

	panelWidth int
	width      int
	height     int
	canvasArea ui.Region
	panelArea  ui.Region
	statusArea ui.Region
	canvas     *render.Canvas
	viewport   render.Viewport

	report      physics.Report
	stats       render.SceneStats
	hover       int
	pointer     [2]int // last pointer cell
	pointerDown bool
	tooltip     render.Tooltip
	status      ui.Status
	blocking    bool

	screen tcell.Screen
	frames int
}

// New builds the controller from a validated configuration
// A nil player or logger is replaced by a no-op
func New(cfg *config.Config, player audio.Player, log *zap.Logger) (*App, error) {
	theme, err := cfg.Theme.Parse()
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	if player == nil {
		player = audio.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts := cfg.StoreOptions()

	a := &App{
		store:      charge.NewStore(opts),
		tracker:    input.NewTracker(cfg.View.HitRadius, cfg.View.HoverRadius),
		controls:   ui.NewControls(),
		central:    cfg.Central(),
		params:     cfg.PhysicsParams(),
		theme:      theme,
		style:      cfg.SceneStyle(),
		fmtOpts:    format.DefaultOptions(),
		player:     player,
		log:        log.Named("engine"),
		panelWidth: cfg.View.PanelWidth,
		hover:      -1,
	}
	a.controls.SetSignPolicy(opts.SignPolicy)
	a.controls.Limit = opts.MaxCharges
	a.store.OnChange(a.refresh)
	a.refresh()
	return a, nil
}

// Store exposes the charge sequence
func (a *App) Store() *charge.Store { return a.store }

// Controls exposes the panel state
func (a *App) Controls() *ui.Controls { return a.controls }

// Report returns the force report of the last recompute
func (a *App) Report() physics.Report { return a.report }

// Stats returns what the last frame drew on the canvas
func (a *App) Stats() render.SceneStats { return a.stats }

// Status returns the status line message
func (a *App) Status() ui.Status { return a.status }

// Tooltip returns the hover label
func (a *App) Tooltip() render.Tooltip { return a.tooltip }

// Viewport returns the current world-to-pixel mapping
func (a *App) Viewport() render.Viewport { return a.viewport }

// CanvasArea returns the screen cells occupied by the canvas
func (a *App) CanvasArea() ui.Region { return a.canvasArea }

// Frames counts completed redraws
func (a *App) Frames() int { return a.frames }

// refresh is the store listener: full recompute of everything derived from the store
// The event loop draws once after each event, so refresh never draws
func (a *App) refresh() {
	charges := a.store.Snapshot()
	a.report = physics.Evaluate(a.central, charges, a.params)
	a.controls.Sync(charges)
	a.tracker.Revalidate(len(charges))
	if a.hover >= len(charges) {
		a.hover = -1
	}
	a.updateTooltip(charges)
}

// Resize lays out canvas, panel and status line for a w x h screen
func (a *App) Resize(w, h int) {
	a.width, a.height = w, h
	body := h - constants.StatusHeight
	if body < 0 {
		body = 0
	}
	pw := a.panelWidth
	if w-pw < constants.CanvasMinWidth {
		pw = w - constants.CanvasMinWidth
	}
	if pw < 0 {
		pw = 0
	}

	a.canvasArea = ui.Region{X: 0, Y: 0, W: w - pw, H: body}
	a.panelArea = ui.Region{X: w - pw, Y: 0, W: pw, H: body}
	a.statusArea = ui.Region{X: 0, Y: body, W: w, H: h - body}

	if a.canvas == nil {
		a.canvas = render.NewCanvas(a.canvasArea.W, a.canvasArea.H, a.theme.Background)
	} else {
		a.canvas.Resize(a.canvasArea.W, a.canvasArea.H)
	}
	a.viewport = render.FitViewport(a.canvas.Width(), a.canvas.Height(), a.store.Bounds(), canvasMargin)
	a.tracker.Cancel()
	a.tooltip.Visible = false
	a.hover = -1
}

// Draw renders one complete frame onto s
func (a *App) Draw(s render.Surface) {
	if w, h := s.Size(); w != a.width || h != a.height {
		a.Resize(w, h)
	}
	selected := -1
	if i, ok := a.tracker.Dragging(); ok {
		selected = i
	}

	if !a.canvasArea.Empty() {
		a.stats = render.DrawScene(a.canvas, render.Scene{
			Viewport: a.viewport,
			Theme:    a.theme,
			Style:    a.style,
			Charges:  a.store.Snapshot(),
			Report:   a.report,
			Hover:    a.hover,
			Selected: selected,
		})
		a.canvas.Flush(s, a.canvasArea.X, a.canvasArea.Y)
	}
	a.controls.Draw(s, a.panelArea, a.theme, format.Results(a.report, a.fmtOpts))
	ui.DrawStatus(s, a.statusArea, a.statusLine(), a.theme)
	render.DrawTooltip(s, a.tooltip, a.theme)
}

func (a *App) redraw() {
	if a.screen == nil {
		return
	}
	a.Draw(a.screen)
	a.screen.Show()
	a.frames++
}

func (a *App) statusLine() ui.Status {
	if a.status.Text != "" {
		return a.status
	}
	return ui.Status{Text: fmt.Sprintf(" %d charges | drag to move | Tab focus | ? help | q quit", a.store.Len())}
}

// fail shows a blocking error and plays the error cue
func (a *App) fail(msg string, err error) {
	a.status = ui.Status{Text: " " + msg, Error: true}
	a.blocking = true
	a.player.Play(audio.CueError)
	a.log.Warn("rejected input", zap.String("message", msg), zap.Error(err))
}

func (a *App) notice(msg string) {
	a.status = ui.Status{Text: " " + msg}
}

// acknowledge dismisses a blocking message, reporting whether one was shown
func (a *App) acknowledge() bool {
	if !a.blocking {
		return false
	}
	a.blocking = false
	a.status = ui.Status{}
	return true
}

// apply executes panel commands; false means quit
func (a *App) apply(cmds []ui.Command) bool {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case ui.CmdAdd:
			a.add(cmd.Text, cmd.Polarity)
		case ui.CmdClear:
			n := a.store.Len()
			a.store.Clear()
			a.player.Play(audio.CueClear)
			a.notice("Cleared all charges")
			a.log.Debug("charges cleared", zap.Int("count", n))
		case ui.CmdDelete:
			a.remove(cmd.Row)
		case ui.CmdEdit:
			a.edit(cmd)
		case ui.CmdQuit:
			return false
		}
	}
	return true
}

func (a *App) add(text string, pol charge.Polarity) {
	mag, err := charge.ParseMagnitude(text)
	if err != nil {
		a.fail("Enter a valid magnitude", err)
		return
	}
	idx, err := a.store.Add(mag, pol)
	if err != nil {
		if errors.Is(err, charge.ErrCapacity) {
			a.fail(fmt.Sprintf("Charge limit reached (%d)", a.store.MaxCharges()), err)
			return
		}
		a.fail("Could not add charge", err)
		return
	}
	c, _ := a.store.At(idx)
	a.player.Play(audio.CueAdd)
	a.notice(fmt.Sprintf("Added charge %d at (%s, %s)", idx+1, format.Fixed(c.X, 2), format.Fixed(c.Y, 2)))
	a.log.Debug("charge added", zap.Int("index", idx), zap.Float64("x", c.X), zap.Float64("y", c.Y), zap.Float64("q", c.Q))
}

func (a *App) remove(i int) {
	if err := a.store.Remove(i); err != nil {
		a.log.Debug("stale delete ignored", zap.Int("index", i), zap.Error(err))
		return
	}
	a.player.Play(audio.CueDelete)
	a.notice(fmt.Sprintf("Deleted charge %d", i+1))
	a.log.Debug("charge removed", zap.Int("index", i))
}

// edit applies a field change; live edits that do not parse yet are ignored
func (a *App) edit(cmd ui.Command) {
	v, err := charge.ParseMagnitude(cmd.Text)
	if err != nil {
		if cmd.Commit {
			a.fail(fmt.Sprintf("Charge %d %s: %q is not a number", cmd.Row+1, cmd.Target, cmd.Text), err)
			a.controls.Revert(ui.Focus{Target: cmd.Target, Row: cmd.Row}, a.store.Snapshot())
		}
		return
	}
	switch cmd.Target {
	case ui.TargetX:
		err = a.store.SetX(cmd.Row, v)
	case ui.TargetY:
		err = a.store.SetY(cmd.Row, v)
	case ui.TargetQ:
		err = a.store.SetMagnitude(cmd.Row, v)
	}
	if err != nil {
		a.log.Debug("edit ignored", zap.Int("index", cmd.Row), zap.Stringer("field", cmd.Target), zap.Error(err))
		a.controls.Revert(ui.Focus{Target: cmd.Target, Row: cmd.Row}, a.store.Snapshot())
	}
}
