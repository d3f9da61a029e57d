// Package ui holds the side panel controls: the add form, one editable row
// per charge, the focus ring and the key help. It turns keys and clicks into
// commands and leaves every mutation to the caller.
package ui

import (
	"math"
	"strconv"

	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/format"
)

// KeyCode identifies a key independent of the terminal backend
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyEsc
	KeyClearLine
)

// Key is a decoded key press
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey builds a printable key
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Target is a focusable control
type Target int

const (
	TargetNone Target = iota
	TargetPolarity
	TargetMagnitude
	TargetAdd
	TargetClear
	TargetX
	TargetY
	TargetQ
	TargetDelete
)

var targetNames = [...]string{"none", "polarity", "magnitude", "add", "clear", "x", "y", "q", "delete"}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return "unknown"
	}
	return targetNames[t]
}

// PerRow reports targets that belong to a charge row
func (t Target) PerRow() bool {
	return t >= TargetX
}

func (t Target) isField() bool {
	return t == TargetMagnitude || t == TargetX || t == TargetY || t == TargetQ
}

// Focus names one control; Row is meaningful only for per-row targets
type Focus struct {
	Target Target
	Row    int
}

var (
	formRing = []Target{TargetPolarity, TargetMagnitude, TargetAdd, TargetClear}
	rowRing  = []Target{TargetX, TargetY, TargetQ, TargetDelete}
)

// CommandKind tells the controller what to do with a Command
type CommandKind int

const (
	CmdAdd    CommandKind = iota + 1 // Text, Polarity
	CmdClear                         //
	CmdDelete                        // Row
	CmdEdit                          // Row, Target, Text, Commit
	CmdQuit
)

// Command is a request produced by input on the panel
// Live edits (Commit false) carry partial text and may not parse
type Command struct {
	Kind     CommandKind
	Row      int
	Target   Target
	Text     string
	Polarity charge.Polarity
	Commit   bool
}

type row struct {
	x, y, q *TextField
}

type hit struct {
	region Region
	focus  Focus
}

// Controls is the panel state
type Controls struct {
	Polarity  charge.Polarity
	Magnitude *TextField
	ShowHelp  bool
	Scroll    int // first results line shown
	Limit     int // charge capacity shown in the list heading, 0 hides it

	policy  charge.SignPolicy
	charges []charge.Charge
	rows    []row
	focus   Focus
	hits    []hit
}

// NewControls creates the panel with a positive polarity and the default magnitude
func NewControls() *Controls {
	return &Controls{
		Polarity:  charge.Positive,
		Magnitude: NewTextField(constants.DefaultMagnitude),
	}
}

// SetSignPolicy selects how magnitudes are displayed in the Q fields
// Under PreserveSign the field shows |q| and the row label carries the sign
func (c *Controls) SetSignPolicy(p charge.SignPolicy) {
	c.policy = p
}

// Focused returns the focused control
func (c *Controls) Focused() Focus {
	return c.focus
}

// Rows returns the number of charge rows
func (c *Controls) Rows() int {
	return len(c.rows)
}

// FieldText returns the text of a field control, empty for other targets
func (c *Controls) FieldText(f Focus) string {
	if fld := c.field(f); fld != nil {
		return fld.Value()
	}
	return ""
}

// Sync refreshes the rows from the charge sequence
// The focused field keeps its text while it has uncommitted edits
func (c *Controls) Sync(charges []charge.Charge) {
	c.charges = append(c.charges[:0], charges...)
	for len(c.rows) < len(charges) {
		c.rows = append(c.rows, row{x: NewTextField(""), y: NewTextField(""), q: NewTextField("")})
	}
	c.rows = c.rows[:len(charges)]

	for i, ch := range charges {
		r := c.rows[i]
		c.syncField(Focus{TargetX, i}, r.x, format.Fixed(ch.X, 2))
		c.syncField(Focus{TargetY, i}, r.y, format.Fixed(ch.Y, 2))
		c.syncField(Focus{TargetQ, i}, r.q, c.magnitudeText(ch.Q))
	}

	if c.focus.Target.PerRow() && c.focus.Row >= len(charges) {
		if len(charges) == 0 {
			c.focus = Focus{Target: TargetAdd}
		} else {
			c.focus.Row = len(charges) - 1
		}
	}
}

// Revert discards uncommitted text in field f and resyncs every row
func (c *Controls) Revert(f Focus, charges []charge.Charge) {
	if fld := c.field(f); fld != nil {
		fld.Dirty = false
	}
	c.Sync(charges)
}

func (c *Controls) syncField(f Focus, fld *TextField, text string) {
	if c.focus == f && fld.Dirty {
		return
	}
	if fld.Value() != text {
		fld.SetValue(text)
	}
	fld.Dirty = false
}

func (c *Controls) magnitudeText(q float64) string {
	if c.policy == charge.PreserveSign {
		q = math.Abs(q)
	}
	return strconv.FormatFloat(q, 'g', 4, 64)
}

func (c *Controls) field(f Focus) *TextField {
	switch f.Target {
	case TargetMagnitude:
		return c.Magnitude
	case TargetX, TargetY, TargetQ:
		if f.Row < 0 || f.Row >= len(c.rows) {
			return nil
		}
		r := c.rows[f.Row]
		switch f.Target {
		case TargetX:
			return r.x
		case TargetY:
			return r.y
		}
		return r.q
	}
	return nil
}

func (c *Controls) ring() []Focus {
	out := make([]Focus, 0, len(formRing)+len(rowRing)*len(c.rows))
	for _, t := range formRing {
		out = append(out, Focus{Target: t})
	}
	for i := range c.rows {
		for _, t := range rowRing {
			out = append(out, Focus{Target: t, Row: i})
		}
	}
	return out
}

// SetFocus moves focus, committing pending edits of the field being left
func (c *Controls) SetFocus(f Focus) []Command {
	if f == c.focus {
		return nil
	}
	cmds := c.blur()
	c.focus = f
	return cmds
}

// Blur drops focus entirely
func (c *Controls) Blur() []Command {
	return c.SetFocus(Focus{})
}

func (c *Controls) blur() []Command {
	if !c.focus.Target.PerRow() {
		return nil
	}
	if cmd, ok := c.commit(); ok {
		return []Command{cmd}
	}
	return nil
}

// commit finalizes a dirty row field
func (c *Controls) commit() (Command, bool) {
	fld := c.field(c.focus)
	if fld == nil || !fld.Dirty || !c.focus.Target.PerRow() {
		return Command{}, false
	}
	fld.Dirty = false
	return Command{
		Kind:   CmdEdit,
		Row:    c.focus.Row,
		Target: c.focus.Target,
		Text:   fld.Value(),
		Commit: true,
	}, true
}

func (c *Controls) cycle(step int) []Command {
	ring := c.ring()
	idx := -1
	for i, f := range ring {
		if f == c.focus {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(ring) - 1
	default:
		idx = (idx + step + len(ring)) % len(ring)
	}
	return c.SetFocus(ring[idx])
}

func (c *Controls) addCommand() Command {
	return Command{Kind: CmdAdd, Text: c.Magnitude.Value(), Polarity: c.Polarity}
}

// HandleKey applies a key to the focused control and returns the resulting commands
func (c *Controls) HandleKey(k Key) []Command {
	if fld := c.field(c.focus); fld != nil {
		if cmds, ok := c.editKey(fld, k); ok {
			return cmds
		}
	}

	switch k.Code {
	case KeyTab:
		return c.cycle(1)
	case KeyBacktab:
		return c.cycle(-1)
	case KeyEnter:
		return c.activate()
	case KeyEsc:
		if c.focus.Target == TargetNone {
			return []Command{{Kind: CmdQuit}}
		}
		return c.Blur()
	case KeyDelete:
		return c.deleteFocused()
	case KeyUp:
		c.scroll(-1)
	case KeyDown:
		c.scroll(1)
	case KeyPgUp:
		c.scroll(-pageLines)
	case KeyPgDn:
		c.scroll(pageLines)
	case KeyRune:
		switch k.Rune {
		case ' ':
			return c.activate()
		case 'a':
			return []Command{c.addCommand()}
		case 'c':
			return []Command{{Kind: CmdClear}}
		case 'd':
			return c.deleteFocused()
		case 'p':
			c.Polarity = c.Polarity.Toggle()
		case '?':
			c.ShowHelp = !c.ShowHelp
			c.Scroll = 0
		case 'j':
			c.scroll(1)
		case 'k':
			c.scroll(-1)
		case 'q':
			return []Command{{Kind: CmdQuit}}
		}
	}
	return nil
}

const pageLines = 5

func (c *Controls) scroll(n int) {
	c.Scroll += n
	if c.Scroll < 0 {
		c.Scroll = 0
	}
}

// editKey handles keys consumed by a focused text field
func (c *Controls) editKey(fld *TextField, k Key) ([]Command, bool) {
	switch k.Code {
	case KeyRune:
		// Row fields take numbers only; the add field accepts anything so bad input reaches validation
		if c.focus.Target != TargetMagnitude && !numericRune(k.Rune) {
			return nil, true
		}
		fld.Insert(k.Rune)
		return c.live(fld), true
	case KeyBackspace:
		if fld.DeleteBackward() {
			return c.live(fld), true
		}
		return nil, true
	case KeyDelete:
		if fld.DeleteForward() {
			return c.live(fld), true
		}
		return nil, true
	case KeyClearLine:
		if fld.DeleteToStart() {
			return c.live(fld), true
		}
		return nil, true
	case KeyLeft:
		fld.Left()
		return nil, true
	case KeyRight:
		fld.Right()
		return nil, true
	case KeyHome:
		fld.Home()
		return nil, true
	case KeyEnd:
		fld.End()
		return nil, true
	case KeyEnter:
		if c.focus.Target == TargetMagnitude {
			return []Command{c.addCommand()}, true
		}
		if cmd, ok := c.commit(); ok {
			return []Command{cmd}, true
		}
		return nil, true
	}
	return nil, false
}

func (c *Controls) live(fld *TextField) []Command {
	if !c.focus.Target.PerRow() {
		return nil
	}
	return []Command{{Kind: CmdEdit, Row: c.focus.Row, Target: c.focus.Target, Text: fld.Value()}}
}

func (c *Controls) activate() []Command {
	switch c.focus.Target {
	case TargetPolarity:
		c.Polarity = c.Polarity.Toggle()
	case TargetAdd:
		return []Command{c.addCommand()}
	case TargetClear:
		return []Command{{Kind: CmdClear}}
	case TargetDelete:
		return c.deleteFocused()
	}
	return nil
}

func (c *Controls) deleteFocused() []Command {
	if !c.focus.Target.PerRow() || c.focus.Row >= len(c.rows) {
		return nil
	}
	return []Command{{Kind: CmdDelete, Row: c.focus.Row}}
}

// Click focuses the control under (x, y) and activates buttons
// A click on a field places the cursor; a click elsewhere in the panel drops focus
func (c *Controls) Click(x, y int) []Command {
	for _, h := range c.hits {
		if !h.region.Contains(x, y) {
			continue
		}
		cmds := c.SetFocus(h.focus)
		if fld := c.field(h.focus); fld != nil {
			pos := fld.Scroll + x - h.region.X
			if pos > len(fld.Text) {
				pos = len(fld.Text)
			}
			fld.Cursor = pos
			return cmds
		}
		return append(cmds, c.activate()...)
	}
	return c.Blur()
}
