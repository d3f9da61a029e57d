package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/format"
	"github.com/lixenwraith/efield/render"
)

type cellSurface struct {
	w, h   int
	runes  []rune
	styles []tcell.Style
}

func newCellSurface(w, h int) *cellSurface {
	return &cellSurface{w: w, h: h, runes: make([]rune, w*h), styles: make([]tcell.Style, w*h)}
}

func (s *cellSurface) SetContent(x, y int, r rune, _ []rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.runes[y*s.w+x] = r
	s.styles[y*s.w+x] = st
}

func (s *cellSurface) Size() (int, int) { return s.w, s.h }

func (s *cellSurface) row(y int) string {
	var b strings.Builder
	for x := 0; x < s.w; x++ {
		r := s.runes[y*s.w+x]
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func typeText(c *Controls, text string) []Command {
	var out []Command
	for _, r := range text {
		out = append(out, c.HandleKey(RuneKey(r))...)
	}
	return out
}

func TestFocusCycle(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{X: 1, Y: 2, Q: 3}})

	c.HandleKey(Key{Code: KeyTab})
	assert.Equal(t, Focus{Target: TargetPolarity}, c.Focused())
	for i := 0; i < 4; i++ {
		c.HandleKey(Key{Code: KeyTab})
	}
	assert.Equal(t, Focus{Target: TargetX, Row: 0}, c.Focused())

	c.HandleKey(Key{Code: KeyBacktab})
	assert.Equal(t, Focus{Target: TargetClear}, c.Focused())

	c.Blur()
	c.HandleKey(Key{Code: KeyBacktab})
	assert.Equal(t, Focus{Target: TargetDelete, Row: 0}, c.Focused())
	c.HandleKey(Key{Code: KeyTab})
	assert.Equal(t, Focus{Target: TargetPolarity}, c.Focused(), "ring wraps")
}

func TestAddCommands(t *testing.T) {
	c := NewControls()

	cmds := c.HandleKey(RuneKey('a'))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CmdAdd, Text: "1", Polarity: charge.Positive}, cmds[0])

	c.HandleKey(RuneKey('p'))
	cmds = c.HandleKey(RuneKey('a'))
	require.Len(t, cmds, 1)
	assert.Equal(t, charge.Negative, cmds[0].Polarity)

	c.SetFocus(Focus{Target: TargetMagnitude})
	assert.Empty(t, typeText(c, "x"), "typing in the add field is not a command")
	cmds = c.HandleKey(Key{Code: KeyEnter})
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdAdd, cmds[0].Kind)
	assert.Equal(t, "1x", cmds[0].Text)
}

func TestShortcutsIgnoredInsideFields(t *testing.T) {
	c := NewControls()
	c.SetFocus(Focus{Target: TargetMagnitude})
	assert.Empty(t, c.HandleKey(RuneKey('q')))
	assert.Empty(t, c.HandleKey(RuneKey('c')))
	assert.Equal(t, "1qc", c.Magnitude.Value())
}

func TestRowFieldLiveEditAndCommit(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{X: 1, Y: 2, Q: 3}})
	c.SetFocus(Focus{Target: TargetX})
	assert.Equal(t, "1.00", c.FieldText(Focus{Target: TargetX}))

	cmds := c.HandleKey(Key{Code: KeyClearLine})
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CmdEdit, Target: TargetX, Text: ""}, cmds[0])

	cmds = typeText(c, "4")
	require.Len(t, cmds, 1)
	assert.Equal(t, "4", cmds[0].Text)
	assert.False(t, cmds[0].Commit)

	assert.Empty(t, typeText(c, "z"), "row fields take numbers only")

	cmds = c.HandleKey(Key{Code: KeyEnter})
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CmdEdit, Target: TargetX, Text: "4", Commit: true}, cmds[0])

	assert.Empty(t, c.HandleKey(Key{Code: KeyEnter}), "clean field has nothing to commit")

	c.Sync([]charge.Charge{{X: 4, Y: 2, Q: 3}})
	assert.Equal(t, "4.00", c.FieldText(Focus{Target: TargetX}))
}

func TestLeavingDirtyFieldCommits(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{X: 1, Y: 2, Q: 3}})
	c.SetFocus(Focus{Target: TargetY})
	typeText(c, "5")

	cmds := c.HandleKey(Key{Code: KeyTab})
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CmdEdit, Target: TargetY, Text: "2.005", Commit: true}, cmds[0])
	assert.Equal(t, Focus{Target: TargetQ}, c.Focused())
}

func TestSyncKeepsDirtyFocusedText(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{X: 1, Y: 2, Q: 3}})
	c.SetFocus(Focus{Target: TargetX})
	typeText(c, "9")

	c.Sync([]charge.Charge{{X: 7, Y: -1, Q: 3}})
	assert.Equal(t, "1.009", c.FieldText(Focus{Target: TargetX}))
	assert.Equal(t, "-1.00", c.FieldText(Focus{Target: TargetY}))
}

func TestRevertDropsDirtyText(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{X: 1, Y: 2, Q: 3}})
	c.SetFocus(Focus{Target: TargetX})
	typeText(c, "9")

	c.Revert(Focus{Target: TargetX}, []charge.Charge{{X: 1, Y: 2, Q: 3}})
	assert.Equal(t, "1.00", c.FieldText(Focus{Target: TargetX}))
	assert.Empty(t, c.HandleKey(Key{Code: KeyEnter}), "nothing left to commit")
}

func TestSyncMovesFocusOffRemovedRows(t *testing.T) {
	c := NewControls()
	two := []charge.Charge{{X: 1, Q: 1}, {X: 2, Q: -1}}
	c.Sync(two)
	c.SetFocus(Focus{Target: TargetDelete, Row: 1})

	cmds := c.HandleKey(RuneKey('d'))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CmdDelete, Row: 1}, cmds[0])

	c.Sync(two[:1])
	assert.Equal(t, Focus{Target: TargetDelete, Row: 0}, c.Focused())
	c.Sync(nil)
	assert.Equal(t, Focus{Target: TargetAdd}, c.Focused())
	assert.Empty(t, c.HandleKey(Key{Code: KeyDelete}))
}

func TestEscBlursThenQuits(t *testing.T) {
	c := NewControls()
	c.SetFocus(Focus{Target: TargetMagnitude})
	assert.Empty(t, c.HandleKey(Key{Code: KeyEsc}))
	assert.Equal(t, TargetNone, c.Focused().Target)

	cmds := c.HandleKey(Key{Code: KeyEsc})
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdQuit, cmds[0].Kind)

	cmds = c.HandleKey(RuneKey('q'))
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdQuit, cmds[0].Kind)
}

func TestMagnitudeTextFollowsSignPolicy(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{Q: -2.5}})
	assert.Equal(t, "2.5", c.FieldText(Focus{Target: TargetQ}))

	c.SetSignPolicy(charge.LiteralSign)
	c.Sync([]charge.Charge{{Q: -2.5}})
	assert.Equal(t, "-2.5", c.FieldText(Focus{Target: TargetQ}))
}

func TestClickTargets(t *testing.T) {
	c := NewControls()
	c.Sync([]charge.Charge{{X: 1, Y: 2, Q: 3}})
	s := newCellSurface(44, 20)
	th := render.DefaultTheme()
	c.Draw(s, Region{W: 44, H: 20}, th, nil)

	assert.True(t, strings.HasPrefix(s.row(0), "Add charge"))
	assert.True(t, strings.HasPrefix(s.row(1), "[+] Q 1"))
	assert.Contains(t, s.row(1), "[Add] [Clear all]")
	assert.True(t, strings.HasPrefix(s.row(3), "Charges (1)"))
	assert.True(t, strings.HasPrefix(s.row(4), " 1 + X1.00"))

	cmds := c.Click(17, 1)
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdAdd, cmds[0].Kind)

	assert.Empty(t, c.Click(0, 1))
	assert.Equal(t, charge.Negative, c.Polarity)

	cmds = c.Click(23, 1)
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdClear, cmds[0].Kind)

	assert.Empty(t, c.Click(8, 1))
	assert.Equal(t, Focus{Target: TargetMagnitude}, c.Focused())
	assert.Equal(t, 1, c.Magnitude.Cursor, "cursor clamps to text end")

	c.Click(16, 4)
	assert.Equal(t, Focus{Target: TargetY}, c.Focused())

	cmds = c.Click(33, 4)
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CmdDelete, Row: 0}, cmds[0])

	c.Click(40, 15)
	assert.Equal(t, TargetNone, c.Focused().Target)
}

func TestDrawHelpAndScroll(t *testing.T) {
	c := NewControls()
	th := render.DefaultTheme()
	s := newCellSurface(40, 12)
	r := Region{W: 40, H: 12}

	lines := make([]format.Line, 30)
	for i := range lines {
		lines[i] = format.Line{Text: fmt.Sprintf("line %d", i)}
	}
	c.Scroll = 100
	c.Draw(s, r, th, lines)
	// form 2, rule, heading, empty hint, rule
	body := r.H - 6
	assert.Equal(t, len(lines)-body, c.Scroll)
	assert.True(t, strings.HasPrefix(s.row(r.H-1), "line 29"))

	c.HandleKey(RuneKey('?'))
	assert.True(t, c.ShowHelp)
	assert.Equal(t, 0, c.Scroll)
	c.Draw(s, r, th, lines)
	assert.True(t, strings.HasPrefix(s.row(6), "Keys"))
}

func TestDrawStatus(t *testing.T) {
	th := render.DefaultTheme()
	s := newCellSurface(20, 1)
	DrawStatus(s, Region{W: 20, H: 1}, Status{Text: "bad magnitude", Error: true}, th)
	assert.True(t, strings.HasPrefix(s.row(0), "bad magnitude"))
	fg, _, attrs := s.styles[0].Decompose()
	assert.Equal(t, th.Error, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestRegionSub(t *testing.T) {
	r := Region{X: 10, Y: 5, W: 20, H: 4}
	assert.Equal(t, Region{X: 12, Y: 6, W: 18, H: 3}, r.Sub(2, 1, 30, 10))
	assert.True(t, r.Sub(25, 0, 5, 1).Empty())
	assert.True(t, r.Contains(10, 5))
	assert.False(t, r.Contains(30, 5))
}
