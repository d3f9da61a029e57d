package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/format"
	"github.com/lixenwraith/efield/render"
)

// Status is the one-line message under the canvas
type Status struct {
	Text  string
	Error bool
}

var keyHelp = []format.Line{
	{Kind: format.LineHeading, Text: "Keys"},
	{Text: "Tab S-Tab   move focus"},
	{Text: "Enter Space commit or press"},
	{Text: "a           add charge"},
	{Text: "c           clear all"},
	{Text: "p           toggle polarity"},
	{Text: "d Del       delete focused charge"},
	{Text: "j k PgUp/Dn scroll results"},
	{Text: "Esc         leave field"},
	{Text: "?           toggle help"},
	{Text: "q Ctrl-C    quit"},
	{Kind: format.LineRule},
	{Text: "drag a charge to move it"},
	{Text: "hover a charge for details"},
}

// Draw lays out the panel in r and records click targets for Click
func (c *Controls) Draw(s render.Surface, r Region, th render.Theme, results []format.Line) {
	c.hits = c.hits[:0]
	if r.Empty() {
		return
	}
	render.FillRect(s, r.X, r.Y, r.W, r.H, ' ', th.Style(th.Text))

	heading := th.Style(th.Accent).Bold(true)
	y := 0
	c.label(s, r, y, "Add charge", heading)
	y++
	c.drawForm(s, r.Sub(0, y, r.W, 1), th)
	y++
	c.label(s, r, y, strings.Repeat("─", r.W), th.Style(th.Frame))
	y++

	title := fmt.Sprintf("Charges (%d)", len(c.rows))
	if c.Limit > 0 {
		title = fmt.Sprintf("Charges (%d/%d)", len(c.rows), c.Limit)
	}
	c.label(s, r, y, title, heading)
	y++
	if len(c.rows) == 0 {
		c.label(s, r, y, "none, press a to add", th.Style(th.Dim))
		y++
	}
	for i := range c.rows {
		if y >= r.H {
			break
		}
		c.drawRow(s, r.Sub(0, y, r.W, 1), i, th)
		y++
	}
	c.label(s, r, y, strings.Repeat("─", r.W), th.Style(th.Frame))
	y++

	lines := results
	if c.ShowHelp {
		lines = keyHelp
	}
	c.drawLines(s, r.Sub(0, y, r.W, r.H-y), lines, th)
}

func (c *Controls) label(s render.Surface, r Region, y int, text string, style tcell.Style) {
	if y < 0 || y >= r.H {
		return
	}
	render.DrawText(s, r.X, r.Y+y, r.W, text, style)
}

// drawLines shows the scrolled window of lines, clamping Scroll to the content
func (c *Controls) drawLines(s render.Surface, r Region, lines []format.Line, th render.Theme) {
	if r.Empty() {
		return
	}
	maxScroll := len(lines) - r.H
	if maxScroll < 0 {
		maxScroll = 0
	}
	if c.Scroll > maxScroll {
		c.Scroll = maxScroll
	}
	for i := 0; i < r.H && c.Scroll+i < len(lines); i++ {
		ln := lines[c.Scroll+i]
		text := ln.Text
		if ln.Kind == format.LineRule {
			text = strings.Repeat("─", r.W)
		}
		render.DrawText(s, r.X, r.Y+i, r.W, text, LineStyle(ln.Kind, th))
	}
}

// LineStyle colours a results line by its kind
func LineStyle(k format.LineKind, th render.Theme) tcell.Style {
	switch k {
	case format.LineHeading:
		return th.Style(th.Accent).Bold(true)
	case format.LineAttraction:
		return th.Style(th.Attraction)
	case format.LineRepulsion:
		return th.Style(th.Repulsion)
	case format.LineUndefined:
		return th.Style(th.Dim)
	case format.LineRule:
		return th.Style(th.Frame)
	}
	return th.Style(th.Text)
}

// drawForm draws: [+] Q [field] [Add] [Clear all]
func (c *Controls) drawForm(s render.Surface, line Region, th render.Theme) {
	x := 0
	sym := "[" + c.Polarity.Symbol() + "]"
	x = c.button(s, line, x, sym, Focus{Target: TargetPolarity}, th.Style(th.PolarityColor(c.Polarity.Sign())).Bold(true))
	x = c.text(s, line, x, " Q ", th.Style(th.Dim))
	x = c.textField(s, line, x, constants.FieldWidth, Focus{Target: TargetMagnitude}, th)
	x = c.text(s, line, x, " ", th.Style(th.Text))
	x = c.button(s, line, x, "[Add]", Focus{Target: TargetAdd}, th.Style(th.Text))
	x = c.text(s, line, x, " ", th.Style(th.Text))
	c.button(s, line, x, "[Clear all]", Focus{Target: TargetClear}, th.Style(th.Text))
}

// drawRow draws: 12 + X[field] Y[field] Q[field] [x]
func (c *Controls) drawRow(s render.Surface, line Region, i int, th render.Theme) {
	ch := c.charges[i]
	x := c.text(s, line, 0, fmt.Sprintf("%2d ", i+1), th.Style(th.Dim))
	x = c.text(s, line, x, ch.Polarity().Symbol(), th.Style(th.PolarityColor(ch.Q)).Bold(true))
	x = c.text(s, line, x, " X", th.Style(th.Dim))
	x = c.textField(s, line, x, constants.RowFieldWidth, Focus{TargetX, i}, th)
	x = c.text(s, line, x, " Y", th.Style(th.Dim))
	x = c.textField(s, line, x, constants.RowFieldWidth, Focus{TargetY, i}, th)
	x = c.text(s, line, x, " Q", th.Style(th.Dim))
	x = c.textField(s, line, x, constants.RowFieldWidth, Focus{TargetQ, i}, th)
	x = c.text(s, line, x, " ", th.Style(th.Text))
	c.button(s, line, x, "[x]", Focus{TargetDelete, i}, th.Style(th.Error))
}

func (c *Controls) text(s render.Surface, line Region, x int, text string, style tcell.Style) int {
	w := render.TextWidth(text)
	cell := line.Sub(x, 0, w, 1)
	if !cell.Empty() {
		render.DrawText(s, cell.X, cell.Y, cell.W, text, style)
	}
	return x + w
}

func (c *Controls) button(s render.Surface, line Region, x int, label string, f Focus, style tcell.Style) int {
	w := render.TextWidth(label)
	cell := line.Sub(x, 0, w, 1)
	if cell.Empty() {
		return x + w
	}
	if c.focus == f {
		style = style.Reverse(true)
	}
	render.DrawText(s, cell.X, cell.Y, cell.W, label, style)
	c.hits = append(c.hits, hit{region: cell, focus: f})
	return x + w
}

func (c *Controls) textField(s render.Surface, line Region, x, w int, f Focus, th render.Theme) int {
	cell := line.Sub(x, 0, w, 1)
	fld := c.field(f)
	if cell.Empty() || fld == nil || !f.Target.isField() {
		return x + w
	}
	focused := c.focus == f
	bg := th.Frame
	if focused {
		bg = render.Blend(th.Accent, th.Background, 0.6)
	}
	style := tcell.StyleDefault.Foreground(th.Text).Background(bg)
	render.FillRect(s, cell.X, cell.Y, cell.W, 1, ' ', style)

	if !focused {
		fld.Scroll = 0
		render.DrawText(s, cell.X, cell.Y, cell.W, fld.Value(), style)
	} else {
		text, cur := fld.Visible(cell.W)
		render.DrawText(s, cell.X, cell.Y, cell.W, text, style)
		r := ' '
		if idx := fld.Scroll + cur; idx < len(fld.Text) {
			r = fld.Text[idx]
		}
		s.SetContent(cell.X+cur, cell.Y, r, nil, style.Reverse(true))
	}
	c.hits = append(c.hits, hit{region: cell, focus: f})
	return x + w
}

// DrawStatus fills the status line; errors are drawn in the error colour
func DrawStatus(s render.Surface, r Region, st Status, th render.Theme) {
	if r.Empty() {
		return
	}
	style := th.Style(th.Dim)
	if st.Error {
		style = th.Style(th.Error).Bold(true)
	}
	render.FillRect(s, r.X, r.Y, r.W, 1, ' ', style)
	render.DrawText(s, r.X, r.Y, r.W, st.Text, style)
}
