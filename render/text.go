package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawText writes text at (x, y) clipped to maxW cells, returning cells used
// Text wider than maxW is truncated with an ellipsis
func DrawText(s Surface, x, y, maxW int, text string, style tcell.Style) int {
	if maxW <= 0 {
		return 0
	}
	if runewidth.StringWidth(text) > maxW {
		text = runewidth.Truncate(text, maxW, "…")
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetContent(col, y, r, nil, style)
		col += w
	}
	return col - x
}

// FillRect paints a rectangle of cells with r
func FillRect(s Surface, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, r, nil, style)
		}
	}
}

// TextWidth returns the display width of text in cells
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Tooltip is a one-line label anchored at a screen cell
type Tooltip struct {
	Visible bool
	X, Y    int
	Text    string
	Tint    tcell.Color
}

// DrawTooltip places the label just below-right of its anchor, kept on screen
func DrawTooltip(s Surface, tip Tooltip, th Theme) {
	if !tip.Visible || tip.Text == "" {
		return
	}
	sw, sh := s.Size()
	text := " " + tip.Text + " "
	w := TextWidth(text)
	if w > sw {
		w = sw
	}
	x := tip.X + 1
	y := tip.Y + 1
	if x+w > sw {
		x = sw - w
	}
	if x < 0 {
		x = 0
	}
	if y >= sh {
		y = tip.Y - 1
	}
	if y < 0 {
		y = 0
	}
	bg := Blend(tip.Tint, th.Background, 0.2)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg)
	DrawText(s, x, y, w, text, style)
}
