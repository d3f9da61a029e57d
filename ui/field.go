package ui

// TextField holds an editable single-line buffer with a cursor
type TextField struct {
	Text   []rune
	Cursor int // runes before the cursor
	Scroll int // first visible rune
	Dirty  bool
}

// NewTextField creates a field holding initial with the cursor at the end
func NewTextField(initial string) *TextField {
	runes := []rune(initial)
	return &TextField{Text: runes, Cursor: len(runes)}
}

// Value returns the text
func (f *TextField) Value() string {
	return string(f.Text)
}

// SetValue replaces the text, moves the cursor to the end and clears Dirty
func (f *TextField) SetValue(s string) {
	f.Text = []rune(s)
	f.Cursor = len(f.Text)
	f.Scroll = 0
	f.Dirty = false
}

// Insert adds r at the cursor
func (f *TextField) Insert(r rune) {
	f.Text = append(f.Text[:f.Cursor], append([]rune{r}, f.Text[f.Cursor:]...)...)
	f.Cursor++
	f.Dirty = true
}

// DeleteBackward removes the rune before the cursor
func (f *TextField) DeleteBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = append(f.Text[:f.Cursor-1], f.Text[f.Cursor:]...)
	f.Cursor--
	f.Dirty = true
	return true
}

// DeleteForward removes the rune at the cursor
func (f *TextField) DeleteForward() bool {
	if f.Cursor >= len(f.Text) {
		return false
	}
	f.Text = append(f.Text[:f.Cursor], f.Text[f.Cursor+1:]...)
	f.Dirty = true
	return true
}

// DeleteToStart removes everything before the cursor
func (f *TextField) DeleteToStart() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = f.Text[f.Cursor:]
	f.Cursor = 0
	f.Scroll = 0
	f.Dirty = true
	return true
}

// Left moves the cursor one rune left
func (f *TextField) Left() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

// Right moves the cursor one rune right
func (f *TextField) Right() {
	if f.Cursor < len(f.Text) {
		f.Cursor++
	}
}

// Home moves the cursor to the start
func (f *TextField) Home() { f.Cursor = 0 }

// End moves the cursor past the last rune
func (f *TextField) End() { f.Cursor = len(f.Text) }

// Visible returns the slice shown in width cells and the cursor column within it
// Scroll follows the cursor so it always stays in view
func (f *TextField) Visible(width int) (string, int) {
	if width <= 0 {
		return "", 0
	}
	if f.Cursor < f.Scroll {
		f.Scroll = f.Cursor
	}
	// Reserve the last cell for a cursor past the end
	if f.Cursor >= f.Scroll+width {
		f.Scroll = f.Cursor - width + 1
	}
	end := f.Scroll + width
	if end > len(f.Text) {
		end = len(f.Text)
	}
	return string(f.Text[f.Scroll:end]), f.Cursor - f.Scroll
}

// numericRune reports runes a number field accepts
func numericRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E'
}
