package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is the palette shared by the scene, panel and tooltip
type Theme struct {
	Background tcell.Color
	Frame      tcell.Color
	Guide      tcell.Color
	Positive   tcell.Color
	Negative   tcell.Color
	Repulsion  tcell.Color
	Attraction tcell.Color
	Net        tcell.Color
	Text       tcell.Color
	Dim        tcell.Color
	Accent     tcell.Color
	Error      tcell.Color
}

// ThemeSpec is the hex-string form loaded from configuration
type ThemeSpec struct {
	Background string `mapstructure:"background"`
	Frame      string `mapstructure:"frame"`
	Guide      string `mapstructure:"guide"`
	Positive   string `mapstructure:"positive"`
	Negative   string `mapstructure:"negative"`
	Repulsion  string `mapstructure:"repulsion"`
	Attraction string `mapstructure:"attraction"`
	Net        string `mapstructure:"net"`
	Text       string `mapstructure:"text"`
	Dim        string `mapstructure:"dim"`
	Accent     string `mapstructure:"accent"`
	Error      string `mapstructure:"error"`
}

// DefaultThemeSpec mirrors the classic red/blue/green electrostatics palette
func DefaultThemeSpec() ThemeSpec {
	return ThemeSpec{
		Background: "#1a1b26",
		Frame:      "#3b3f5c",
		Guide:      "#aaaaaa",
		Positive:   "#ff3b3b",
		Negative:   "#3b6bff",
		Repulsion:  "#ff9e64",
		Attraction: "#7dcfff",
		Net:        "#33cc33",
		Text:       "#c0caf5",
		Dim:        "#565f89",
		Accent:     "#e0af68",
		Error:      "#ff0000",
	}
}

// DefaultTheme returns the parsed default palette
func DefaultTheme() Theme {
	th, err := DefaultThemeSpec().Parse()
	if err != nil {
		panic(err) // static table
	}
	return th
}

// Parse converts hex strings to colours; empty entries fall back to the default
func (s ThemeSpec) Parse() (Theme, error) {
	def := DefaultThemeSpec()
	var th Theme
	fields := []struct {
		name string
		val  string
		fall string
		dst  *tcell.Color
	}{
		{"background", s.Background, def.Background, &th.Background},
		{"frame", s.Frame, def.Frame, &th.Frame},
		{"guide", s.Guide, def.Guide, &th.Guide},
		{"positive", s.Positive, def.Positive, &th.Positive},
		{"negative", s.Negative, def.Negative, &th.Negative},
		{"repulsion", s.Repulsion, def.Repulsion, &th.Repulsion},
		{"attraction", s.Attraction, def.Attraction, &th.Attraction},
		{"net", s.Net, def.Net, &th.Net},
		{"text", s.Text, def.Text, &th.Text},
		{"dim", s.Dim, def.Dim, &th.Dim},
		{"accent", s.Accent, def.Accent, &th.Accent},
		{"error", s.Error, def.Error, &th.Error},
	}
	for _, f := range fields {
		v := f.val
		if v == "" {
			v = f.fall
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return Theme{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = toTcell(c)
	}
	return th, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Blend mixes a toward b by t in Lab space
func Blend(a, b tcell.Color, t float64) tcell.Color {
	return toTcell(toColorful(a).BlendLab(toColorful(b), t))
}

// PolarityColor picks the disk colour for a signed magnitude
func (t Theme) PolarityColor(q float64) tcell.Color {
	if math.Signbit(q) {
		return t.Negative
	}
	return t.Positive
}

// Style returns a text style on the theme background
func (t Theme) Style(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(t.Background)
}
