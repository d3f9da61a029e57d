package format

import (
	"fmt"
	"math"

	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/physics"
)

// Options selects notation for the results panel
type Options struct {
	Plain       bool // ASCII exponent instead of superscripts
	Digits      int
	AngleDigits int
}

// DefaultOptions returns Unicode notation with two fraction digits
func DefaultOptions() Options {
	return Options{Digits: constants.SciDigits, AngleDigits: constants.AngleDigits}
}

func (o Options) num(v float64) string {
	if o.Plain {
		return SciPlain(v, o.Digits)
	}
	return Sci(v, o.Digits)
}

// LineKind tags panel lines so renderers can colour them
type LineKind int

const (
	LineText LineKind = iota
	LineHeading
	LineAttraction
	LineRepulsion
	LineUndefined
	LineRule
)

// Line is one row of the results panel
type Line struct {
	Kind LineKind
	Text string
}

// Results builds the per-charge and net force lines for a report
func Results(rep physics.Report, o Options) []Line {
	lines := make([]Line, 0, len(rep.Contributions)*3+6)
	for _, c := range rep.Contributions {
		label := fmt.Sprintf("F%d", c.Index+1)
		if !c.Defined {
			lines = append(lines, Line{LineUndefined, label + ": undefined (r = 0)"})
			continue
		}
		kind := LineText
		switch c.Kind {
		case physics.Attraction:
			kind = LineAttraction
		case physics.Repulsion:
			kind = LineRepulsion
		}
		lines = append(lines,
			Line{kind, fmt.Sprintf("%s: %s N (%s)", label, o.num(c.Magnitude), c.Kind)},
			Line{LineText, "  Fx = " + o.num(c.Force.X) + " N"},
			Line{LineText, "  Fy = " + o.num(c.Force.Y) + " N"},
		)
	}

	lines = append(lines,
		Line{LineRule, ""},
		Line{LineHeading, "Net force"},
		Line{LineText, "  Fx = " + o.num(rep.Net.X) + " N"},
		Line{LineText, "  Fy = " + o.num(rep.Net.Y) + " N"},
		Line{LineText, "  |F| = " + o.num(rep.NetMagnitude) + " N"},
		Line{LineText, "  Angle = " + Angle(rep.NetAngle, o.AngleDigits) + " from +x"},
	)
	return lines
}

// Text joins Results into newline-terminated plain text; rules print as dashes
func Text(rep physics.Report, o Options) string {
	var out []byte
	for _, l := range Results(rep, o) {
		if l.Kind == LineRule {
			out = append(out, "----------"...)
		} else {
			out = append(out, l.Text...)
		}
		out = append(out, '\n')
	}
	return string(out)
}

// Tooltip returns the hover label for a charge
func Tooltip(q float64, o Options) string {
	if math.Signbit(q) {
		return "Negative charge (−) " + o.num(q) + " C"
	}
	return "Positive charge (+) " + o.num(q) + " C"
}
