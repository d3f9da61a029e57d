package render

import (
	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/physics"
	"github.com/lixenwraith/efield/vmath"
)

// SceneStyle sets pixel sizes of scene elements
type SceneStyle struct {
	ChargeRadius   float64
	CentralRadius  float64
	ArrowLength    float64
	NetArrowLength float64
	ArrowHead      float64
	DashOn         int
	DashOff        int
}

// DefaultSceneStyle returns the stock sizes
func DefaultSceneStyle() SceneStyle {
	return SceneStyle{
		ChargeRadius:   constants.ChargeRadius,
		CentralRadius:  constants.CentralRadius,
		ArrowLength:    constants.ArrowLength,
		NetArrowLength: constants.NetArrowLength,
		ArrowHead:      constants.ArrowHead,
		DashOn:         constants.DashOn,
		DashOff:        constants.DashOff,
	}
}

// Scene is everything one frame of the canvas needs
type Scene struct {
	Viewport Viewport
	Theme    Theme
	Style    SceneStyle
	Charges  []charge.Charge
	Report   physics.Report
	Hover    int // index of hovered charge, -1 for none
	Selected int // index of dragged charge, -1 for none
}

// SceneStats summarises what DrawScene put on the canvas
type SceneStats struct {
	Charges  int
	Arrows   int
	NetArrow bool
}

// DrawScene clears the canvas and draws frame, guides, charges, force arrows and the net arrow
func DrawScene(cv *Canvas, sc Scene) SceneStats {
	var stats SceneStats
	th := sc.Theme
	vp := sc.Viewport

	cv.SetBackground(th.Background)
	cv.Clear()

	b := vp.Bounds
	cv.StrokeRect(
		vp.ToPixel(vmath.V(b.MinX, b.MaxY)),
		vp.ToPixel(vmath.V(b.MaxX, b.MinY)),
		th.Frame,
	)

	centre := vp.ToPixel(sc.Report.Central.Pos())

	// Guides first so disks and arrows sit on top
	for _, c := range sc.Charges {
		cv.DashedLine(centre, vp.ToPixel(c.Pos()), sc.Style.DashOn, sc.Style.DashOff, th.Guide)
	}

	for i, c := range sc.Charges {
		p := vp.ToPixel(c.Pos())
		col := th.PolarityColor(c.Q)
		if i == sc.Hover || i == sc.Selected {
			col = Blend(col, th.Text, 0.35)
		}
		cv.FillCircle(p, sc.Style.ChargeRadius, col)
		stats.Charges++
	}

	for i, con := range sc.Report.Contributions {
		if i >= len(sc.Charges) {
			break
		}
		dir := con.Direction()
		if dir.IsZero() {
			continue
		}
		col := th.Attraction
		if con.Kind == physics.Repulsion {
			col = th.Repulsion
		}
		p := vp.ToPixel(sc.Charges[i].Pos())
		if cv.Arrow(p, dir.FlipY().Scale(sc.Style.ArrowLength), sc.Style.ArrowHead, col) {
			stats.Arrows++
		}
	}

	cv.FillCircle(centre, sc.Style.CentralRadius, th.PolarityColor(sc.Report.Central.Q))

	if sc.Report.NetMagnitude > 0 {
		dir := sc.Report.Net.Scale(1 / sc.Report.NetMagnitude)
		stats.NetArrow = cv.Arrow(centre, dir.FlipY().Scale(sc.Style.NetArrowLength), sc.Style.ArrowHead, th.Net)
	}
	return stats
}
