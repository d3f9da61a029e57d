package physics

import (
	"math"

	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/constants"
	"github.com/lixenwraith/efield/vmath"
)

// Interaction classifies the force between a charge and the central charge
type Interaction int

const (
	Neutral Interaction = iota // at least one charge is zero
	Attraction
	Repulsion
)

func (i Interaction) String() string {
	switch i {
	case Attraction:
		return "Attraction"
	case Repulsion:
		return "Repulsion"
	default:
		return "Neutral"
	}
}

// Params holds the Coulomb constant and the degenerate-distance threshold
type Params struct {
	K       float64
	Epsilon float64
}

// DefaultParams returns k = 9e9 and epsilon = 1e-9
func DefaultParams() Params {
	return Params{K: constants.CoulombK, Epsilon: constants.SeparationEpsilon}
}

// Contribution is the force one charge exerts on the central charge
type Contribution struct {
	Index     int
	Charge    charge.Charge
	Defined   bool // false when the charge sits on the central charge
	Distance  float64
	Magnitude float64
	Force     vmath.Vec2
	Kind      Interaction
}

// Direction returns the unit force vector, zero if undefined or zero
func (c Contribution) Direction() vmath.Vec2 {
	if !c.Defined || c.Magnitude == 0 {
		return vmath.Vec2{}
	}
	return c.Force.Scale(1 / c.Magnitude)
}

// Report is the full evaluation of one configuration
type Report struct {
	Central       charge.Central
	Contributions []Contribution
	Net           vmath.Vec2
	NetMagnitude  float64
	NetAngle      float64 // degrees from +x, in (-180, 180]
}

// Undefined counts contributions excluded from the net sum
func (r Report) Undefined() int {
	n := 0
	for _, c := range r.Contributions {
		if !c.Defined {
			n++
		}
	}
	return n
}

// Force computes the force a single charge exerts on the central charge
func Force(central charge.Central, c charge.Charge, p Params) Contribution {
	d := central.Pos().Sub(c.Pos())
	r := d.Len()
	out := Contribution{Charge: c, Distance: r}
	if r < p.Epsilon {
		return out
	}
	out.Defined = true

	product := central.Q * c.Q
	switch {
	case product > 0:
		out.Kind = Repulsion
	case product < 0:
		out.Kind = Attraction
	default:
		out.Kind = Neutral
	}

	out.Magnitude = p.K * math.Abs(product) / (r * r)
	out.Force = d.Scale(p.K * product / (r * r * r))
	return out
}

// Evaluate computes every contribution and the net force on the central charge
// Pure function of its inputs; undefined contributions are excluded from Net
func Evaluate(central charge.Central, charges []charge.Charge, p Params) Report {
	rep := Report{
		Central:       central,
		Contributions: make([]Contribution, len(charges)),
	}
	for i, c := range charges {
		con := Force(central, c, p)
		con.Index = i
		rep.Contributions[i] = con
		if con.Defined {
			rep.Net = rep.Net.Add(con.Force)
		}
	}
	rep.NetMagnitude = rep.Net.Len()
	rep.NetAngle = rep.Net.AngleDeg()
	return rep
}
