package routing

import (
	"math"

	"slidewire/geometry"
)

// Arrowhead proportions. The spread is the half-angle between the shaft
// and each wing, derived from the head width over its length.
const (
	arrowLength = 15.0
	arrowWidth  = 8.0
	arrowSpread = arrowWidth / 15.0
)

// Glyph is a closed triangular arrowhead.
type Glyph struct {
	Tip   geometry.Point
	WingA geometry.Point
	WingB geometry.Point
}

// ArrowAt computes the arrowhead triangle for one end of a routed path.
// The wings trail back from the tip along the local path tangent: the
// first or last segment for polylines, the endpoint-to-control vector for
// curves.
func ArrowAt(p Path, atStart bool) Glyph {
	var tip geometry.Point
	if atStart {
		tip = p.Start()
	} else {
		tip = p.End()
	}
	back := backAngle(p, atStart)
	return Glyph{
		Tip:   tip,
		WingA: tip.Add(arrowLength*math.Cos(back+arrowSpread), arrowLength*math.Sin(back+arrowSpread)),
		WingB: tip.Add(arrowLength*math.Cos(back-arrowSpread), arrowLength*math.Sin(back-arrowSpread)),
	}
}

// backAngle returns the angle from the requested end back into the path,
// the direction the arrow wings extend toward.
func backAngle(p Path, atStart bool) float64 {
	if p.Curve != nil {
		if atStart {
			return p.Curve.Start.AngleTo(p.Curve.Control1)
		}
		return p.Curve.End.AngleTo(p.Curve.Control2)
	}
	if len(p.Points) < 2 {
		return 0
	}
	if atStart {
		return p.Points[0].AngleTo(p.Points[1])
	}
	last := len(p.Points) - 1
	return p.Points[last].AngleTo(p.Points[last-1])
}
