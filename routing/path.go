// Package routing computes connector paths between resolved connection
// points. A connector is routed as a straight segment, an orthogonal
// elbow, or a single cubic Bézier; the routed geometry is always derived
// from the current endpoints and never persisted.
package routing

import "slidewire/geometry"

// Kind selects how a connector is routed.
type Kind string

const (
	Straight Kind = "straight"
	Elbow    Kind = "elbow"
	Curved   Kind = "curved"
)

// Bezier describes a single cubic Bézier segment.
type Bezier struct {
	Start    geometry.Point
	Control1 geometry.Point
	Control2 geometry.Point
	End      geometry.Point
}

// Path is a routed connector path: a point sequence for straight and elbow
// connectors, or a cubic Bézier for curved ones. Exactly one of the two
// representations is populated.
type Path struct {
	Points []geometry.Point
	Curve  *Bezier
}

// IsCurve reports whether the path is a Bézier rather than a polyline.
func (p Path) IsCurve() bool { return p.Curve != nil }

// Start returns the first point of the path.
func (p Path) Start() geometry.Point {
	if p.Curve != nil {
		return p.Curve.Start
	}
	if len(p.Points) == 0 {
		return geometry.Point{}
	}
	return p.Points[0]
}

// End returns the last point of the path.
func (p Path) End() geometry.Point {
	if p.Curve != nil {
		return p.Curve.End
	}
	if len(p.Points) == 0 {
		return geometry.Point{}
	}
	return p.Points[len(p.Points)-1]
}
