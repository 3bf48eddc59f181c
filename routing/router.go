package routing

import "slidewire/geometry"

// direction is the side of a shape a connection site faces.
type direction int

const (
	dirNone direction = iota
	dirLeft
	dirRight
	dirUp
	dirDown
)

// siteDirection maps a cardinal site id to the direction a connector
// leaves the shape from. Non-cardinal ids (named sites like "tip", or
// freehand "pos_x_y" tokens) have no direction and fall through to the
// axis-dominance rules.
func siteDirection(siteID string) (direction, bool) {
	switch siteID {
	case "left":
		return dirLeft, true
	case "right":
		return dirRight, true
	case "top":
		return dirUp, true
	case "bottom":
		return dirDown, true
	}
	return dirNone, false
}

// vector returns the unit vector for a direction in screen coordinates
// (y grows downward).
func (d direction) vector() (float64, float64) {
	switch d {
	case dirLeft:
		return -1, 0
	case dirRight:
		return 1, 0
	case dirUp:
		return 0, -1
	case dirDown:
		return 0, 1
	}
	return 0, 0
}

func (d direction) horizontal() bool { return d == dirLeft || d == dirRight }

func opposing(a, b direction) bool {
	return (a == dirLeft && b == dirRight) || (a == dirRight && b == dirLeft) ||
		(a == dirUp && b == dirDown) || (a == dirDown && b == dirUp)
}

// Curved connectors push their control points outward from the endpoint
// along the site direction by a distance proportional to the endpoint
// separation, clamped to this range.
const (
	minControlPush   = 50.0
	maxControlPush   = 150.0
	controlPushRatio = 0.3
)

// Route computes a path from start to end. The optional site ids carry the
// directional hint of the shape side each endpoint was resolved from; pass
// empty strings for freehand endpoints. The returned path begins exactly
// at start and ends exactly at end.
func Route(start, end geometry.Point, kind Kind, startSite, endSite string) Path {
	switch kind {
	case Elbow:
		return Path{Points: elbowPoints(start, end, startSite, endSite)}
	case Curved:
		return Path{Curve: curvedPath(start, end, startSite, endSite)}
	default:
		return Path{Points: []geometry.Point{start, end}}
	}
}

// elbowPoints routes an orthogonal path. The explicit direction table is
// consulted before the axis-dominance fallback; both endpoints snapped to
// known sides must keep their table route.
func elbowPoints(start, end geometry.Point, startSite, endSite string) []geometry.Point {
	// Already-aligned endpoints need no waypoints at all.
	if start.X == end.X || start.Y == end.Y {
		return []geometry.Point{start, end}
	}

	sd, sok := siteDirection(startSite)
	ed, eok := siteDirection(endSite)

	if sok && eok {
		if opposing(sd, ed) {
			// Z-shape through the midpoint of the dominant axis.
			if sd.horizontal() {
				midX := (start.X + end.X) / 2
				return []geometry.Point{
					start,
					{X: midX, Y: start.Y},
					{X: midX, Y: end.Y},
					end,
				}
			}
			midY := (start.Y + end.Y) / 2
			return []geometry.Point{
				start,
				{X: start.X, Y: midY},
				{X: end.X, Y: midY},
				end,
			}
		}
		if sd.horizontal() != ed.horizontal() {
			// Perpendicular sides: single L corner. The horizontal side
			// travels first along x, so the corner sits at the end's x
			// when the start side is horizontal, and symmetrically
			// otherwise.
			if sd.horizontal() {
				return []geometry.Point{start, {X: end.X, Y: start.Y}, end}
			}
			return []geometry.Point{start, {X: start.X, Y: end.Y}, end}
		}
		// Same-side pairs fall through to axis dominance.
	}

	dx := end.X - start.X
	dy := end.Y - start.Y
	if geometry.Abs(dx) > geometry.Abs(dy) {
		midX := start.X + dx/2
		return []geometry.Point{
			start,
			{X: midX, Y: start.Y},
			{X: midX, Y: end.Y},
			end,
		}
	}
	midY := start.Y + dy/2
	return []geometry.Point{
		start,
		{X: start.X, Y: midY},
		{X: end.X, Y: midY},
		end,
	}
}

// curvedPath builds a cubic Bézier. Known sites push the control points
// outward along their side so the curve leaves and enters roughly
// perpendicular to the shape edge; otherwise the controls are placed on
// the endpoints' dominant axis.
func curvedPath(start, end geometry.Point, startSite, endSite string) *Bezier {
	sd, sok := siteDirection(startSite)
	ed, eok := siteDirection(endSite)

	if sok && eok {
		push := geometry.Clamp(controlPushRatio*start.Distance(end), minControlPush, maxControlPush)
		sx, sy := sd.vector()
		ex, ey := ed.vector()
		return &Bezier{
			Start:    start,
			Control1: start.Add(sx*push, sy*push),
			Control2: end.Add(ex*push, ey*push),
			End:      end,
		}
	}

	dx := end.X - start.X
	dy := end.Y - start.Y
	if geometry.Abs(dx) >= geometry.Abs(dy) {
		return &Bezier{
			Start:    start,
			Control1: start.Add(dx/2, 0),
			Control2: end.Add(-dx/2, 0),
			End:      end,
		}
	}
	return &Bezier{
		Start:    start,
		Control1: start.Add(0, dy/2),
		Control2: end.Add(0, -dy/2),
		End:      end,
	}
}

