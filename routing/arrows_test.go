package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"slidewire/geometry"
)

func TestArrowAtStraightEnd(t *testing.T) {
	p := Route(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, Straight, "", "")

	g := ArrowAt(p, false)
	assert.Equal(t, geometry.Point{X: 100, Y: 0}, g.Tip)

	// Wings trail back toward the start, symmetric about the shaft.
	assert.Less(t, g.WingA.X, 100.0)
	assert.Less(t, g.WingB.X, 100.0)
	assert.InDelta(t, g.WingA.X, g.WingB.X, 1e-9)
	assert.InDelta(t, -g.WingA.Y, g.WingB.Y, 1e-9)

	// Wing length is the fixed arrow length.
	assert.InDelta(t, 15.0, g.Tip.Distance(g.WingA), 1e-9)
	assert.InDelta(t, 15.0, g.Tip.Distance(g.WingB), 1e-9)
}

func TestArrowAtStraightStart(t *testing.T) {
	p := Route(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, Straight, "", "")

	g := ArrowAt(p, true)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, g.Tip)
	// At the start end the wings trail toward the end.
	assert.Greater(t, g.WingA.X, 0.0)
	assert.Greater(t, g.WingB.X, 0.0)
}

func TestArrowAtElbowUsesTerminalSegment(t *testing.T) {
	// Elbow arriving vertically: the arrow must align with the last
	// segment, not the overall start->end vector.
	p := Route(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 80}, Elbow, "right", "top")

	g := ArrowAt(p, false)
	assert.Equal(t, geometry.Point{X: 100, Y: 80}, g.Tip)
	// Last segment travels downward, so wings point back up.
	assert.Less(t, g.WingA.Y, 80.0)
	assert.Less(t, g.WingB.Y, 80.0)
	assert.InDelta(t, g.WingA.Y, g.WingB.Y, 1e-9)

	g = ArrowAt(p, true)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, g.Tip)
	// First segment travels right, so wings extend rightward.
	assert.Greater(t, g.WingA.X, 0.0)
	assert.Greater(t, g.WingB.X, 0.0)
}

func TestArrowAtCurveUsesControlTangent(t *testing.T) {
	p := Route(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 400, Y: 0}, Curved, "bottom", "bottom")

	// The end control point hangs below the endpoint, so the arrow wings
	// follow the endpoint-to-control direction rather than the chord.
	g := ArrowAt(p, false)
	assert.Equal(t, geometry.Point{X: 400, Y: 0}, g.Tip)
	assert.Greater(t, g.WingA.Y, 0.0)
	assert.Greater(t, g.WingB.Y, 0.0)
}

func TestArrowWingSpread(t *testing.T) {
	p := Route(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, Straight, "", "")
	g := ArrowAt(p, false)

	// The half-angle between shaft and wing matches the fixed spread:
	// the wing sits 15*cos(spread) behind the tip and 15*sin(spread) off
	// the shaft axis.
	assert.InDelta(t, 100-15*math.Cos(arrowSpread), g.WingA.X, 1e-9)
	assert.InDelta(t, 15*math.Sin(arrowSpread), math.Abs(g.WingA.Y), 1e-9)
}
