package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidewire/geometry"
	"slidewire/reconcile"
	"slidewire/routing"
	"slidewire/scene"
)

func demoScene() *scene.Scene {
	s := &scene.Scene{
		Elements: []*scene.Element{
			{ID: "a", ShapeType: "rect", X: 0, Y: 0, Width: 100, Height: 50},
			{ID: "b", ShapeType: "ellipse", X: 300, Y: 0, Width: 100, Height: 50},
		},
		Connectors: []*scene.Connector{
			{
				ID:       "c1",
				Start:    scene.BoundAnchor("a", "right"),
				End:      scene.BoundAnchor("b", "left"),
				Kind:     routing.Elbow,
				ArrowEnd: true,
			},
		},
	}
	s.Reindex()
	return s
}

func TestEngineRouteFromAnchors(t *testing.T) {
	e := New()
	s := demoScene()

	p := e.Route(s.Connectors[0], s)
	require.False(t, p.IsCurve())

	// Endpoints equal the resolved anchor points exactly.
	assert.Equal(t, geometry.Point{X: 100, Y: 25}, p.Start())
	assert.Equal(t, geometry.Point{X: 300, Y: 25}, p.End())
	// right->left at equal heights collapses to a straight segment.
	assert.Len(t, p.Points, 2)
}

func TestEngineRouteFreeEnd(t *testing.T) {
	e := New()
	s := demoScene()
	s.Connectors = append(s.Connectors, &scene.Connector{
		ID:    "c2",
		Start: scene.BoundAnchor("a", "bottom"),
		End:   scene.FreeAnchor(geometry.Point{X: 50, Y: 300}),
		Kind:  routing.Curved,
	})

	p := e.Route(s.Connectors[1], s)
	require.True(t, p.IsCurve())
	assert.Equal(t, geometry.Point{X: 50, Y: 50}, p.Start())
	assert.Equal(t, geometry.Point{X: 50, Y: 300}, p.End())
}

func TestEngineReconcileThenRoute(t *testing.T) {
	e := New()
	s := demoScene()
	reconcile.Apply(s, e.Reconcile("a", s))

	el, _ := s.Element("a")
	el.Y += 100

	updates := e.Reconcile("a", s)
	require.Len(t, updates, 1)
	reconcile.Apply(s, updates)

	p := e.Route(s.Connectors[0], s)
	assert.Equal(t, geometry.Point{X: 100, Y: 125}, p.Start())
	assert.Equal(t, geometry.Point{X: 300, Y: 25}, p.End())

	g := e.ArrowGlyph(p, false)
	assert.Equal(t, p.End(), g.Tip)
}

func TestEngineResolveConnectionPoint(t *testing.T) {
	e := New()
	s := demoScene()
	el, _ := s.Element("a")

	assert.Equal(t, geometry.Point{X: 50, Y: 0}, e.ResolveConnectionPoint(el, "top"))
	assert.NotEmpty(t, e.ResolveAllSites(el))
}
