package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidewire/catalog"
	"slidewire/geometry"
	"slidewire/routing"
	"slidewire/scene"
	"slidewire/sites"
)

func newCoordinator() *Coordinator {
	return NewCoordinator(sites.NewResolver(catalog.Builtin()))
}

func twoRectScene() *scene.Scene {
	s := &scene.Scene{
		Elements: []*scene.Element{
			{ID: "a", ShapeType: "rect", X: 0, Y: 0, Width: 100, Height: 50},
			{ID: "b", ShapeType: "rect", X: 300, Y: 0, Width: 100, Height: 50},
		},
		Connectors: []*scene.Connector{
			{
				ID:    "c1",
				Start: scene.BoundAnchor("a", "right"),
				End:   scene.BoundAnchor("b", "left"),
				Kind:  routing.Elbow,
			},
		},
	}
	s.Reindex()
	return s
}

func TestReconcileResolvesBoundPoints(t *testing.T) {
	c := newCoordinator()
	s := twoRectScene()

	updates := c.Reconcile("a", s)
	require.Len(t, updates, 1)

	u := updates[0]
	assert.Equal(t, "c1", u.ConnectorID)
	assert.Equal(t, geometry.Point{X: 100, Y: 25}, u.Start.Point)
	assert.Equal(t, geometry.Point{X: 300, Y: 25}, u.End.Point)
	assert.True(t, u.ClearPath)
}

func TestReconcileIdempotent(t *testing.T) {
	c := newCoordinator()
	s := twoRectScene()

	first := c.Reconcile("a", s)
	require.NotEmpty(t, first)
	Apply(s, first)

	// Unchanged inputs after applying: nothing left to do.
	second := c.Reconcile("a", s)
	assert.Empty(t, second)
}

func TestReconcileMoveShiftsBoundEnd(t *testing.T) {
	c := newCoordinator()
	s := &scene.Scene{
		Elements: []*scene.Element{
			{ID: "a", ShapeType: "rect", X: 0, Y: 0, Width: 100, Height: 50},
		},
		Connectors: []*scene.Connector{
			{
				ID:    "c1",
				Start: scene.BoundAnchor("a", "right"),
				End:   scene.FreeAnchor(geometry.Point{X: 400, Y: 25}),
				Kind:  routing.Straight,
			},
		},
	}
	s.Reindex()
	Apply(s, c.Reconcile("a", s))

	el, _ := s.Element("a")
	el.X += 10
	el.Y += 10

	updates := c.Reconcile("a", s)
	require.Len(t, updates, 1)

	u := updates[0]
	// Bound end follows the element; the site id is unchanged.
	assert.Equal(t, geometry.Point{X: 110, Y: 35}, u.Start.Point)
	assert.Equal(t, "right", u.Start.SiteID)
	// The free end is never touched.
	assert.Equal(t, scene.FreeAnchor(geometry.Point{X: 400, Y: 25}), u.End)
	assert.False(t, u.ClearPath)
}

func TestReconcileDynamicReselectsNearestSites(t *testing.T) {
	c := newCoordinator()
	s := twoRectScene()
	s.Connectors[0].Dynamic = true
	Apply(s, c.Reconcile("a", s))

	// Move "a" well below "b": the vertical sides become the closest
	// pair, so both ends re-attach.
	el, _ := s.Element("a")
	el.X = 300
	el.Y = 400

	updates := c.Reconcile("a", s)
	require.Len(t, updates, 1)

	u := updates[0]
	assert.Equal(t, "top", u.Start.SiteID)
	assert.Equal(t, "bottom", u.End.SiteID)
	assert.Equal(t, geometry.Point{X: 350, Y: 400}, u.Start.Point)
	assert.Equal(t, geometry.Point{X: 350, Y: 50}, u.End.Point)
}

func TestReconcileStaticKeepsRecordedSites(t *testing.T) {
	c := newCoordinator()
	s := twoRectScene()
	Apply(s, c.Reconcile("a", s))

	// Without dynamic mode the recorded sites stay put even when another
	// side would now be nearer.
	el, _ := s.Element("a")
	el.X = 300
	el.Y = 400

	updates := c.Reconcile("a", s)
	require.Len(t, updates, 1)
	assert.Equal(t, "right", updates[0].Start.SiteID)
	assert.Equal(t, "left", updates[0].End.SiteID)
}

func TestReconcileDetachesMissingElement(t *testing.T) {
	c := newCoordinator()
	s := twoRectScene()
	Apply(s, c.Reconcile("a", s))

	require.True(t, s.RemoveElement("b"))

	updates := c.Reconcile("a", s)
	require.Len(t, updates, 1)

	u := updates[0]
	// The dangling end becomes a free anchor at its last known point;
	// the surviving end is re-resolved as usual.
	assert.False(t, u.End.IsBound())
	assert.Equal(t, geometry.Point{X: 300, Y: 25}, u.End.Point)
	assert.True(t, u.Start.IsBound())
	assert.Equal(t, geometry.Point{X: 100, Y: 25}, u.Start.Point)

	// Applying the detachment settles the scene.
	Apply(s, updates)
	assert.Empty(t, c.Reconcile("a", s))
}

func TestReconcileIgnoresUnrelatedConnectors(t *testing.T) {
	c := newCoordinator()
	s := twoRectScene()
	s.Elements = append(s.Elements, &scene.Element{ID: "x", ShapeType: "rect", X: 600, Y: 600, Width: 50, Height: 50})
	s.Reindex()
	Apply(s, c.Reconcile("a", s))

	assert.Empty(t, c.Reconcile("x", s))
}
