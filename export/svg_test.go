package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidewire/geometry"
	"slidewire/routing"
	"slidewire/scene"
)

func exportScene() *scene.Scene {
	s := &scene.Scene{
		Elements: []*scene.Element{
			{ID: "a", ShapeType: "rect", X: 20, Y: 20, Width: 100, Height: 50},
			{ID: "b", ShapeType: "diamond", X: 300, Y: 20, Width: 80, Height: 80},
			{ID: "c", ShapeType: "ellipse", X: 20, Y: 200, Width: 100, Height: 60},
		},
		Connectors: []*scene.Connector{
			{ID: "c1", Start: scene.BoundAnchor("a", "right"), End: scene.BoundAnchor("b", "left"), Kind: routing.Elbow, ArrowEnd: true},
			{ID: "c2", Start: scene.BoundAnchor("a", "bottom"), End: scene.BoundAnchor("c", "top"), Kind: routing.Curved},
		},
	}
	s.Reindex()
	return s
}

func TestSVGExport(t *testing.T) {
	e := NewSVGExporter()
	out, err := e.Export(exportScene())
	require.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "</svg>")
	assert.Contains(t, svg, "<rect")
	assert.Contains(t, svg, "<polygon")
	assert.Contains(t, svg, "<ellipse")
	assert.Contains(t, svg, "<polyline")
	// Curved connector renders as a cubic path.
	assert.Contains(t, svg, " C")
}

func TestSVGExportLabels(t *testing.T) {
	e := NewSVGExporter()
	e.DrawLabels = true
	out, err := e.Export(exportScene())
	require.NoError(t, err)
	assert.Contains(t, string(out), "diamond")
}

func TestSVGExportFreeEndpointsGrowCanvas(t *testing.T) {
	e := NewSVGExporter()
	s := &scene.Scene{
		Elements: []*scene.Element{{ID: "a", ShapeType: "rect", Width: 50, Height: 50}},
		Connectors: []*scene.Connector{
			{ID: "c", Start: scene.BoundAnchor("a", "right"), End: scene.FreeAnchor(geometry.Point{X: 900, Y: 40}), Kind: routing.Straight},
		},
	}
	s.Reindex()

	out, err := e.Export(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `width="940"`)
}

func TestJSONExportRoundTrip(t *testing.T) {
	e := NewJSONExporter()
	out, err := e.Export(exportScene())
	require.NoError(t, err)

	parsed, err := scene.Parse(out)
	require.NoError(t, err)
	assert.Len(t, parsed.Elements, 3)
	assert.Len(t, parsed.Connectors, 2)
	assert.Equal(t, ".json", e.FileExtension())
}
