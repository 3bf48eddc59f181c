package export

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"slidewire/catalog"
	"slidewire/engine"
	"slidewire/geometry"
	"slidewire/routing"
	"slidewire/scene"
)

const (
	shapeStyle     = "fill:#eef2f7;stroke:#334155;stroke-width:2"
	connectorStyle = "fill:none;stroke:#334155;stroke-width:2"
	arrowStyle     = "fill:#334155;stroke:none"
	labelStyle     = "text-anchor:middle;font-family:sans-serif;font-size:12px;fill:#334155"
	margin         = 20
)

// SVGExporter renders a scene as an SVG image: shape silhouettes, routed
// connectors and arrowheads. Connector paths are always recomputed from
// the current anchors at export time.
type SVGExporter struct {
	engine  *engine.Engine
	catalog *catalog.Catalog
	// DrawLabels adds the shape type under each element.
	DrawLabels bool
}

// NewSVGExporter creates an SVG exporter over the built-in catalog.
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{
		engine:  engine.New(),
		catalog: catalog.Builtin(),
	}
}

// FileExtension returns the file extension for SVG.
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// Export renders the scene.
func (e *SVGExporter) Export(s *scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	w, h := e.canvasSize(s)
	canvas.Start(w, h)

	for _, el := range s.Elements {
		e.drawElement(canvas, el)
	}
	for _, conn := range s.Connectors {
		e.drawConnector(canvas, conn, s)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// canvasSize fits the canvas to the scene contents plus a margin.
func (e *SVGExporter) canvasSize(s *scene.Scene) (int, int) {
	var maxX, maxY float64
	for _, el := range s.Elements {
		if r := el.Bounds().Right(); r > maxX {
			maxX = r
		}
		if b := el.Bounds().Bottom(); b > maxY {
			maxY = b
		}
	}
	for _, conn := range s.Connectors {
		for _, a := range []scene.Anchor{conn.Start, conn.End} {
			if !a.IsBound() {
				if a.Point.X > maxX {
					maxX = a.Point.X
				}
				if a.Point.Y > maxY {
					maxY = a.Point.Y
				}
			}
		}
	}
	return int(maxX) + 2*margin, int(maxY) + 2*margin
}

func (e *SVGExporter) drawElement(canvas *svg.SVG, el *scene.Element) {
	b := el.Bounds()
	x, y := round(b.X), round(b.Y)
	w, h := round(b.W), round(b.H)

	switch el.ShapeType {
	case "ellipse", "pie":
		canvas.Ellipse(x+w/2, y+h/2, w/2, h/2, shapeStyle)
	case "roundRect":
		rad := round(e.adjValue(el, "cornerRadius", 0.15) * b.H)
		canvas.Roundrect(x, y, w, h, rad, rad, shapeStyle)
	default:
		if points := e.silhouette(el); points != nil {
			xs := make([]int, len(points))
			ys := make([]int, len(points))
			for i, p := range points {
				xs[i] = round(p.X)
				ys[i] = round(p.Y)
			}
			canvas.Polygon(xs, ys, shapeStyle)
		} else {
			canvas.Rect(x, y, w, h, shapeStyle)
		}
	}

	if e.DrawLabels {
		canvas.Text(x+w/2, y+h/2+4, el.ShapeType, labelStyle)
	}
}

// silhouette returns the polygon outline for shape types that are not
// plain rectangles or ellipses, in scene coordinates. Returns nil for
// types drawn by a dedicated SVG primitive or the rectangle fallback.
func (e *SVGExporter) silhouette(el *scene.Element) []geometry.Point {
	b := el.Bounds()
	l, t, r, bt := b.X, b.Y, b.Right(), b.Bottom()
	hc, vc := b.Center().X, b.Center().Y

	switch el.ShapeType {
	case "diamond":
		return []geometry.Point{{X: hc, Y: t}, {X: r, Y: vc}, {X: hc, Y: bt}, {X: l, Y: vc}}
	case "triangle":
		return []geometry.Point{{X: hc, Y: t}, {X: r, Y: bt}, {X: l, Y: bt}}
	case "rightArrow":
		headX := r - b.W*e.adjValue(el, "head", 0.35)
		half := b.H * e.adjValue(el, "thickness", 0.5) / 2
		return []geometry.Point{
			{X: l, Y: vc - half}, {X: headX, Y: vc - half}, {X: headX, Y: t},
			{X: r, Y: vc},
			{X: headX, Y: bt}, {X: headX, Y: vc + half}, {X: l, Y: vc + half},
		}
	case "chevron":
		headX := b.W * e.adjValue(el, "head", 0.3)
		return []geometry.Point{
			{X: l, Y: t}, {X: r - headX, Y: t}, {X: r, Y: vc},
			{X: r - headX, Y: bt}, {X: l, Y: bt}, {X: l + headX, Y: vc},
		}
	case "pentagon":
		shoulder := t + b.H*0.38
		return []geometry.Point{
			{X: hc, Y: t}, {X: r, Y: shoulder},
			{X: l + b.W*0.81, Y: bt}, {X: l + b.W*0.19, Y: bt},
			{X: l, Y: shoulder},
		}
	case "hexagon":
		inset := b.W * e.adjValue(el, "inset", 0.25)
		return []geometry.Point{
			{X: l + inset, Y: t}, {X: r - inset, Y: t}, {X: r, Y: vc},
			{X: r - inset, Y: bt}, {X: l + inset, Y: bt}, {X: l, Y: vc},
		}
	case "parallelogram":
		skew := b.W * e.adjValue(el, "skew", 0.25)
		return []geometry.Point{
			{X: l + skew, Y: t}, {X: r, Y: t}, {X: r - skew, Y: bt}, {X: l, Y: bt},
		}
	case "trapezoid":
		inset := b.W * e.adjValue(el, "inset", 0.2)
		return []geometry.Point{
			{X: l + inset, Y: t}, {X: r - inset, Y: t}, {X: r, Y: bt}, {X: l, Y: bt},
		}
	}
	return nil
}

func (e *SVGExporter) drawConnector(canvas *svg.SVG, conn *scene.Connector, s *scene.Scene) {
	p := e.engine.Route(conn, s)

	if p.IsCurve() {
		c := p.Curve
		canvas.Path(fmt.Sprintf("M%g,%g C%g,%g %g,%g %g,%g",
			c.Start.X, c.Start.Y,
			c.Control1.X, c.Control1.Y,
			c.Control2.X, c.Control2.Y,
			c.End.X, c.End.Y), connectorStyle)
	} else {
		xs := make([]int, len(p.Points))
		ys := make([]int, len(p.Points))
		for i, pt := range p.Points {
			xs[i] = round(pt.X)
			ys[i] = round(pt.Y)
		}
		canvas.Polyline(xs, ys, connectorStyle)
	}

	if conn.ArrowStart {
		e.drawArrow(canvas, routing.ArrowAt(p, true))
	}
	if conn.ArrowEnd {
		e.drawArrow(canvas, routing.ArrowAt(p, false))
	}
}

func (e *SVGExporter) drawArrow(canvas *svg.SVG, g routing.Glyph) {
	canvas.Polygon(
		[]int{round(g.Tip.X), round(g.WingA.X), round(g.WingB.X)},
		[]int{round(g.Tip.Y), round(g.WingA.Y), round(g.WingB.Y)},
		arrowStyle)
}

// adjValue returns the effective value of an adjustment knob: the element
// override, the catalog default, or the given fallback when the shape is
// not in the catalog.
func (e *SVGExporter) adjValue(el *scene.Element, name string, fallback float64) float64 {
	if v, ok := el.Adjustments.Value(name); ok {
		return v
	}
	if def, ok := e.catalog.Lookup(el.ShapeType); ok {
		for _, adj := range def.Adjustments {
			if adj.Name == name {
				return adj.Default
			}
		}
	}
	return fallback
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
