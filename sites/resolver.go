// Package sites resolves abstract connection-site identifiers to concrete
// coordinates for shape instances. Resolution is total: every shape type,
// known or not, yields at least the four bounding-box midpoints, and every
// site id resolves to some point through a layered fallback chain.
package sites

import (
	"strconv"
	"strings"

	"github.com/flanksource/commons/logger"

	"slidewire/catalog"
	"slidewire/formula"
	"slidewire/geometry"
	"slidewire/scene"
)

// Resolved is the concrete per-instance evaluation of a connection site.
type Resolved struct {
	ID       string
	Point    geometry.Point
	AngleDeg float64
}

// Resolver evaluates catalog definitions against shape instances. It holds
// only the shared read-only catalog and is safe for concurrent use.
type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// ResolveAll evaluates every connection site of an element. Unknown shape
// types fall back to the four bounding-box midpoints, so the result is
// never empty.
func (r *Resolver) ResolveAll(el *scene.Element) []Resolved {
	def, ok := r.catalog.Lookup(el.ShapeType)
	if !ok {
		return fallbackSites(el.Bounds())
	}

	env := formula.NewEnv(el.Width, el.Height)
	for _, adj := range def.Adjustments {
		v := adj.Default
		if override, set := el.Adjustments.Value(adj.Name); set {
			v = override
		}
		env.Set(adj.Name, v)
	}
	for _, g := range def.Guides {
		env.AddGuide(g.Name, g.Formula)
	}

	out := make([]Resolved, 0, len(def.Sites))
	for _, s := range def.Sites {
		out = append(out, Resolved{
			ID:       s.ID,
			Point:    geometry.Point{X: env.Eval(s.X) + el.X, Y: env.Eval(s.Y) + el.Y},
			AngleDeg: s.AngleDeg,
		})
	}
	return out
}

// ResolveOne resolves a single site id to a point. The fallback chain
// keeps this a total function: a freehand "pos_x_y" token is parsed
// literally, an id matching a catalog site uses its evaluated position, a
// cardinal name missing from the catalog maps onto the bounding box, and
// anything else lands on the bounding-box center.
func (r *Resolver) ResolveOne(el *scene.Element, siteID string) geometry.Point {
	bounds := el.Bounds()

	if p, ok := parsePositionToken(siteID); ok {
		return p
	}
	for _, s := range r.ResolveAll(el) {
		if s.ID == siteID {
			return s.Point
		}
	}
	if p, ok := cardinalPoint(bounds, siteID); ok {
		return p
	}
	if siteID != "" {
		logger.Debugf("sites: element %q has no site %q, using center", el.ID, siteID)
	}
	return bounds.Center()
}

// parsePositionToken parses a serialized freehand position of the form
// "pos_<x>_<y>". The two coordinates are split on the separator and
// parsed individually; negative and fractional values are valid.
func parsePositionToken(siteID string) (geometry.Point, bool) {
	rest, found := strings.CutPrefix(siteID, "pos_")
	if !found {
		return geometry.Point{}, false
	}
	xs, ys, found := strings.Cut(rest, "_")
	if !found {
		logger.Debugf("sites: malformed position token %q", siteID)
		return geometry.Point{}, false
	}
	x, errX := strconv.ParseFloat(xs, 64)
	y, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil {
		logger.Debugf("sites: malformed position token %q", siteID)
		return geometry.Point{}, false
	}
	return geometry.Point{X: x, Y: y}, true
}

// cardinalPoint maps a cardinal site name onto the bounding box.
func cardinalPoint(b geometry.Rect, siteID string) (geometry.Point, bool) {
	switch siteID {
	case "top":
		return geometry.Point{X: b.X + b.W/2, Y: b.Y}, true
	case "right":
		return geometry.Point{X: b.Right(), Y: b.Y + b.H/2}, true
	case "bottom":
		return geometry.Point{X: b.X + b.W/2, Y: b.Bottom()}, true
	case "left":
		return geometry.Point{X: b.X, Y: b.Y + b.H/2}, true
	case "center":
		return b.Center(), true
	}
	return geometry.Point{}, false
}

// fallbackSites returns the four midpoint sites every shape is guaranteed
// to expose, with outward angles 270/0/90/180.
func fallbackSites(b geometry.Rect) []Resolved {
	return []Resolved{
		{ID: "top", Point: geometry.Point{X: b.X + b.W/2, Y: b.Y}, AngleDeg: 270},
		{ID: "right", Point: geometry.Point{X: b.Right(), Y: b.Y + b.H/2}, AngleDeg: 0},
		{ID: "bottom", Point: geometry.Point{X: b.X + b.W/2, Y: b.Bottom()}, AngleDeg: 90},
		{ID: "left", Point: geometry.Point{X: b.X, Y: b.Y + b.H/2}, AngleDeg: 180},
	}
}
