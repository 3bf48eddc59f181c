// Package scene holds the document-facing data model the connection
// engine operates on: element snapshots, connectors and their anchors.
// Connectors store identity references to connection sites, never
// positions; concrete points are derived on demand, except transiently
// for free anchors.
package scene

import (
	"slidewire/geometry"
	"slidewire/routing"
)

// Element is a snapshot of a shape in the scene.
type Element struct {
	ID          string       `json:"id"`
	ShapeType   string       `json:"shapeType"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Rotation    float64      `json:"rotation,omitempty"`
	Adjustments *Adjustments `json:"adjustments,omitempty"`
}

// Bounds returns the element's bounding rectangle.
func (e *Element) Bounds() geometry.Rect {
	return geometry.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Adjustments is the closed set of shape adjustment knobs. Each shape
// family consumes the subset its catalog definition declares; unset knobs
// fall back to the definition's defaults.
type Adjustments struct {
	CornerRadius *float64 `json:"cornerRadius,omitempty"`
	Head         *float64 `json:"head,omitempty"`
	Thickness    *float64 `json:"thickness,omitempty"`
	Inset        *float64 `json:"inset,omitempty"`
	Skew         *float64 `json:"skew,omitempty"`
	StartAngle   *float64 `json:"startAngle,omitempty"`
	EndAngle     *float64 `json:"endAngle,omitempty"`
	InnerRadius  *float64 `json:"innerRadius,omitempty"`
}

// Value returns the override for a named knob, if set. Nil receivers are
// valid and report no overrides.
func (a *Adjustments) Value(name string) (float64, bool) {
	if a == nil {
		return 0, false
	}
	var v *float64
	switch name {
	case "cornerRadius":
		v = a.CornerRadius
	case "head":
		v = a.Head
	case "thickness":
		v = a.Thickness
	case "inset":
		v = a.Inset
	case "skew":
		v = a.Skew
	case "startAngle":
		v = a.StartAngle
	case "endAngle":
		v = a.EndAngle
	case "innerRadius":
		v = a.InnerRadius
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Anchor is one connector endpoint: bound to an element's connection site
// when ElementID is set, free-floating at Point otherwise. For bound
// anchors Point is a transient last-resolved value kept only so a
// connector stays renderable if its element disappears.
type Anchor struct {
	ElementID string         `json:"elementId,omitempty"`
	SiteID    string         `json:"siteId,omitempty"`
	Point     geometry.Point `json:"point"`
}

// IsBound reports whether the anchor references an element site.
func (a Anchor) IsBound() bool { return a.ElementID != "" }

// FreeAnchor returns an unattached anchor at p.
func FreeAnchor(p geometry.Point) Anchor {
	return Anchor{Point: p}
}

// BoundAnchor returns an anchor attached to a site on an element.
func BoundAnchor(elementID, siteID string) Anchor {
	return Anchor{ElementID: elementID, SiteID: siteID}
}

// Connector is a routed edge between two anchors.
type Connector struct {
	ID         string       `json:"id"`
	Start      Anchor       `json:"start"`
	End        Anchor       `json:"end"`
	Kind       routing.Kind `json:"kind"`
	ArrowStart bool         `json:"arrowStart,omitempty"`
	ArrowEnd   bool         `json:"arrowEnd,omitempty"`
	// Dynamic connectors re-select the nearest connection site on both
	// ends whenever a bound element moves.
	Dynamic bool `json:"dynamic,omitempty"`
}

// Scene is a complete element set with its connectors.
type Scene struct {
	Elements   []*Element   `json:"elements"`
	Connectors []*Connector `json:"connectors"`

	index map[string]*Element
}

// Element looks up an element by id.
func (s *Scene) Element(id string) (*Element, bool) {
	if s.index != nil {
		el, ok := s.index[id]
		return el, ok
	}
	for _, el := range s.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return nil, false
}

// Connector looks up a connector by id.
func (s *Scene) Connector(id string) (*Connector, bool) {
	for _, c := range s.Connectors {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Reindex rebuilds the element-by-id arena. Call after adding or removing
// elements; lookups fall back to a linear scan when no index exists.
func (s *Scene) Reindex() {
	s.index = make(map[string]*Element, len(s.Elements))
	for _, el := range s.Elements {
		s.index[el.ID] = el
	}
}

// RemoveElement deletes an element by id and reports whether it existed.
// Connectors bound to it are left in place; the next reconciliation pass
// detaches them.
func (s *Scene) RemoveElement(id string) bool {
	for i, el := range s.Elements {
		if el.ID == id {
			s.Elements = append(s.Elements[:i], s.Elements[i+1:]...)
			if s.index != nil {
				delete(s.index, id)
			}
			return true
		}
	}
	return false
}
