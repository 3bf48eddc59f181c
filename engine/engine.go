// Package engine is the facade collaborators program against: resolving
// connection points, routing connectors, computing arrowheads and running
// reconciliation passes, all over one shared read-only catalog.
package engine

import (
	"slidewire/catalog"
	"slidewire/geometry"
	"slidewire/reconcile"
	"slidewire/routing"
	"slidewire/scene"
	"slidewire/sites"
)

// Engine bundles the resolver and coordinator over a catalog. Every
// operation is a deterministic pure function; the engine holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	resolver    *sites.Resolver
	coordinator *reconcile.Coordinator
}

// New creates an engine over the built-in shape catalog.
func New() *Engine {
	return NewWithCatalog(catalog.Builtin())
}

// NewWithCatalog creates an engine over a custom catalog.
func NewWithCatalog(c *catalog.Catalog) *Engine {
	r := sites.NewResolver(c)
	return &Engine{
		resolver:    r,
		coordinator: reconcile.NewCoordinator(r),
	}
}

// ResolveConnectionPoint resolves a site id on an element to a concrete
// point. Total: unknown ids fall back toward the bounding-box center.
func (e *Engine) ResolveConnectionPoint(el *scene.Element, siteID string) geometry.Point {
	return e.resolver.ResolveOne(el, siteID)
}

// ResolveAllSites resolves every connection site of an element.
func (e *Engine) ResolveAllSites(el *scene.Element) []sites.Resolved {
	return e.resolver.ResolveAll(el)
}

// Route resolves a connector's anchors against the scene and computes its
// path. Bound anchors contribute their site ids as directional hints; free
// anchors contribute none.
func (e *Engine) Route(conn *scene.Connector, s *scene.Scene) routing.Path {
	startPt, startSite := e.anchorPoint(conn.Start, s)
	endPt, endSite := e.anchorPoint(conn.End, s)
	return routing.Route(startPt, endPt, conn.Kind, startSite, endSite)
}

// ArrowGlyph computes the arrowhead triangle for one end of a path.
func (e *Engine) ArrowGlyph(p routing.Path, atStart bool) routing.Glyph {
	return routing.ArrowAt(p, atStart)
}

// Reconcile computes the connector updates needed after the element with
// the given id moved or resized.
func (e *Engine) Reconcile(movedID string, s *scene.Scene) []reconcile.Update {
	return e.coordinator.Reconcile(movedID, s)
}

// anchorPoint resolves an anchor to a concrete point plus the site id
// usable as a routing hint.
func (e *Engine) anchorPoint(a scene.Anchor, s *scene.Scene) (geometry.Point, string) {
	if !a.IsBound() {
		return a.Point, ""
	}
	el, ok := s.Element(a.ElementID)
	if !ok {
		// Dangling reference: render from the last known point until the
		// next reconciliation pass detaches the anchor.
		return a.Point, ""
	}
	return e.resolver.ResolveOne(el, a.SiteID), a.SiteID
}
