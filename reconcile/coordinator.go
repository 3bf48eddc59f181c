// Package reconcile re-derives consistent connector attachment state after
// a scene mutation. Given the element that moved or resized, the
// coordinator finds every connector bound to it, re-resolves endpoints,
// re-selects sites for dynamic connectors, and emits the minimal set of
// updates needed to keep every connector valid. Reconciliation is a pure
// function of the scene; applying the updates and reconciling again yields
// nothing.
package reconcile

import (
	"github.com/samber/lo"

	"slidewire/routing"
	"slidewire/scene"
	"slidewire/sites"
)

// Update describes the new endpoint state for one connector. The anchors
// carry both the connection-site identity and the freshly resolved
// concrete points. A bound anchor whose element disappeared comes back as
// a free anchor at its last known point, so persisted state reflects the
// detachment.
type Update struct {
	ConnectorID string
	Start       scene.Anchor
	End         scene.Anchor
	// ClearPath tells stores that kept custom waypoint data for elbow or
	// curved connectors to drop it; the router recomputes fresh geometry
	// from the new anchors.
	ClearPath bool
}

// Coordinator runs reconciliation passes over a scene.
type Coordinator struct {
	resolver *sites.Resolver
}

// NewCoordinator creates a coordinator using the given resolver.
func NewCoordinator(r *sites.Resolver) *Coordinator {
	return &Coordinator{resolver: r}
}

// Reconcile computes updates for every connector affected by a change to
// the element with the given id. Connectors not bound to that element are
// never touched. The scene itself is not modified; see Apply.
func (c *Coordinator) Reconcile(movedID string, s *scene.Scene) []Update {
	affected := lo.Filter(s.Connectors, func(conn *scene.Connector, _ int) bool {
		return conn.Start.ElementID == movedID || conn.End.ElementID == movedID
	})

	var updates []Update
	for _, conn := range affected {
		if u, changed := c.reconcileConnector(conn, s); changed {
			updates = append(updates, u)
		}
	}
	return updates
}

// reconcileConnector derives the new anchor state for one connector and
// reports whether it differs from the stored state.
func (c *Coordinator) reconcileConnector(conn *scene.Connector, s *scene.Scene) (Update, bool) {
	start, end := conn.Start, conn.End

	startEl, startOk := boundElement(start, s)
	endEl, endOk := boundElement(end, s)

	// A bound anchor whose element vanished detaches to a free anchor at
	// its last known point. This is the only automatic tag change.
	if start.IsBound() && !startOk {
		start = scene.FreeAnchor(start.Point)
	}
	if end.IsBound() && !endOk {
		end = scene.FreeAnchor(end.Point)
	}

	switch {
	case conn.Dynamic && startOk && endOk:
		// Dynamic mode with both elements present: pick the
		// geometrically best site on each end, then re-check the
		// opposite end against the fresh point so the pair converges on
		// the shortest attachment as shapes move past each other.
		endPt := c.resolver.ResolveOne(endEl, end.SiteID)
		if best, ok := sites.Nearest(c.resolver.ResolveAll(startEl), endPt); ok {
			start.SiteID = best.ID
			start.Point = best.Point
		}
		if best, ok := sites.Nearest(c.resolver.ResolveAll(endEl), start.Point); ok {
			end.SiteID = best.ID
			end.Point = best.Point
		}
	default:
		// Re-resolve each surviving bound end at its recorded site.
		if startOk {
			start.Point = c.resolver.ResolveOne(startEl, start.SiteID)
		}
		if endOk {
			end.Point = c.resolver.ResolveOne(endEl, end.SiteID)
		}
	}

	if start == conn.Start && end == conn.End {
		return Update{}, false
	}
	return Update{
		ConnectorID: conn.ID,
		Start:       start,
		End:         end,
		ClearPath:   conn.Kind == routing.Elbow || conn.Kind == routing.Curved,
	}, true
}

func boundElement(a scene.Anchor, s *scene.Scene) (*scene.Element, bool) {
	if !a.IsBound() {
		return nil, false
	}
	return s.Element(a.ElementID)
}

// Apply writes a set of updates back onto the scene's connectors.
func Apply(s *scene.Scene, updates []Update) {
	for _, u := range updates {
		if conn, ok := s.Connector(u.ConnectorID); ok {
			conn.Start = u.Start
			conn.End = u.End
		}
	}
}
