// Package validation checks scene documents for structural problems
// before they reach the engine. The engine itself is total and survives
// bad references, but surfacing them early gives users actionable
// messages instead of silently degraded geometry.
package validation

import (
	"fmt"

	"slidewire/catalog"
	"slidewire/scene"
)

// Problem describes one structural issue in a scene document.
type Problem struct {
	// Subject is the id of the element or connector at fault.
	Subject string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Subject, p.Message)
}

// Validator checks scenes against a shape catalog.
type Validator struct {
	catalog *catalog.Catalog
	// warnUnknownShapes reports shape types missing from the catalog.
	// They still render via the rectangle fallback, so this is advisory.
	warnUnknownShapes bool
}

// NewValidator creates a validator with default settings.
func NewValidator(c *catalog.Catalog) *Validator {
	return &Validator{catalog: c, warnUnknownShapes: true}
}

// SetWarnUnknownShapes controls whether unknown shape types are reported.
func (v *Validator) SetWarnUnknownShapes(warn bool) {
	v.warnUnknownShapes = warn
}

// Validate checks a scene and returns every problem found.
func (v *Validator) Validate(s *scene.Scene) []Problem {
	var problems []Problem

	elementIDs := make(map[string]bool, len(s.Elements))
	for _, el := range s.Elements {
		if el.ID == "" {
			problems = append(problems, Problem{Subject: "(element)", Message: "element has no id"})
			continue
		}
		if elementIDs[el.ID] {
			problems = append(problems, Problem{Subject: el.ID, Message: "duplicate element id"})
		}
		elementIDs[el.ID] = true

		if el.Width < 0 || el.Height < 0 {
			problems = append(problems, Problem{
				Subject: el.ID,
				Message: fmt.Sprintf("negative size %gx%g", el.Width, el.Height),
			})
		}
		if v.warnUnknownShapes {
			if _, ok := v.catalog.Lookup(el.ShapeType); !ok {
				problems = append(problems, Problem{
					Subject: el.ID,
					Message: fmt.Sprintf("unknown shape type %q, will render as rectangle", el.ShapeType),
				})
			}
		}
	}

	connectorIDs := make(map[string]bool, len(s.Connectors))
	for _, conn := range s.Connectors {
		if conn.ID == "" {
			problems = append(problems, Problem{Subject: "(connector)", Message: "connector has no id"})
			continue
		}
		if connectorIDs[conn.ID] {
			problems = append(problems, Problem{Subject: conn.ID, Message: "duplicate connector id"})
		}
		connectorIDs[conn.ID] = true

		for _, end := range []struct {
			name   string
			anchor scene.Anchor
		}{{"start", conn.Start}, {"end", conn.End}} {
			if end.anchor.IsBound() && !elementIDs[end.anchor.ElementID] {
				problems = append(problems, Problem{
					Subject: conn.ID,
					Message: fmt.Sprintf("%s anchor references missing element %q", end.name, end.anchor.ElementID),
				})
			}
		}
	}

	return problems
}
