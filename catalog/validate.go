package catalog

import (
	"fmt"

	"slidewire/formula"
)

// validateDefinition checks a definition's internal consistency: unique
// names, and no guide or site formula referencing anything beyond the
// built-ins, the declared adjustments and earlier guides. Guides are
// strictly ordered, so this also rules out cycles.
func validateDefinition(def *Definition) error {
	known := make(map[string]bool, len(builtinVars)+len(def.Adjustments)+len(def.Guides))
	for name := range builtinVars {
		known[name] = true
	}

	for _, adj := range def.Adjustments {
		if adj.Name == "" {
			return fmt.Errorf("adjustment with empty name")
		}
		if known[adj.Name] {
			return fmt.Errorf("adjustment %q shadows an existing name", adj.Name)
		}
		known[adj.Name] = true
	}

	for i, g := range def.Guides {
		if g.Name == "" {
			return fmt.Errorf("guide %d has no name", i)
		}
		if known[g.Name] {
			return fmt.Errorf("guide %q shadows an existing name", g.Name)
		}
		if err := checkFormula(g.Formula, known); err != nil {
			return fmt.Errorf("guide %q: %w", g.Name, err)
		}
		// Later guides and sites may now reference this one.
		known[g.Name] = true
	}

	siteIDs := make(map[string]bool, len(def.Sites))
	for i, s := range def.Sites {
		if s.ID == "" {
			return fmt.Errorf("site %d has no id", i)
		}
		if siteIDs[s.ID] {
			return fmt.Errorf("duplicate site id %q", s.ID)
		}
		siteIDs[s.ID] = true
		if err := checkFormula(s.X, known); err != nil {
			return fmt.Errorf("site %q x: %w", s.ID, err)
		}
		if err := checkFormula(s.Y, known); err != nil {
			return fmt.Errorf("site %q y: %w", s.ID, err)
		}
	}
	return nil
}

func checkFormula(src string, known map[string]bool) error {
	if src == "" {
		return fmt.Errorf("empty formula")
	}
	ids, err := formula.Identifiers(src)
	if err != nil {
		return fmt.Errorf("malformed formula %q: %w", src, err)
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("formula %q references undefined name %q", src, id)
		}
	}
	return nil
}
