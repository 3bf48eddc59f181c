// Package catalog holds the per-shape-type geometric definitions: named
// guides, connection-site formulas and adjustment knobs. The built-in
// catalog is loaded once from embedded YAML and shared read-only by every
// resolver; there is no write path after load.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed shapes.yaml
var builtinYAML []byte

// builtinVars are the variable names every formula may reference without
// declaring them: the instance size and the derived edge/center values.
var builtinVars = map[string]bool{
	"w": true, "h": true,
	"l": true, "r": true, "t": true, "b": true,
	"hc": true, "vc": true,
}

// Guide is a named scalar computed from a formula over the built-in
// variables, the shape's adjustments and previously declared guides.
type Guide struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// Site describes one connection site: a position expressed as two formulas
// plus the outward angle used for default arrow orientation, in degrees
// with 0 pointing right and 90 pointing down.
type Site struct {
	ID       string  `yaml:"id"`
	X        string  `yaml:"x"`
	Y        string  `yaml:"y"`
	AngleDeg float64 `yaml:"angle"`
}

// Adjustment declares a named knob a shape family exposes, with its
// default value. Shapes consume a small closed set of knobs; an element
// can only override knobs its definition declares.
type Adjustment struct {
	Name    string  `yaml:"name"`
	Default float64 `yaml:"default"`
}

// Size is a default width and height for newly created shapes.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Definition is the immutable geometric model for one shape type.
type Definition struct {
	ShapeType   string       `yaml:"type"`
	DefaultSize Size         `yaml:"defaultSize"`
	Adjustments []Adjustment `yaml:"adjustments"`
	Guides      []Guide      `yaml:"guides"`
	Sites       []Site       `yaml:"sites"`
}

// Catalog is a read-only registry of shape definitions keyed by type.
type Catalog struct {
	defs map[string]*Definition
}

// Lookup returns the definition for a shape type, or false if the type is
// unknown. Callers fall back to the four-site rectangle in that case.
func (c *Catalog) Lookup(shapeType string) (*Definition, bool) {
	d, ok := c.defs[shapeType]
	return d, ok
}

// Types returns the registered shape type names.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.defs))
	for t := range c.defs {
		types = append(types, t)
	}
	return types
}

type catalogFile struct {
	Shapes []*Definition `yaml:"shapes"`
}

// Load parses a YAML catalog document and verifies every definition. A
// formula referencing an undeclared name or a later guide is a definition
// error and fails the load; it is never deferred to resolution time.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse shape catalog: %w", err)
	}

	c := &Catalog{defs: make(map[string]*Definition, len(file.Shapes))}
	for _, def := range file.Shapes {
		if def.ShapeType == "" {
			return nil, fmt.Errorf("shape definition with empty type")
		}
		if _, dup := c.defs[def.ShapeType]; dup {
			return nil, fmt.Errorf("duplicate shape type %q", def.ShapeType)
		}
		if err := validateDefinition(def); err != nil {
			return nil, fmt.Errorf("shape %q: %w", def.ShapeType, err)
		}
		c.defs[def.ShapeType] = def
	}
	return c, nil
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
)

// Builtin returns the process-wide catalog of standard shapes, loaded from
// the embedded definitions on first use. The embedded data is verified at
// load; a failure here is a build defect, not a runtime condition.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := Load(builtinYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded shape definitions are invalid: %v", err))
		}
		builtinCatalog = c
	})
	return builtinCatalog
}
