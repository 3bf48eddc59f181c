// Package formula evaluates the small arithmetic expressions that drive
// shape guides and connection sites. The grammar is restricted to the four
// operators, parentheses, numeric literals and variable references; a
// formula is parsed into a tree and walked with a variable lookup, never
// executed as code.
//
// Evaluation fails soft: a malformed formula or an unknown identifier
// degrades to 0.0 with a logged diagnostic. A bad catalog entry costs one
// connection site, not the scene.
package formula

import "github.com/flanksource/commons/logger"

// Eval evaluates a formula against the given variable set. If the formula
// is exactly a known variable name it is returned directly without parsing.
func Eval(src string, vars map[string]float64) float64 {
	if v, ok := vars[src]; ok {
		return v
	}
	n, err := parse(src)
	if err != nil {
		logger.Warnf("formula: cannot parse %q: %v", src, err)
		return 0
	}
	v, err := n.eval(vars)
	if err != nil {
		logger.Warnf("formula: cannot evaluate %q: %v", src, err)
		return 0
	}
	return v
}

// Env is an ordered variable environment for resolving one shape instance.
// It is seeded with the built-in size variables and any adjustment values,
// then extended guide by guide in declaration order.
type Env struct {
	vars map[string]float64
}

// NewEnv seeds an environment with the built-in variables derived from the
// instance size: w, h, the four edges l/r/t/b and the centers hc/vc, all in
// the shape's local coordinate space.
func NewEnv(width, height float64) *Env {
	return &Env{vars: map[string]float64{
		"w":  width,
		"h":  height,
		"l":  0,
		"t":  0,
		"r":  width,
		"b":  height,
		"hc": width / 2,
		"vc": height / 2,
	}}
}

// Set stores a raw named value, used for shape adjustment knobs.
func (e *Env) Set(name string, value float64) {
	e.vars[name] = value
}

// AddGuide evaluates a guide formula against the current environment and
// stores the result under name, making it visible to later guides and to
// the site formulas.
func (e *Env) AddGuide(name, src string) {
	e.vars[name] = Eval(src, e.vars)
}

// Eval evaluates a formula against the environment.
func (e *Env) Eval(src string) float64 {
	return Eval(src, e.vars)
}

// Has reports whether name is defined in the environment.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}
