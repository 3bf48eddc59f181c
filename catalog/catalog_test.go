package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	for _, shapeType := range []string{
		"rect", "roundRect", "ellipse", "diamond", "triangle",
		"rightArrow", "chevron", "pentagon", "hexagon",
		"parallelogram", "trapezoid", "pie",
	} {
		t.Run(shapeType, func(t *testing.T) {
			def, ok := c.Lookup(shapeType)
			require.True(t, ok, "missing builtin shape %q", shapeType)
			assert.NotEmpty(t, def.Sites)
			assert.Greater(t, def.DefaultSize.Width, 0.0)
			assert.Greater(t, def.DefaultSize.Height, 0.0)
		})
	}

	_, ok := c.Lookup("no-such-shape")
	assert.False(t, ok)
}

func TestLoadRejectsForwardReference(t *testing.T) {
	_, err := Load([]byte(`
shapes:
  - type: broken
    defaultSize: {width: 10, height: 10}
    guides:
      - {name: early, formula: "late + 1"}
      - {name: late, formula: "w / 2"}
    sites:
      - {id: only, x: early, y: vc, angle: 0}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "late")
}

func TestLoadRejectsUndeclaredAdjustment(t *testing.T) {
	_, err := Load([]byte(`
shapes:
  - type: broken
    defaultSize: {width: 10, height: 10}
    sites:
      - {id: only, x: "w * mystery", y: vc, angle: 0}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestLoadRejectsDuplicates(t *testing.T) {
	_, err := Load([]byte(`
shapes:
  - type: dup
    defaultSize: {width: 10, height: 10}
    sites:
      - {id: a, x: hc, y: t, angle: 270}
      - {id: a, x: hc, y: b, angle: 90}
`))
	require.Error(t, err)

	_, err = Load([]byte(`
shapes:
  - type: same
    defaultSize: {width: 10, height: 10}
    sites: [{id: a, x: hc, y: t, angle: 270}]
  - type: same
    defaultSize: {width: 10, height: 10}
    sites: [{id: a, x: hc, y: t, angle: 270}]
`))
	require.Error(t, err)
}

func TestLoadRejectsGuideShadowingBuiltin(t *testing.T) {
	_, err := Load([]byte(`
shapes:
  - type: shadow
    defaultSize: {width: 10, height: 10}
    guides:
      - {name: hc, formula: "w / 3"}
    sites:
      - {id: only, x: hc, y: vc, angle: 0}
`))
	require.Error(t, err)
}

func TestLoadAcceptsAdjustmentReference(t *testing.T) {
	c, err := Load([]byte(`
shapes:
  - type: knob
    defaultSize: {width: 10, height: 10}
    adjustments:
      - {name: ratio, default: 0.5}
    guides:
      - {name: cut, formula: "w * ratio"}
    sites:
      - {id: only, x: cut, y: vc, angle: 0}
`))
	require.NoError(t, err)
	def, ok := c.Lookup("knob")
	require.True(t, ok)
	assert.Equal(t, 0.5, def.Adjustments[0].Default)
}
