// Package viewer is a terminal scene viewer for exercising the connection
// engine interactively: move a shape with the arrow keys and watch the
// reconciliation pass re-attach and re-route its connectors live.
package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"slidewire/engine"
	"slidewire/geometry"
	"slidewire/reconcile"
	"slidewire/routing"
	"slidewire/scene"
)

// Scene coordinates are scaled down to terminal cells. Cells are roughly
// twice as tall as wide, so the x axis is compressed less.
const (
	cellW    = 8.0
	cellH    = 16.0
	moveStep = 8.0
)

// Viewer drives the interactive loop over one scene.
type Viewer struct {
	engine   *engine.Engine
	scene    *scene.Scene
	screen   tcell.Screen
	selected int
	filename string
	status   string
}

// New creates a viewer for a scene. Filename is used by the save command
// and may be empty.
func New(s *scene.Scene, filename string) *Viewer {
	return &Viewer{
		engine:   engine.New(),
		scene:    s,
		filename: filename,
	}
}

// Run enters the interactive loop until the user quits.
func (v *Viewer) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	v.screen = screen
	defer screen.Fini()

	v.status = "tab: select   arrows: move   s: save   q: quit"
	for {
		v.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey processes one key event and reports whether to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		if len(v.scene.Elements) > 0 {
			v.selected = (v.selected + 1) % len(v.scene.Elements)
		}
	case tcell.KeyUp:
		v.moveSelected(0, -moveStep)
	case tcell.KeyDown:
		v.moveSelected(0, moveStep)
	case tcell.KeyLeft:
		v.moveSelected(-moveStep, 0)
	case tcell.KeyRight:
		v.moveSelected(moveStep, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 's':
			v.save()
		}
	}
	return false
}

// moveSelected translates the selected element and runs the
// reconciliation pass so every attached connector follows.
func (v *Viewer) moveSelected(dx, dy float64) {
	if v.selected >= len(v.scene.Elements) {
		return
	}
	el := v.scene.Elements[v.selected]
	el.X += dx
	el.Y += dy

	updates := v.engine.Reconcile(el.ID, v.scene)
	reconcile.Apply(v.scene, updates)
	v.status = fmt.Sprintf("moved %s to (%g,%g), %d connector(s) updated", el.ID, el.X, el.Y, len(updates))
}

func (v *Viewer) save() {
	if v.filename == "" {
		v.status = "no filename to save to"
		return
	}
	if err := scene.SaveFile(v.filename, v.scene); err != nil {
		v.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	v.status = fmt.Sprintf("saved %s", v.filename)
}

func (v *Viewer) draw() {
	v.screen.Clear()

	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, conn := range v.scene.Connectors {
		v.drawConnector(conn, lineStyle)
	}

	for i, el := range v.scene.Elements {
		style := tcell.StyleDefault
		if i == v.selected {
			style = style.Foreground(tcell.ColorYellow).Bold(true)
		}
		v.drawElement(el, style)
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)
	_, h := v.screen.Size()
	v.drawText(0, h-1, v.status, statusStyle)

	v.screen.Show()
}

func (v *Viewer) drawElement(el *scene.Element, style tcell.Style) {
	x0, y0 := toCell(geometry.Point{X: el.X, Y: el.Y})
	x1, y1 := toCell(geometry.Point{X: el.X + el.Width, Y: el.Y + el.Height})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for x := x0 + 1; x < x1; x++ {
		v.screen.SetContent(x, y0, '─', nil, style)
		v.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		v.screen.SetContent(x0, y, '│', nil, style)
		v.screen.SetContent(x1, y, '│', nil, style)
	}
	v.screen.SetContent(x0, y0, '┌', nil, style)
	v.screen.SetContent(x1, y0, '┐', nil, style)
	v.screen.SetContent(x0, y1, '└', nil, style)
	v.screen.SetContent(x1, y1, '┘', nil, style)

	label := el.ID
	if len(label) > x1-x0-1 {
		label = label[:max(x1-x0-1, 0)]
	}
	v.drawText(x0+1, (y0+y1)/2, label, style)
}

func (v *Viewer) drawConnector(conn *scene.Connector, style tcell.Style) {
	p := v.engine.Route(conn, v.scene)

	if p.IsCurve() {
		v.drawCurve(p.Curve, style)
		return
	}
	for i := 0; i+1 < len(p.Points); i++ {
		v.drawSegment(p.Points[i], p.Points[i+1], style)
	}
	if conn.ArrowEnd {
		x, y := toCell(p.End())
		v.screen.SetContent(x, y, '◆', nil, style)
	}
}

// drawCurve samples the Bézier and plots the cells it passes through.
func (v *Viewer) drawCurve(c *routing.Bezier, style tcell.Style) {
	const samples = 64
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		mt := 1 - t
		pt := geometry.Point{
			X: mt*mt*mt*c.Start.X + 3*mt*mt*t*c.Control1.X + 3*mt*t*t*c.Control2.X + t*t*t*c.End.X,
			Y: mt*mt*mt*c.Start.Y + 3*mt*mt*t*c.Control1.Y + 3*mt*t*t*c.Control2.Y + t*t*t*c.End.Y,
		}
		x, y := toCell(pt)
		v.screen.SetContent(x, y, '·', nil, style)
	}
}

// drawSegment plots a straight segment, using line runes for the
// orthogonal case and dots for diagonals.
func (v *Viewer) drawSegment(a, b geometry.Point, style tcell.Style) {
	ax, ay := toCell(a)
	bx, by := toCell(b)

	switch {
	case ay == by:
		for x := min(ax, bx); x <= max(ax, bx); x++ {
			v.screen.SetContent(x, ay, '─', nil, style)
		}
	case ax == bx:
		for y := min(ay, by); y <= max(ay, by); y++ {
			v.screen.SetContent(ax, y, '│', nil, style)
		}
	default:
		steps := max(abs(bx-ax), abs(by-ay))
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			x := ax + int(t*float64(bx-ax))
			y := ay + int(t*float64(by-ay))
			v.screen.SetContent(x, y, '·', nil, style)
		}
	}
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func toCell(p geometry.Point) (int, int) {
	return int(p.X / cellW), int(p.Y / cellH)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
