package renderer

import (
	"fmt"
	"math/bits"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/components"
)

// densityGlyphs orders glyphs by how many particles share a cell; index k
// covers counts in [2^(k-1), 2^k).
var densityGlyphs = []rune(" .:-=+*#%@")

// TerminalAction is an operator request decoded from a terminal event.
type TerminalAction int

const (
	ActionNone TerminalAction = iota
	ActionQuit
	ActionPause
	ActionReseed
)

// TerminalRenderer draws the particle field into a tcell screen, one
// character cell per bucket of particles. The bottom row is a status line.
type TerminalRenderer struct {
	screen     tcell.Screen
	cols, rows int

	counts []uint32
	colors []tcell.Color

	lastMouseX, lastMouseY int
}

// NewTerminalRenderer wraps an initialized screen.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	t := &TerminalRenderer{screen: screen, lastMouseX: -1, lastMouseY: -1}
	t.resize()
	return t
}

// resize matches the cell buffers to the screen size.
func (t *TerminalRenderer) resize() {
	w, h := t.screen.Size()
	h-- // status line
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == t.cols && h == t.rows {
		return
	}
	t.cols, t.rows = w, h
	t.counts = make([]uint32, w*h)
	t.colors = make([]tcell.Color, w*h)
}

// FieldSize returns the number of cells used for particles.
func (t *TerminalRenderer) FieldSize() (cols, rows int) {
	return t.cols, t.rows
}

// Draw renders the particles and the status line, then shows the screen.
func (t *TerminalRenderer) Draw(p *components.Particles, cam *camera.Camera, status string) {
	clear(t.counts)

	fw, fh := float32(t.cols), float32(t.rows)
	zoomed := !cam.IsDefault()
	for i, pos := range p.Positions {
		if zoomed && !cam.IsVisible(pos[0], pos[1], 0) {
			continue
		}
		sx, sy := cam.ToViewport(pos[0], pos[1], fw, fh)
		x, okx := pixelIndex(sx, t.cols)
		y, oky := pixelIndex(sy, t.rows)
		if !okx || !oky {
			continue
		}
		cell := y*t.cols + x
		t.counts[cell]++
		c := ToRGBA(p.Colors[i])
		t.colors[cell] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}

	t.screen.Clear()
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			cell := y*t.cols + x
			n := t.counts[cell]
			if n == 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(t.colors[cell]).Background(tcell.ColorBlack)
			t.screen.SetContent(x, y, Glyph(n), nil, style)
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	for i, r := range []rune(status) {
		if i >= t.cols {
			break
		}
		t.screen.SetContent(i, t.rows, r, nil, statusStyle)
	}

	t.screen.Show()
}

// Glyph returns the character for a cell holding n particles.
func Glyph(n uint32) rune {
	k := bits.Len32(n)
	if k >= len(densityGlyphs) {
		k = len(densityGlyphs) - 1
	}
	return densityGlyphs[k]
}

// CellToWorld maps the center of a cell to normalized coordinates.
func (t *TerminalRenderer) CellToWorld(x, y int, cam *camera.Camera) (wx, wy float32) {
	nx := (float32(x)+0.5)/float32(t.cols) - 0.5
	ny := 0.5 - (float32(y)+0.5)/float32(t.rows)
	return cam.X + nx*2/cam.Zoom, cam.Y + ny*2/cam.Zoom
}

// HandleEvent applies a terminal event to controls and returns any action
// the caller must perform. Arrow keys move the limit by step.
func (t *TerminalRenderer) HandleEvent(ev tcell.Event, controls *components.Controls, cam *camera.Camera, step float32) TerminalAction {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev, controls, step)

	case *tcell.EventMouse:
		x, y := ev.Position()
		if x == t.lastMouseX && y == t.lastMouseY {
			return ActionNone
		}
		t.lastMouseX, t.lastMouseY = x, y
		if y >= t.rows {
			return ActionNone // status line
		}
		wx, wy := t.CellToWorld(x, y, cam)
		controls.SetPointer(mgl32.Vec2{wx, wy})

	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return ActionNone
}

func (t *TerminalRenderer) handleKey(ev *tcell.EventKey, controls *components.Controls, step float32) TerminalAction {
	limit := controls.Limit()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRight:
		controls.SetLimitX(components.Quantize(limit.X()+step, step))
	case tcell.KeyLeft:
		controls.SetLimitX(components.Quantize(limit.X()-step, step))
	case tcell.KeyUp:
		controls.SetLimitY(components.Quantize(limit.Y()+step, step))
	case tcell.KeyDown:
		controls.SetLimitY(components.Quantize(limit.Y()-step, step))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ActionQuit
		case ' ':
			return ActionPause
		case 'r':
			return ActionReseed
		case '0':
			controls.ResetLimit()
		}
	}
	return ActionNone
}

// StatusLine formats the bottom row.
func StatusLine(tick int32, particles int, u components.Uniforms, paused bool) string {
	s := fmt.Sprintf(" frame %d | %d particles | limit %.2f,%.2f | arrows: limit  0: reset  r: reseed  space: pause  q: quit",
		tick, particles, u.Limit.X(), u.Limit.Y())
	if paused {
		s = " PAUSED |" + s
	}
	return s
}
