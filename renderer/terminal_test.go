package renderer

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/components"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestControls() *components.Controls {
	return components.NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, 0, 1)
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		n    uint32
		want rune
	}{
		{0, ' '},
		{1, '.'},
		{2, ':'},
		{3, ':'},
		{4, '-'},
		{100, '#'},
		{1000000, '@'},
	}

	for _, tt := range tests {
		if got := Glyph(tt.n); got != tt.want {
			t.Errorf("Glyph(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTerminalDraw(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	tr := NewTerminalRenderer(screen)
	cam := camera.New(20, 10)

	if cols, rows := tr.FieldSize(); cols != 20 || rows != 10 {
		t.Fatalf("field = %dx%d, want 20x10", cols, rows)
	}

	p := particlesAt(
		mgl32.Vec2{0, 0},
		mgl32.Vec2{0, 0},
		mgl32.Vec2{0, 0},
		mgl32.Vec2{1, 1},
	)
	tr.Draw(p, cam, StatusLine(7, p.Len(), components.Uniforms{Limit: mgl32.Vec2{1, 1}}, false))

	if r, _, _, _ := screen.GetContent(10, 5); r != ':' {
		t.Errorf("center cell = %q, want ':' for 3 particles", r)
	}
	if r, _, _, _ := screen.GetContent(19, 0); r != '.' {
		t.Errorf("top-right cell = %q, want '.'", r)
	}
	if r, _, _, _ := screen.GetContent(3, 3); r != ' ' {
		t.Errorf("empty cell = %q, want blank", r)
	}
	if r, _, _, _ := screen.GetContent(1, 10); r != 'f' {
		t.Errorf("status line starts with %q, want 'f' of frame", r)
	}
}

func TestTerminalDrawZoomed(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	tr := NewTerminalRenderer(screen)
	cam := camera.New(20, 10)
	cam.SetZoom(2)

	// 0.9 lies outside the [-0.5, 0.5] view and must not reach any cell
	tr.Draw(particlesAt(mgl32.Vec2{0.9, 0.9}, mgl32.Vec2{0, 0}), cam, "")

	if r, _, _, _ := screen.GetContent(10, 5); r != '.' {
		t.Errorf("center cell = %q, want '.'", r)
	}
	var lit int
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r != ' ' {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("lit cells = %d, want 1", lit)
	}
}

func TestTerminalMouseMovesPointer(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	tr := NewTerminalRenderer(screen)
	cam := camera.New(20, 10)
	controls := newTestControls()

	tr.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), controls, cam, 0.01)

	ptr := controls.Pointer()
	if math.Abs(float64(ptr.X()-0.05)) > 1e-5 || math.Abs(float64(ptr.Y()+0.1)) > 1e-5 {
		t.Errorf("pointer = %v, want (0.05, -0.1)", ptr)
	}

	// A second event at the same cell leaves the pointer alone
	controls.ClearPointer()
	tr.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), controls, cam, 0.01)
	if controls.Pointer() != (mgl32.Vec2{-10, -10}) {
		t.Error("pointer changed without mouse movement")
	}

	// The status line is not part of the field
	tr.HandleEvent(tcell.NewEventMouse(3, 10, tcell.ButtonNone, tcell.ModNone), controls, cam, 0.01)
	if controls.Pointer() != (mgl32.Vec2{-10, -10}) {
		t.Error("status line click moved the pointer")
	}
}

func TestTerminalKeys(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	tr := NewTerminalRenderer(screen)
	cam := camera.New(20, 10)
	controls := newTestControls()

	key := func(k tcell.Key, r rune) TerminalAction {
		return tr.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone), controls, cam, 0.01)
	}

	key(tcell.KeyLeft, 0)
	key(tcell.KeyLeft, 0)
	key(tcell.KeyDown, 0)
	limit := controls.Limit()
	if math.Abs(float64(limit.X()-0.98)) > 1e-6 || math.Abs(float64(limit.Y()-0.99)) > 1e-6 {
		t.Errorf("limit = %v, want (0.98, 0.99)", limit)
	}

	key(tcell.KeyUp, 0)
	key(tcell.KeyUp, 0)
	if controls.Limit().Y() != 1 {
		t.Errorf("limit y = %v, want clamped to 1", controls.Limit().Y())
	}

	key(tcell.KeyRune, '0')
	if controls.Limit() != (mgl32.Vec2{1, 1}) {
		t.Errorf("limit after reset = %v", controls.Limit())
	}

	tests := []struct {
		name string
		k    tcell.Key
		r    rune
		want TerminalAction
	}{
		{"quit rune", tcell.KeyRune, 'q', ActionQuit},
		{"escape", tcell.KeyEscape, 0, ActionQuit},
		{"pause", tcell.KeyRune, ' ', ActionPause},
		{"reseed", tcell.KeyRune, 'r', ActionReseed},
		{"unbound", tcell.KeyRune, 'z', ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := key(tt.k, tt.r); got != tt.want {
				t.Errorf("action = %v, want %v", got, tt.want)
			}
		})
	}
}
