package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pointfield/ui"
)

const (
	panelWidth     = 240
	controlsLegend = "[Mouse] Pointer  [Space] Pause  [</>] Speed  [R] Reseed  [H] Panel  [Arrows] Pan  [+/-] Zoom  [F11] Fullscreen"
)

// legend returns the control legend; the reset hint only appears once the
// view has been panned or zoomed.
func legend(viewMoved bool) string {
	if viewMoved {
		return controlsLegend + "  [Home] Reset view"
	}
	return controlsLegend
}

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	// Rasterize and upload outside the drawing pass
	start := time.Now()
	g.points.Upload(g.particles, g.camera)
	g.perfCollector.RecordRender(time.Since(start))

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor(g.cfg))

	g.points.Draw()
	g.drawPointer()

	g.hud.Draw(g.hudData())
	g.panel.Draw(g.controls, g.update.Palette.At)
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), legend(!g.camera.IsDefault()))

	rl.EndDrawing()
}

// drawPointer outlines the reset region around the pointer. The view
// stretches each axis separately, so the circle is an ellipse on screen.
func (g *Game) drawPointer() {
	ptr := g.controls.Pointer()
	if ptr == g.cfg.Derived.Sentinel {
		return
	}
	sx, sy := g.camera.WorldToScreen(ptr.X(), ptr.Y())
	r := g.update.PointerRadius * g.camera.Zoom / 2
	rl.DrawEllipseLines(int32(sx), int32(sy), r*g.screenWidth, r*g.screenHeight, rl.Color{R: 255, G: 255, B: 255, A: 90})
}

func (g *Game) hudData() ui.HUDData {
	ptr := g.controls.Pointer()
	data := ui.HUDData{
		Title:          "Point Field",
		Tick:           g.tick,
		Particles:      g.particles.Len(),
		Visible:        g.points.Drawn(),
		FPS:            rl.GetFPS(),
		StepsPerUpdate: g.stepsPerUpdate,
		Paused:         g.paused,
		Pointer:        ptr,
		PointerActive:  ptr != g.cfg.Derived.Sentinel,
		Limit:          g.controls.Limit(),
		Reflections:    g.lastWindow.Reflections,
		Resets:         g.lastWindow.Resets,
		Zoom:           g.camera.Zoom,
	}
	if !g.camera.IsDefault() {
		data.View = ui.FormatBounds(g.camera.VisibleWorldBounds())
	}
	return data
}
