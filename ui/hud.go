package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int32
	Particles      int
	Visible        int
	FPS            int32
	StepsPerUpdate int
	Paused         bool
	Pointer        mgl32.Vec2
	PointerActive  bool
	Limit          mgl32.Vec2
	Reflections    int // last stats window
	Resets         int
	Zoom           float32
	View           string // visible world bounds, empty at the default view
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Visible: %d | Zoom: %.2fx", data.Particles, data.Visible, data.Zoom),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | Speed: %dx | FPS: %d", data.Tick, data.StepsPerUpdate, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	r := h.renderer
	y := int32(78)
	y = r.DrawLabelValue(10, y, "Pointer", FormatPointer(data.Pointer, data.PointerActive))
	y = r.DrawLabelValue(10, y, "Limit", fmt.Sprintf("%.2f, %.2f", data.Limit.X(), data.Limit.Y()))
	y = r.DrawLabelValue(10, y, "Window", fmt.Sprintf("%d reflections | %d resets", data.Reflections, data.Resets))
	if data.View != "" {
		y = r.DrawLabelValue(10, y, "View", data.View)
	}

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, y+4, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// FormatPointer renders the pointer for display, or "none" while it is
// parked at its sentinel.
func FormatPointer(p mgl32.Vec2, active bool) string {
	if !active {
		return "none"
	}
	return fmt.Sprintf("%+.3f, %+.3f", p.X(), p.Y())
}

// FormatBounds renders a visible region as x and y intervals.
func FormatBounds(minX, minY, maxX, maxY float32) string {
	return fmt.Sprintf("x [%+.2f, %+.2f]  y [%+.2f, %+.2f]", minX, maxX, minY, maxY)
}
