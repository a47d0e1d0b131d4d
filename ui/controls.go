package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/components"
)

// gradientSpan covers every radius a particle can reach inside the unit box.
const gradientSpan = 1.4142135

// ControlsPanel renders the boundary sliders in the top-right corner.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	step     float32
	visible  bool
}

// NewControlsPanel creates a panel whose sliders snap to multiples of step.
func NewControlsPanel(x, y, width int32, step float32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		step:     step,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// SetPosition moves the panel, used when the window is resized.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Width returns the panel width in pixels.
func (c *ControlsPanel) Width() int32 {
	return c.width
}

// Height returns the panel height for its fixed layout.
func (c *ControlsPanel) Height() int32 {
	t := c.renderer.Theme
	// title, two labelled sliders, button, fill bars, gradient
	return t.Padding*2 + t.LineHeight + 4 +
		2*(t.LineHeight+t.SliderHeight+8) +
		24 + 8 +
		t.LineHeight + 2*(t.LineHeight+2) +
		t.LineHeight + 12 + 4
}

// Draw renders the panel and applies slider edits to controls. The palette
// strip shows color as a function of radius.
func (c *ControlsPanel) Draw(controls *components.Controls, color func(float32) mgl32.Vec3) {
	if !c.visible {
		return
	}

	r := c.renderer
	t := r.Theme
	padding := t.Padding
	inner := c.width - padding*2

	r.DrawPanel(c.x, c.y, c.width, c.Height())

	x := c.x + padding
	y := c.y + padding
	rl.DrawText("Bounds", x, y, 16, rl.White)
	y += t.LineHeight + 4

	limit := controls.Limit()
	lo, hi := controls.Range()

	if v, ok := c.slider(x, &y, inner, "Limit X", limit.X(), lo, hi); ok {
		controls.SetLimitX(v)
	}
	if v, ok := c.slider(x, &y, inner, "Limit Y", limit.Y(), lo, hi); ok {
		controls.SetLimitY(v)
	}

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 100, Height: 24}, "Reset") {
		controls.ResetLimit()
	}
	y += 24 + 8

	// Fill of each axis across the slider range, after this frame's edits
	limit = controls.Limit()
	y = r.DrawSectionHeader(x, y, "Range fill")
	y = r.DrawBar(x, y, "X", RangeFraction(limit.X(), lo, hi), inner)
	y = r.DrawBar(x, y, "Y", RangeFraction(limit.Y(), lo, hi), inner)

	y = r.DrawSectionHeader(x, y, "Radius color")
	r.DrawGradient(x, y, inner, 12, gradientSpan, color)
}

// slider draws one labelled slider bar and advances y past it.
func (c *ControlsPanel) slider(x int32, y *int32, width int32, label string, value, lo, hi float32) (float32, bool) {
	t := c.renderer.Theme
	rl.DrawText(fmt.Sprintf("%s: %.2f", label, value), x, *y, t.FontSize, t.LabelColor)
	*y += t.LineHeight

	// Leave room for the range labels raygui draws outside the bounds.
	raw := gui.SliderBar(
		rl.Rectangle{X: float32(x + 30), Y: float32(*y), Width: float32(width - 60), Height: float32(t.SliderHeight)},
		fmt.Sprintf("%.1f", lo), fmt.Sprintf("%.1f", hi),
		value, lo, hi,
	)
	*y += t.SliderHeight + 8

	return SnapSlider(value, raw, c.step)
}

// Contains reports whether a screen point lies on the visible panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	return px >= float32(c.x) && px < float32(c.x+c.width) &&
		py >= float32(c.y) && py < float32(c.y+c.Height())
}

// SnapSlider quantizes a raw slider reading and reports whether it lands on
// a different step than the current value. A current value between steps
// is left alone until the slider actually moves to another step.
func SnapSlider(current, raw, step float32) (float32, bool) {
	v := components.Quantize(raw, step)
	return v, v != components.Quantize(current, step)
}

// RangeFraction places v within [lo, hi] as a fraction in [0, 1]. A
// collapsed range reads as full.
func RangeFraction(v, lo, hi float32) float32 {
	if hi <= lo {
		return 1
	}
	return mgl32.Clamp((v-lo)/(hi-lo), 0, 1)
}
