// Package camera provides a 2D camera system for viewport control.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera maps between normalized space ([-1, 1] on both axes, y up) and
// screen pixels (y down). At zoom 1 centered on the origin the whole
// normalized square fills the viewport.
type Camera struct {
	// Position is the camera center in normalized coordinates
	X, Y float32

	// Zoom level (1.0 = whole field visible, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the origin with zoom 1.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// WorldToScreen converts normalized coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.ToViewport(wx, wy, c.ViewportW, c.ViewportH)
}

// ToViewport maps normalized coordinates into an arbitrary w x h grid with
// the same center and zoom, e.g. a raster or a terminal cell grid.
func (c *Camera) ToViewport(wx, wy, w, h float32) (sx, sy float32) {
	dx := (wx - c.X) * c.Zoom
	dy := (wy - c.Y) * c.Zoom

	sx = (dx/2 + 0.5) * w
	sy = (0.5 - dy/2) * h
	return sx, sy
}

// ScreenToWorld converts screen coordinates to normalized coordinates.
// With the default camera this is ((x/w - 0.5) * 2, (-y/h + 0.5) * 2).
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx/c.ViewportW-0.5)*2/c.Zoom
	wy = c.Y + (-sy/c.ViewportH+0.5)*2/c.Zoom
	return wx, wy
}

// ScreenToWorldVec is ScreenToWorld returning a vector.
func (c *Camera) ScreenToWorldVec(sx, sy float32) mgl32.Vec2 {
	wx, wy := c.ScreenToWorld(sx, sy)
	return mgl32.Vec2{wx, wy}
}

// IsVisible returns true if a point at (wx, wy) padded by radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	half := 1 / c.Zoom
	return absf(wx-c.X) <= half+radius && absf(wy-c.Y) <= half+radius
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels (y down).
// The center stays inside the normalized square.
func (c *Camera) Pan(dx, dy float32) {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return
	}
	c.X = mgl32.Clamp(c.X+dx*2/(c.ViewportW*c.Zoom), -1, 1)
	c.Y = mgl32.Clamp(c.Y-dy*2/(c.ViewportH*c.Zoom), -1, 1)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = mgl32.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// IsDefault reports whether the camera shows the unpanned, unzoomed field.
func (c *Camera) IsDefault() bool {
	return c.X == 0 && c.Y == 0 && c.Zoom == 1
}

// VisibleWorldBounds returns the normalized-space bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	half := 1 / c.Zoom
	return c.X - half, c.Y - half, c.X + half, c.Y + half
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
