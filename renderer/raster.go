// Package renderer draws the particle buffers after each update.
package renderer

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/components"
)

// ToRGBA converts a palette color to 8-bit, clamping each channel to [0, 1].
func ToRGBA(c mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1)*255 + 0.5),
		G: uint8(mgl32.Clamp(c[1], 0, 1)*255 + 0.5),
		B: uint8(mgl32.Clamp(c[2], 0, 1)*255 + 0.5),
		A: 255,
	}
}

// Raster is a CPU point rasterizer. Each particle covers a square of
// PointSize pixels; later indices overwrite earlier ones.
type Raster struct {
	W, H       int
	PointSize  int
	Background color.RGBA
	Pixels     []color.RGBA

	drawn int
}

// NewRaster allocates a w x h raster.
func NewRaster(w, h, pointSize int, bg color.RGBA) *Raster {
	if pointSize < 1 {
		pointSize = 1
	}
	r := &Raster{PointSize: pointSize, Background: bg}
	r.Resize(w, h)
	return r
}

// Resize reallocates the pixel buffer when dimensions change.
func (r *Raster) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == r.W && h == r.H && r.Pixels != nil {
		return
	}
	r.W, r.H = w, h
	r.Pixels = make([]color.RGBA, w*h)
	r.Clear()
}

// Clear fills the raster with the background color.
func (r *Raster) Clear() {
	for i := range r.Pixels {
		r.Pixels[i] = r.Background
	}
	r.drawn = 0
}

// Draw plots every visible particle through cam. Positions and colors are
// only read. A zoomed camera culls particles outside its view first.
func (r *Raster) Draw(p *components.Particles, cam *camera.Camera) {
	fw, fh := float32(r.W), float32(r.H)
	half := r.PointSize / 2
	zoomed := !cam.IsDefault()

	for i, pos := range p.Positions {
		if zoomed && !cam.IsVisible(pos[0], pos[1], 0) {
			continue
		}
		sx, sy := cam.ToViewport(pos[0], pos[1], fw, fh)
		x, okx := pixelIndex(sx, r.W)
		y, oky := pixelIndex(sy, r.H)
		if !okx || !oky {
			continue
		}

		c := ToRGBA(p.Colors[i])
		if r.PointSize == 1 {
			r.Pixels[y*r.W+x] = c
		} else {
			r.fillSquare(x-half, y-half, c)
		}
		r.drawn++
	}
}

// fillSquare writes a PointSize square with its top-left corner at (x0, y0).
func (r *Raster) fillSquare(x0, y0 int, c color.RGBA) {
	for y := max(y0, 0); y < min(y0+r.PointSize, r.H); y++ {
		row := r.Pixels[y*r.W : (y+1)*r.W]
		for x := max(x0, 0); x < min(x0+r.PointSize, r.W); x++ {
			row[x] = c
		}
	}
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	return r.Pixels[y*r.W+x]
}

// Drawn returns how many particles landed inside the raster on the last Draw.
func (r *Raster) Drawn() int {
	return r.drawn
}

// pixelIndex maps a continuous coordinate to a pixel in [0, n). The far
// edge itself (s == n) belongs to the last pixel so particles resting on
// the +1 boundary stay visible.
func pixelIndex(s float32, n int) (int, bool) {
	if s < 0 || s > float32(n) {
		return 0, false
	}
	i := int(s)
	if i >= n {
		i = n - 1
	}
	return i, true
}
