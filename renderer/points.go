package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/components"
)

// PointRenderer draws the particle field as a full-screen texture that is
// rasterized on the CPU and re-uploaded every frame.
type PointRenderer struct {
	raster  *Raster
	texture rl.Texture2D

	screenW, screenH int32
	initialized      bool
}

// NewPointRenderer creates a new point renderer.
func NewPointRenderer(screenW, screenH int32, pointSize int, bg color.RGBA) *PointRenderer {
	return &PointRenderer{
		raster:  NewRaster(int(screenW), int(screenH), pointSize, bg),
		screenW: screenW,
		screenH: screenH,
	}
}

// Init creates the GPU texture (must be called after raylib window is created).
func (r *PointRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(int(r.screenW), int(r.screenH), rl.Black)
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	r.initialized = true
}

// Upload rasterizes the particles and copies the pixels to the texture.
// Call outside BeginDrawing/EndDrawing.
func (r *PointRenderer) Upload(p *components.Particles, cam *camera.Camera) {
	if !r.initialized {
		r.Init()
	}
	r.raster.Clear()
	r.raster.Draw(p, cam)
	rl.UpdateTexture(r.texture, r.raster.Pixels)
}

// Draw blits the last uploaded frame to the screen.
func (r *PointRenderer) Draw() {
	if !r.initialized {
		return
	}
	rl.DrawTexturePro(
		r.texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.screenW), Height: float32(r.screenH)},
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.screenW), Height: float32(r.screenH)},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
}

// Drawn returns the number of particles visible in the last frame.
func (r *PointRenderer) Drawn() int {
	return r.raster.Drawn()
}

// Resize rebuilds the raster and texture for new screen dimensions.
func (r *PointRenderer) Resize(screenW, screenH int32) {
	if screenW == r.screenW && screenH == r.screenH {
		return
	}
	r.screenW, r.screenH = screenW, screenH
	r.raster.Resize(int(screenW), int(screenH))
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
		r.Init()
	}
}

// Unload frees resources.
func (r *PointRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}
