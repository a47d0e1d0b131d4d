// Palette preview tool - renders the radius color mapping to a PNG file.
//
// With -frames 0 it draws concentric bands, each pixel colored exactly as a
// particle at that position would be. With -frames N it runs the simulation
// headless for N frames and draws the resulting particle field instead.
//
// Usage: go run ./cmd/palettepreview -out palette.png -frames 600
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/config"
	"github.com/pthm-cable/pointfield/game"
	"github.com/pthm-cable/pointfield/renderer"
	"github.com/pthm-cable/pointfield/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "palette.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	frames := flag.Int("frames", 0, "Simulate this many frames and draw particles (0 = draw bands)")
	orbit := flag.Float64("pointer-orbit", 0, "Pointer orbit radius while simulating")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	cam := camera.New(float32(*width), float32(*height))

	var img *image.RGBA
	if *frames > 0 {
		var err error
		img, err = renderParticles(cfg, cam, *width, *height, *frames, float32(*orbit))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to run simulation: %v\n", err)
			os.Exit(1)
		}
	} else {
		palette := systems.Palette{
			A: cfg.Derived.PaletteA,
			B: cfg.Derived.PaletteB,
			C: cfg.Derived.PaletteC,
			D: cfg.Derived.PaletteD,
		}
		img = renderBands(palette, cam, *width, *height)
	}

	// Export to PNG
	rlImg := rl.NewImageFromImage(img)
	success := rl.ExportImage(*rlImg, *outPath)
	rl.UnloadImage(rlImg)

	if success {
		fmt.Printf("Palette rendered to: %s (%dx%d)\n", *outPath, *width, *height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

// renderBands colors every pixel by the radius of its normalized position.
func renderBands(p systems.Palette, cam *camera.Camera, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := cam.ScreenToWorldVec(float32(x)+0.5, float32(y)+0.5)
			img.SetRGBA(x, y, renderer.ToRGBA(p.At(systems.ToPolar(pos).Radius)))
		}
	}
	return img
}

// renderParticles runs the simulation headless and rasterizes the final frame.
func renderParticles(cfg *config.Config, cam *camera.Camera, w, h, frames int, orbit float32) (*image.RGBA, error) {
	g, err := game.NewGameWithConfig(cfg, game.Options{Headless: true, StepsPerUpdate: frames, PointerOrbit: orbit})
	if err != nil {
		return nil, err
	}
	defer g.Unload()
	g.UpdateHeadless()

	bg := cfg.Render.Background
	r := renderer.NewRaster(w, h, cfg.Render.PointSize, rl.Color{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})
	r.Draw(g.Particles(), cam)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, px := range r.Pixels {
		img.SetRGBA(i%w, i/w, px)
	}
	return img, nil
}
