package game

import (
	"image/color"

	"github.com/pthm-cable/pointfield/components"
	"github.com/pthm-cable/pointfield/config"
	"github.com/pthm-cable/pointfield/systems"
)

// newSeedKernel builds the seeding kernel from the seeding section.
func newSeedKernel(cfg *config.Config) systems.SeedKernel {
	return systems.SeedKernel{
		AngleStep:  cfg.Seeding.AngleStep,
		SpeedScale: cfg.Seeding.SpeedScale,
		SpeedBase:  cfg.Seeding.SpeedBase,
	}
}

// newUpdateKernel builds the update kernel from the palette and pointer sections.
func newUpdateKernel(cfg *config.Config) systems.UpdateKernel {
	return systems.UpdateKernel{
		Palette: systems.Palette{
			A: cfg.Derived.PaletteA,
			B: cfg.Derived.PaletteB,
			C: cfg.Derived.PaletteC,
			D: cfg.Derived.PaletteD,
		},
		PointerRadius: cfg.Derived.PointerRadius,
	}
}

// newControls creates the controls with the configured default limit and
// the pointer parked at its sentinel.
func newControls(cfg *config.Config) *components.Controls {
	return components.NewControls(
		cfg.Derived.DefaultLimit,
		cfg.Derived.Sentinel,
		float32(cfg.Bounds.Min),
		float32(cfg.Bounds.Max),
	)
}

func backgroundColor(cfg *config.Config) color.RGBA {
	bg := cfg.Render.Background
	return color.RGBA{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255}
}
