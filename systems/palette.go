package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// paletteTau is the 2*pi constant used by the cosine palette.
const paletteTau = 6.28318

// Palette maps a scalar to RGB as A + B * cos(tau * (C*t + D)), component-wise.
// Adjacent values of t give adjacent colors and the mapping repeats, so
// radius fed through it produces smooth concentric bands.
type Palette struct {
	A, B, C, D mgl32.Vec3
}

// DefaultPalette returns the palette used for particle tinting.
func DefaultPalette() Palette {
	return Palette{
		A: mgl32.Vec3{0.261, 0.446, 0.315},
		B: mgl32.Vec3{0.843, 0.356, 0.239},
		C: mgl32.Vec3{0.948, 1.474, 1.361},
		D: mgl32.Vec3{3.042, 5.63, 5.424},
	}
}

// At evaluates the palette. Results are not clamped; callers converting to
// 8-bit color clamp to [0, 1].
func (p Palette) At(t float32) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		phase := paletteTau * (float64(p.C[i])*float64(t) + float64(p.D[i]))
		out[i] = p.A[i] + p.B[i]*float32(math.Cos(phase))
	}
	return out
}
