package systems

import (
	"math"
	"testing"
)

func TestPaletteDeterministic(t *testing.T) {
	p := DefaultPalette()

	for _, r := range []float32{0, 0.1, 0.5, 0.7071, 1.4142} {
		first := p.At(r)
		for i := 0; i < 100; i++ {
			if got := p.At(r); got != first {
				t.Fatalf("At(%v) changed between calls: %v vs %v", r, first, got)
			}
		}
	}
}

func TestPaletteWithinAmplitude(t *testing.T) {
	p := DefaultPalette()

	for i := 0; i <= 200; i++ {
		c := p.At(float32(i) * 0.01)
		for ch := 0; ch < 3; ch++ {
			lo := p.A[ch] - p.B[ch] - 1e-6
			hi := p.A[ch] + p.B[ch] + 1e-6
			if c[ch] < lo || c[ch] > hi {
				t.Fatalf("channel %d at t=%v is %v, outside [%v, %v]", ch, float32(i)*0.01, c[ch], lo, hi)
			}
		}
	}
}

func TestPalettePeriodic(t *testing.T) {
	p := DefaultPalette()

	for ch := 0; ch < 3; ch++ {
		period := 1 / p.C[ch]
		a := p.At(0.2)[ch]
		b := p.At(0.2 + period)[ch]
		if math.Abs(float64(a-b)) > 1e-3 {
			t.Errorf("channel %d not periodic over 1/c: %v vs %v", ch, a, b)
		}
	}
}

func TestPaletteAtZero(t *testing.T) {
	p := DefaultPalette()
	c := p.At(0)

	for ch := 0; ch < 3; ch++ {
		want := float64(p.A[ch]) + float64(p.B[ch])*math.Cos(paletteTau*float64(p.D[ch]))
		if math.Abs(float64(c[ch])-want) > 1e-5 {
			t.Errorf("channel %d = %v, want %v", ch, c[ch], want)
		}
	}
}
