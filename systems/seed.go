package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/components"
)

// SeedKernel assigns every particle its initial velocity from its index alone.
// Consecutive indices sweep through angle space while speed grows slightly
// with index, giving a diffuse deterministic fan instead of random headings.
type SeedKernel struct {
	AngleStep  float64 // radians per index
	SpeedScale float64 // speed gained per index
	SpeedBase  float64 // speed at index 0
}

// DefaultSeedKernel returns the seeding constants used by default.
func DefaultSeedKernel() SeedKernel {
	return SeedKernel{
		AngleStep:  0.005 * 2 * math.Pi,
		SpeedScale: 0.00000004,
		SpeedBase:  0.0000001,
	}
}

// Velocity returns the initial velocity of particle i.
// Evaluated in float64 and narrowed once, so the result is bit-identical
// across runs and workers.
func (k SeedKernel) Velocity(i int) mgl32.Vec2 {
	fi := float64(i)
	angle := fi * k.AngleStep
	speed := fi*k.SpeedScale + k.SpeedBase
	return mgl32.Vec2{
		float32(math.Sin(angle) * speed),
		float32(math.Cos(angle) * speed),
	}
}

// Run seeds velocities for particles [i0, i1). Only the velocity buffer is written.
func (k SeedKernel) Run(p *components.Particles, i0, i1 int) {
	vel := p.Velocities[i0:i1]
	for j := range vel {
		vel[j] = k.Velocity(i0 + j)
	}
}
