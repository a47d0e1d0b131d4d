// Package systems contains the per-particle kernels.
package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/components"
)

// DefaultPointerRadius is the distance within which the pointer sends a
// particle back to the origin.
const DefaultPointerRadius = 0.1

// Polar holds a position in polar form.
type Polar struct {
	Radius float32
	Angle  float32 // atan2 normalized to [0, 1]
}

// ToPolar converts a position to polar form. The origin maps to radius 0,
// angle 0.5 (atan2(0, 0) = 0).
func ToPolar(p mgl32.Vec2) Polar {
	return Polar{
		Radius: p.Len(),
		Angle:  float32(math.Atan2(float64(p.Y()), float64(p.X()))/(2*math.Pi) + 0.5),
	}
}

// StepResult is the next state of one particle plus the events of the step.
type StepResult struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Color    mgl32.Vec3

	ReflectedX bool
	ReflectedY bool
	Reset      bool
}

// StepCounts accumulates events over a range of particles.
type StepCounts struct {
	Reflections int // axis reflections, a corner hit counts twice
	Resets      int
}

// Add merges other into c.
func (c *StepCounts) Add(other StepCounts) {
	c.Reflections += other.Reflections
	c.Resets += other.Resets
}

// UpdateKernel advances one particle per call. It holds only startup
// constants; everything that changes between frames arrives in Uniforms.
type UpdateKernel struct {
	Palette       Palette
	PointerRadius float32
}

// DefaultUpdateKernel returns the kernel with the default palette and pointer radius.
func DefaultUpdateKernel() UpdateKernel {
	return UpdateKernel{
		Palette:       DefaultPalette(),
		PointerRadius: DefaultPointerRadius,
	}
}

// Step computes the next state of a particle at pos moving with vel.
//
// Reflection is decided on the unclamped candidate and only affects the
// stored velocity; the visible position is clamped to the boundary. A
// particle that overshoots lands exactly on the edge.
func (k UpdateKernel) Step(pos, vel mgl32.Vec2, u components.Uniforms) StepResult {
	var r StepResult

	candidate := pos.Add(vel)

	if absf(candidate[0]) >= u.Limit[0] {
		vel[0] = -vel[0]
		r.ReflectedX = true
	}
	if absf(candidate[1]) >= u.Limit[1] {
		vel[1] = -vel[1]
		r.ReflectedY = true
	}

	clamped := mgl32.Vec2{
		clampAxis(candidate[0], u.Limit[0]),
		clampAxis(candidate[1], u.Limit[1]),
	}

	// Color comes from the clamped position, before any pointer reset
	polar := ToPolar(clamped)
	r.Color = k.Palette.At(polar.Radius)
	r.Velocity = vel
	r.Position = clamped

	if u.Pointer.Sub(clamped).Len() <= k.PointerRadius {
		r.Position = mgl32.Vec2{}
		r.Reset = true
	}

	return r
}

// Run advances particles [i0, i1) and returns the events seen.
// Each index reads and writes only its own slot in the three buffers.
func (k UpdateKernel) Run(p *components.Particles, i0, i1 int, u components.Uniforms) StepCounts {
	var counts StepCounts

	pos := p.Positions[i0:i1]
	vel := p.Velocities[i0:i1]
	col := p.Colors[i0:i1]

	for j := range pos {
		r := k.Step(pos[j], vel[j], u)
		pos[j] = r.Position
		vel[j] = r.Velocity
		col[j] = r.Color

		if r.ReflectedX {
			counts.Reflections++
		}
		if r.ReflectedY {
			counts.Reflections++
		}
		if r.Reset {
			counts.Resets++
		}
	}

	return counts
}

// InBounds reports whether pos lies within [-limit, limit] on both axes.
func InBounds(pos, limit mgl32.Vec2) bool {
	return absf(pos[0]) <= limit[0] && absf(pos[1]) <= limit[1]
}
