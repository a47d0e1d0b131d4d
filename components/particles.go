// Package components defines the particle buffers and the shared control
// values the kernels read.
package components

import "github.com/go-gl/mathgl/mgl32"

// Particles holds the per-particle state as flat, index-addressed buffers.
// Element i of every slice belongs to particle i. The length is fixed at
// allocation; there is no resize.
type Particles struct {
	Positions  []mgl32.Vec2 // normalized space, rendered as sprite position
	Velocities []mgl32.Vec2 // added to position each step
	Colors     []mgl32.Vec3 // derived from position, rendered as sprite tint
}

// NewParticles allocates zeroed buffers for n particles.
func NewParticles(n int) *Particles {
	if n < 0 {
		n = 0
	}
	return &Particles{
		Positions:  make([]mgl32.Vec2, n),
		Velocities: make([]mgl32.Vec2, n),
		Colors:     make([]mgl32.Vec3, n),
	}
}

// Len returns the particle count.
func (p *Particles) Len() int {
	return len(p.Positions)
}
