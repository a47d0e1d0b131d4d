package systems

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/pointfield/components"
)

const benchParticles = 300000

func benchParticleSet() *components.Particles {
	p := components.NewParticles(benchParticles)
	DefaultSeedKernel().Run(p, 0, p.Len())
	return p
}

// flatten views a Vec2 slice as interleaved float32s without copying.
func flatten(v []mgl32.Vec2) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice(&v[0][0], 2*len(v))
}

// Benchmark the full per-particle update
func BenchmarkUpdateKernel(b *testing.B) {
	p := benchParticleSet()
	k := DefaultUpdateKernel()
	u := components.Uniforms{Pointer: mgl32.Vec2{0.2, 0.1}, Limit: mgl32.Vec2{1, 1}}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		k.Run(p, 0, p.Len(), u)
	}
}

func BenchmarkSeedKernel(b *testing.B) {
	p := components.NewParticles(benchParticles)
	k := DefaultSeedKernel()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		k.Run(p, 0, p.Len())
	}
}

// Benchmark the Euler step alone with a scalar loop
func BenchmarkIntegrateScalar(b *testing.B) {
	p := benchParticleSet()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range p.Positions {
			p.Positions[i] = p.Positions[i].Add(p.Velocities[i])
		}
	}
}

// Benchmark the Euler step alone with blas32 axpy over the interleaved buffers
func BenchmarkIntegrateBLAS(b *testing.B) {
	p := benchParticleSet()

	pos := blas32.Vector{N: 2 * p.Len(), Inc: 1, Data: flatten(p.Positions)}
	vel := blas32.Vector{N: 2 * p.Len(), Inc: 1, Data: flatten(p.Velocities)}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		blas32.Axpy(1, vel, pos) // pos += vel
	}
}

func TestFlattenAliasesBuffer(t *testing.T) {
	v := []mgl32.Vec2{{1, 2}, {3, 4}}
	f := flatten(v)

	if len(f) != 4 || f[0] != 1 || f[3] != 4 {
		t.Fatalf("flatten = %v, want [1 2 3 4]", f)
	}

	blas32.Axpy(1, blas32.Vector{N: 4, Inc: 1, Data: []float32{1, 1, 1, 1}}, blas32.Vector{N: 4, Inc: 1, Data: f})
	if v[1] != (mgl32.Vec2{4, 5}) {
		t.Errorf("axpy through flattened view = %v, want (4, 5)", v[1])
	}
}
