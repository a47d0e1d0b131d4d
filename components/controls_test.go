package components

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewParticlesZeroed(t *testing.T) {
	p := NewParticles(16)

	if p.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", p.Len())
	}
	if len(p.Velocities) != 16 || len(p.Colors) != 16 {
		t.Fatalf("buffer lengths differ: vel=%d col=%d", len(p.Velocities), len(p.Colors))
	}
	for i := 0; i < p.Len(); i++ {
		if p.Positions[i] != (mgl32.Vec2{}) || p.Velocities[i] != (mgl32.Vec2{}) || p.Colors[i] != (mgl32.Vec3{}) {
			t.Fatalf("particle %d not zero-initialized", i)
		}
	}
}

func TestControlsDefaults(t *testing.T) {
	c := NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, 0, 1)
	u := c.Snapshot()

	if u.Pointer != (mgl32.Vec2{-10, -10}) {
		t.Errorf("pointer = %v, want sentinel (-10, -10)", u.Pointer)
	}
	if u.Limit != (mgl32.Vec2{1, 1}) {
		t.Errorf("limit = %v, want (1, 1)", u.Limit)
	}
}

func TestControlsLimitClamped(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"inside", 0.42, 0.42},
		{"below min", -0.5, 0},
		{"above max", 3, 1},
		{"at max", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, 0, 1)
			c.SetLimitX(tt.in)
			c.SetLimitY(tt.in)
			got := c.Limit()
			if got.X() != tt.want || got.Y() != tt.want {
				t.Errorf("limit = %v, want (%v, %v)", got, tt.want, tt.want)
			}
		})
	}
}

func TestControlsRangeNeverNegative(t *testing.T) {
	tests := []struct {
		name             string
		min, max         float32
		wantMin, wantMax float32
	}{
		{"valid", 0.1, 0.9, 0.1, 0.9},
		{"negative min", -0.5, 1, 0, 1},
		{"inverted", 0.6, 0.2, 0.6, 0.6},
		{"all negative", -2, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, tt.min, tt.max)
			lo, hi := c.Range()
			if lo != tt.wantMin || hi != tt.wantMax {
				t.Fatalf("range = [%v, %v], want [%v, %v]", lo, hi, tt.wantMin, tt.wantMax)
			}

			c.SetLimit(mgl32.Vec2{-0.3, -0.3})
			limit := c.Limit()
			if limit.X() < 0 || limit.Y() < 0 {
				t.Errorf("limit = %v, want non-negative", limit)
			}
		})
	}
}

func TestControlsAxesIndependent(t *testing.T) {
	c := NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, 0, 1)
	c.SetLimitX(0.3)

	if got := c.Limit(); got != (mgl32.Vec2{0.3, 1}) {
		t.Errorf("limit = %v, want (0.3, 1)", got)
	}

	c.ResetLimit()
	if got := c.Limit(); got != (mgl32.Vec2{1, 1}) {
		t.Errorf("limit after reset = %v, want (1, 1)", got)
	}
}

func TestControlsPointer(t *testing.T) {
	c := NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, 0, 1)

	c.SetPointer(mgl32.Vec2{0.25, -0.5})
	if got := c.Pointer(); got != (mgl32.Vec2{0.25, -0.5}) {
		t.Errorf("pointer = %v, want (0.25, -0.5)", got)
	}

	c.ClearPointer()
	if got := c.Pointer(); got != (mgl32.Vec2{-10, -10}) {
		t.Errorf("pointer after clear = %v, want sentinel", got)
	}
}

// Snapshots taken while writers are active must always see a pair of values
// that some writer actually stored.
func TestControlsSnapshotConsistent(t *testing.T) {
	c := NewControls(mgl32.Vec2{1, 1}, mgl32.Vec2{-10, -10}, 0, 1)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			v := float32(i%2) * 0.5
			c.SetLimit(mgl32.Vec2{v, v})
		}
	}()

	for i := 0; i < 10000; i++ {
		u := c.Snapshot()
		if u.Limit.X() != u.Limit.Y() {
			close(stop)
			wg.Wait()
			t.Fatalf("torn snapshot: %v", u.Limit)
		}
	}
	close(stop)
	wg.Wait()
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		v, step, want float32
	}{
		{0.504, 0.01, 0.5},
		{0.996, 0.01, 1.0},
		{0.333, 0.1, 0.3},
		{0.42, 0, 0.42},
	}

	for _, tt := range tests {
		got := Quantize(tt.v, tt.step)
		if math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Quantize(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}
