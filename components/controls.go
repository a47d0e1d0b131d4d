package components

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the read-only snapshot of the control values for one kernel
// invocation. It is passed by value to every worker.
type Uniforms struct {
	Pointer mgl32.Vec2 // interaction point in normalized space
	Limit   mgl32.Vec2 // per-axis boundary, positions stay within [-Limit, Limit]
}

// Controls holds the externally mutated pointer position and boundary limit.
// Input handling and the control panel write it between frames; the driver
// takes a Snapshot before each dispatch.
type Controls struct {
	mu       sync.RWMutex
	pointer  mgl32.Vec2
	limit    mgl32.Vec2
	sentinel mgl32.Vec2
	defLimit mgl32.Vec2
	min, max float32
}

// NewControls creates controls with the pointer parked at sentinel and the
// limit set to limit. Limit axes are kept within [min, max]; min is raised
// to 0 and max to min, since a negative limit has no valid box.
func NewControls(limit, sentinel mgl32.Vec2, min, max float32) *Controls {
	min = float32(math.Max(0, float64(min)))
	if max < min {
		max = min
	}
	c := &Controls{
		pointer:  sentinel,
		sentinel: sentinel,
		min:      min,
		max:      max,
	}
	c.limit = mgl32.Vec2{c.clamp(limit.X()), c.clamp(limit.Y())}
	c.defLimit = c.limit
	return c
}

func (c *Controls) clamp(v float32) float32 {
	return mgl32.Clamp(v, c.min, c.max)
}

// SetPointer moves the interaction point.
func (c *Controls) SetPointer(p mgl32.Vec2) {
	c.mu.Lock()
	c.pointer = p
	c.mu.Unlock()
}

// ClearPointer parks the pointer back at the out-of-range sentinel.
func (c *Controls) ClearPointer() {
	c.mu.Lock()
	c.pointer = c.sentinel
	c.mu.Unlock()
}

// Pointer returns the current interaction point.
func (c *Controls) Pointer() mgl32.Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pointer
}

// SetLimitX sets the x boundary, clamped to the configured range.
func (c *Controls) SetLimitX(v float32) {
	c.mu.Lock()
	c.limit[0] = c.clamp(v)
	c.mu.Unlock()
}

// SetLimitY sets the y boundary, clamped to the configured range.
func (c *Controls) SetLimitY(v float32) {
	c.mu.Lock()
	c.limit[1] = c.clamp(v)
	c.mu.Unlock()
}

// SetLimit sets both boundary axes.
func (c *Controls) SetLimit(v mgl32.Vec2) {
	c.mu.Lock()
	c.limit = mgl32.Vec2{c.clamp(v.X()), c.clamp(v.Y())}
	c.mu.Unlock()
}

// ResetLimit restores the boundary the controls were created with.
func (c *Controls) ResetLimit() {
	c.mu.Lock()
	c.limit = c.defLimit
	c.mu.Unlock()
}

// Limit returns the current boundary.
func (c *Controls) Limit() mgl32.Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.limit
}

// Range returns the allowed range of each limit axis.
func (c *Controls) Range() (min, max float32) {
	return c.min, c.max
}

// Snapshot returns a consistent copy of both values.
func (c *Controls) Snapshot() Uniforms {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Uniforms{Pointer: c.pointer, Limit: c.limit}
}

// Quantize rounds v to the nearest multiple of step. A non-positive step
// returns v unchanged.
func Quantize(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return float32(math.Round(float64(v)/float64(step)) * float64(step))
}
