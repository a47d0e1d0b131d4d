package telemetry

import "github.com/pthm-cable/pointfield/components"

// Collector accumulates kernel events within frame windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	runID               string

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	reflections int
	resets      int
	violations  int
}

// NewCollector creates a new stats collector flushing every windowTicks frames.
func NewCollector(windowTicks int, runID string) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
		runID:               runID,
	}
}

// RecordStep adds the events of one update dispatch.
func (c *Collector) RecordStep(reflections, resets int) {
	c.reflections += reflections
	c.resets += resets
}

// RecordViolations records sampled particles found outside the limit.
func (c *Collector) RecordViolations(n int) {
	c.violations += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// radii and speeds are sampled by the caller at window end; u is the most
// recent uniform snapshot.
func (c *Collector) Flush(currentTick int32, particles int, radii, speeds []float64, u components.Uniforms) WindowStats {
	frames := currentTick - c.windowStartTick

	var resetsPerTick float64
	if frames > 0 {
		resetsPerTick = float64(c.resets) / float64(frames)
	}

	radiusMean, p10, p50, p90 := ComputeDistribution(radii)

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Frames:          frames,
		Particles:       particles,

		Reflections:   c.reflections,
		Resets:        c.resets,
		ResetsPerTick: resetsPerTick,

		RadiusMean: radiusMean,
		RadiusP10:  p10,
		RadiusP50:  p50,
		RadiusP90:  p90,
		SpeedMean:  Mean(speeds),

		LimitX:   float64(u.Limit.X()),
		LimitY:   float64(u.Limit.Y()),
		PointerX: float64(u.Pointer.X()),
		PointerY: float64(u.Pointer.Y()),

		BoundsViolations: c.violations,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.reflections = 0
	c.resets = 0
	c.violations = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// RunID returns the identifier stamped on every window.
func (c *Collector) RunID() string {
	return c.runID
}
