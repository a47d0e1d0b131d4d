package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	RunID           string `csv:"run_id"`
	WindowStartTick int32  `csv:"-"`
	WindowEndTick   int32  `csv:"window_end"`
	Frames          int32  `csv:"frames"`
	Particles       int    `csv:"particles"`

	// Events during window
	Reflections   int     `csv:"reflections"`
	Resets        int     `csv:"resets"`
	ResetsPerTick float64 `csv:"resets_per_tick"`

	// Radius distribution over a strided sample at window end
	RadiusMean float64 `csv:"radius_mean"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`
	SpeedMean  float64 `csv:"speed_mean"`

	// Uniforms at window end
	LimitX   float64 `csv:"limit_x"`
	LimitY   float64 `csv:"limit_y"`
	PointerX float64 `csv:"pointer_x"`
	PointerY float64 `csv:"pointer_y"`

	// Sampled particles found outside the limit; always 0 unless a kernel is broken
	BoundsViolations int `csv:"bounds_violations"`
}

// ComputeDistribution returns the mean and the 10th, 50th and 90th
// empirical quantiles of values. values is not modified.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("particles", s.Particles),
		slog.Int("reflections", s.Reflections),
		slog.Int("resets", s.Resets),
		slog.Float64("resets_per_tick", s.ResetsPerTick),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_p10", s.RadiusP10),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("limit_x", s.LimitX),
		slog.Float64("limit_y", s.LimitY),
		slog.Float64("pointer_x", s.PointerX),
		slog.Float64("pointer_y", s.PointerY),
		slog.Int("bounds_violations", s.BoundsViolations),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"particles", s.Particles,
		"reflections", s.Reflections,
		"resets", s.Resets,
		"radius_mean", s.RadiusMean,
		"radius_p50", s.RadiusP50,
		"radius_p90", s.RadiusP90,
		"speed_mean", s.SpeedMean,
		"limit_x", s.LimitX,
		"limit_y", s.LimitY,
		"bounds_violations", s.BoundsViolations,
	)
}
