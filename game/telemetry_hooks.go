package game

import "log/slog"

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	radii, speeds := g.sampleDistributions()

	stats := g.collector.Flush(g.tick, g.particles.Len(), radii, speeds, g.lastUniforms)
	perfStats := g.perfCollector.Stats()
	g.lastWindow = stats

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleDistributions collects radius and speed over a strided sample of
// particles. The returned slices are reused by the next call.
func (g *Game) sampleDistributions() (radii, speeds []float64) {
	g.radii = g.radii[:0]
	g.speeds = g.speeds[:0]

	stride := g.sampleStride()
	pos := g.particles.Positions
	vel := g.particles.Velocities
	for i := 0; i < len(pos); i += stride {
		g.radii = append(g.radii, float64(pos[i].Len()))
		g.speeds = append(g.speeds, float64(vel[i].Len()))
	}
	return g.radii, g.speeds
}

// sampleStride spaces samples so about radius_sample_size particles are read.
func (g *Game) sampleStride() int {
	size := g.cfg.Telemetry.RadiusSampleSize
	n := g.particles.Len()
	if size <= 0 || n <= size {
		return 1
	}
	return n / size
}
