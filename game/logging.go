package game

import "log/slog"

// logStartup records the effective run parameters.
func (g *Game) logStartup() {
	u := g.controls.Snapshot()
	slog.Info("simulation initialized",
		"run_id", g.collector.RunID(),
		"particles", g.particles.Len(),
		"workers", g.parallel.numWorkers,
		"parallel_threshold", g.parallel.threshold,
		"headless", g.headless,
		"steps_per_update", g.stepsPerUpdate,
		"stats_window", g.collector.WindowDurationTicks(),
		"limit_x", u.Limit.X(),
		"limit_y", u.Limit.Y(),
		"pointer_radius", g.update.PointerRadius,
		"pointer_orbit", g.pointerOrbit,
		"output_dir", g.outputManager.Dir(),
	)
}
