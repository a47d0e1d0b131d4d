// Package game drives the point field: it owns the particle buffers, runs
// the kernels on a worker pool, and connects input, rendering and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/components"
	"github.com/pthm-cable/pointfield/config"
	"github.com/pthm-cable/pointfield/renderer"
	"github.com/pthm-cable/pointfield/systems"
	"github.com/pthm-cable/pointfield/telemetry"
	"github.com/pthm-cable/pointfield/ui"
)

// orbitRate is the angular speed of the headless pointer orbit, radians per frame.
const orbitRate = 0.01

// Options configures the game.
type Options struct {
	Headless       bool
	LogStats       bool
	StatsWindow    int     // frames per stats window, 0 = config value
	OutputDir      string  // empty = no CSV output
	StepsPerUpdate int     // simulation frames per Update call
	PointerOrbit   float32 // radius of the unattended pointer orbit, 0 = off
}

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config

	particles *components.Particles
	controls  *components.Controls
	seed      systems.SeedKernel
	update    systems.UpdateKernel
	parallel  *parallelState

	// Rendering (nil in headless mode)
	camera *camera.Camera
	points *renderer.PointRenderer
	hud    *ui.HUD
	panel  *ui.ControlsPanel

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	pointerOrbit   float32
	lastUniforms   components.Uniforms
	lastCounts     systems.StepCounts

	screenWidth, screenHeight float32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastWindow    telemetry.WindowStats

	// Sample buffers reused across flushes
	radii, speeds []float64
}

// NewGameWithOptions creates a game from the global configuration.
func NewGameWithOptions(opts Options) (*Game, error) {
	return NewGameWithConfig(config.Cfg(), opts)
}

// NewGameWithConfig allocates the buffers, builds the kernels and runs the
// seeding kernel once. An output directory that cannot be written is an
// error. Graphical mode must be created after the raylib window exists.
func NewGameWithConfig(cfg *config.Config, opts Options) (*Game, error) {
	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}

	runID := telemetry.NewRunID()
	om, err := telemetry.NewOutputManager(opts.OutputDir, runID)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		particles:      components.NewParticles(cfg.Particles.Count),
		controls:       newControls(cfg),
		seed:           newSeedKernel(cfg),
		update:         newUpdateKernel(cfg),
		parallel:       newParallelState(cfg.Derived.NumWorkers, cfg.Workers.ParallelThreshold),
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		pointerOrbit:   opts.PointerOrbit,
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
		collector:      telemetry.NewCollector(statsWindow, runID),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
	}

	if !opts.Headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight)
		g.points = renderer.NewPointRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Render.PointSize, backgroundColor(cfg))
		g.hud = ui.NewHUD()
		g.panel = ui.NewControlsPanel(int32(cfg.Screen.Width)-panelWidth-10, 10, panelWidth, float32(cfg.Bounds.Step))
	}

	g.dispatch(workSeed, components.Uniforms{})
	g.lastUniforms = g.controls.Snapshot()

	g.logStartup()

	return g, nil
}

// Update handles input, then runs StepsPerUpdate frames unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs StepsPerUpdate frames without touching raylib.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs the update kernel once over every particle.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseUniforms)
	if g.pointerOrbit > 0 {
		g.orbitPointer()
	}
	u := g.controls.Snapshot()
	g.lastUniforms = u

	g.perfCollector.StartPhase(telemetry.PhaseUpdate)
	counts := g.dispatch(workUpdate, u)
	g.lastCounts = counts
	g.collector.RecordStep(counts.Reflections, counts.Resets)

	g.perfCollector.StartPhase(telemetry.PhaseInvariant)
	if n := g.checkBounds(u.Limit); n > 0 {
		g.collector.RecordViolations(n)
		slog.Warn("bounds invariant violated", "tick", g.tick, "count", n, "limit_x", u.Limit.X(), "limit_y", u.Limit.Y())
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// checkBounds counts sampled particles outside limit.
func (g *Game) checkBounds(limit mgl32.Vec2) int {
	violations := 0
	stride := g.sampleStride()
	pos := g.particles.Positions
	for i := 0; i < len(pos); i += stride {
		if !systems.InBounds(pos[i], limit) {
			violations++
		}
	}
	return violations
}

// orbitPointer moves the pointer along a circle so unattended runs hit
// the reset path.
func (g *Game) orbitPointer() {
	theta := float64(g.tick) * orbitRate
	g.controls.SetPointer(mgl32.Vec2{
		g.pointerOrbit * float32(math.Cos(theta)),
		g.pointerOrbit * float32(math.Sin(theta)),
	})
}

// Reseed restores the startup state: positions and colors return to zero
// and the seeding kernel rewrites every velocity.
func (g *Game) Reseed() {
	clear(g.particles.Positions)
	clear(g.particles.Colors)
	g.dispatch(workSeed, components.Uniforms{})
	slog.Info("particles reseeded", "tick", g.tick, "particles", g.particles.Len())
}

// TogglePause flips the paused flag and returns the new value.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Particles returns the particle buffers. Callers must only read them.
func (g *Game) Particles() *components.Particles {
	return g.particles
}

// Controls returns the pointer and limit controls.
func (g *Game) Controls() *components.Controls {
	return g.controls
}

// Camera returns the view camera, nil in headless mode.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Uniforms returns the snapshot used by the most recent frame.
func (g *Game) Uniforms() components.Uniforms {
	return g.lastUniforms
}

// Tick returns the number of frames simulated so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload stops the workers and releases rendering and output resources.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	if g.points != nil {
		g.points.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
