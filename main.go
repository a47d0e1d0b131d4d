package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pointfield/camera"
	"github.com/pthm-cable/pointfield/config"
	"github.com/pthm-cable/pointfield/game"
	"github.com/pthm-cable/pointfield/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Render to the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in frames (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation frames per update call (higher = faster headless runs)")
	pointerOrbit := flag.Float64("pointer-orbit", 0, "Drive the pointer around a circle of this radius (0 = off)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging). The terminal
	// renderer owns stdout, so it logs to a file in the output directory.
	var logOut io.Writer = os.Stdout
	if *terminal {
		logOut = io.Discard
		if *outputDir != "" {
			f, err := openRunLog(*outputDir)
			if err != nil {
				slog.Error("failed to open run log", "error", err)
				os.Exit(1)
			}
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	// Build game options
	opts := game.Options{
		LogStats:       *logStats,
		StatsWindow:    *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless || *terminal,
		StepsPerUpdate: *stepsPerUpdate,
		PointerOrbit:   float32(*pointerOrbit),
	}

	switch {
	case *terminal:
		if err := runTerminal(cfg, opts, *maxTicks); err != nil {
			slog.Error("terminal mode failed", "error", err)
			os.Exit(1)
		}
	case *headless:
		if err := runHeadless(opts, *maxTicks); err != nil {
			slog.Error("headless mode failed", "error", err)
			os.Exit(1)
		}
	default:
		if err := runGraphical(cfg, opts, *maxTicks); err != nil {
			slog.Error("graphical mode failed", "error", err)
			os.Exit(1)
		}
	}
}

// openRunLog creates dir if needed and opens run.log inside it.
func openRunLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return os.Create(filepath.Join(dir, "run.log"))
}

// runHeadless is a pure CPU simulation, no raylib needed.
func runHeadless(opts game.Options, maxTicks int) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
		"pointer_orbit", opts.PointerOrbit,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
}

func runGraphical(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Point Field")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return nil
}

// runTerminal renders into a tcell screen at render.terminal_fps.
func runTerminal(cfg *config.Config, opts game.Options, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	tr := renderer.NewTerminalRenderer(screen)
	cols, rows := tr.FieldSize()
	cam := camera.New(float32(cols), float32(rows))
	step := float32(cfg.Bounds.Step)

	fps := cfg.Render.TerminalFPS
	if fps < 1 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch tr.HandleEvent(ev, g.Controls(), cam, step) {
			case renderer.ActionQuit:
				return nil
			case renderer.ActionPause:
				g.TogglePause()
			case renderer.ActionReseed:
				g.Reseed()
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				cols, rows = tr.FieldSize()
				cam.Resize(float32(cols), float32(rows))
			}

		case <-ticker.C:
			g.UpdateHeadless()
			status := renderer.StatusLine(g.Tick(), g.Particles().Len(), g.Uniforms(), g.Paused())
			tr.Draw(g.Particles(), cam, status)

			if maxTicks > 0 && int(g.Tick()) >= maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return nil
			}
		}
	}
}
