// Package config provides configuration loading and access for the point field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Seeding   SeedingConfig   `yaml:"seeding"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Bounds    BoundsConfig    `yaml:"bounds"`
	Palette   PaletteConfig   `yaml:"palette"`
	Workers   WorkersConfig   `yaml:"workers"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds the population size. Fixed for the lifetime of a run.
type ParticlesConfig struct {
	Count int `yaml:"count"`
}

// SeedingConfig holds the constants of the initial velocity fan.
type SeedingConfig struct {
	AngleStep  float64 `yaml:"angle_step"`  // radians per particle index
	SpeedScale float64 `yaml:"speed_scale"` // speed gained per particle index
	SpeedBase  float64 `yaml:"speed_base"`  // speed of particle 0
}

// PointerConfig holds pointer interaction parameters.
type PointerConfig struct {
	InfluenceRadius float64 `yaml:"influence_radius"` // particles this close to the pointer return to origin
	SentinelX       float64 `yaml:"sentinel_x"`
	SentinelY       float64 `yaml:"sentinel_y"`
}

// BoundsConfig holds the boundary limit defaults and the operator slider range.
type BoundsConfig struct {
	LimitX float64 `yaml:"limit_x"`
	LimitY float64 `yaml:"limit_y"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Step   float64 `yaml:"step"`
}

// PaletteConfig holds the four cosine palette vectors.
type PaletteConfig struct {
	A []float64 `yaml:"a"`
	B []float64 `yaml:"b"`
	C []float64 `yaml:"c"`
	D []float64 `yaml:"d"`
}

// WorkersConfig holds worker pool parameters.
type WorkersConfig struct {
	Count             int `yaml:"count"`              // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // below this, dispatch runs inline
}

// RenderConfig holds rendering parameters.
type RenderConfig struct {
	PointSize   int   `yaml:"point_size"`
	Background  []int `yaml:"background"`
	TerminalFPS int   `yaml:"terminal_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // frames
	PerfCollectorWindow int `yaml:"perf_collector_window"`
	RadiusSampleSize    int `yaml:"radius_sample_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Sentinel      mgl32.Vec2 // Pointer value before any interaction
	DefaultLimit  mgl32.Vec2 // Bounds.LimitX/LimitY as a vector
	PaletteA      mgl32.Vec3
	PaletteB      mgl32.Vec3
	PaletteC      mgl32.Vec3
	PaletteD      mgl32.Vec3
	NumWorkers    int     // Workers.Count with 0 resolved to GOMAXPROCS
	PointerRadius float32 // Pointer.InfluenceRadius as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the kernels cannot run with.
func (c *Config) validate() error {
	var errs []error

	if c.Particles.Count <= 0 {
		errs = append(errs, fmt.Errorf("particles.count must be positive, got %d", c.Particles.Count))
	}
	if c.Bounds.Min > c.Bounds.Max {
		errs = append(errs, fmt.Errorf("bounds.min (%v) exceeds bounds.max (%v)", c.Bounds.Min, c.Bounds.Max))
	}
	if c.Bounds.Min < 0 {
		errs = append(errs, fmt.Errorf("bounds.min must not be negative, got %v", c.Bounds.Min))
	}
	for name, v := range map[string]float64{"bounds.limit_x": c.Bounds.LimitX, "bounds.limit_y": c.Bounds.LimitY} {
		if v < c.Bounds.Min || v > c.Bounds.Max {
			errs = append(errs, fmt.Errorf("%s (%v) outside [%v, %v]", name, v, c.Bounds.Min, c.Bounds.Max))
		}
	}
	if c.Pointer.InfluenceRadius < 0 {
		errs = append(errs, fmt.Errorf("pointer.influence_radius must not be negative, got %v", c.Pointer.InfluenceRadius))
	}
	for name, v := range map[string][]float64{
		"palette.a": c.Palette.A,
		"palette.b": c.Palette.B,
		"palette.c": c.Palette.C,
		"palette.d": c.Palette.D,
	} {
		if len(v) != 3 {
			errs = append(errs, fmt.Errorf("%s must have 3 components, got %d", name, len(v)))
		}
	}
	if c.Workers.Count < 0 {
		errs = append(errs, fmt.Errorf("workers.count must not be negative, got %d", c.Workers.Count))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Sentinel = mgl32.Vec2{float32(c.Pointer.SentinelX), float32(c.Pointer.SentinelY)}
	c.Derived.DefaultLimit = mgl32.Vec2{float32(c.Bounds.LimitX), float32(c.Bounds.LimitY)}
	c.Derived.PaletteA = vec3(c.Palette.A)
	c.Derived.PaletteB = vec3(c.Palette.B)
	c.Derived.PaletteC = vec3(c.Palette.C)
	c.Derived.PaletteD = vec3(c.Palette.D)
	c.Derived.PointerRadius = float32(c.Pointer.InfluenceRadius)

	c.Derived.NumWorkers = c.Workers.Count
	if c.Derived.NumWorkers == 0 {
		c.Derived.NumWorkers = runtime.GOMAXPROCS(0)
	}

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	if c.Render.PointSize < 1 {
		c.Render.PointSize = 1
	}
	if len(c.Render.Background) != 3 {
		c.Render.Background = []int{0, 0, 0}
	}
}

func vec3(v []float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
