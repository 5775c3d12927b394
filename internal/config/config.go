package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScene      = "plinko"
	DefaultDt         = 1.0 / 60.0
	DefaultDuration   = 10.0
	DefaultFPS        = 60.0
	DefaultGravity    = 1000.0
	DefaultIterations = 10
	// RandomBackground picks a muted background color from the run seed.
	RandomBackground = "random"
)

var (
	ErrInvalid       = errors.New("config: invalid value")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Scene      string         `yaml:"scene"`
	Seed       int64          `yaml:"seed"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	FPS        float64        `yaml:"fps"`
	Canvas     CanvasConfig   `yaml:"canvas"`
	Gravity    float64        `yaml:"gravity"`
	Iterations int            `yaml:"iterations"`
	Background string         `yaml:"background"`
	Pegs       PegsConfig     `yaml:"pegs"`
	Scatter    ScatterConfig  `yaml:"scatter"`
	Ball       BallConfig     `yaml:"ball"`
	Compound   CompoundConfig `yaml:"compound"`
	Pointer    PointerConfig  `yaml:"pointer"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PegsConfig struct {
	Count   int     `yaml:"count"`
	PerRow  int     `yaml:"per_row"`
	Radius  float64 `yaml:"radius"`
	Gap     float64 `yaml:"gap"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type ScatterConfig struct {
	Preset   string `yaml:"preset"`
	MinCount int    `yaml:"min_count"`
	MaxCount int    `yaml:"max_count"`
}

type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Restitution float64 `yaml:"restitution"`
	MaxNudge    float64 `yaml:"max_nudge"`
}

type CompoundConfig struct {
	CrossSize    float64 `yaml:"cross_size"`
	Spacing      float64 `yaml:"spacing"`
	Radius       float64 `yaml:"radius"`
	Six          bool    `yaml:"six"`
	Core         bool    `yaml:"core"`
	PinStiffness float64 `yaml:"pin_stiffness"`
}

type PointerConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Visible   bool    `yaml:"visible"`
}

func DefaultConfig() *Config {
	peg := scene.DefaultPegConfig
	ball := scene.DefaultBallConfig
	cluster := scene.DefaultClusterConfig
	return &Config{
		Scene:      DefaultScene,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		Canvas:     CanvasConfig{Width: scene.DefaultCanvas.Width, Height: scene.DefaultCanvas.Height},
		Gravity:    DefaultGravity,
		Iterations: DefaultIterations,
		Background: RandomBackground,
		Pegs: PegsConfig{
			Count:   peg.Count,
			PerRow:  peg.PerRow,
			Radius:  peg.Radius,
			Gap:     peg.Gap,
			OriginX: peg.Origin.X,
			OriginY: peg.Origin.Y,
		},
		Scatter: ScatterConfig{Preset: "small", MinCount: 3, MaxCount: 13},
		Ball: BallConfig{
			Radius:      ball.Radius,
			Restitution: ball.Restitution,
			MaxNudge:    ball.MaxNudge,
		},
		Compound: CompoundConfig{
			CrossSize:    200,
			Spacing:      cluster.Spacing,
			Radius:       cluster.Radius,
			PinStiffness: 0.9,
		},
		Pointer: PointerConfig{Stiffness: 0.2},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run-level settings. Scene geometry is validated by
// the scene builders when the session is assembled.
func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene must be set", ErrInvalid)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalid, c.Duration)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps must not be negative, got %f", ErrInvalid, c.FPS)
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalid, c.Iterations)
	case c.Pointer.Stiffness < 0 || c.Pointer.Stiffness > 1:
		return fmt.Errorf("%w: pointer stiffness must be in [0,1], got %g", ErrInvalid, c.Pointer.Stiffness)
	case c.Compound.PinStiffness < 0 || c.Compound.PinStiffness > 1:
		return fmt.Errorf("%w: pin stiffness must be in [0,1], got %g", ErrInvalid, c.Compound.PinStiffness)
	}
	if c.Background != RandomBackground {
		if _, err := colorful.Hex(c.Background); err != nil {
			return fmt.Errorf("%w: background %q: %v", ErrInvalid, c.Background, err)
		}
	}
	return nil
}

// Rand returns the scene generator. Seed 0 draws from the clock, so such
// runs are not reproducible.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (c *Config) SceneCanvas() scene.Canvas {
	return scene.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

func (c *Config) ScenePegs() scene.PegConfig {
	p := scene.DefaultPegConfig
	p.Count = c.Pegs.Count
	p.PerRow = c.Pegs.PerRow
	p.Radius = c.Pegs.Radius
	p.Gap = c.Pegs.Gap
	p.Origin = cp.Vector{X: c.Pegs.OriginX, Y: c.Pegs.OriginY}
	return p
}

// SceneScatter starts from the named preset and applies the count bounds
// and canvas of c.
func (c *Config) SceneScatter() (scene.ScatterConfig, error) {
	s, err := scene.ScatterPreset(c.Scatter.Preset)
	if err != nil {
		return scene.ScatterConfig{}, err
	}
	s.Canvas = c.SceneCanvas()
	s.MinCount = c.Scatter.MinCount
	s.MaxCount = c.Scatter.MaxCount
	return s, nil
}

func (c *Config) SceneBall() scene.BallConfig {
	b := scene.DefaultBallConfig
	b.Radius = c.Ball.Radius
	b.Restitution = c.Ball.Restitution
	b.MaxNudge = c.Ball.MaxNudge
	return b
}

func (c *Config) SceneCluster(origin cp.Vector) scene.ClusterConfig {
	cl := scene.DefaultClusterConfig
	cl.Origin = origin
	cl.Spacing = c.Compound.Spacing
	cl.Radius = c.Compound.Radius
	cl.Six = c.Compound.Six
	cl.Core = c.Compound.Core
	return cl
}

func (c *Config) WorldOptions() world.Options {
	opts := world.DefaultOptions()
	opts.Gravity = cp.Vector{X: 0, Y: c.Gravity}
	opts.Iterations = c.Iterations
	return opts
}

func (c *Config) PointerOptions() world.PointerOptions {
	opts := world.DefaultPointerOptions()
	opts.Stiffness = c.Pointer.Stiffness
	opts.Visible = c.Pointer.Visible
	return opts
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration, FPS: c.FPS}
}
