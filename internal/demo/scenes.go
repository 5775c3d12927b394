package demo

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/plinko/internal/config"
	"github.com/san-kum/plinko/internal/palette"
	"github.com/san-kum/plinko/internal/scene"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

// MinEngineVersion is the engine release the scenes are written against.
const MinEngineVersion = ">=1.2.1"

type populateFunc func(w *world.World, rng *rand.Rand, cfg *config.Config) error

// assemble runs the shared setup: world, population, pointer, recolor
// handlers, runner and view, in that order.
func assemble(cfg *config.Config, logger *log.Logger, populate ...populateFunc) (*sim.Session, error) {
	rng := cfg.Rand()
	w := world.New(cfg.WorldOptions())

	// The background is drawn first so the seed fixes it independently of
	// the population.
	background, err := backgroundColor(cfg, rng)
	if err != nil {
		return nil, err
	}

	for _, p := range populate {
		if err := p(w, rng, cfg); err != nil {
			return nil, err
		}
	}

	pointer, err := world.NewPointer(w, cfg.PointerOptions())
	if err != nil {
		return nil, err
	}

	recolor := Recolor(palette.NewSource(rng, palette.Muted))
	w.On(world.EventCollisionStart, recolor)
	w.On(world.EventCollisionEnd, recolor)

	runner, err := sim.NewRunner(w, cfg.SimConfig(), logger)
	if err != nil {
		return nil, err
	}

	canvas := cfg.SceneCanvas()
	logger.Info("scene ready", "bodies", len(w.Bodies()), "constraints", len(w.Constraints()), "seed", cfg.Seed)
	return &sim.Session{
		Requires: MinEngineVersion,
		World:    w,
		Runner:   runner,
		Pointer:  pointer,
		Render:   sim.NewView(canvas, background),
		Canvas:   canvas,
	}, nil
}

func backgroundColor(cfg *config.Config, rng *rand.Rand) (colorful.Color, error) {
	if cfg.Background == config.RandomBackground {
		return palette.Random(rng, palette.Muted), nil
	}
	return colorful.Hex(cfg.Background)
}

func addBoundary(w *world.World, _ *rand.Rand, cfg *config.Config) error {
	spec, err := scene.Boundary(cfg.SceneCanvas(), scene.DefaultWallThickness, palette.Gray)
	if err != nil {
		return err
	}
	_, err = w.Add(spec)
	return err
}

func addPegs(w *world.World, _ *rand.Rand, cfg *config.Config) error {
	specs, err := scene.Pegs(cfg.ScenePegs())
	if err != nil {
		return err
	}
	_, err = w.AddAll(specs)
	return err
}

func addBall(w *world.World, rng *rand.Rand, cfg *config.Config) error {
	spec, err := scene.Ball(rng, cfg.SceneCanvas(), cfg.SceneBall())
	if err != nil {
		return err
	}
	_, err = w.Add(spec)
	return err
}

func addScatter(w *world.World, rng *rand.Rand, cfg *config.Config) error {
	sc, err := cfg.SceneScatter()
	if err != nil {
		return err
	}
	specs, err := scene.Scatter(rng, sc)
	if err != nil {
		return err
	}
	_, err = w.AddAll(specs)
	return err
}

// addPinnedCross hangs a cross from a fixed point above its top bar.
func addPinnedCross(center cp.Vector) populateFunc {
	return func(w *world.World, rng *rand.Rand, cfg *config.Config) error {
		size := cfg.Compound.CrossSize
		spec, err := scene.Cross("cross", center, size, palette.Random(rng, palette.Vivid))
		if err != nil {
			return err
		}
		body, err := w.Add(spec)
		if err != nil {
			return err
		}
		anchor := cp.Vector{X: 0, Y: -size / 2}
		at := center.Add(cp.Vector{X: size / 4, Y: -size/2 - size/4})
		_, err = w.Pin("cross-pin", body, at, anchor, cfg.Compound.PinStiffness)
		return err
	}
}

func addCluster(origin cp.Vector) populateFunc {
	return func(w *world.World, rng *rand.Rand, cfg *config.Config) error {
		cl := cfg.SceneCluster(origin)
		cl.Fills = []colorful.Color{palette.Random(rng, palette.Pastel), palette.Random(rng, palette.Vivid)}
		spec, err := scene.Cluster("cluster", cl)
		if err != nil {
			return err
		}
		_, err = w.Add(spec)
		return err
	}
}

func buildPlinko(cfg *config.Config, logger *log.Logger) (*sim.Session, error) {
	return assemble(cfg, logger, addPegs, addBall, addBoundary)
}

func buildCompound(cfg *config.Config, logger *log.Logger) (*sim.Session, error) {
	canvas := cfg.SceneCanvas()
	return assemble(cfg, logger,
		addPinnedCross(cp.Vector{X: canvas.Width / 4, Y: canvas.Height / 3}),
		addCluster(scene.DefaultClusterConfig.Origin),
		addBoundary,
	)
}

func buildScatter(cfg *config.Config, logger *log.Logger) (*sim.Session, error) {
	return assemble(cfg, logger, addScatter, addBoundary)
}

func buildMixed(cfg *config.Config, logger *log.Logger) (*sim.Session, error) {
	canvas := cfg.SceneCanvas()
	return assemble(cfg, logger,
		addPegs,
		addPinnedCross(cp.Vector{X: canvas.Width / 6, Y: canvas.Height / 4}),
		addCluster(cp.Vector{X: canvas.Width * 0.6, Y: canvas.Height / 15}),
		addBall,
		addScatter,
		addBoundary,
	)
}
