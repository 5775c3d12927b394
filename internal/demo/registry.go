package demo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plinko/internal/config"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
)

var ErrUnknownScene = errors.New("demo: unknown scene")

// Factory populates a world from cfg and wraps it in a session whose loop
// has not been started.
type Factory func(cfg *config.Config, logger *log.Logger) (*sim.Session, error)

type Scene struct {
	Name        string
	Title       string
	Description string
	Build       Factory
}

type Registry struct {
	scenes map[string]Scene
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Scene)}

	r.Register(Scene{
		Name:        "plinko",
		Title:       "Compound Bodies",
		Description: "peg lattice, bouncing ball, floor and walls",
		Build:       buildPlinko,
	})
	r.Register(Scene{
		Name:        "compound",
		Title:       "Compound Bodies",
		Description: "pinned cross and circle cluster",
		Build:       buildCompound,
	})
	r.Register(Scene{
		Name:        "scatter",
		Title:       "Random Bodies",
		Description: "randomly placed, sized and colored circles",
		Build:       buildScatter,
	})
	r.Register(Scene{
		Name:        "mixed",
		Title:       "Compound Bodies",
		Description: "every generator in one world",
		Build:       buildMixed,
	})

	return r
}

func (r *Registry) Register(s Scene) { r.scenes[s.Name] = s }

func (r *Registry) Get(name string) (Scene, error) {
	s, ok := r.scenes[name]
	if !ok {
		return Scene{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownScene, name, r.List())
	}
	return s, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build assembles the named scene without starting its loop. Renderers that
// step the world from their own frame loop use this.
func (r *Registry) Build(name string, cfg *config.Config, logger *log.Logger) (*sim.Session, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	session, err := s.Build(cfg, logger.With("scene", name))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	session.Title = s.Title
	return session, nil
}

// Launch builds the named scene and starts its loop.
func (r *Registry) Launch(ctx context.Context, name string, cfg *config.Config, logger *log.Logger) (*sim.Session, error) {
	session, err := r.Build(name, cfg, logger)
	if err != nil {
		return nil, err
	}
	session.Start(ctx)
	return session, nil
}

// WorldBuilder adapts a scene to sim.Build so ensembles can rebuild it per
// seed.
func (r *Registry) WorldBuilder(name string, cfg *config.Config, logger *log.Logger) sim.Build {
	return func(seed int64) (*world.World, error) {
		c := *cfg
		c.Seed = seed
		session, err := r.Build(name, &c, logger)
		if err != nil {
			return nil, err
		}
		return session.World, nil
	}
}
