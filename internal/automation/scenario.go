package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/config"
	"github.com/san-kum/plinko/internal/demo"
	"github.com/san-kum/plinko/internal/metrics"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/world"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

const (
	ActionPress   = "press"
	ActionMove    = "move"
	ActionRelease = "release"
)

// Scenario scripts pointer input against a scene, e.g. grabbing the cross
// and flinging it into the cluster.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Scene       string   `yaml:"scene"`
	Seed        int64    `yaml:"seed"`
	Duration    float64  `yaml:"duration"`
	Actions     []Action `yaml:"actions"`
}

// Action is applied once the world clock reaches At.
type Action struct {
	At float64 `yaml:"at"`
	Do string  `yaml:"do"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("%w: duration %v", ErrInvalidScenario, s.Duration)
	}
	for i, a := range s.Actions {
		switch a.Do {
		case ActionPress, ActionMove, ActionRelease:
		default:
			return fmt.Errorf("%w: action %d: unknown kind %q", ErrInvalidScenario, i, a.Do)
		}
		if a.At < 0 {
			return fmt.Errorf("%w: action %d at %v", ErrInvalidScenario, i, a.At)
		}
	}
	return nil
}

// Apply overrides the scene, seed and duration of base where the scenario
// sets them.
func (s *Scenario) Apply(base *config.Config) *config.Config {
	cfg := *base
	if s.Scene != "" {
		cfg.Scene = s.Scene
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	return &cfg
}

type ScenarioResult struct {
	*sim.Result
	Session *sim.Session
	// Grabs counts presses that landed on a dynamic body.
	Grabs int
}

// script feeds due actions to the pointer after every step.
type script struct {
	actions []Action
	next    int
	pointer *world.Pointer
	logger  *log.Logger
	grabs   int
}

func (sc *script) apply(now float64) {
	for sc.next < len(sc.actions) && sc.actions[sc.next].At <= now+1e-9 {
		a := sc.actions[sc.next]
		sc.next++

		at := cp.Vector{X: a.X, Y: a.Y}
		switch a.Do {
		case ActionPress:
			b, ok := sc.pointer.Press(at)
			if !ok {
				sc.logger.Debug("press missed", "x", a.X, "y", a.Y, "t", now)
				continue
			}
			sc.grabs++
			sc.logger.Debug("grabbed", "body", b.Label, "t", now)
		case ActionMove:
			sc.pointer.Move(at)
		case ActionRelease:
			sc.pointer.Release()
		}
	}
}

func (sc *script) OnStep(f sim.Frame, w *world.World) { sc.apply(f.Time) }

// RunScenario builds the scenario's scene and runs it headless with the
// standard metrics while replaying its actions.
func RunScenario(ctx context.Context, reg *demo.Registry, scenario *Scenario, base *config.Config, logger *log.Logger) (*ScenarioResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("scenario", scenario.Name)

	cfg := scenario.Apply(base)
	s, err := reg.Build(cfg.Scene, cfg, logger)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Standard() {
		s.Runner.AddMetric(m)
	}

	actions := append([]Action(nil), scenario.Actions...)
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].At < actions[j].At })
	sc := &script{actions: actions, pointer: s.Pointer, logger: logger}
	sc.apply(0)
	s.Runner.AddObserver(sc)

	result, err := s.Runner.RunFor(ctx, cfg.Duration)
	if err != nil {
		return nil, err
	}
	logger.Info("scenario complete", "steps", result.Steps, "grabs", sc.grabs)
	return &ScenarioResult{Result: result, Session: s, Grabs: sc.grabs}, nil
}
