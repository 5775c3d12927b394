package automation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plinko/internal/config"
	"github.com/san-kum/plinko/internal/demo"
	"github.com/san-kum/plinko/internal/metrics"
)

var ErrUnknownParam = errors.New("automation: unknown sweep parameter")

// Params are the config fields a sweep can vary.
var Params = map[string]func(*config.Config, float64){
	"gravity":                func(c *config.Config, v float64) { c.Gravity = v },
	"ball.restitution":       func(c *config.Config, v float64) { c.Ball.Restitution = v },
	"ball.radius":            func(c *config.Config, v float64) { c.Ball.Radius = v },
	"pegs.radius":            func(c *config.Config, v float64) { c.Pegs.Radius = v },
	"pegs.gap":               func(c *config.Config, v float64) { c.Pegs.Gap = v },
	"compound.pin_stiffness": func(c *config.Config, v float64) { c.Compound.PinStiffness = v },
	"pointer.stiffness":      func(c *config.Config, v float64) { c.Pointer.Stiffness = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(Params))
	for name := range Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs a scene once per evenly spaced value of one config
// parameter, keeping the seed fixed.
type ParameterSweep struct {
	Scene     string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	MeanEnergy float64
	PeakEnergy float64
	Contacts   int
	Settled    float64
}

func RunSweep(ctx context.Context, reg *demo.Registry, sweep *ParameterSweep, base *config.Config, logger *log.Logger) ([]SweepResult, error) {
	set, ok := Params[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownParam, sweep.ParamName, ParamNames())
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: %d sweep steps", config.ErrInvalid, sweep.NumSteps)
	}
	if logger == nil {
		logger = log.Default()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *base
		if sweep.Scene != "" {
			cfg.Scene = sweep.Scene
		}
		set(&cfg, paramVal)

		s, err := reg.Build(cfg.Scene, &cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("%s=%v: %w", sweep.ParamName, paramVal, err)
		}
		energy := metrics.NewKineticEnergy()
		contacts := metrics.NewContacts()
		settled := metrics.NewSettled(metrics.DefaultSettleSpeed)
		s.Runner.AddMetric(energy)
		s.Runner.AddMetric(contacts)
		s.Runner.AddMetric(settled)

		if _, err := s.Runner.RunFor(ctx, cfg.Duration); err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			MeanEnergy: energy.Value(),
			PeakEnergy: energy.Peak(),
			Contacts:   int(contacts.Value()),
			Settled:    settled.Value(),
		})
		logger.Info("sweep step", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
