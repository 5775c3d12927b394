package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plinko/internal/world"
)

// Build populates a fresh world for one ensemble member.
type Build func(seed int64) (*world.World, error)

// Ensemble runs the same scene under consecutive seeds, each stepped on its
// own goroutine in its own world.
type Ensemble struct {
	build      Build
	cfg        Config
	newMetrics func() []Metric
	numRuns    int
	seedStart  int64
	logger     *log.Logger
}

func NewEnsemble(build Build, cfg Config, numRuns int, seedStart int64, logger *log.Logger) *Ensemble {
	return &Ensemble{build: build, cfg: cfg, numRuns: numRuns, seedStart: seedStart, logger: logger}
}

// WithMetrics sets the constructor for per-run metrics. Metrics are stateful,
// so each run gets its own set.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.newMetrics = fn
	return e
}

// Run builds every world first, one after another, then steps them in
// parallel. Building must stay serial: the engine's body constructors share
// an unsynchronized package counter.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	worlds := make([]*world.World, e.numRuns)
	for i := range worlds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w, err := e.build(e.seedStart + int64(i))
		if err != nil {
			return nil, err
		}
		worlds[i] = w
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			var logger *log.Logger
			if e.logger != nil {
				logger = e.logger.With("seed", e.seedStart+int64(idx))
			}
			r, err := NewRunner(worlds[idx], e.cfg, logger)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.RunFor(ctx, e.cfg.Duration)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
