package sim

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plinko/internal/world"
)

// Runner advances a World at a fixed timestep. Collision handlers run on the
// stepping goroutine right after each step.
type Runner struct {
	world     *world.World
	cfg       Config
	logger    *log.Logger
	metrics   []Metric
	observers []Observer

	started int
	ended   int
	last    Frame

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stop    sync.Once
	stopped bool
}

func NewRunner(w *world.World, cfg Config, logger *log.Logger) (*Runner, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Runner{
		world:     w,
		cfg:       cfg,
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	w.On(world.EventCollisionStart, func(ev world.CollisionEvent) { r.started += len(ev.Pairs) })
	w.On(world.EventCollisionEnd, func(ev world.CollisionEvent) { r.ended += len(ev.Pairs) })
	return r, nil
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) World() *world.World { return r.world }
func (r *Runner) Config() Config      { return r.cfg }
func (r *Runner) Last() Frame         { return r.last }

// Step advances the world once and feeds the resulting frame to metrics and
// observers.
func (r *Runner) Step() Frame {
	r.started, r.ended = 0, 0
	r.world.Step(r.cfg.Dt)

	f := Frame{
		Step:          r.world.Steps(),
		Time:          r.world.Time(),
		KineticEnergy: r.world.KineticEnergy(),
		Started:       r.started,
		Ended:         r.ended,
	}
	for _, m := range r.metrics {
		m.Observe(f, r.world)
	}
	for _, obs := range r.observers {
		obs.OnStep(f, r.world)
	}
	if f.Started > 0 || f.Ended > 0 {
		r.logger.Debug("contacts", "step", f.Step, "started", f.Started, "ended", f.Ended)
	}
	r.last = f
	return f
}

// RunFor steps the world as fast as possible for duration seconds of
// simulated time and collects every frame.
func (r *Runner) RunFor(ctx context.Context, duration float64) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, duration)
	}

	steps := int(math.Round(duration / r.cfg.Dt))
	result := &Result{
		Frames:  make([]Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Info("run started", "steps", steps, "dt", r.cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}
		result.Frames = append(result.Frames, r.Step())
		result.Steps++
	}
	r.collect(result)
	r.logger.Info("run finished", "steps", result.Steps, "time", r.world.Time())
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// Run steps the world on a wall-clock ticker until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Step()
		}
	}
}

func (r *Runner) interval() time.Duration {
	rate := r.cfg.FPS
	if rate <= 0 {
		rate = 1 / r.cfg.Dt
	}
	return time.Duration(float64(time.Second) / rate)
}

// Start runs the loop in the background. A stopped runner cannot be
// restarted.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.done != nil {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	done := r.done

	r.logger.Info("loop started", "fps", r.cfg.FPS)
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once and before Start.
func (r *Runner) Stop() {
	r.stop.Do(func() {
		r.mu.Lock()
		r.stopped = true
		cancel, done := r.cancel, r.done
		r.mu.Unlock()

		if cancel == nil {
			return
		}
		cancel()
		<-done
		r.logger.Info("loop stopped", "steps", r.world.Steps())
	})
}

// Running reports whether the background loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done != nil && !r.stopped
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.FPS < 0 {
		return fmt.Errorf("%w: fps must not be negative, got %f", ErrInvalidConfig, cfg.FPS)
	}
	return nil
}
