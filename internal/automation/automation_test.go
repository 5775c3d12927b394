package automation

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plinko/internal/config"
	"github.com/san-kum/plinko/internal/demo"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.Duration = 0.5
	return cfg
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fling.yaml")
	src := `name: fling
scene: compound
duration: 1
actions:
  - {at: 0, do: press, x: 200, y: 200}
  - {at: 0.2, do: move, x: 320, y: 180}
  - {at: 0.5, do: release}
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "fling" || sc.Scene != "compound" || len(sc.Actions) != 3 {
		t.Errorf("unexpected scenario: %+v", sc)
	}
	if sc.Actions[1].X != 320 || sc.Actions[2].Do != ActionRelease {
		t.Errorf("actions not decoded: %+v", sc.Actions)
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
	}{
		{"unknown action", Scenario{Actions: []Action{{Do: "click"}}}},
		{"negative time", Scenario{Actions: []Action{{At: -1, Do: ActionPress}}}},
		{"negative duration", Scenario{Duration: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sc.Validate(); !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("expected ErrInvalidScenario, got %v", err)
			}
		})
	}
}

func TestScenarioApply(t *testing.T) {
	base := baseConfig()
	cfg := (&Scenario{Scene: "scatter", Duration: 3}).Apply(base)
	if cfg.Scene != "scatter" || cfg.Duration != 3 || cfg.Seed != 7 {
		t.Errorf("apply = %s/%v/%d", cfg.Scene, cfg.Duration, cfg.Seed)
	}
	if base.Scene != config.DefaultScene {
		t.Error("Apply modified the base config")
	}
}

func TestRunScenarioDragsCross(t *testing.T) {
	sc := &Scenario{
		Name:  "drag",
		Scene: "compound",
		Actions: []Action{
			{At: 0.3, Do: ActionRelease},
			{At: 0, Do: ActionPress, X: 200, Y: 200},
			{At: 0.1, Do: ActionMove, X: 300, Y: 200},
			{At: 0.2, Do: ActionPress, X: 700, Y: 100},
		},
	}

	res, err := RunScenario(context.Background(), demo.NewRegistry(), sc, baseConfig(), quiet())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Steps != 30 {
		t.Errorf("steps = %d, want 30", res.Steps)
	}
	if res.Grabs != 1 {
		t.Errorf("grabs = %d, want 1 (the empty press must miss)", res.Grabs)
	}
	if res.Session.Pointer.Dragging() {
		t.Error("pointer still dragging after release")
	}
	if _, ok := res.Metrics["kinetic_energy"]; !ok {
		t.Errorf("standard metrics missing: %v", res.Metrics)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{Scene: "plinko", ParamName: "gravity", ParamMin: 0, ParamMax: 1000, NumSteps: 3}

	results, err := RunSweep(context.Background(), demo.NewRegistry(), sweep, baseConfig(), quiet())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{0, 500, 1000} {
		if math.Abs(results[i].ParamValue-want) > 1e-9 {
			t.Errorf("result %d: param = %v, want %v", i, results[i].ParamValue, want)
		}
		if results[i].PeakEnergy < results[i].MeanEnergy {
			t.Errorf("result %d: peak %v below mean %v", i, results[i].PeakEnergy, results[i].MeanEnergy)
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	reg := demo.NewRegistry()

	_, err := RunSweep(context.Background(), reg, &ParameterSweep{ParamName: "wind", NumSteps: 2}, baseConfig(), quiet())
	if !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	_, err = RunSweep(context.Background(), reg, &ParameterSweep{ParamName: "gravity"}, baseConfig(), quiet())
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid for zero steps, got %v", err)
	}
}
