package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plinko/internal/analysis"
	"github.com/san-kum/plinko/internal/automation"
	"github.com/san-kum/plinko/internal/config"
	"github.com/san-kum/plinko/internal/demo"
	"github.com/san-kum/plinko/internal/export"
	"github.com/san-kum/plinko/internal/gui"
	"github.com/san-kum/plinko/internal/metrics"
	"github.com/san-kum/plinko/internal/sim"
	"github.com/san-kum/plinko/internal/storage"
	"github.com/san-kum/plinko/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	logLevel     string
	configFile   string
	preset       string
	seed         int64
	dt           float64
	duration     float64
	fps          float64
	numRuns      int
	svgOut       string
	svgSteps     int
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	settleEnergy float64

	logger   *log.Logger
	registry = demo.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plinko",
		Short: "rigid body scenes: pegboards, compound bodies and random piles",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plinko", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	rootCmd.PersistentFlags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	rootCmd.PersistentFlags().Float64Var(&fps, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and store its frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run in parallel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot as svg to this path")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and frames as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(args[0], os.Stdout)
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarize a run: peak, bounce frequency and settle time",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&settleEnergy, "settle", 1, "kinetic energy below which the run counts as settled")

	svgCmd := &cobra.Command{
		Use:   "svg [scene]",
		Short: "render a scene snapshot as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotSVG,
	}
	svgCmd.Flags().IntVar(&svgSteps, "steps", 0, "steps to simulate before the snapshot")
	svgCmd.Flags().StringVar(&svgOut, "out", "", "output path (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark stepping a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run a scene in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SCENE\tTITLE\tDESCRIPTION")
			for _, name := range registry.List() {
				s, _ := registry.Get(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Title, s.Description)
			}
			w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "replay scripted pointer input against a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "sweep one config parameter across a range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gravity", fmt.Sprintf("parameter to sweep %v", automation.ParamNames()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", config.DefaultGravity, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, analyzeCmd, svgCmd, benchCmd, liveCmd, guiCmd, scenesCmd, presetsCmd, scriptCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flags set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	sceneName := ""
	if len(args) > 0 {
		sceneName = args[0]
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if sceneName == "" {
		sceneName = cfg.Scene
	}
	if preset != "" {
		p, err := config.GetPreset(sceneName, preset)
		if err != nil {
			return nil, err
		}
		if configFile == "" {
			cfg = p
		} else {
			logger.Warn("config file given, preset ignored", "preset", preset)
		}
	}
	cfg.Scene = sceneName

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if cfg.Seed == 0 {
		// Pin the seed so stored runs can be replayed.
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func rebuilder(cfg *config.Config) func() (*sim.Session, error) {
	return func() (*sim.Session, error) {
		c := *cfg
		c.Seed = time.Now().UnixNano()
		return registry.Build(c.Scene, &c, logger)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if numRuns > 1 {
		return runEnsemble(ctx, st, cfg)
	}

	s, err := registry.Build(cfg.Scene, cfg, logger)
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard() {
		s.Runner.AddMetric(m)
	}

	fmt.Printf("running %s (seed %d)...\n", cfg.Scene, cfg.Seed)
	start := time.Now()
	result, err := s.Runner.RunFor(ctx, cfg.Duration)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Scene:    cfg.Scene,
		Title:    s.Title,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Bodies:   len(s.World.Bodies()),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	printMetrics(result.Metrics)
	return nil
}

func runEnsemble(ctx context.Context, st *storage.Store, cfg *config.Config) error {
	build := registry.WorldBuilder(cfg.Scene, cfg, logger)
	e := sim.NewEnsemble(build, cfg.SimConfig(), numRuns, cfg.Seed, logger).WithMetrics(metrics.Standard)

	fmt.Printf("running %d seeds of %s...\n", numRuns, cfg.Scene)
	results, err := e.Run(ctx)
	if err != nil {
		return err
	}

	title := cfg.Scene
	if s, err := registry.Get(cfg.Scene); err == nil {
		title = s.Title
	}
	for i, result := range results {
		runID, err := st.Save(storage.RunMetadata{
			Scene:    cfg.Scene,
			Title:    title,
			Seed:     cfg.Seed + int64(i),
			Dt:       cfg.Dt,
			Duration: cfg.Duration,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
		printMetrics(result.Metrics)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("metrics:")
	for name, val := range m {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSEED\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Seed,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	energy := (&sim.Result{Frames: frames}).Energies()

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))

	if svgOut != "" {
		svg := export.SeriesToSVG(energy, 800, 300, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("not enough data for analysis")
	}

	s := analysis.Summarize(frames, meta.Dt, settleEnergy)

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s (seed %d)\n\n", meta.Scene, meta.Seed)
	fmt.Printf("samples:        %d over %.2fs\n", s.Samples, s.Duration)
	fmt.Printf("mean energy:    %.2f\n", s.MeanEnergy)
	fmt.Printf("peak energy:    %.2f at %.2fs\n", s.PeakEnergy, s.PeakTime)
	fmt.Printf("contacts:       %d (%.2f/s)\n", s.Contacts, s.ContactRate)
	if s.DominantFrequency > 0 {
		fmt.Printf("dominant freq:  %.3f hz (period %.3fs)\n", s.DominantFrequency, 1/s.DominantFrequency)
	}
	if s.Settled {
		fmt.Printf("settled at:     %.2fs\n", s.SettleTime)
	} else {
		fmt.Println("settled at:     never")
	}
	return nil
}

func snapshotSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := registry.Build(cfg.Scene, cfg, logger)
	if err != nil {
		return err
	}
	for i := 0; i < svgSteps; i++ {
		s.Runner.Step()
	}

	svg := export.SceneToSVG(s.World, s.Render)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := registry.Build(cfg.Scene, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s\n\n", cfg.Scene)
	steps := int(cfg.Duration/cfg.Dt + 0.5)
	start := time.Now()
	for i := 0; i < steps; i++ {
		s.Runner.Step()
	}
	elapsed := time.Since(start)

	fmt.Printf("bodies:     %d\n", len(s.World.Bodies()))
	fmt.Printf("steps:      %d\n", steps)
	fmt.Printf("total:      %v\n", elapsed)
	if steps > 0 {
		fmt.Printf("per step:   %v\n", elapsed/time.Duration(steps))
		fmt.Printf("steps/sec:  %.0f\n", float64(steps)/elapsed.Seconds())
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	// The terminal is owned by the UI; keep log lines off it.
	logger.SetLevel(log.ErrorLevel)

	s, err := registry.Build(cfg.Scene, cfg, logger)
	if err != nil {
		return err
	}
	return viz.Run(s, rebuilder(cfg))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := registry.Build(cfg.Scene, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("opening window", "scene", cfg.Scene, "title", strings.ToLower(s.Title))
	gui.Run(s, rebuilder(cfg))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	var sceneArgs []string
	if sc.Scene != "" {
		sceneArgs = []string{sc.Scene}
	}
	cfg, err := resolveConfig(cmd, sceneArgs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s on %s...\n", sc.Name, sc.Apply(cfg).Scene)
	res, err := automation.RunScenario(ctx, registry, sc, cfg, logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	final := sc.Apply(cfg)
	runID, err := st.Save(storage.RunMetadata{
		Scene:    final.Scene,
		Title:    res.Session.Title,
		Seed:     final.Seed,
		Dt:       final.Dt,
		Duration: final.Duration,
		Bodies:   len(res.Session.World.Bodies()),
	}, res.Result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, grabs: %d\n", res.Steps, res.Grabs)
	printMetrics(res.Metrics)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Scene:     cfg.Scene,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(context.Background(), registry, sweep, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s on %s (seed %d, %.1fs each)\n\n", sweepParam, cfg.Scene, cfg.Seed, cfg.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN KE\tPEAK KE\tCONTACTS\tSETTLED\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.1f\t%.1f\t%d\t%.2f\n", r.ParamValue, r.MeanEnergy, r.PeakEnergy, r.Contacts, r.Settled)
	}
	return w.Flush()
}
