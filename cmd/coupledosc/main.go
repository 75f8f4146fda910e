package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/san-kum/coupledosc/internal/analysis"
	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/experiment"
	"github.com/san-kum/coupledosc/internal/export"
	"github.com/san-kum/coupledosc/internal/observability"
	"github.com/san-kum/coupledosc/internal/render"
	"github.com/san-kum/coupledosc/internal/scene"
	"github.com/san-kum/coupledosc/internal/sim"
	"github.com/san-kum/coupledosc/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logLevel   string
	// render
	outPath string
	svgPath string
	fps     int
	// preview
	theme string
	// plot
	plotWidth  int
	plotHeight int
	// sample
	format string

	logger = zerolog.Nop()

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0099DD"))
)

// main registers the commands and runs the root command, which renders the
// animation when no subcommand is given. It exits with status 1 on error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "coupledosc",
		Short:         "coupled two-mass spring oscillator, simulated and animated",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := observability.InitLogger("coupledosc", logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logger = l
			return nil
		},
		RunE: renderAnimation,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml, toml or hcl)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addRenderFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "simulate and write the animated plot",
		Args:  cobra.NoArgs,
		RunE:  renderAnimation,
	}
	addRenderFlags(renderCmd)

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "play the animation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	previewCmd.Flags().StringVar(&theme, "theme", "dark", fmt.Sprintf("color theme %v", viz.ThemeNames()))

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "print a static chart of both positions",
		Args:  cobra.NoArgs,
		RunE:  plotPositions,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 100, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 16, "chart height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "normal modes, beat period and spectrum",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "write the sampled time series to stdout",
		Args:  cobra.NoArgs,
		RunE:  writeSamples,
	}
	sampleCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the adaptive and fixed-step integrators",
		Args:  cobra.NoArgs,
		RunE:  compareIntegrators,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tX1\tV1\tX2\tV2\tK1\tK2")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				s := cfg.InitState
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\n", name, s.X1, s.V1, s.X2, s.V2, cfg.Physics.K1, cfg.Physics.K2)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(renderCmd, previewCmd, plotCmd, analyzeCmd, sampleCmd, compareCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output GIF path (default from config)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write the finished plot as SVG")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
}

// loadConfig applies the preset, then the config file, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		cfg.Render.Output = outPath
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.Render.FPS = fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(ctx context.Context, cfg *config.Config) (*experiment.Experiment, *sim.Result, error) {
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("steps", result.StepsTaken).
		Int("rejected", result.Rejected).
		Float64("energy_drift", result.EnergyDrift).
		Msg("simulation complete")
	return exp, result, nil
}

func renderAnimation(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, result, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}

	sc, err := scene.New(experiment.Positions(cfg, result.Series), cfg.Render)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := render.New(sc, logger).WriteFile(ctx, cfg.Render.Output); err != nil {
		return err
	}

	if svgPath != "" {
		if err := writeSVG(svgPath, sc); err != nil {
			return err
		}
		logger.Info().Str("path", svgPath).Msg("plot written")
	}

	fmt.Println(titleStyle.Render("coupled oscillator"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "output\t%s\n", cfg.Render.Output)
	fmt.Fprintf(w, "frames\t%d @ %d fps (+%.1fs hold)\n", sc.Timeline.Frames(), cfg.Render.FPS, cfg.Render.Hold)
	fmt.Fprintf(w, "render time\t%v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(w, "steps\t%d accepted, %d rejected\n", result.StepsTaken, result.Rejected)
	fmt.Fprintf(w, "energy drift\t%.3e\n", result.EnergyDrift)
	return w.Flush()
}

func writeSVG(path string, sc *scene.Scene) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return export.WriteSVG(f, sc)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, result, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	m := viz.NewPreview(experiment.Positions(cfg, result.Series), cfg.Render, viz.GetTheme(theme), viz.DefaultCols, viz.DefaultRows)
	return viz.RunPreview(m)
}

func plotPositions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, result, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotASCII(experiment.Positions(cfg, result.Series), cfg.Render, plotWidth, plotHeight))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, result, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	series := result.Series
	dt := series.T[1] - series.T[0]
	modes := analysis.NormalModes(exp.Model())
	in, anti := analysis.ModeAmplitudes(cfg.InitState.X1, cfg.InitState.X2)

	fmt.Println(titleStyle.Render("normal modes"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "in-phase\tω=%.4f\tf=%.4f\tamplitude %.3f\n", modes.OmegaIn, modes.FreqIn, in)
	fmt.Fprintf(w, "anti-phase\tω=%.4f\tf=%.4f\tamplitude %.3f\n", modes.OmegaAnti, modes.FreqAnti, anti)
	fmt.Fprintf(w, "beat period\t%.4f\t\t\n", modes.BeatPeriod)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("spectrum"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACE\tPEAK\tFREQ\tMAGNITUDE")
	for j, tr := range experiment.Positions(cfg, series) {
		for k, p := range analysis.DominantFrequencies(tr.Y, dt, 3) {
			fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\n", tr.Name, k+1, p.Freq, p.Magnitude)
		}
		if j == 0 {
			fmt.Fprintf(w, "%s\tbeat\t%.4f\t\n", tr.Name, analysis.Envelope(tr.Y, dt))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	freqs, mags := analysis.Spectrum(series.Column(experiment.X1), dt)
	cut := len(mags)
	for i, f := range freqs {
		if f > 2*math.Max(modes.FreqAnti, modes.FreqIn) {
			cut = i
			break
		}
	}
	if cut > 1 {
		fmt.Println()
		fmt.Println(viz.PlotSpectrum(mags[:cut], 80, 10, fmt.Sprintf("|X1(f)|, 0 to %.2f", freqs[cut-1])))
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("metrics"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range experiment.NewRegistry().ListMetrics() {
		fmt.Fprintf(w, "%s\t%.6g\n", name, result.Metrics[name])
	}
	fmt.Fprintf(w, "steps\t%d (%d rejected, %d evaluations)\n", result.StepsTaken, result.Rejected, result.Evaluations)
	return w.Flush()
}

func writeSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, result, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, result.Series)
	case "json":
		return export.WriteJSON(os.Stdout, cfg, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := []string{"rk45", "rk4"}
	exps := make([]*experiment.Experiment, len(names))
	for i, name := range names {
		c := *cfg
		c.Integrator = name
		exps[i] = experiment.New(&c, logger)
		if err := exps[i].Setup(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	start := time.Now()
	results, err := experiment.RunAll(cmd.Context(), exps...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tREJECTED\tEVALS\tENERGY DRIFT")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.3e\n", names[i], r.StepsTaken, r.Rejected, r.Evaluations, r.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	maxDiff := 0.0
	a, b := results[0].Series, results[1].Series
	for i := range a.States {
		for _, j := range []int{experiment.X1, experiment.X2} {
			maxDiff = math.Max(maxDiff, math.Abs(a.States[i][j]-b.States[i][j]))
		}
	}
	fmt.Printf("\nmax position difference: %.3e (wall time %v)\n", maxDiff, elapsed.Round(time.Millisecond))
	return nil
}
