package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ringlab/ringsim/internal/analysis"
	"github.com/ringlab/ringsim/internal/config"
	"github.com/ringlab/ringsim/internal/field"
	"github.com/ringlab/ringsim/internal/integrators"
	"github.com/ringlab/ringsim/internal/metrics"
	"github.com/ringlab/ringsim/internal/sim"
	"github.com/ringlab/ringsim/internal/storage"
	"github.com/ringlab/ringsim/internal/sweep"
	"github.com/ringlab/ringsim/internal/viz"
)

var (
	dataDir    string
	coulomb    float64
	ringCharge float64
	radius     float64
	charge     float64
	mass       float64
	dt         float64
	duration   float64
	x0         float64
	v0         float64
	stepper    string
	configFile string
	preset     string
	frameRate  int
	dtList     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ringsim",
		Short: "charged-ring axial motion lab: exact vs linearized force law",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ringsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate both models and save the run",
		RunE:  runSimulation,
	}
	addPhysicsFlags(runCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "integrate both models and plot them side by side",
		RunE:  compareModels,
	}
	addPhysicsFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "x-v phase portrait of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run trajectories as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "step-size study: energy drift and divergence per dt",
		RunE:  runSweep,
	}
	addPhysicsFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&dtList, "dts", "0.01,0.005,0.001,0.0005", "comma-separated dt grid")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view of both models",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		exportCmd, exportCSVCmd, sweepCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&coulomb, "k", config.DefaultCoulomb, "Coulomb constant")
	cmd.Flags().Float64Var(&ringCharge, "ring-charge", config.DefaultRingQ, "total ring charge Q")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "ring radius a")
	cmd.Flags().Float64Var(&charge, "charge", config.DefaultCharge, "test charge q")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "test-charge mass m")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "total duration")
	cmd.Flags().Float64Var(&x0, "x0", config.DefaultX0, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")
	cmd.Flags().StringVar(&stepper, "stepper", "euler-cromer", "stepper (euler-cromer, euler)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "apply a named preset")
}

// resolveConfig merges preset, config file, and flags. Precedence, lowest to
// highest: defaults, preset, config file, explicitly changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	apply := func(flag string, dst *float64, val float64) {
		if cmd.Flags().Changed(flag) {
			*dst = val
		}
	}
	apply("k", &cfg.Physical.Coulomb, coulomb)
	apply("ring-charge", &cfg.Physical.RingCharge, ringCharge)
	apply("radius", &cfg.Physical.Radius, radius)
	apply("charge", &cfg.Physical.Charge, charge)
	apply("mass", &cfg.Physical.Mass, mass)
	apply("dt", &cfg.Dt, dt)
	apply("time", &cfg.Duration, duration)
	apply("x0", &cfg.Initial.X0, x0)
	apply("v0", &cfg.Initial.V0, v0)
	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepper
	}

	return cfg, nil
}

func stepperFor(name string) (sim.Stepper, error) {
	switch name {
	case "euler-cromer", "":
		return integrators.NewEulerCromer(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
}

// buildSimulator assembles a simulator plus its standard metrics from a
// resolved configuration.
func buildSimulator(cfg *config.Config) (*sim.Simulator, sim.Config, field.Constants, error) {
	consts := cfg.Constants()
	if err := consts.Validate(); err != nil {
		return nil, sim.Config{}, consts, err
	}

	step, err := stepperFor(cfg.Stepper)
	if err != nil {
		return nil, sim.Config{}, consts, err
	}

	exact := field.NewExactRing(consts)
	approx := field.NewLinearRing(consts)

	s := sim.New(step, exact, approx)
	s.AddMetric(metrics.NewEnergyDrift(exact))
	s.AddMetric(metrics.NewStability(10 * consts.Radius))
	s.AddMetric(metrics.NewPeakExcursion())

	return s, cfg.SimConfig(), consts, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, simCfg, consts, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("integrating: c=%.4g, a=%.4g, dt=%g, T=%g\n",
		consts.Coupling(), consts.Radius, simCfg.Dt, simCfg.Duration)
	start := time.Now()

	result, err := s.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Stepper, simCfg, consts, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.Exact.Len())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func compareModels(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, simCfg, consts, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	result, err := s.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	graph := asciigraph.PlotMany(
		[][]float64{result.Exact.Pos, result.Approx.Pos},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("position vs time (exact, approx)"),
	)
	fmt.Println(graph)
	fmt.Println()

	div := metrics.Divergence(result.Exact, result.Approx)
	fmt.Printf("divergence: max=%.6g rms=%.6g final=%.6g\n", div.Max, div.RMS, div.Final)

	if consts.Coupling() < 0 {
		fmt.Printf("analytic small-oscillation frequency: %.4f hz\n",
			analysis.NaturalFrequency(consts.Coupling(), consts.Radius))
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPPER\tDT\tDURATION\tC\tA\tX0")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%.4g\t%g\t%g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stepper,
			run.Dt,
			run.Duration,
			run.Coupling,
			run.Radius,
			run.X0,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	exact, approx, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", exact.Len())

	pos := asciigraph.PlotMany(
		[][]float64{exact.Pos, approx.Pos},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position (exact, approx)"),
	)
	fmt.Println(pos)
	fmt.Println()

	vel := asciigraph.PlotMany(
		[][]float64{exact.Vel, approx.Vel},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity (exact, approx)"),
	)
	fmt.Println(vel)

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	exact, _, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	fmt.Println("phase portrait (x horizontal, v vertical, S = start):")
	fmt.Println()
	fmt.Print(analysis.PhaseToASCII(exact.Pos, exact.Vel, 70, 24))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	exact, _, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(exact.Pos)
	plotData := spectrumView(ps)
	if len(plotData) == 0 {
		fmt.Println("run too short for frequency analysis")
		return nil
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (exact x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(exact.Pos, meta.Dt)
	fmt.Printf("dominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f s\n", 1.0/freq)
	}
	if meta.Coupling < 0 {
		fmt.Printf("analytic small-oscillation frequency: %.4f hz\n",
			analysis.NaturalFrequency(meta.Coupling, meta.Radius))
	}

	return nil
}

// spectrumView trims a spectrum to its low-frequency quarter for plotting.
// Short spectra are returned whole so the plot never sees an empty series.
func spectrumView(ps []float64) []float64 {
	if len(ps) >= 8 {
		return ps[:len(ps)/4]
	}
	return ps
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filepath.Join(dataDir, args[0], "trajectory.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	consts := cfg.Constants()
	if err := consts.Validate(); err != nil {
		return err
	}
	step, err := stepperFor(cfg.Stepper)
	if err != nil {
		return err
	}

	var dts []float64
	for _, part := range strings.Split(dtList, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("bad dt %q: %w", part, err)
		}
		dts = append(dts, v)
	}

	runner := sweep.New(step, consts, cfg.SimConfig())
	points, err := runner.Run(context.Background(), dts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tENERGY DRIFT\tDIVERGENCE MAX\tPEAK |X|")
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3e\t%.4g\n",
			p.Dt, p.Steps, p.EnergyDrift, p.DivergenceMax, p.PeakExcursion)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	consts := cfg.Constants()
	if err := consts.Validate(); err != nil {
		return err
	}
	step, err := stepperFor(cfg.Stepper)
	if err != nil {
		return err
	}

	exact := field.NewExactRing(consts)
	approx := field.NewLinearRing(consts)

	return viz.Run(step, exact, approx, cfg.SimConfig(), consts.Radius, frameRate)
}
