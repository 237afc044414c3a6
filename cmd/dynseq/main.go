package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/experiment"
	"github.com/san-kum/dynseq/internal/export"
	"github.com/san-kum/dynseq/internal/sim"
	"github.com/san-kum/dynseq/internal/tui"
	"github.com/san-kum/dynseq/internal/viz"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = log.New(io.Discard, "dynseq: ", log.LstdFlags)

	flags runFlags

	csvOut    bool
	jsonOut   bool
	every     int
	plotWidth int
	plotRows  int
	frameRate int
	reference string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dynseq",
		Short: "step through dynamical systems one sample at a time",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetOutput(os.Stderr)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log config resolution and run summaries to stderr")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and print every sample",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	flags.register(runCmd)
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write samples as CSV")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the run as JSON")
	runCmd.MarkFlagsMutuallyExclusive("csv", "json")
	runCmd.Flags().IntVar(&every, "every", 1, "print every n-th sample")

	plotCmd := &cobra.Command{
		Use:   "plot [model]",
		Short: "run a simulation and chart each state component",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSimulation,
	}
	flags.register(plotCmd)
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&plotRows, "height", 10, "chart height")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "step through a simulation interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	flags.register(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [stepper1] [stepper2] ...",
		Short: "compare steppers on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSteppers,
	}
	flags.register(compareCmd)
	compareCmd.Flags().StringVar(&reference, "reference", "rk4", "stepper the others are measured against")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tSTATE\tPARAMS")
			for _, name := range reg.ListModels() {
				m, _ := reg.GetModel(name)
				params := m.Params()
				parts := make([]string, 0, len(params))
				for _, k := range params.Keys() {
					parts = append(parts, fmt.Sprintf("%s=%g", k, params[k]))
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(m.DefaultState(nil)), strings.Join(parts, " "))
			}
			return w.Flush()
		},
	}

	steppersCmd := &cobra.Command{
		Use:   "steppers",
		Short: "list available steppers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListSteppers() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Fprintf(out, "  %-12s %s, span %s, step %s\n", p, cfg.Stepper, cfg.Span, cfg.Step)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, liveCmd, compareCmd, modelsCmd, steppersCmd, presetsCmd)
	addAnalysisCommands(rootCmd)
	return rootCmd
}

// signalContext is canceled on interrupt so long runs stop between samples.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func execute(cmd *cobra.Command, model string) (*experiment.Experiment, *sim.Result, error) {
	cfg, err := flags.resolve(cmd, model, logger)
	if err != nil {
		return nil, nil, err
	}

	exp, err := experiment.New(experiment.NewRegistry(), cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return exp, result, err
	}
	logger.Printf("%s: %d samples, %d steps, elapsed %s, wall %v",
		model, len(result.States), result.Steps, result.Elapsed, time.Since(start))
	return exp, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, result, err := execute(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return export.WriteJSON(out, export.NewRun(exp.Config(), exp.Spec(), result))
	}
	if csvOut {
		return writeCSV(out, result)
	}
	if err := writeTable(out, result, max(every, 1)); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nfinal: t=%s x=%v\n", result.Elapsed, formatState(result.Final))
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range sortedMetricNames(result.Metrics) {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func writeTable(out io.Writer, result *sim.Result, every int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if len(result.States) > 0 {
		header := []string{"TIME"}
		for i := range result.States[0] {
			header = append(header, fmt.Sprintf("X%d", i))
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
	}
	for i := 0; i < len(result.States); i += every {
		fmt.Fprintf(w, "%s\t%s\n", result.Times[i], strings.Join(formatState(result.States[i]), "\t"))
	}
	return w.Flush()
}

func writeCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if len(result.States) > 0 {
		header := []string{"time"}
		for i := range result.States[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for i, x := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i].Seconds(), 'f', 6, 64)}
		row = append(row, formatState(x)...)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func plotSimulation(cmd *cobra.Command, args []string) error {
	exp, result, err := execute(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	spec := exp.Spec()
	fmt.Fprintln(out, viz.Title.Render(spec.Name))
	fmt.Fprintf(out, "span: %s  step: %s  samples: %d\n\n", spec.Span, spec.Step, len(result.States))

	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}
	fmt.Fprintln(out, viz.PlotComponents(spec.Name, result.States, plotWidth, plotRows))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := flags.resolve(cmd, args[0], logger)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()

	build := func() (*dynamo.VectorGenerator, error) {
		spec, err := reg.Build(cfg)
		if err != nil {
			return nil, err
		}
		return sim.New().Start(spec)
	}
	return tui.Run(args[0], build, frameRate)
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	model := args[0]
	reg := experiment.NewRegistry()

	cfg, err := flags.resolve(cmd, model, logger)
	if err != nil {
		return err
	}
	spec, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	names := append([]string{reference}, args[1:]...)
	steppers := make(map[string]dynamo.VectorStepper, len(names))
	for _, name := range names {
		st, err := reg.GetStepper(name)
		if err != nil {
			return err
		}
		steppers[name] = st
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := sim.Compare(ctx, spec, steppers, reference)
	if err != nil {
		return err
	}
	logger.Printf("compared %d steppers in %v", len(results), time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing steppers for %s (step=%s, span=%s, reference=%s)\n\n", model, spec.Step, spec.Span, reference)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tSTEPS\tFINAL_X0\tDISTANCE")
	for _, c := range results {
		x0 := 0.0
		if len(c.Final) > 0 {
			x0 = c.Final[0]
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.3e\n", c.Stepper, c.Steps, x0, c.Distance)
	}
	return w.Flush()
}

func formatState(x dynamo.State) []string {
	out := make([]string, len(x))
	for i, v := range x {
		out[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return out
}

func sortedMetricNames(m map[string]float64) []string {
	return dynamo.Params(m).Keys()
}
