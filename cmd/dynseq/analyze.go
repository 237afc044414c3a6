package main

import (
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dynseq/internal/analysis"
	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/experiment"
	"github.com/san-kum/dynseq/internal/export"
	"github.com/san-kum/dynseq/internal/viz"
	"github.com/spf13/cobra"
)

var (
	component   int
	lyapunov    bool
	xAxis       int
	yAxis       int
	poincare    bool
	crossAt     float64
	svgOut      bool
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int
	sweepSkip   string
	sweepRecord string
)

func addAnalysisCommands(rootCmd *cobra.Command) {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [model]",
		Short: "frequency and chaos analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeModel,
	}
	flags.register(analyzeCmd)
	analyzeCmd.Flags().IntVar(&component, "component", 0, "state index to analyze")
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "estimate the largest Lyapunov exponent")

	phaseCmd := &cobra.Command{
		Use:   "phase [model]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	flags.register(phaseCmd)
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().BoolVar(&poincare, "poincare", false, "plot upward crossings of the x-axis component only")
	phaseCmd.Flags().Float64Var(&crossAt, "cross", 0, "crossing threshold for --poincare")
	phaseCmd.Flags().BoolVar(&svgOut, "svg", false, "write the portrait as SVG")

	bifurcateCmd := &cobra.Command{
		Use:   "bifurcate [model]",
		Short: "sweep a parameter and plot the maxima of a component",
		Args:  cobra.ExactArgs(1),
		RunE:  bifurcate,
	}
	flags.register(bifurcateCmd)
	bifurcateCmd.Flags().StringVar(&sweepParam, "sweep", "", "parameter to sweep")
	bifurcateCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first parameter value")
	bifurcateCmd.Flags().Float64Var(&sweepTo, "to", 1, "last parameter value")
	bifurcateCmd.Flags().IntVar(&sweepSteps, "steps", 60, "number of parameter values")
	bifurcateCmd.Flags().IntVar(&component, "component", 0, "state index to record")
	bifurcateCmd.Flags().StringVar(&sweepSkip, "transient", "20s", "time skipped before recording")
	bifurcateCmd.Flags().StringVar(&sweepRecord, "record", "20s", "time recorded per value")
	_ = bifurcateCmd.MarkFlagRequired("sweep")

	rootCmd.AddCommand(analyzeCmd, phaseCmd, bifurcateCmd, newTuneCmd(), newScenarioCmd(), newMonteCarloCmd())
}

func analyzeModel(cmd *cobra.Command, args []string) error {
	exp, result, err := execute(cmd, args[0])
	if err != nil {
		return err
	}
	spec := exp.Spec()
	out := cmd.OutOrStdout()

	if len(result.States) == 0 || component >= len(result.States[0]) {
		return fmt.Errorf("no data for component %d", component)
	}

	fmt.Fprintf(out, "frequency analysis: %s\n\n", spec.Name)
	data := viz.Component(result.States, component)
	ps := analysis.PowerSpectrum(data)
	if len(ps) > 4 {
		fmt.Fprintln(out, asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", viz.Label(spec.Name, component))),
		))
		fmt.Fprintln(out)
	}

	freq := analysis.DominantFrequency(data, spec.Step)
	fmt.Fprintf(out, "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.3f s\n", 1.0/freq)
	}

	if lyapunov {
		lambda, err := analysis.LyapunovExponent(spec.Model, spec.Stepper, spec.X0, spec.Params, analysis.LyapunovOptions{
			Step:     spec.Step,
			Segments: max(int(spec.Span/(100*spec.Step)), 1),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "lyapunov exponent: %.4f\n", lambda)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	cfg, err := flags.resolve(cmd, args[0], logger)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	spec, err := reg.Build(cfg)
	if err != nil {
		return err
	}
	g, err := dynamo.NewVectorGenerator(spec.Model, spec.Stepper, spec.X0, spec.Params, spec.Span, spec.Step)
	if err != nil {
		return err
	}

	var portrait *analysis.Portrait
	if poincare {
		portrait, err = analysis.PoincareSection(g.Seq(), xAxis, crossAt, xAxis, yAxis)
	} else {
		portrait, err = analysis.PhasePortrait(g.Seq(), xAxis, yAxis)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if svgOut {
		style := export.Trajectory
		if poincare {
			style = export.Scatter
		}
		return export.PortraitSVG(out, portrait, 640, 480, style, "#00ff00")
	}
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s: %s vs %s", spec.Name, viz.Label(spec.Name, yAxis), viz.Label(spec.Name, xAxis))))
	if len(portrait.Points) == 0 {
		fmt.Fprintln(out, "no points")
		return nil
	}
	fmt.Fprint(out, portrait.Render(60, 20))
	fmt.Fprintf(out, "%d points\n", len(portrait.Points))
	return nil
}

func bifurcate(cmd *cobra.Command, args []string) error {
	cfg, err := flags.resolve(cmd, args[0], logger)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	spec, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	model, err := reg.GetModel(cfg.Model)
	if err != nil {
		return err
	}
	if err := model.Validate(spec.Params.Merge(dynamo.Params{sweepParam: sweepFrom})); err != nil {
		return err
	}

	transient, err := time.ParseDuration(sweepSkip)
	if err != nil {
		return fmt.Errorf("transient: %w", err)
	}
	record, err := time.ParseDuration(sweepRecord)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	newStepper := func() dynamo.VectorStepper {
		st, _ := reg.GetStepper(cfg.Stepper)
		return st
	}
	points, err := analysis.Bifurcation(spec.Model, newStepper, spec.X0, spec.Params, analysis.Sweep{
		Param:      sweepParam,
		Min:        sweepFrom,
		Max:        sweepTo,
		Steps:      sweepSteps,
		StateIndex: component,
		Step:       spec.Step,
		Transient:  transient,
		Record:     record,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s: maxima of %s over %s in [%g, %g]",
		spec.Name, viz.Label(spec.Name, component), sweepParam, sweepFrom, sweepTo)))
	fmt.Fprint(out, analysis.RenderBifurcation(points, 60, 20))
	return nil
}
