package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/san-kum/dynseq/internal/automation"
	"github.com/san-kum/dynseq/internal/experiment"
	"github.com/spf13/cobra"
)

var (
	trials  int
	perturb float64
	seed    int64
	bound   float64
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
}

func newMonteCarloCmd() *cobra.Command {
	mcCmd := &cobra.Command{
		Use:   "montecarlo [model]",
		Short: "run trials from randomly perturbed initial states",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	flags.register(mcCmd)
	mcCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	mcCmd.Flags().Float64Var(&perturb, "perturb", 0.1, "largest change to each initial component")
	mcCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	mcCmd.Flags().Float64Var(&bound, "bound", 1e6, "largest final magnitude counted as stable")
	return mcCmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintln(out, sc.Name)
	}
	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), func(i int, step automation.ScenarioStep) {
		logger.Printf("step %d/%d: %s", i+1, len(sc.Steps), step.Label())
	})

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tSTEPPER\tSTEPS\tFINAL")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\n", r.Step.Label(), r.Step.Model, r.Step.Stepper, r.Result.Steps, formatState(r.Result.Final))
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := flags.resolve(cmd, args[0], logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	mc := &automation.MonteCarlo{Base: cfg, Perturbation: perturb, Trials: trials, Seed: seed, Bound: bound}
	results, err := mc.Run(ctx, experiment.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.Stats(results)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d trials, %d stable, %d unstable\n", cfg.Model, len(results), stable, unstable)
	return nil
}
