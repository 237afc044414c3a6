package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/dynseq/internal/experiment"
	"github.com/san-kum/dynseq/internal/optim"
	"github.com/spf13/cobra"
)

var (
	tuneMetric string
	tuneGrid   []string
)

func newTuneCmd() *cobra.Command {
	tuneCmd := &cobra.Command{
		Use:   "tune [model]",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneModel,
	}
	flags.register(tuneCmd)
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "energy_drift", "metric to minimize")
	tuneCmd.Flags().StringArrayVar(&tuneGrid, "grid", nil, "param=v1,v2,... values to try (repeatable)")
	_ = tuneCmd.MarkFlagRequired("grid")
	return tuneCmd
}

func tuneModel(cmd *cobra.Command, args []string) error {
	cfg, err := flags.resolve(cmd, args[0], logger)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(tuneGrid)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch(names, ranges)
	start := time.Now()
	best, value, err := g.Search(ctx, experiment.NewRegistry(), cfg, tuneMetric)
	if err != nil {
		return err
	}
	logger.Printf("%s: %d runs in %v", cfg.Model, g.Size(), time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "best %s: %.6f\n", tuneMetric, value)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %g\n", name, best[name])
	}
	return nil
}

// parseGrid reads "name=v1,v2" entries into parallel name and value lists.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("grid %q: want name=v1,v2", entry)
		}
		var values []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}
