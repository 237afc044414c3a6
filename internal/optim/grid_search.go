// Package optim tunes model parameters by exhaustive search.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/experiment"
)

var ErrNoCandidate = errors.New("optim: no parameter combination completed")

// GridSearch runs one experiment per point of the cartesian product of
// ranges and keeps the point that minimizes a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size is the number of experiments Search will run.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates every grid point on top of base. Points whose run fails,
// for instance by leaving a parameter's bounds, are skipped; cancellation
// of ctx stops the search.
func (g *GridSearch) Search(ctx context.Context, reg *experiment.Registry, base *config.Config, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(point map[string]float64) error {
		cfg := base.Clone()
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(point))
		}
		for k, v := range point {
			cfg.Params[k] = v
		}

		exp, err := experiment.New(reg, cfg)
		if err != nil {
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return ctx.Err()
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: model %s has no metric %q", cfg.Model, metricName)
		}
		if val < best {
			best = val
			bestParams = make(map[string]float64, len(point))
			for k, v := range point {
				bestParams[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, eval); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}
