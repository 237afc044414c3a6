package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/experiment"
)

func springConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Model = "spring_mass"
	cfg.Span = "5s"
	cfg.Step = "10ms"
	cfg.InitState = []float64{1, 0}
	return cfg
}

func TestGridSearchFindsStrongestDamping(t *testing.T) {
	g := NewGridSearch([]string{"damping", "stiffness"}, [][]float64{{0, 0.5, 2}, {5, 10}})
	if g.Size() != 6 {
		t.Fatalf("expected 6 grid points, got %d", g.Size())
	}

	params, peak, err := g.Search(context.Background(), experiment.NewRegistry(), springConfig(), "energy")
	if err != nil {
		t.Fatal(err)
	}
	if params["damping"] != 2 {
		t.Errorf("expected the most damped point to lose the most energy, got %v", params)
	}
	if math.IsInf(peak, 0) || peak <= 0 {
		t.Errorf("unexpected best value %f", peak)
	}
}

func TestGridSearchSkipsInvalidPoints(t *testing.T) {
	g := NewGridSearch([]string{"mass"}, [][]float64{{-1, 2}})
	params, _, err := g.Search(context.Background(), experiment.NewRegistry(), springConfig(), "peak")
	if err != nil {
		t.Fatal(err)
	}
	if params["mass"] != 2 {
		t.Errorf("expected the valid point, got %v", params)
	}

	g = NewGridSearch([]string{"mass"}, [][]float64{{-1, 0}})
	if _, _, err := g.Search(context.Background(), experiment.NewRegistry(), springConfig(), "peak"); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	g := NewGridSearch([]string{"damping"}, [][]float64{{0.1}})
	if _, _, err := g.Search(context.Background(), experiment.NewRegistry(), springConfig(), "lift"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"damping"}, [][]float64{{0.1, 0.2}})
	if _, _, err := g.Search(ctx, experiment.NewRegistry(), springConfig(), "peak"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
