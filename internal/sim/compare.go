package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// Comparison is the outcome of one stepper in Compare.
type Comparison struct {
	Stepper string
	Final   dynamo.State
	Steps   int
	// Distance is the norm of the difference to the reference final state.
	Distance float64
}

// Compare runs spec once per stepper, one after another, and measures each
// final state against the run made with the reference stepper. Results are
// sorted by stepper name.
func Compare(ctx context.Context, spec Spec, steppers map[string]dynamo.VectorStepper, reference string) ([]Comparison, error) {
	refStepper, ok := steppers[reference]
	if !ok {
		return nil, fmt.Errorf("compare: reference stepper %q not in set", reference)
	}

	refSpec := spec
	refSpec.Stepper = refStepper
	ref, err := New().Run(ctx, refSpec)
	if err != nil {
		return nil, fmt.Errorf("compare: reference %s: %w", reference, err)
	}

	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Comparison, 0, len(names))
	for _, name := range names {
		res := ref
		if name != reference {
			runSpec := spec
			runSpec.Stepper = steppers[name]
			res, err = New().Run(ctx, runSpec)
			if err != nil {
				return nil, fmt.Errorf("compare: %s: %w", name, err)
			}
		}

		out = append(out, Comparison{
			Stepper:  name,
			Final:    res.Final,
			Steps:    res.Steps,
			Distance: res.Final.Sub(ref.Final).Norm(),
		})
	}

	return out, nil
}
