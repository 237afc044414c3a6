package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/dynseq/internal/analysis"
)

func square() *analysis.Portrait {
	return &analysis.Portrait{Points: []analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}
}

func TestPortraitTrajectory(t *testing.T) {
	var buf bytes.Buffer
	if err := PortraitSVG(&buf, square(), 120, 120, Trajectory, "#00ff00"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("not a complete document:\n%s", out)
	}
	// (0,0) sits a tenth of 1.2 units in from the bottom-left corner.
	if !strings.Contains(out, `d="M10.0,110.0 L110.0,110.0 L110.0,10.0 L10.0,10.0"`) {
		t.Errorf("unexpected path:\n%s", out)
	}
}

func TestPortraitScatter(t *testing.T) {
	var buf bytes.Buffer
	if err := PortraitSVG(&buf, square(), 120, 120, Scatter, "#ffffff"); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "<circle"); n != 4 {
		t.Errorf("expected 4 dots, got %d", n)
	}
}

func TestPortraitTooFewPoints(t *testing.T) {
	var buf bytes.Buffer
	single := &analysis.Portrait{Points: []analysis.Point{{X: 1, Y: 1}}}
	if err := PortraitSVG(&buf, single, 10, 10, Trajectory, "#fff"); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
	if err := PortraitSVG(&buf, single, 10, 10, Scatter, "#fff"); err != nil {
		t.Errorf("a single dot should render: %v", err)
	}
	if err := PortraitSVG(&buf, &analysis.Portrait{}, 10, 10, Scatter, "#fff"); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints for an empty portrait, got %v", err)
	}
}
