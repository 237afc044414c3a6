// Package tui runs a generator interactively in the terminal, one tick at a
// time.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/viz"
)

const (
	canvasWidth     = 40
	canvasHeight    = 16
	historyCapacity = 300
	trailCapacity   = 120
	maxSpeed        = 64
)

// Builder creates a fresh generator positioned at the start of the run.
type Builder func() (*dynamo.VectorGenerator, error)

type TickMsg time.Time

type point struct{ x, y float64 }

// Live is a bubbletea model that advances a generator a few samples per tick
// and draws the current state.
type Live struct {
	name  string
	build Builder
	frame time.Duration

	gen *dynamo.VectorGenerator
	ham dynamo.Hamiltonian
	t   time.Duration
	x   dynamo.State

	running bool
	done    bool
	speed   int
	err     error

	history []float64
	energy  []float64
	trail   []point
	scale   float64
	canvas  *viz.Canvas
}

func NewLive(name string, build Builder, fps int) (*Live, error) {
	if fps <= 0 {
		fps = 30
	}
	l := &Live{
		name:    name,
		build:   build,
		frame:   time.Second / time.Duration(fps),
		running: true,
		speed:   1,
		canvas:  viz.NewCanvas(canvasWidth, canvasHeight),
	}
	if err := l.reset(); err != nil {
		return nil, err
	}
	return l, nil
}

// Run starts the program on the alternate screen and blocks until the user
// quits.
func Run(name string, build Builder, fps int) error {
	l, err := NewLive(name, build, fps)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(l, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Live); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (l *Live) reset() error {
	g, err := l.build()
	if err != nil {
		return err
	}
	l.gen = g
	l.ham, _ = g.System().(dynamo.Hamiltonian)
	l.t, l.x = g.Observe()
	l.done = g.AtEnd()
	l.err = nil
	l.history = l.history[:0]
	l.energy = l.energy[:0]
	l.trail = l.trail[:0]
	l.scale = 1
	l.record()
	return nil
}

func (l *Live) tick() tea.Cmd {
	return tea.Tick(l.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l *Live) Init() tea.Cmd {
	return l.tick()
}

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			if err := l.reset(); err != nil {
				l.err = err
				return l, tea.Quit
			}
		case "+", "=":
			l.speed = min(l.speed*2, maxSpeed)
		case "-", "_":
			l.speed = max(l.speed/2, 1)
		}
	case TickMsg:
		if l.running && !l.done {
			l.advance()
		}
		return l, l.tick()
	}
	return l, nil
}

// advance moves the generator forward by up to speed samples, stopping once
// the span is covered.
func (l *Live) advance() {
	for i := 0; i < l.speed; i++ {
		if l.gen.AtEnd() {
			break
		}
		l.gen.Advance()
		l.t, l.x = l.gen.Observe()
		l.record()
		if !l.x.IsValid() {
			l.err = &dynamo.SimulationError{Step: l.gen.Steps(), Elapsed: l.t, State: l.x, Wrapped: dynamo.ErrInvalidState}
			l.done = true
			return
		}
	}
	l.done = l.gen.AtEnd()
}

func (l *Live) record() {
	if len(l.x) == 0 {
		return
	}
	l.history = appendBounded(l.history, l.x[0], historyCapacity)
	if l.ham != nil {
		l.energy = appendBounded(l.energy, l.ham.Energy(l.x), historyCapacity)
	}

	p := l.phasePoint()
	l.scale = math.Max(l.scale, math.Max(math.Abs(p.x), math.Abs(p.y))*1.1)
	l.trail = append(l.trail, p)
	if len(l.trail) > trailCapacity {
		l.trail = l.trail[1:]
	}
}

// phasePoint picks the two components drawn on the canvas: the pendulum bob,
// the planar position of the drone or first body, x/z of a three-dimensional
// flow, otherwise a position against its velocity.
func (l *Live) phasePoint() point {
	x := l.x
	switch {
	case l.name == "pendulum":
		return point{math.Sin(x[0]), -math.Cos(x[0])}
	case l.name == "double_pendulum":
		return point{math.Sin(x[0]) + math.Sin(x[1]), -math.Cos(x[0]) - math.Cos(x[1])}
	case l.name == "drone" || l.name == "nbody":
		return point{x[0], x[1]}
	case len(x) == 3 && l.name != "duffing":
		return point{x[0], x[2]}
	case len(x) >= 2:
		return point{x[0], x[len(x)/2]}
	}
	return point{x[0], 0}
}

func (l *Live) draw() {
	l.canvas.Clear()
	for _, p := range l.trail {
		px, py := l.canvas.Project(p.x, p.y, l.scale)
		l.canvas.Set(px, py)
	}
	if l.name == "pendulum" && len(l.trail) > 0 {
		ox, oy := l.canvas.Project(0, 0, l.scale)
		last := l.trail[len(l.trail)-1]
		bx, by := l.canvas.Project(last.x, last.y, l.scale)
		l.canvas.DrawLine(ox, oy, bx, by)
	}
}

func (l *Live) status() string {
	switch {
	case l.err != nil:
		return viz.ErrorText.Render("FAILED")
	case l.done:
		return viz.StatusDone.Render("DONE")
	case !l.running:
		return viz.StatusPaused.Render("PAUSED")
	}
	return viz.StatusRunning.Render("RUNNING")
}

func (l *Live) View() string {
	l.draw()

	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render(strings.ToUpper(l.name)) + "\n")
	s.WriteString(l.status() + "\n\n")

	progress := 1.0
	if span := l.gen.Span(); span > 0 {
		progress = float64(l.t) / float64(span)
	}
	s.WriteString(viz.ProgressBar(progress, 30) + "\n\n")
	s.WriteString(viz.Metric("Elapsed", l.t.String()) + "\n")
	s.WriteString(viz.Metric("Span", l.gen.Span().String()) + "\n")
	s.WriteString(viz.Metric("Steps", fmt.Sprintf("%d", l.gen.Steps())) + "\n")
	s.WriteString(viz.Metric("Speed", fmt.Sprintf("x%d", l.speed)) + "\n")
	for i, v := range l.x {
		if i >= 6 {
			break
		}
		s.WriteString(viz.Metric(viz.Label(l.name, i), fmt.Sprintf("%.4f", v)) + "\n")
	}
	if l.ham != nil && len(l.energy) > 0 {
		s.WriteString(viz.Metric("Energy", fmt.Sprintf("%.4f", l.energy[len(l.energy)-1])) + "\n")
	}
	if l.err != nil {
		s.WriteString("\n" + viz.ErrorText.Render(l.err.Error()) + "\n")
	}

	if chart := viz.PlotHistory(l.history, viz.Label(l.name, 0), 36, 5); chart != "" {
		s.WriteString("\n" + chart + "\n")
	}
	if len(l.energy) > 1 {
		s.WriteString("\n" + viz.Subtle.Render("energy ") + viz.Sparkline(l.energy, 30) + "\n")
	}
	s.WriteString("\n" + viz.KeyHint.Render("SPACE pause  R restart  +/- speed  Q quit"))

	canvas := viz.Panel.Render(l.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, viz.Panel.Render(s.String()))
}

func appendBounded(xs []float64, v float64, capacity int) []float64 {
	xs = append(xs, v)
	if len(xs) > capacity {
		xs = xs[1:]
	}
	return xs
}
