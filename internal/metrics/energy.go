package metrics

import (
	"math"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/sim"
)

var (
	_ sim.Metric      = (*Energy)(nil)
	_ sim.SystemAware = (*Energy)(nil)
	_ sim.Metric      = (*EnergyDrift)(nil)
	_ sim.SystemAware = (*EnergyDrift)(nil)
)

// Energy reports the mean total energy over a run. Systems that are not
// Hamiltonian leave it at zero.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
	ham         dynamo.Hamiltonian
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Attach(sys dynamo.VectorSystem) {
	e.ham, _ = sys.(dynamo.Hamiltonian)
}

func (e *Energy) Observe(x dynamo.State, t time.Duration) {
	if e.ham == nil {
		return
	}
	e.totalEnergy += e.ham.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation from the energy of the
// first observed sample.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	ham           dynamo.Hamiltonian
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Attach(sys dynamo.VectorSystem) {
	e.ham, _ = sys.(dynamo.Hamiltonian)
}

func (e *EnergyDrift) Observe(x dynamo.State, t time.Duration) {
	if e.ham == nil {
		return
	}

	energy := e.ham.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
