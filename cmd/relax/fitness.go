package main

import (
	"math"

	"github.com/pthm-cable/polyp/sim"
	"github.com/pthm-cable/polyp/vec"
)

// settleThreshold is the kinetic energy below which the organism counts as
// settled.
const settleThreshold = 1e-6

// FitnessEvaluator runs headless relaxations of a perturbed reference
// organism and scores parameter vectors.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int
	dt       float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, dt float64) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, maxTicks: maxTicks, dt: dt}
}

// buildPerturbedOrganism assembles the reference organism with every limb
// displaced off its equilibrium, so the springs have work to do.
func buildPerturbedOrganism(p sim.Params) (*sim.State, error) {
	state := sim.New(p, 16)

	limbs := []sim.CellType{sim.Spore, sim.Intestinal, sim.Muscle, sim.Kidney}
	hub, err := sim.AssembleRadial(state, vec.Zero, 4, sim.Neural, limbs)
	if err != nil {
		return nil, err
	}

	// Deterministic perturbation: stretch each limb outward and twist it.
	for i := range limbs {
		cell, err := state.Cell(hub + 1 + i)
		if err != nil {
			return nil, err
		}
		cell.Position = cell.Position.Scale(1.5)
		cell.Angle = 0.4 * float64(i+1)
	}
	return state, nil
}

// kineticEnergy sums translational and rotational kinetic energy over all
// cells.
func kineticEnergy(state *sim.State) float64 {
	var total float64
	for _, cell := range state.Cells() {
		total += 0.5 * cell.Mass * cell.Velocity.Dot(cell.Velocity)
		total += 0.5 * cell.AngularInertia * cell.AngularVelocity * cell.AngularVelocity
	}
	return total
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the settling tick count, plus the residual kinetic energy when
// the run hits the tick cap without settling.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	raw = fe.params.Clamp(raw)
	p := sim.Params{
		Viscosity:     raw[0],
		SpringK:       raw[1],
		CenterRestLen: 2,
	}

	state, err := buildPerturbedOrganism(p)
	if err != nil {
		return math.Inf(1)
	}

	for tick := 1; tick <= fe.maxTicks; tick++ {
		if err := state.Step(fe.dt); err != nil {
			return math.Inf(1)
		}
		ke := kineticEnergy(state)
		if math.IsNaN(ke) || math.IsInf(ke, 0) {
			// Unstable parameters blew the integration up.
			return math.Inf(1)
		}
		// Only count as settled once the transient has had time to start.
		if tick > 10 && ke < settleThreshold {
			return float64(tick)
		}
	}

	return float64(fe.maxTicks) + kineticEnergy(state)
}
