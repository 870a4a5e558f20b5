// Package engine owns the shared simulation state. It serializes the writer
// (the fixed-timestep step loop) and readers (snapshot consumers) behind one
// lock, so no reader ever observes a partially integrated step.
package engine

import (
	"sync"

	"github.com/pthm-cable/polyp/sim"
	"github.com/pthm-cable/polyp/telemetry"
)

// Engine wraps a simulation state with the locking and timing that the bare
// state deliberately leaves out.
type Engine struct {
	mu    sync.Mutex
	state *sim.State
	dt    float64
	tick  int64
	perf  *telemetry.PerfCollector
}

// New creates an engine stepping state by dt seconds per tick. perf may be
// nil to disable timing collection.
func New(state *sim.State, dt float64, perf *telemetry.PerfCollector) *Engine {
	return &Engine{state: state, dt: dt, perf: perf}
}

// DT returns the fixed timestep in seconds.
func (e *Engine) DT() float64 {
	return e.dt
}

// Tick returns the number of completed steps.
func (e *Engine) Tick() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// Step advances the simulation by one tick under the state lock. A returned
// error means a consistency bug (stale connection, bad slot) and leaves the
// tick count unchanged; the engine is not usable for further steps until the
// caller fixes the state.
func (e *Engine) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.perf != nil {
		e.perf.StartTick()
		e.perf.StartPhase(telemetry.PhasePhysics)
	}
	if err := e.state.PhysicsPass(e.dt); err != nil {
		return err
	}

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseResources)
	}
	if err := e.state.ResourcePass(e.dt); err != nil {
		return err
	}

	if e.perf != nil {
		e.perf.EndTick()
	}
	e.tick++
	return nil
}

// Mutate runs fn with exclusive access to the state, for lifecycle edits
// (inserting organisms, removing cells) that must not interleave with steps
// or snapshots.
func (e *Engine) Mutate(fn func(*sim.State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// Perf returns aggregated timing statistics over the collector's window.
func (e *Engine) Perf() telemetry.PerfStats {
	if e.perf == nil {
		return telemetry.PerfStats{}
	}
	return e.perf.Stats()
}
