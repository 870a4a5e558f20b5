package engine

import (
	"math"

	"github.com/pthm-cable/polyp/graph"
	"github.com/pthm-cable/polyp/sim"
	"github.com/pthm-cable/polyp/telemetry"
	"github.com/pthm-cable/polyp/vec"
)

// CellInstance is one live cell flattened for consumers. Index is the stable
// arena slot; Dense is the cell's rank in a gap-free index space.
type CellInstance struct {
	Index int
	Dense int

	Position        vec.Vec2
	Velocity        vec.Vec2
	Angle           float64
	AngularVelocity float64
	Size            float64
	Mass            float64
	Inertia         float64

	Type  sim.CellType
	Desc  sim.Descriptor
	Store sim.Resources
}

// ConnectionInstance is a connection with its endpoints resolved to dense
// ranks, so consumers indexing the snapshot's cell slice need no mapping of
// their own.
type ConnectionInstance struct {
	sim.Connection
	DenseA, DenseB int
}

// Snapshot is a self-contained copy of the visible simulation state. Groups
// partitions slot indices 0..MaxIndex into connected clusters, the unit of
// spatial batching for consumers that draw or export the organism.
type Snapshot struct {
	Tick        int64
	SimTime     float64
	MaxIndex    int
	Cells       []CellInstance
	Connections []ConnectionInstance
	Groups      *graph.CSR
}

// Snapshot copies the dense cell and connection data and the connectivity
// groups under the state lock. The returned value shares nothing with the
// live state, so consumers can build buffers from it without holding the
// lock.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := &Snapshot{
		Tick:     e.tick,
		SimTime:  float64(e.tick) * e.dt,
		MaxIndex: e.state.MaxIndex(),
		Cells:    make([]CellInstance, 0, e.state.CellCount()),
	}

	dense := make(map[int]int, e.state.CellCount())
	for entry, cell := range e.state.Cells() {
		dense[entry.Index] = entry.Dense
		snap.Cells = append(snap.Cells, CellInstance{
			Index:           entry.Index,
			Dense:           entry.Dense,
			Position:        cell.Position,
			Velocity:        cell.Velocity,
			Angle:           cell.Angle,
			AngularVelocity: cell.AngularVelocity,
			Size:            cell.Size,
			Mass:            cell.Mass,
			Inertia:         cell.AngularInertia,
			Type:            cell.Type,
			Desc:            cell.Type.Descriptor(),
			Store:           cell.Store,
		})
	}

	conns := e.state.Connections()
	snap.Connections = make([]ConnectionInstance, len(conns))
	for i, conn := range conns {
		snap.Connections[i] = ConnectionInstance{
			Connection: conn,
			DenseA:     dense[conn.A],
			DenseB:     dense[conn.B],
		}
	}

	snap.Groups = e.state.GroupConnected(snap.MaxIndex)
	return snap
}

// WindowStats aggregates the snapshot into a stats record for the window
// ending at the snapshot's tick.
func (s *Snapshot) WindowStats() telemetry.WindowStats {
	speeds := make([]float64, len(s.Cells))
	spins := make([]float64, len(s.Cells))
	var kinetic, stored float64
	for i, c := range s.Cells {
		speeds[i] = c.Velocity.Length()
		spins[i] = math.Abs(c.AngularVelocity)
		kinetic += 0.5 * c.Mass * c.Velocity.Dot(c.Velocity)
		kinetic += 0.5 * c.Inertia * c.AngularVelocity * c.AngularVelocity
		stored += float64(c.Store.Energy) + float64(c.Store.Fat)
	}

	stats := telemetry.WindowStats{
		WindowEndTick:   s.Tick,
		SimTimeSec:      s.SimTime,
		CellCount:       len(s.Cells),
		ConnectionCount: len(s.Connections),
		KineticEnergy:   kinetic,
		StoredEnergy:    stored,
	}
	if s.Groups != nil {
		stats.GroupCount = len(s.Groups.Ranges)
	}
	stats.SpeedMean, stats.SpeedP10, stats.SpeedP50, stats.SpeedP90 = telemetry.ComputeSpeedStats(speeds)
	stats.SpinMean, stats.SpinStd = telemetry.ComputeSpinStats(spins)
	return stats
}
