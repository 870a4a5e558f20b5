package sim

import (
	"fmt"
	"iter"

	"github.com/pthm-cable/polyp/arena"
	"github.com/pthm-cable/polyp/config"
	"github.com/pthm-cable/polyp/graph"
)

// Params holds the simulation-wide physics parameters.
type Params struct {
	Viscosity     float64 // drag coefficient on velocity and spin
	SpringK       float64 // stiffness shared by both connection springs
	CenterRestLen float64 // rest length of the center-to-center spring
	DiffusionRate float64 // resource transfer rate per second (0 = off)
}

// ParamsFromConfig builds simulation parameters from loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Viscosity:     cfg.Physics.Viscosity,
		SpringK:       cfg.Physics.SpringK,
		CenterRestLen: cfg.Physics.CenterRestLen,
		DiffusionRate: cfg.Physics.DiffusionRate,
	}
}

// State is the complete simulation state: all cells and the connection
// graph between them. It is not safe for concurrent use; callers that share
// a State across goroutines wrap it in an engine.Engine.
type State struct {
	params      Params
	cells       *arena.Arena[Cell]
	connections []Connection
}

// New creates an empty simulation state with the given initial cell
// capacity.
func New(params Params, capacity int) *State {
	return &State{
		params:      params,
		cells:       arena.New[Cell](capacity),
		connections: make([]Connection, 0, capacity),
	}
}

// SetMaxCells caps the cell arena. n = 0 removes the cap.
func (s *State) SetMaxCells(n int) {
	s.cells.SetMaxSlots(n)
}

// InsertCells stores cells in contiguous arena slots and returns the first
// cell's index.
func (s *State) InsertCells(cells []Cell) (int, error) {
	start, err := s.cells.InsertBatch(cells)
	if err != nil {
		return 0, fmt.Errorf("sim: inserting %d cells: %w", len(cells), err)
	}
	return start, nil
}

// Connect adds a connection between cells a and b with the given local
// attachment angles. Both endpoints must be live cells and must differ.
func (s *State) Connect(a int, angleA float64, b int, angleB float64) error {
	if a == b {
		return fmt.Errorf("sim: connection endpoints must differ: %d", a)
	}
	if _, err := s.cells.Get(a); err != nil {
		return fmt.Errorf("sim: connect endpoint a: %w", err)
	}
	if _, err := s.cells.Get(b); err != nil {
		return fmt.Errorf("sim: connect endpoint b: %w", err)
	}
	s.connections = append(s.connections, NewConnection(a, angleA, b, angleB))
	return nil
}

// Remove frees the cell's slot and purges every connection referencing it,
// so no dangling index survives the removal.
func (s *State) Remove(id int) {
	s.cells.Free(id)

	for i := len(s.connections) - 1; i >= 0; i-- {
		if s.connections[i].PointsToward(id) {
			last := len(s.connections) - 1
			s.connections[i] = s.connections[last]
			s.connections = s.connections[:last]
		}
	}
}

// Cell returns the live cell at id.
func (s *State) Cell(id int) (*Cell, error) {
	return s.cells.Get(id)
}

// CellCount returns the number of live cells.
func (s *State) CellCount() int {
	return s.cells.Count()
}

// MaxIndex returns the highest slot index ever allocated, or -1 when the
// arena is empty. It bounds the node id space for grouping.
func (s *State) MaxIndex() int {
	return s.cells.Len() - 1
}

// Cells iterates over live cells in slot order, yielding each cell's arena
// entry (stable index plus dense rank) alongside the cell.
func (s *State) Cells() iter.Seq2[arena.Entry, *Cell] {
	return s.cells.Enumerate()
}

// Connections returns the connection list. The slice is owned by the state;
// callers must not mutate it.
func (s *State) Connections() []Connection {
	return s.connections
}

// GroupConnected partitions node ids 0..maxIndex into connected components
// using the current connection list. Safe to call concurrently with other
// reads, not with writes.
func (s *State) GroupConnected(maxIndex int) *graph.CSR {
	if maxIndex < 0 {
		return &graph.CSR{}
	}
	edges := make([]graph.Pair, len(s.connections))
	for i, conn := range s.connections {
		edges[i] = graph.NewPair(conn.A, conn.B)
	}
	return graph.GroupsFromEdges(edges, maxIndex)
}

// Step advances the simulation by one tick of dt seconds: the physics pass
// followed by the resource pass.
func (s *State) Step(dt float64) error {
	if err := s.PhysicsPass(dt); err != nil {
		return err
	}
	return s.ResourcePass(dt)
}
