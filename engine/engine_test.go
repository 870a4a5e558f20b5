package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/pthm-cable/polyp/sim"
	"github.com/pthm-cable/polyp/telemetry"
	"github.com/pthm-cable/polyp/vec"
)

const dt = 1.0 / 60.0

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	params := sim.Params{Viscosity: 0.8, SpringK: 50, CenterRestLen: 2}
	e := New(sim.New(params, 0), dt, telemetry.NewPerfCollector(16))

	err := e.Mutate(func(s *sim.State) error {
		start, err := s.InsertCells([]sim.Cell{
			sim.NewCell(vec.New(0, 0), sim.Neural),
			sim.NewCell(vec.New(4, 0), sim.Muscle),
			sim.NewCell(vec.New(20, 20), sim.Spore),
		})
		if err != nil {
			return err
		}
		return s.Connect(start, 0, start+1, math.Pi)
	})
	if err != nil {
		t.Fatalf("setup error: %v", err)
	}
	return e
}

func TestStepAdvancesTick(t *testing.T) {
	e := newTestEngine(t)

	for range 5 {
		if err := e.Step(); err != nil {
			t.Fatalf("Step error: %v", err)
		}
	}
	if e.Tick() != 5 {
		t.Errorf("Tick() = %d, want 5", e.Tick())
	}

	stats := e.Perf()
	if stats.AvgTickDuration <= 0 {
		t.Error("perf collector recorded no tick timing")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Step(); err != nil {
		t.Fatalf("Step error: %v", err)
	}

	snap := e.Snapshot()
	posBefore := snap.Cells[0].Position

	// Later steps must not show through an already-taken snapshot.
	for range 20 {
		if err := e.Step(); err != nil {
			t.Fatalf("Step error: %v", err)
		}
	}
	if snap.Cells[0].Position != posBefore {
		t.Error("snapshot mutated by later steps")
	}

	if snap.Tick != 1 {
		t.Errorf("snapshot tick = %d, want 1", snap.Tick)
	}
	if len(snap.Cells) != 3 {
		t.Errorf("snapshot cell count = %d, want 3", len(snap.Cells))
	}
	if len(snap.Connections) != 1 {
		t.Errorf("snapshot connection count = %d, want 1", len(snap.Connections))
	}
}

func TestSnapshotDenseIndices(t *testing.T) {
	e := newTestEngine(t)

	// Free slot 0 so dense ranks shift away from slot indices.
	err := e.Mutate(func(s *sim.State) error {
		s.Remove(0)
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate error: %v", err)
	}

	snap := e.Snapshot()
	if len(snap.Cells) != 2 {
		t.Fatalf("cell count = %d, want 2", len(snap.Cells))
	}
	if snap.Cells[0].Index != 1 || snap.Cells[0].Dense != 0 {
		t.Errorf("first cell (index, dense) = (%d, %d), want (1, 0)",
			snap.Cells[0].Index, snap.Cells[0].Dense)
	}
	// Removing slot 0 purged the only connection.
	if len(snap.Connections) != 0 {
		t.Errorf("connection count = %d, want 0", len(snap.Connections))
	}
}

func TestSnapshotGroups(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()

	// Cells 0 and 1 are connected; cell 2 is isolated.
	if got := len(snap.Groups.Ranges); got != 2 {
		t.Fatalf("group count = %d, want 2\n%s", got, snap.Groups.Debug())
	}
	if got := snap.Groups.Row(0); len(got) != 2 {
		t.Errorf("first group = %v, want two members", got)
	}
}

func TestWindowStats(t *testing.T) {
	e := newTestEngine(t)
	for range 10 {
		if err := e.Step(); err != nil {
			t.Fatalf("Step error: %v", err)
		}
	}

	stats := e.Snapshot().WindowStats()
	if stats.CellCount != 3 || stats.ConnectionCount != 1 || stats.GroupCount != 2 {
		t.Errorf("counts = (%d, %d, %d), want (3, 1, 2)",
			stats.CellCount, stats.ConnectionCount, stats.GroupCount)
	}
	// The stretched pair is in motion, so the window carries kinetic energy.
	if stats.KineticEnergy <= 0 {
		t.Errorf("kinetic energy = %v, want positive", stats.KineticEnergy)
	}
	if stats.WindowEndTick != 10 {
		t.Errorf("window end tick = %d, want 10", stats.WindowEndTick)
	}
}

func TestConcurrentSnapshots(t *testing.T) {
	e := newTestEngine(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			if err := e.Step(); err != nil {
				t.Errorf("Step error: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			snap := e.Snapshot()
			for _, c := range snap.Cells {
				if math.IsNaN(c.Position.X) {
					t.Error("snapshot observed NaN position")
					return
				}
			}
		}
	}()
	wg.Wait()
}
