package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/polyp/vec"
)

func TestAssembleRadial(t *testing.T) {
	s := New(testParams(), 16)

	limbs := []CellType{Spore, Muscle, Kidney}
	hub, err := AssembleRadial(s, vec.New(1, 2), 3, Neural, limbs)
	if err != nil {
		t.Fatalf("AssembleRadial() error = %v", err)
	}

	if got := s.CellCount(); got != 4 {
		t.Errorf("CellCount() = %d, want 4", got)
	}
	if got := len(s.Connections()); got != 3 {
		t.Errorf("connections = %d, want 3", got)
	}

	hubCell, err := s.Cell(hub)
	if err != nil {
		t.Fatalf("Cell(hub) error = %v", err)
	}
	if hubCell.Type != Neural {
		t.Errorf("hub type = %v, want %v", hubCell.Type, Neural)
	}

	// Limbs sit on a ring of the requested radius around the hub.
	for i := range limbs {
		limb, err := s.Cell(hub + 1 + i)
		if err != nil {
			t.Fatalf("Cell(limb %d) error = %v", i, err)
		}
		dist := limb.Position.Distance(hubCell.Position)
		if math.Abs(dist-3) > 1e-9 {
			t.Errorf("limb %d distance = %v, want 3", i, dist)
		}
	}

	// Every connection runs hub-to-limb, with the hub's attachment angles
	// sweeping the full turn.
	step := 2 * math.Pi / float64(len(limbs))
	for i, conn := range s.Connections() {
		if conn.A != hub {
			t.Errorf("connection %d: A = %d, want hub %d", i, conn.A, hub)
		}
		if conn.B != hub+1+i {
			t.Errorf("connection %d: B = %d, want %d", i, conn.B, hub+1+i)
		}
		if math.Abs(conn.AngleA-float64(i)*step) > 1e-9 {
			t.Errorf("connection %d: AngleA = %v, want %v", i, conn.AngleA, float64(i)*step)
		}
		if conn.AngleB != 0 {
			t.Errorf("connection %d: AngleB = %v, want 0", i, conn.AngleB)
		}
	}

	// A radial organism is one connected group.
	csr := s.GroupConnected(s.MaxIndex())
	if got := len(csr.Ranges); got != 1 {
		t.Errorf("groups = %d, want 1", got)
	}
}

func TestAssembleChain(t *testing.T) {
	s := New(testParams(), 16)

	types := []CellType{Spore, Spore, Spore, Spore}
	start, err := AssembleChain(s, vec.Zero, 2.5, types)
	if err != nil {
		t.Fatalf("AssembleChain() error = %v", err)
	}

	if got := len(s.Connections()); got != 3 {
		t.Errorf("connections = %d, want 3", got)
	}

	// Cells march along the x axis at the requested spacing.
	for i := range types {
		cell, err := s.Cell(start + i)
		if err != nil {
			t.Fatalf("Cell(%d) error = %v", start+i, err)
		}
		want := vec.New(float64(i)*2.5, 0)
		if cell.Position != want {
			t.Errorf("cell %d position = %v, want %v", i, cell.Position, want)
		}
	}

	// Each link faces the next cell on the left rim, back on the right rim.
	for i, conn := range s.Connections() {
		if conn.A != start+i || conn.B != start+i+1 {
			t.Errorf("connection %d: (%d,%d), want (%d,%d)", i, conn.A, conn.B, start+i, start+i+1)
		}
		if conn.AngleA != 0 || conn.AngleB != math.Pi {
			t.Errorf("connection %d: angles (%v,%v), want (0,π)", i, conn.AngleA, conn.AngleB)
		}
	}
}

func TestAssembleRadialRespectsCap(t *testing.T) {
	s := New(testParams(), 4)
	s.SetMaxCells(2)

	_, err := AssembleRadial(s, vec.Zero, 3, Neural, []CellType{Spore, Muscle})
	if err == nil {
		t.Fatal("AssembleRadial() with cap 2 should fail for 3 cells")
	}
}
